package mcp

import (
	"database/sql"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/hpungsan/tweetsmith/internal/config"
	"github.com/hpungsan/tweetsmith/internal/ops"
	"github.com/hpungsan/tweetsmith/internal/settings"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"tweet_transform": {
		def:     transformToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTransform },
	},
	"tweet_save": {
		def:     saveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSave },
	},
	"tweet_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"tweet_fetch": {
		def:     fetchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFetch },
	},
	"tweet_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"settings_get": {
		def:     settingsGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSettingsGet },
	},
	"settings_set": {
		def:     settingsSetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSettingsSet },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with TweetSmith tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, gen ops.Generator, store settings.Store, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"tweetsmith",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, gen, store)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport. Stdout carries the
// protocol, so server errors are routed to the logger.
func Run(db *sql.DB, gen ops.Generator, store settings.Store, cfg *config.Config, version string, logger *logrus.Entry) error {
	s := NewServer(db, gen, store, cfg, version)
	errLog := log.New(logger.WithField("component", "mcp").WriterLevel(logrus.ErrorLevel), "", 0)
	return server.ServeStdio(s, server.WithErrorLogger(errLog))
}

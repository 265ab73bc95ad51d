package main

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/tweetsmith/internal/config"
	"github.com/hpungsan/tweetsmith/internal/errors"
	"github.com/hpungsan/tweetsmith/internal/mcp"
	"github.com/hpungsan/tweetsmith/internal/ops"
	"github.com/hpungsan/tweetsmith/internal/settings"
	"github.com/hpungsan/tweetsmith/internal/web"
)

// deps carries the shared resources commands run against. The settings
// store is opened on first use: Badger holds a directory lock, so commands
// that only touch the library must not contend with a running server.
type deps struct {
	db     *sql.DB
	gen    ops.Generator
	cfg    *config.Config
	logger *logrus.Logger

	settingsDir string
	exportsDir  string
	store       settings.Store
}

// settings returns the preferences store, opening it if needed.
func (d *deps) settings() (settings.Store, error) {
	if d.store != nil {
		return d.store, nil
	}
	store, err := settings.OpenBadger(d.settingsDir, d.logger)
	if err != nil {
		return nil, err
	}
	d.store = store
	return store, nil
}

// close releases the settings store if it was opened.
func (d *deps) close() {
	if d.store != nil {
		if err := d.store.Close(); err != nil && d.logger != nil {
			d.logger.WithError(err).Warn("closing settings store")
		}
		d.store = nil
	}
}

// runMCP serves the MCP tools over stdio.
func runMCP(d *deps) error {
	if unknown := mcp.ValidateDisabledTools(d.cfg.DisabledTools); len(unknown) > 0 {
		d.logger.WithField("tools", unknown).Warn("unknown tools in disabled_tools")
	}
	store, err := d.settings()
	if err != nil {
		return err
	}
	return mcp.Run(d.db, d.gen, store, d.cfg, Version, d.logger.WithField("mode", "mcp"))
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(d *deps) *cli.App {
	app := &cli.App{
		Name:    "tweetsmith",
		Usage:   "Rewrite rough drafts into polished posts with a local Ollama model",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(d),
			mcpCmd(d),
			transformCmd(d),
			saveCmd(d),
			listCmd(d),
			deleteCmd(d),
			settingsCmd(d),
			exportCmd(d),
			importCmd(d),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Address to bind (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on (default from config)"},
		},
		Action: func(c *cli.Context) error {
			bind := d.cfg.Bind
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			port := d.cfg.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			store, err := d.settings()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			d.logger.WithFields(logrus.Fields{
				"ollama_url": d.cfg.OllamaURL,
				"model":      d.cfg.Model,
			}).Info("using generation backend")

			srv := web.NewServer(d.db, d.gen, store, d.logger, bind, port)
			if err := web.Run(srv, d.logger); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve MCP tools over stdio",
		Action: func(c *cli.Context) error {
			if err := runMCP(d); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// transformCmd creates the transform command.
func transformCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "transform",
		Usage:     "Rewrite a draft (from arguments or stdin); unset flags use saved settings",
		ArgsUsage: "[draft...]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "max-chars", Aliases: []string{"m"}, Usage: "Character ceiling (100-280)"},
			&cli.StringFlag{Name: "emoji", Aliases: []string{"e"}, Usage: "Emoji mode: none|few|many"},
			&cli.StringFlag{Name: "context", Aliases: []string{"c"}, Usage: "Author style hint"},
		},
		Action: func(c *cli.Context) error {
			draft := strings.Join(c.Args().Slice(), " ")
			if draft == "" && stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				draft = text
			}

			store, err := d.settings()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			input, err := ops.TransformWithPreferences(c.Context, store, draft, preferenceFlags(c))
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Transform(c.Context, d.gen, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// saveCmd creates the save command.
func saveCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Save a draft and its rewrite to the library",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "original", Aliases: []string{"o"}, Usage: "Original draft"},
			&cli.StringFlag{Name: "transformed", Aliases: []string{"t"}, Usage: "Rewritten post"},
			&cli.StringFlag{Name: "context", Aliases: []string{"c"}, Usage: "Author style hint"},
			&cli.StringFlag{Name: "image-url", Usage: "Attached image URL"},
			&cli.StringFlag{Name: "image-alt", Usage: "Attached image alt text"},
		},
		Action: func(c *cli.Context) error {
			input := ops.CreateInput{
				Original:    c.String("original"),
				Transformed: c.String("transformed"),
				Context:     optionalFlag(c, "context"),
				ImageURL:    optionalFlag(c, "image-url"),
				ImageAlt:    optionalFlag(c, "image-alt"),
			}

			output, err := ops.Create(c.Context, d.db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List saved tweets, newest first",
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, d.db)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Permanently delete a saved tweet",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(c.Context, d.db, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// settingsCmd creates the settings command with get and set subcommands.
func settingsCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or change the saved default context and filters",
		Subcommands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Print saved settings",
				Action: func(c *cli.Context) error {
					store, err := d.settings()
					if err != nil {
						return outputError(errors.NewInternal(err))
					}

					output, err := ops.GetPreferences(c.Context, store)
					if err != nil {
						return outputError(err)
					}

					return outputJSON(output)
				},
			},
			{
				Name:  "set",
				Usage: "Update saved settings (only the flags given are changed)",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "max-chars", Aliases: []string{"m"}, Usage: "Default character ceiling (100-280)"},
					&cli.StringFlag{Name: "emoji", Aliases: []string{"e"}, Usage: "Default emoji mode: none|few|many"},
					&cli.StringFlag{Name: "context", Aliases: []string{"c"}, Usage: "Default author style hint"},
				},
				Action: func(c *cli.Context) error {
					store, err := d.settings()
					if err != nil {
						return outputError(errors.NewInternal(err))
					}

					output, err := ops.SetPreferences(c.Context, store, preferenceFlags(c))
					if err != nil {
						return outputError(err)
					}

					return outputJSON(output)
				},
			},
		},
	}
}

// exportCmd creates the export command.
func exportCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Back up the library to a JSONL file in ~/.tweetsmith/exports",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "Output file (default: exports/tweets-<timestamp>.jsonl)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(c.Context, d.db, ops.ExportInput{
				Path: c.String("path"),
				Dir:  d.exportsDir,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Restore saved tweets from a JSONL backup (existing ids are skipped)",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			output, err := ops.Import(c.Context, d.db, ops.ImportInput{
				Path: c.Args().First(),
				Dir:  d.exportsDir,
			})
			if err != nil {
				return outputError(err)
			}
			if err := outputJSON(output); err != nil {
				return err
			}
			if len(output.Errors) > 0 {
				return cli.Exit(fmt.Sprintf("[%s] %d invalid record(s); nothing imported", errors.ErrInvalidRequest, len(output.Errors)), 1)
			}
			return nil
		},
	}
}

// Helper functions

// preferenceFlags collects the --max-chars, --emoji and --context flags
// that were explicitly set.
func preferenceFlags(c *cli.Context) ops.PreferencesInput {
	var input ops.PreferencesInput
	if c.IsSet("max-chars") {
		n := c.Int("max-chars")
		input.MaxChars = &n
	}
	input.EmojiMode = optionalFlag(c, "emoji")
	input.Context = optionalFlag(c, "context")
	return input
}

// optionalFlag returns a pointer to a string flag's value, or nil if unset.
func optionalFlag(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", appErr.Code, appErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

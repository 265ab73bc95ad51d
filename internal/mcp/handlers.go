package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/tweetsmith/internal/errors"
	"github.com/hpungsan/tweetsmith/internal/ops"
	"github.com/hpungsan/tweetsmith/internal/settings"
	"github.com/hpungsan/tweetsmith/internal/tweet"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db    *sql.DB
	gen   ops.Generator
	store settings.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, gen ops.Generator, store settings.Store) *Handlers {
	return &Handlers{db: db, gen: gen, store: store}
}

// Request types for each tool

// TransformRequest represents the arguments for tweet_transform.
type TransformRequest struct {
	Draft     string  `json:"draft"`
	MaxChars  *int    `json:"max_chars,omitempty"`
	EmojiMode *string `json:"emoji_mode,omitempty"`
	Context   *string `json:"context,omitempty"`
}

// SaveRequest represents the arguments for tweet_save.
type SaveRequest struct {
	Original    string  `json:"original"`
	Transformed string  `json:"transformed"`
	Context     *string `json:"context,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	ImageAlt    *string `json:"image_alt,omitempty"`
}

// IDRequest represents the arguments for tweet_fetch and tweet_delete.
type IDRequest struct {
	ID string `json:"id"`
}

// SettingsRequest represents the arguments for settings_set.
type SettingsRequest struct {
	Context   *string `json:"context,omitempty"`
	MaxChars  *int    `json:"max_chars,omitempty"`
	EmojiMode *string `json:"emoji_mode,omitempty"`
}

// ListOutput wraps saved tweets for tweet_list.
type ListOutput struct {
	Tweets []tweet.SavedTweet `json:"tweets"`
	Count  int                `json:"count"`
}

// Handler implementations

// HandleTransform handles the tweet_transform tool call. Parameters the
// caller omits fall back to the saved preferences.
func (h *Handlers) HandleTransform(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TransformRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	tin, err := ops.TransformWithPreferences(ctx, h.store, input.Draft, ops.PreferencesInput{
		Context:   input.Context,
		MaxChars:  input.MaxChars,
		EmojiMode: input.EmojiMode,
	})
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Transform(ctx, h.gen, tin)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSave handles the tweet_save tool call.
func (h *Handlers) HandleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Create(ctx, h.db, ops.CreateInput{
		Original:    input.Original,
		Transformed: input.Transformed,
		Context:     input.Context,
		ImageURL:    input.ImageURL,
		ImageAlt:    input.ImageAlt,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the tweet_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := ops.List(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(ListOutput{Tweets: items, Count: len(items)})
}

// HandleFetch handles the tweet_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(ctx, h.db, input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the tweet_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.db, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSettingsGet handles the settings_get tool call.
func (h *Handlers) HandleSettingsGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.GetPreferences(ctx, h.store)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSettingsSet handles the settings_set tool call.
func (h *Handlers) HandleSettingsSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SettingsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SetPreferences(ctx, h.store, ops.PreferencesInput{
		Context:   input.Context,
		MaxChars:  input.MaxChars,
		EmojiMode: input.EmojiMode,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		errorObj := map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
			"status":  appErr.Status,
		}
		if appErr.Code == errors.ErrInternal {
			errorObj["message"] = "an internal error occurred"
		} else if appErr.Details != nil {
			errorObj["details"] = appErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

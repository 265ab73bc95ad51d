package mcp

import "github.com/mark3labs/mcp-go/mcp"

var transformToolDef = mcp.NewTool("tweet_transform",
	mcp.WithDescription("Rewrite a rough draft into a polished post using the local Ollama model. "+
		"Returns the rewritten text only; nothing is saved."),
	mcp.WithString("draft",
		mcp.Required(),
		mcp.Description("The rough draft to rewrite."),
	),
	mcp.WithNumber("max_chars",
		mcp.Description("Character ceiling, clamped to 100-280. Defaults to the saved preference."),
		mcp.Min(100),
		mcp.Max(280),
	),
	mcp.WithString("emoji_mode",
		mcp.Description("Emoji density. Defaults to the saved preference."),
		mcp.Enum("none", "few", "many"),
	),
	mcp.WithString("context",
		mcp.Description("Free-text author style hint, e.g. 'Tech founder, casual tone'. Defaults to the saved preference."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var saveToolDef = mcp.NewTool("tweet_save",
	mcp.WithDescription("Save a draft and its rewrite to the library."),
	mcp.WithString("original",
		mcp.Required(),
		mcp.Description("The original draft."),
	),
	mcp.WithString("transformed",
		mcp.Required(),
		mcp.Description("The rewritten post."),
	),
	mcp.WithString("context",
		mcp.Description("Author style hint used for the rewrite."),
	),
	mcp.WithString("image_url",
		mcp.Description("Optional image URL attached to the post."),
	),
	mcp.WithString("image_alt",
		mcp.Description("Alt text for the attached image."),
	),
)

var listToolDef = mcp.NewTool("tweet_list",
	mcp.WithDescription("List every saved tweet, newest first."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var fetchToolDef = mcp.NewTool("tweet_fetch",
	mcp.WithDescription("Fetch one saved tweet by id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Saved tweet id (ULID)."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var deleteToolDef = mcp.NewTool("tweet_delete",
	mcp.WithDescription("Permanently delete a saved tweet by id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Saved tweet id (ULID)."),
	),
	mcp.WithDestructiveHintAnnotation(true),
)

var settingsGetToolDef = mcp.NewTool("settings_get",
	mcp.WithDescription("Read the saved default context and filters."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var settingsSetToolDef = mcp.NewTool("settings_set",
	mcp.WithDescription("Update the saved default context and filters. Omitted fields are left unchanged."),
	mcp.WithString("context",
		mcp.Description("Default author style hint. An empty string clears it."),
	),
	mcp.WithNumber("max_chars",
		mcp.Description("Default character ceiling, clamped to 100-280."),
	),
	mcp.WithString("emoji_mode",
		mcp.Description("Default emoji density."),
		mcp.Enum("none", "few", "many"),
	),
)

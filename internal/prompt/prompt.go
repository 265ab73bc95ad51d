// Package prompt builds the rewrite instruction sent to the language model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/hpungsan/tweetsmith/internal/tweet"
)

// Emoji rule phrasings, one per mode.
const (
	RuleNoEmojis   = "No emojis allowed"
	RuleFewEmojis  = "Use 1-2 emojis max"
	RuleManyEmojis = "Use emojis freely"
	RuleNoHashtags = "No hashtags"
)

// EmojiRule returns the instruction line for mode. Unknown modes get the
// "few" phrasing.
func EmojiRule(mode tweet.EmojiMode) string {
	switch mode {
	case tweet.EmojiNone:
		return RuleNoEmojis
	case tweet.EmojiMany:
		return RuleManyEmojis
	default:
		return RuleFewEmojis
	}
}

// MaxCharsRule returns the character ceiling line.
func MaxCharsRule(maxChars int) string {
	return fmt.Sprintf("Maximum %d characters", maxChars)
}

// Build assembles the instruction for rewriting draft under filters. The
// draft is embedded verbatim (trimmed). context adds an author-style clause
// when non-blank.
func Build(draft string, filters tweet.Filters, context string) string {
	f := filters.Normalized()

	var b strings.Builder
	b.WriteString("You are a tweet formatter. Your job is to improve tweets.\n\n")
	b.WriteString("Given this draft tweet:\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", strings.TrimSpace(draft))

	b.WriteString("Improve it by:\n")
	b.WriteString("- Making it cleaner and more engaging\n")
	b.WriteString("- Ensuring it's well-formatted and readable\n\n")

	b.WriteString("Constraints:\n")
	fmt.Fprintf(&b, "- %s\n", MaxCharsRule(f.MaxChars))
	fmt.Fprintf(&b, "- %s\n", EmojiRule(f.EmojiMode))
	fmt.Fprintf(&b, "- %s\n", RuleNoHashtags)

	if ctx := strings.TrimSpace(context); ctx != "" {
		fmt.Fprintf(&b, "- Author style: %s\n", ctx)
	}

	b.WriteString("\nRules:\n")
	b.WriteString("- Return ONLY the improved tweet text\n")
	b.WriteString("- No quotes, no explanations, no extra text\n")
	b.WriteString("- Preserve the original meaning and intent")

	return b.String()
}

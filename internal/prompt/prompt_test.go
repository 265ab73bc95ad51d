package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hpungsan/tweetsmith/internal/tweet"
)

func TestBuild_EmbedsDraftAndCeiling(t *testing.T) {
	drafts := []string{
		"hello world",
		"multi\nline \"quoted\" draft 🚀",
		"  padded draft  ",
	}

	for _, d := range drafts {
		got := Build(d, tweet.Filters{MaxChars: 200, EmojiMode: tweet.EmojiNone}, "")
		assert.Contains(t, got, strings.TrimSpace(d))
		assert.Contains(t, got, "Maximum 200 characters")
	}
}

func TestEmojiRule(t *testing.T) {
	tests := []struct {
		mode tweet.EmojiMode
		want string
	}{
		{tweet.EmojiNone, "No emojis allowed"},
		{tweet.EmojiFew, "Use 1-2 emojis max"},
		{tweet.EmojiMany, "Use emojis freely"},
		{"unknown", "Use 1-2 emojis max"},
		{"", "Use 1-2 emojis max"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, EmojiRule(tt.mode))

			built := Build("draft", tweet.Filters{MaxChars: 280, EmojiMode: tt.mode}, "")
			assert.Contains(t, built, tt.want)
		})
	}
}

func TestBuild_Scenario(t *testing.T) {
	draft := "just shipped a new feature, its pretty cool i think"
	got := Build(draft, tweet.Filters{MaxChars: 100, EmojiMode: tweet.EmojiFew}, "")

	assert.Contains(t, got, "Maximum 100 characters")
	assert.Contains(t, got, "Use 1-2 emojis max")
	assert.Contains(t, got, "No hashtags")
	assert.Contains(t, got, draft)
	assert.NotContains(t, got, "Author style")
}

func TestBuild_Context(t *testing.T) {
	got := Build("draft", tweet.DefaultFilters(), "  Tech founder, casual tone ")
	assert.Contains(t, got, "Author style: Tech founder, casual tone")

	blank := Build("draft", tweet.DefaultFilters(), "   ")
	assert.NotContains(t, blank, "Author style")
}

func TestBuild_DefaultsAndClamping(t *testing.T) {
	assert.Contains(t, Build("d", tweet.Filters{}, ""), "Maximum 280 characters")
	assert.Contains(t, Build("d", tweet.Filters{MaxChars: 20}, ""), "Maximum 100 characters")
	assert.Contains(t, Build("d", tweet.Filters{MaxChars: 999}, ""), "Maximum 280 characters")
}

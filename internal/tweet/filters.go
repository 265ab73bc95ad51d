package tweet

import "strings"

// Character ceiling bounds for a rewrite.
const (
	MinMaxChars     = 100
	DefaultMaxChars = 280
)

// EmojiMode controls how many emojis a rewrite may contain.
type EmojiMode string

const (
	EmojiNone EmojiMode = "none"
	EmojiFew  EmojiMode = "few"
	EmojiMany EmojiMode = "many"
)

// DefaultEmojiMode is used when no mode, or an unknown one, is given.
const DefaultEmojiMode = EmojiFew

// Valid reports whether m is one of the known modes.
func (m EmojiMode) Valid() bool {
	switch m {
	case EmojiNone, EmojiFew, EmojiMany:
		return true
	}
	return false
}

// ParseEmojiMode normalizes s, returning DefaultEmojiMode for anything unknown.
func ParseEmojiMode(s string) EmojiMode {
	m := EmojiMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return DefaultEmojiMode
	}
	return m
}

// Filters are the user-adjustable constraints applied when building a prompt.
type Filters struct {
	MaxChars  int       `json:"maxChars"`
	EmojiMode EmojiMode `json:"emojiMode"`
}

// DefaultFilters returns the constraints used when the caller sends none.
func DefaultFilters() Filters {
	return Filters{
		MaxChars:  DefaultMaxChars,
		EmojiMode: DefaultEmojiMode,
	}
}

// Normalized returns a copy with MaxChars clamped to [MinMaxChars, DefaultMaxChars]
// (zero or negative means the default) and EmojiMode resolved.
func (f Filters) Normalized() Filters {
	return Filters{
		MaxChars:  ClampMaxChars(f.MaxChars),
		EmojiMode: ParseEmojiMode(string(f.EmojiMode)),
	}
}

// ClampMaxChars bounds n to the supported ceiling range.
func ClampMaxChars(n int) int {
	if n <= 0 {
		return DefaultMaxChars
	}
	return min(max(n, MinMaxChars), DefaultMaxChars)
}

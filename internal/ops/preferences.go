package ops

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hpungsan/tweetsmith/internal/errors"
	"github.com/hpungsan/tweetsmith/internal/settings"
	"github.com/hpungsan/tweetsmith/internal/tweet"
)

// Settings keys used for preferences.
const (
	KeyContext   = "context"
	KeyMaxChars  = "filters.maxChars"
	KeyEmojiMode = "filters.emojiMode"
)

// Preferences are the defaults a client restores between sessions.
type Preferences struct {
	Context string        `json:"context"`
	Filters tweet.Filters `json:"filters"`
}

// PreferencesInput is a partial update; nil fields are left as they are.
type PreferencesInput struct {
	Context   *string
	MaxChars  *int
	EmojiMode *string
}

// GetPreferences loads preferences, falling back to defaults for unset or
// unreadable values.
func GetPreferences(ctx context.Context, store settings.Store) (*Preferences, error) {
	prefs := &Preferences{Filters: tweet.DefaultFilters()}

	if v, ok, err := store.Get(ctx, KeyContext); err != nil {
		return nil, errors.NewInternal(err)
	} else if ok {
		prefs.Context = v
	}

	if v, ok, err := store.Get(ctx, KeyMaxChars); err != nil {
		return nil, errors.NewInternal(err)
	} else if ok {
		if n, convErr := strconv.Atoi(v); convErr == nil {
			prefs.Filters.MaxChars = tweet.ClampMaxChars(n)
		}
	}

	if v, ok, err := store.Get(ctx, KeyEmojiMode); err != nil {
		return nil, errors.NewInternal(err)
	} else if ok {
		prefs.Filters.EmojiMode = tweet.ParseEmojiMode(v)
	}

	return prefs, nil
}

// SetPreferences validates and stores the provided fields, then returns the
// resulting preferences. Unlike Transform, an unknown emoji mode is rejected
// here so that a bad value is never persisted.
func SetPreferences(ctx context.Context, store settings.Store, input PreferencesInput) (*Preferences, error) {
	updates := make([][2]string, 0, 3)

	if input.EmojiMode != nil {
		mode := tweet.EmojiMode(strings.ToLower(strings.TrimSpace(*input.EmojiMode)))
		if !mode.Valid() {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("emojiMode must be one of: none, few, many (got %q)", *input.EmojiMode))
		}
		updates = append(updates, [2]string{KeyEmojiMode, string(mode)})
	}
	if input.MaxChars != nil {
		updates = append(updates, [2]string{KeyMaxChars, strconv.Itoa(tweet.ClampMaxChars(*input.MaxChars))})
	}
	if input.Context != nil {
		updates = append(updates, [2]string{KeyContext, strings.TrimSpace(*input.Context)})
	}

	for _, kv := range updates {
		if err := store.Set(ctx, kv[0], kv[1]); err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	return GetPreferences(ctx, store)
}

// TransformWithPreferences builds a TransformInput for draft, taking any
// field not set in overrides from the stored preferences.
func TransformWithPreferences(ctx context.Context, store settings.Store, draft string, overrides PreferencesInput) (TransformInput, error) {
	prefs, err := GetPreferences(ctx, store)
	if err != nil {
		return TransformInput{}, err
	}

	filters := prefs.Filters
	if overrides.MaxChars != nil {
		filters.MaxChars = *overrides.MaxChars
	}
	if overrides.EmojiMode != nil {
		filters.EmojiMode = tweet.EmojiMode(*overrides.EmojiMode)
	}
	styleHint := prefs.Context
	if overrides.Context != nil {
		styleHint = *overrides.Context
	}

	return TransformInput{
		Draft:   draft,
		Filters: &filters,
		Context: styleHint,
	}, nil
}

package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hpungsan/tweetsmith/internal/db"
	"github.com/hpungsan/tweetsmith/internal/errors"
	"github.com/hpungsan/tweetsmith/internal/tweet"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Original    string  // required
	Transformed string  // required
	Context     *string // optional
	ImageURL    *string // optional
	ImageAlt    *string // optional
}

// Create validates and stores a new saved tweet, returning the full record.
func Create(ctx context.Context, database *sql.DB, input CreateInput) (*tweet.SavedTweet, error) {
	if strings.TrimSpace(input.Original) == "" {
		return nil, errors.NewInvalidRequest("Missing or invalid 'original' field. Expected a string.")
	}
	if strings.TrimSpace(input.Transformed) == "" {
		return nil, errors.NewInvalidRequest("Missing or invalid 'transformed' field. Expected a string.")
	}

	now := time.Now()
	id, err := generateULID(now)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	// Millisecond precision matches what the database keeps
	created := time.UnixMilli(now.UnixMilli()).UTC()

	t := &tweet.SavedTweet{
		ID:          id,
		Original:    input.Original,
		Transformed: input.Transformed,
		Context:     tweet.CleanOptional(input.Context),
		ImageURL:    tweet.CleanOptional(input.ImageURL),
		ImageAlt:    tweet.CleanOptional(input.ImageAlt),
		CreatedAt:   created,
	}

	if err := db.Insert(ctx, database, t); err != nil {
		return nil, err
	}

	return t, nil
}

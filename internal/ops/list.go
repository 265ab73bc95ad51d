package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/tweetsmith/internal/db"
	"github.com/hpungsan/tweetsmith/internal/tweet"
)

// List returns every saved tweet, most recently created first.
// The result is never nil.
func List(ctx context.Context, database *sql.DB) ([]tweet.SavedTweet, error) {
	return db.List(ctx, database)
}

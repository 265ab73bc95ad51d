package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/tweetsmith/internal/db"
	"github.com/hpungsan/tweetsmith/internal/errors"
	"github.com/hpungsan/tweetsmith/internal/tweet"
)

// Fetch retrieves a single saved tweet by id.
func Fetch(ctx context.Context, database *sql.DB, id string) (*tweet.SavedTweet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewInvalidRequest("Missing 'id' parameter.")
	}
	return db.GetByID(ctx, database, id)
}

package db

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/hpungsan/tweetsmith/internal/errors"
	"github.com/hpungsan/tweetsmith/internal/tweet"
)

const selectColumns = `
	SELECT id, original, transformed, context, image_url, image_alt, created_at
	FROM saved_tweets
`

// Insert stores a new saved tweet.
func Insert(ctx context.Context, db *sql.DB, t *tweet.SavedTweet) error {
	query := `
		INSERT INTO saved_tweets (
			id, original, transformed, context, image_url, image_alt, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		t.ID, t.Original, t.Transformed,
		toNullString(t.Context), toNullString(t.ImageURL), toNullString(t.ImageAlt),
		t.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// InsertMany stores tweets in a single transaction, skipping any whose id
// already exists. It returns how many rows were inserted.
func InsertMany(ctx context.Context, db *sql.DB, tweets []tweet.SavedTweet) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO saved_tweets (
			id, original, transformed, context, image_url, image_alt, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	defer stmt.Close()

	inserted := 0
	for i := range tweets {
		t := &tweets[i]
		res, err := stmt.ExecContext(ctx,
			t.ID, t.Original, t.Transformed,
			toNullString(t.Context), toNullString(t.ImageURL), toNullString(t.ImageAlt),
			t.CreatedAt.UnixMilli(),
		)
		if err != nil {
			return 0, errors.NewInternal(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, errors.NewInternal(err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewInternal(err)
	}
	return inserted, nil
}

// List returns every saved tweet, most recently created first.
// IDs are ULIDs, so they break ties within the same millisecond.
func List(ctx context.Context, db *sql.DB) ([]tweet.SavedTweet, error) {
	rows, err := db.QueryContext(ctx, selectColumns+" ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	tweets := []tweet.SavedTweet{}
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		tweets = append(tweets, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return tweets, nil
}

// Count returns the number of saved tweets.
func Count(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM saved_tweets").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// GetByID retrieves a saved tweet by its ULID.
func GetByID(ctx context.Context, db *sql.DB, id string) (*tweet.SavedTweet, error) {
	row := db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	t, err := scanTweet(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return t, nil
}

// DeleteByID permanently removes a saved tweet.
// Returns NOT_FOUND if no row has that id.
func DeleteByID(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, "DELETE FROM saved_tweets WHERE id = ?", id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTweet scans a single row into a SavedTweet.
func scanTweet(row scanner) (*tweet.SavedTweet, error) {
	var (
		t         tweet.SavedTweet
		ctxText   sql.NullString
		imageURL  sql.NullString
		imageAlt  sql.NullString
		createdAt int64
	)

	if err := row.Scan(&t.ID, &t.Original, &t.Transformed, &ctxText, &imageURL, &imageAlt, &createdAt); err != nil {
		return nil, err
	}

	t.Context = fromNullString(ctxText)
	t.ImageURL = fromNullString(imageURL)
	t.ImageAlt = fromNullString(imageAlt)
	t.CreatedAt = time.UnixMilli(createdAt).UTC()

	return &t, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/tweetsmith/internal/db"
	"github.com/hpungsan/tweetsmith/internal/errors"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Delete permanently removes a saved tweet. Unknown ids yield NOT_FOUND and
// leave the library unchanged.
func Delete(ctx context.Context, database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("Missing 'id' query parameter.")
	}

	if err := db.DeleteByID(ctx, database, id); err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Success: true,
		ID:      id,
	}, nil
}

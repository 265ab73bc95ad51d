package ops

import (
	"context"
	"testing"
	"time"

	"github.com/hpungsan/tweetsmith/internal/db"
	"github.com/hpungsan/tweetsmith/internal/errors"
)

func TestCreate_HappyPath(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	out, err := Create(ctx, database, CreateInput{
		Original:    "just shipped a new feature, its pretty cool i think",
		Transformed: "Just shipped a new feature! 🚀 Pretty excited about this one ✨",
		Context:     stringPtr("Tech founder, casual tone"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(out.ID) != 26 {
		t.Errorf("ID length = %d, want 26 (ULID)", len(out.ID))
	}
	if out.Context == nil || *out.Context != "Tech founder, casual tone" {
		t.Errorf("Context = %v", out.Context)
	}
	if out.ImageURL != nil || out.ImageAlt != nil {
		t.Error("image fields should be nil when not provided")
	}
	if out.CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, want recent", out.CreatedAt)
	}

	stored, err := db.GetByID(ctx, database, out.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Transformed != out.Transformed {
		t.Errorf("stored Transformed = %q, want %q", stored.Transformed, out.Transformed)
	}
	if !stored.CreatedAt.Equal(out.CreatedAt) {
		t.Errorf("stored CreatedAt = %v, want %v", stored.CreatedAt, out.CreatedAt)
	}
}

func TestCreate_BlankOptionalsStoredAsNull(t *testing.T) {
	database := setupDB(t)

	out, err := Create(context.Background(), database, CreateInput{
		Original:    "a",
		Transformed: "b",
		Context:     stringPtr("  "),
		ImageURL:    stringPtr(""),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if out.Context != nil || out.ImageURL != nil {
		t.Error("blank optionals should be nil")
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
	}{
		{"empty original", CreateInput{Original: "", Transformed: "b"}},
		{"blank original", CreateInput{Original: "  ", Transformed: "b"}},
		{"empty transformed", CreateInput{Original: "a", Transformed: ""}},
		{"both empty", CreateInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database := setupDB(t)
			ctx := context.Background()

			_, err := Create(ctx, database, tt.input)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Fatalf("expected INVALID_REQUEST, got %v", err)
			}

			n, err := db.Count(ctx, database)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if n != 0 {
				t.Errorf("Count = %d, want 0 (nothing created)", n)
			}
		})
	}
}

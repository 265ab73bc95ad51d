package tweet

import "time"

// SavedTweet is one entry of the personal library: a draft together with the
// rewrite the user accepted. Records are immutable; they are only ever
// created or deleted.
type SavedTweet struct {
	// ID is a ULID that uniquely identifies this record
	ID string `json:"id"`

	// Original is the user's draft as submitted
	Original string `json:"original"`

	// Transformed is the accepted rewrite
	Transformed string `json:"transformed"`

	// Context is the author-style description in effect when saved (nullable)
	Context *string `json:"context"`

	// ImageURL and ImageAlt describe an optional attached image (nullable)
	ImageURL *string `json:"imageUrl"`
	ImageAlt *string `json:"imageAlt"`

	// CreatedAt is when the record was saved
	CreatedAt time.Time `json:"createdAt"`
}

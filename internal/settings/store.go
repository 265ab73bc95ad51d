// Package settings persists user preferences in a string-keyed store.
package settings

import "context"

// Store is a string-keyed settings store with get/set semantics.
type Store interface {
	// Get returns the value for key and whether it was set.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying storage.
	Close() error
}

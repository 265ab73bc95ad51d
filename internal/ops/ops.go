package ops

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces text from a prompt. *ollama.Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// BaseURL names the service address, used in failure hints.
	BaseURL() string
}

var (
	ulidMu      sync.Mutex
	ulidEntropy = ulid.Monotonic(rand.Reader, 0)
)

// generateULID generates a new ULID. The shared monotonic entropy keeps ids
// created within the same millisecond in creation order.
func generateULID(now time.Time) (string, error) {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	id, err := ulid.New(ulid.Timestamp(now), ulidEntropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

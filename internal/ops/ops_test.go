package ops

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/hpungsan/tweetsmith/internal/db"
)

// fakeGenerator records prompts and returns a canned reply.
type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func (g *fakeGenerator) BaseURL() string { return "http://localhost:11434" }

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// memStore is an in-memory settings.Store.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data[key] = value
	return nil
}

func (s *memStore) Close() error { return nil }

func stringPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestGenerateULID_Monotonic(t *testing.T) {
	now := time.Now()
	prev := ""
	for i := 0; i < 100; i++ {
		id, err := generateULID(now)
		if err != nil {
			t.Fatalf("generateULID failed: %v", err)
		}
		if len(id) != 26 {
			t.Fatalf("ID length = %d, want 26 (ULID)", len(id))
		}
		if id <= prev {
			t.Fatalf("ULID %q not greater than previous %q", id, prev)
		}
		prev = id
	}
}

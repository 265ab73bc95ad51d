package ops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hpungsan/tweetsmith/internal/errors"
)

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "backup.jsonl")
	if err := os.WriteFile(existing, []byte("{}\n"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		mode    PathCheckMode
		wantErr bool
	}{
		{"write in dir", filepath.Join(dir, "new.jsonl"), PathCheckWrite, false},
		{"read existing", existing, PathCheckRead, false},
		{"read missing", filepath.Join(dir, "missing.jsonl"), PathCheckRead, true},
		{"empty", "", PathCheckWrite, true},
		{"wrong extension", filepath.Join(dir, "backup.json"), PathCheckWrite, true},
		{"traversal", dir + "/../escape.jsonl", PathCheckWrite, true},
		{"subdirectory", filepath.Join(dir, "sub", "x.jsonl"), PathCheckWrite, true},
		{"outside dir", filepath.Join(t.TempDir(), "x.jsonl"), PathCheckWrite, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path, tt.mode, dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("expected INVALID_REQUEST, got %v", err)
			}
		})
	}
}

func TestValidatePath_RejectsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "target.jsonl")
	if err := os.WriteFile(target, []byte("{}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.jsonl")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	for _, mode := range []PathCheckMode{PathCheckRead, PathCheckWrite} {
		if err := ValidatePath(link, mode, dir); err == nil {
			t.Errorf("mode %d: expected symlink to be rejected", mode)
		}
	}
}

func TestResolveBackupPath(t *testing.T) {
	dir := filepath.Join("home", "exports")

	if got := ResolveBackupPath("b.jsonl", dir); got != filepath.Join(dir, "b.jsonl") {
		t.Errorf("bare name = %q", got)
	}
	if got := ResolveBackupPath("/tmp/b.jsonl", dir); got != "/tmp/b.jsonl" {
		t.Errorf("path with separator = %q", got)
	}
	if got := ResolveBackupPath("", dir); got != "" {
		t.Errorf("empty = %q", got)
	}
}

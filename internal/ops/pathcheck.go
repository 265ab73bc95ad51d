package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/tweetsmith/internal/errors"
)

// PathCheckMode indicates whether the path check is for reading or writing.
type PathCheckMode int

const (
	PathCheckRead  PathCheckMode = iota // import
	PathCheckWrite                      // export
)

// ResolveBackupPath turns a user-supplied backup path into an absolute one.
// A bare file name is placed in dir.
func ResolveBackupPath(path, dir string) string {
	if path != "" && !strings.ContainsAny(path, `/\`) {
		return filepath.Join(dir, path)
	}
	return path
}

// ValidatePath checks a backup file path:
//  1. no ".." components
//  2. .jsonl extension
//  3. the file sits directly in dir (no subdirectories)
//  4. neither the file nor its parent is a symlink
//
// Requiring the file to be directly in dir leaves only the final component
// to race on, and that one is opened with O_NOFOLLOW.
func ValidatePath(path string, mode PathCheckMode, dir string) error {
	if path == "" {
		return errors.NewInvalidRequest("path is required")
	}

	if containsTraversal(path) {
		return errors.NewInvalidRequest("path must not contain directory traversal (..)")
	}

	cleaned := filepath.Clean(path)
	if filepath.Ext(cleaned) != ".jsonl" {
		return errors.NewInvalidRequest("path must have .jsonl extension")
	}

	absPath, err := filepath.Abs(cleaned)
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid path: %v", err))
	}
	allowed, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid backup directory: %v", err))
	}

	parentDir := filepath.Dir(absPath)
	if parentDir != allowed {
		return errors.NewInvalidRequest(fmt.Sprintf("file must be directly in %s", allowed))
	}

	if info, err := os.Lstat(parentDir); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInvalidRequest("parent directory must not be a symlink")
	}

	info, err := os.Lstat(absPath)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		return errors.NewInvalidRequest("path must not be a symlink")
	case os.IsNotExist(err) && mode == PathCheckRead:
		return errors.NewInvalidRequest(fmt.Sprintf("file not found: %s", path))
	}

	return nil
}

// containsTraversal checks if path contains ".." directory traversal.
func containsTraversal(path string) bool {
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return true
		}
	}
	return false
}

package ops

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/tweetsmith/internal/db"
	"github.com/hpungsan/tweetsmith/internal/errors"
	"github.com/hpungsan/tweetsmith/internal/tweet"
)

// maxImportLine bounds a single JSONL record.
const maxImportLine = 1 << 20

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string // required; a bare file name is looked up in Dir
	Dir  string // backup directory
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError describes a record that could not be imported.
type ImportError struct {
	Line    int    `json:"line"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// Import restores saved tweets from a backup written by Export. The import
// is all-or-nothing: if any record is invalid nothing is written and the
// problems are listed in Errors. Records whose id already exists are skipped.
func Import(ctx context.Context, database *sql.DB, input ImportInput) (*ImportOutput, error) {
	path := ResolveBackupPath(input.Path, input.Dir)
	if err := ValidatePath(path, PathCheckRead, input.Dir); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(path)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidRequest) {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	records, problems, err := parseExportFile(file)
	if err != nil {
		return nil, err
	}
	if len(problems) > 0 {
		return &ImportOutput{Errors: problems}, nil
	}

	inserted, err := db.InsertMany(ctx, database, records)
	if err != nil {
		return nil, err
	}

	return &ImportOutput{
		Imported: inserted,
		Skipped:  len(records) - inserted,
		Errors:   []ImportError{},
	}, nil
}

// parseExportFile reads the header and every record. Record-level problems
// are collected; a missing or foreign header is an error for the whole file.
func parseExportFile(r io.Reader) ([]tweet.SavedTweet, []ImportError, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLine)

	var records []tweet.SavedTweet
	var problems []ImportError
	seenHeader := false
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !seenHeader {
			var header ExportHeader
			if err := json.Unmarshal([]byte(line), &header); err != nil || !header.TweetSmithExport {
				return nil, nil, errors.NewInvalidRequest("not a TweetSmith export file (missing header line)")
			}
			seenHeader = true
			continue
		}

		var record tweet.SavedTweet
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			problems = append(problems, ImportError{Line: lineNum, Message: fmt.Sprintf("invalid JSON: %v", err)})
			continue
		}
		if msg := validateRecord(&record); msg != "" {
			problems = append(problems, ImportError{Line: lineNum, ID: record.ID, Message: msg})
			continue
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, errors.NewInvalidRequest(fmt.Sprintf("failed to read import file: %v", err))
	}
	if !seenHeader {
		return nil, nil, errors.NewInvalidRequest("not a TweetSmith export file (empty)")
	}

	return records, problems, nil
}

// validateRecord applies the same rules as Create, plus a well-formed id.
func validateRecord(t *tweet.SavedTweet) string {
	if _, err := ulid.ParseStrict(t.ID); err != nil {
		return "id must be a ULID"
	}
	if strings.TrimSpace(t.Original) == "" {
		return "original is required"
	}
	if strings.TrimSpace(t.Transformed) == "" {
		return "transformed is required"
	}
	if t.CreatedAt.IsZero() {
		return "createdAt is required"
	}
	t.Context = tweet.CleanOptional(t.Context)
	t.ImageURL = tweet.CleanOptional(t.ImageURL)
	t.ImageAlt = tweet.CleanOptional(t.ImageAlt)
	return ""
}

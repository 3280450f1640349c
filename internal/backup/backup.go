// Package backup exports and restores the whole finance document as a
// JSON file.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/store"
)

var (
	// ErrUnreadable means the file could not be read or is not JSON.
	ErrUnreadable = errors.New("unreadable backup")
	// ErrMalformed means the JSON lacks one of the top-level collections.
	ErrMalformed = errors.New("malformed backup")
)

var requiredKeys = []string{"expenses", "balances", "investments"}

// FileName returns the backup file name for the given day.
func FileName(t time.Time) string {
	return "financeflow_backup_" + t.Format("2006-01-02") + ".json"
}

// Export writes doc as 2-space indented JSON.
func Export(w io.Writer, doc model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc.Clone()); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return nil
}

// ExportFile writes a backup named after now into dir and returns its path.
func ExportFile(dir string, doc model.Document, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := Export(&buf, doc); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	if err := store.WriteFileAtomic(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return path, nil
}

// Import parses a backup. The three top-level collections must be JSON
// arrays; their contents are taken as-is.
func Import(r io.Reader) (model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Document{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return model.Document{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	obj, ok := top.(map[string]any)
	if !ok {
		return model.Document{}, fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}
	for _, key := range requiredKeys {
		if _, ok := obj[key].([]any); !ok {
			return model.Document{}, fmt.Errorf("%w: %q is not a list", ErrMalformed, key)
		}
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return doc.Clone(), nil
}

// ImportFile parses the backup at path.
func ImportFile(path string) (model.Document, error) {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		return model.Document{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()
	return Import(f)
}

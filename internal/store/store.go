// Package store persists the whole finance document under a single key,
// either as a JSON file or as a row in a SQLite database.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
)

// Key is the fixed storage key the document lives under.
const Key = "finance_data"

// Backend kinds.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// Backend loads and saves the document verbatim.
// Load returns an empty document when nothing has been saved yet.
type Backend interface {
	Load(ctx context.Context) (model.Document, error)
	Save(ctx context.Context, doc model.Document) error
	Close() error
}

// Open returns the backend of the given kind rooted at dataDir.
func Open(kind, dataDir string, logger *log.Logger) (Backend, error) {
	logger = logger.WithComponent(log.ComponentStore)
	switch kind {
	case KindFile, "":
		return NewFileStore(filepath.Join(dataDir, Key+".json"), logger), nil
	case KindSQLite:
		return OpenSQLite(filepath.Join(dataDir, "financeflow.db"), logger)
	}
	return nil, fmt.Errorf("unknown backend %q", kind)
}

// decode parses a stored document. Missing or null collections become empty.
func decode(data []byte) (model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, fmt.Errorf("decoding %s: %w", Key, err)
	}
	return doc.Clone(), nil
}

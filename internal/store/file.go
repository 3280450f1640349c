package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
)

// FileStore keeps the document in a single JSON file.
type FileStore struct {
	path string
	log  *log.Logger
}

// NewFileStore returns a store writing to path. The file is created on the
// first Save.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	return &FileStore{path: path, log: logger}
}

// Path returns the document file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) (model.Document, error) {
	if err := ctx.Err(); err != nil {
		return model.Document{}, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("No saved document, starting empty", log.FieldPath, s.path)
		return model.NewDocument(), nil
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return decode(data)
}

func (s *FileStore) Save(ctx context.Context, doc model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(doc.Clone())
	if err != nil {
		return fmt.Errorf("encoding %s: %w", Key, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := WriteFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	s.log.Debug("Document saved", log.FieldPath, s.path)
	return nil
}

func (s *FileStore) Close() error { return nil }

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

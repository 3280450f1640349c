package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteStore keeps the document as JSON text in the documents table.
type SQLiteStore struct {
	db  *sql.DB
	log *log.Logger
}

// OpenSQLite opens or creates the database at dbPath and applies migrations.
func OpenSQLite(dbPath string, logger *log.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("Database opened", log.FieldPath, dbPath)
	return &SQLiteStore{db: db, log: logger}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (model.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM documents WHERE key = ?", Key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("loading %s: %w", Key, err)
	}
	return decode([]byte(body))
}

func (s *SQLiteStore) Save(ctx context.Context, doc model.Document) error {
	data, err := json.Marshal(doc.Clone())
	if err != nil {
		return fmt.Errorf("encoding %s: %w", Key, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		Key, string(data), now)
	if err != nil {
		return fmt.Errorf("saving %s: %w", Key, err)
	}
	s.log.Debug("Document saved", log.FieldBackend, KindSQLite)
	return nil
}

// UpdatedAt returns when the document was last saved, or the zero time.
func (s *SQLiteStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	var ts string
	err := s.db.QueryRowContext(ctx, "SELECT updated_at FROM documents WHERE key = ?", Key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, ts)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

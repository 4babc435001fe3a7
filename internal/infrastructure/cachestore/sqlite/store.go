package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"coincorr/internal/application/port"
	"coincorr/internal/domain"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	// ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS entries (
  source_id TEXT PRIMARY KEY,
  blob TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);
`)
	return err
}

func (s *Store) Get(ctx context.Context, id domain.SourceID) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM entries WHERE source_id = ?`, id.String(),
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (s *Store) Put(ctx context.Context, id domain.SourceID, blob []byte) error {
	now := time.Now().UnixMilli()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO entries(source_id, blob, created_at, updated_at)
VALUES(?, ?, ?, ?)
ON CONFLICT(source_id) DO UPDATE SET blob=excluded.blob, updated_at=excluded.updated_at`,
		id.String(), blob, now, now)
	return err
}

var _ port.CacheStore = (*Store)(nil)

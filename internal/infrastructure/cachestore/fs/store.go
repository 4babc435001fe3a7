package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"coincorr/internal/application/port"
	"coincorr/internal/domain"
)

// Store keeps one JSON file per source id under a directory.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Get(_ context.Context, id domain.SourceID) ([]byte, error) {
	b, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, port.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) Put(_ context.Context, id domain.SourceID, blob []byte) error {
	return os.WriteFile(s.path(id), blob, 0o644)
}

func (s *Store) Close() error { return nil }

func (s *Store) path(id domain.SourceID) string {
	// ids may carry provider path separators
	name := strings.ReplaceAll(id.String(), "/", "-")
	return filepath.Join(s.dir, name+".json")
}

var _ port.CacheStore = (*Store)(nil)

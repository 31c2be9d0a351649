// Package templatestore resolves document templates by name. Templates are
// immutable deployment assets, so the S3-backed store caches every fetch for
// the life of the process.
package templatestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"expodocs/internal/domain"
	"expodocs/internal/port"
)

// S3Store fetches templates from an object storage bucket.
type S3Store struct {
	storage port.ObjectStorage
	bucket  string
	prefix  string

	mu    sync.Mutex
	cache map[string][]byte
}

func NewS3Store(storage port.ObjectStorage, bucket, prefix string) *S3Store {
	return &S3Store{
		storage: storage,
		bucket:  bucket,
		prefix:  prefix,
		cache:   make(map[string][]byte),
	}
}

func (s *S3Store) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	cached, ok := s.cache[name]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	key := path.Join(s.prefix, name)
	raw, err := s.storage.Download(ctx, s.bucket, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("templatestore: %s: %w", name, domain.ErrTemplateNotFound)
		}
		return nil, fmt.Errorf("templatestore: fetch %s: %w", name, err)
	}

	s.mu.Lock()
	s.cache[name] = raw
	s.mu.Unlock()
	return raw, nil
}

// DirStore serves templates from a local directory. Used in development and
// in tests.
type DirStore struct {
	dir string
}

func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

func (s *DirStore) Get(_ context.Context, name string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("templatestore: %s: %w", name, domain.ErrTemplateNotFound)
		}
		return nil, fmt.Errorf("templatestore: read %s: %w", name, err)
	}
	return raw, nil
}

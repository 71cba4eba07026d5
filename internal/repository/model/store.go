// Package model persists the trained vocabulary model blob.
//
// Two backends exist: a file on disk for local workflows and a Redis key
// so every process sharing the database sees the same model.
package model

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cinevec/cinevec/internal/db"
	"github.com/cinevec/cinevec/internal/domain"
)

// FileStore persists the model blob to a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed model store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the blob atomically (temp file plus rename).
func (s *FileStore) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close model file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename model file: %w", err)
	}
	return nil
}

// Load reads the blob. A missing file returns domain.ErrModelNotTrained.
func (s *FileStore) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrModelNotTrained
		}
		return nil, fmt.Errorf("read model file: %w", err)
	}
	return data, nil
}

// kvStore is the consumer interface for the Redis-backed store (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisStore persists the model blob under a single key.
type RedisStore struct {
	store kvStore
}

// NewRedisStore creates a Redis-backed model store.
func NewRedisStore(s kvStore) *RedisStore {
	return &RedisStore{store: s}
}

// Save writes the blob.
func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	if err := s.store.Set(ctx, modelKey(), data); err != nil {
		return fmt.Errorf("set model: %w", err)
	}
	return nil
}

// Load reads the blob. A missing key returns domain.ErrModelNotTrained.
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.store.Get(ctx, modelKey())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrModelNotTrained
		}
		return nil, fmt.Errorf("get model: %w", err)
	}
	return data, nil
}

func modelKey() string {
	return domain.KeyPrefix + "model:tfidf"
}

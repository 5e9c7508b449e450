// Package jsonfile stores the post list as a single JSON document on disk.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/repository"
)

// PostStore reads and writes the whole list at Path.
// Saves go through a temp file in the same directory and a rename, so a
// crashed write never leaves a truncated document behind.
type PostStore struct {
	path string
	mu   sync.RWMutex
}

func NewPostStore(path string) repository.PostStore {
	return &PostStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *PostStore) Path() string {
	return s.path
}

func (s *PostStore) Load(ctx context.Context) ([]entity.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []entity.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Load: ReadFile: %w", err)
	}
	posts, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("Load: %s: %w", s.path, err)
	}
	return posts, nil
}

func (s *PostStore) Save(ctx context.Context, posts []entity.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(posts)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("Save: MkdirAll: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("Save: CreateTemp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("Save: Write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("Save: Sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("Save: Close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("Save: Chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("Save: Rename: %w", err)
	}
	return nil
}

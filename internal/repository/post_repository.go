package repository

import (
	"context"

	"adsnow-blog/internal/domain/entity"
)

// PostStore persists the whole post list as one document.
// The list is read and written wholesale: there are no per-record operations.
type PostStore interface {
	// Load returns every stored post. A store that has never been written
	// returns an empty list and no error.
	Load(ctx context.Context) ([]entity.Post, error)
	// Save replaces the stored list with posts.
	Save(ctx context.Context, posts []entity.Post) error
}

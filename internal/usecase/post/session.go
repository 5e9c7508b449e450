package post

import (
	"fmt"

	"adsnow-blog/internal/domain/entity"
)

// Session is the explicit owner of the post list during one editing
// operation. All mutations go through it, and callers only ever receive
// copies, so the list cannot be changed behind the session's back.
//
// A Session is not safe for concurrent use; Service serializes access.
type Session struct {
	posts []entity.Post
	dirty bool
}

// NewSession starts a session over a copy of posts.
func NewSession(posts []entity.Post) *Session {
	cp := entity.ClonePosts(posts)
	if cp == nil {
		cp = []entity.Post{}
	}
	return &Session{posts: cp}
}

// Posts returns a snapshot of the list.
func (s *Session) Posts() []entity.Post {
	return entity.ClonePosts(s.posts)
}

// Len returns the number of posts in the session.
func (s *Session) Len() int {
	return len(s.posts)
}

// Dirty reports whether the list changed since the session started.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Get returns the post with the given id.
func (s *Session) Get(id int64) (entity.Post, error) {
	idx := entity.FindByID(s.posts, id)
	if idx < 0 {
		return entity.Post{}, entity.ErrNotFound
	}
	return s.posts[idx].Clone(), nil
}

// GetBySlug returns the post with the given slug.
func (s *Session) GetBySlug(slug string) (entity.Post, error) {
	idx := entity.FindBySlug(s.posts, slug)
	if idx < 0 {
		return entity.Post{}, entity.ErrNotFound
	}
	return s.posts[idx].Clone(), nil
}

// Create appends p with a fresh id (max existing + 1). Any id already set on
// p is ignored. An empty slug becomes "post-<id>".
func (s *Session) Create(p entity.Post) (entity.Post, error) {
	p = p.Clone()
	p.ID = entity.NextID(s.posts)
	if p.Slug == "" {
		p.Slug = entity.FallbackSlug(p.ID)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if err := entity.ValidatePost(p); err != nil {
		return entity.Post{}, err
	}
	if err := s.checkSlug(p.Slug, 0); err != nil {
		return entity.Post{}, err
	}
	s.posts = append(s.posts, p)
	s.dirty = true
	return p.Clone(), nil
}

// Update replaces the post with the same id. The id itself never changes.
func (s *Session) Update(p entity.Post) (entity.Post, error) {
	idx := entity.FindByID(s.posts, p.ID)
	if idx < 0 {
		return entity.Post{}, entity.ErrNotFound
	}
	p = p.Clone()
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if err := entity.ValidatePost(p); err != nil {
		return entity.Post{}, err
	}
	if err := s.checkSlug(p.Slug, p.ID); err != nil {
		return entity.Post{}, err
	}
	s.posts[idx] = p
	s.dirty = true
	return p.Clone(), nil
}

// Delete removes the post with the given id. There is no soft delete.
func (s *Session) Delete(id int64) (entity.Post, error) {
	idx := entity.FindByID(s.posts, id)
	if idx < 0 {
		return entity.Post{}, entity.ErrNotFound
	}
	removed := s.posts[idx]
	s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
	s.dirty = true
	return removed, nil
}

// Replace swaps the whole list after validating it.
func (s *Session) Replace(posts []entity.Post) error {
	if err := entity.ValidatePosts(posts); err != nil {
		return err
	}
	s.posts = NewSession(posts).posts
	s.dirty = true
	return nil
}

// checkSlug fails when slug is taken by a post other than exceptID.
func (s *Session) checkSlug(slug string, exceptID int64) error {
	for _, p := range s.posts {
		if p.Slug == slug && p.ID != exceptID {
			return fmt.Errorf("%w: %s", entity.ErrDuplicateSlug, slug)
		}
	}
	return nil
}

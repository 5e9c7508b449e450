package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"adsnow-blog/internal/common/pagination"
	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/extractor"
	"adsnow-blog/internal/infra/importer"
	"adsnow-blog/internal/observability/metrics"
	"adsnow-blog/internal/repository"
)

// Importer fetches a third-party page for Import.
type Importer interface {
	Fetch(ctx context.Context, url string) (importer.Page, error)
}

// CreateInput is an authoring request: raw content plus the flags the admin
// panel sets. Overrides win over extracted metadata.
type CreateInput struct {
	Content   string
	Format    extractor.Format
	Slug      string
	Published bool
	Featured  bool
	Overrides Overrides
}

// Overrides replace extracted metadata. Empty strings and a nil Tags slice
// keep the extracted value.
type Overrides struct {
	Title    string
	Excerpt  string
	Image    string
	Category string
	Author   string
	Date     string
	Tags     []string
}

// UpdateInput represents a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title     *string
	Slug      *string
	Excerpt   *string
	Content   *string
	Image     *string
	Date      *string
	Category  *string
	Author    *string
	Tags      *[]string
	SEO       *entity.SEO
	Published *bool
	Featured  *bool
}

// ImportInput is a request to import a page as a draft.
type ImportInput struct {
	URL  string
	Slug string
}

// Filter narrows List results. Nil and empty fields match everything.
type Filter struct {
	Published *bool
	Featured  *bool
	Category  string
	Tag       string
}

// ListResult is one page of posts.
type ListResult struct {
	Data       []entity.Post
	Pagination pagination.Metadata
}

// Service provides post authoring use cases over the content store.
// Every mutation is a load, edit-in-session, save cycle serialized by a mutex,
// so two admin requests in this process cannot interleave. Writers in other
// processes are not coordinated.
type Service struct {
	store     repository.PostStore
	extractor *extractor.Extractor
	importer  Importer
	pages     pagination.Config

	mu sync.Mutex
}

// NewService creates a post Service. imp may be nil, which disables Import.
func NewService(store repository.PostStore, ext *extractor.Extractor, imp Importer) *Service {
	return &Service{
		store:     store,
		extractor: ext,
		importer:  imp,
		pages:     pagination.DefaultConfig(),
	}
}

// Preview extracts metadata without saving anything. It also returns the
// content rendered to HTML, which is what Create would store.
func (s *Service) Preview(content string, format extractor.Format, slug string) (extractor.Metadata, string, error) {
	html, err := s.render(content, format)
	if err != nil {
		return extractor.Metadata{}, "", err
	}
	return s.extractor.Extract(html, slug), html, nil
}

// Create turns raw content into a post and appends it to the list.
func (s *Service) Create(ctx context.Context, in CreateInput) (entity.Post, error) {
	html, err := s.render(in.Content, in.Format)
	if err != nil {
		return entity.Post{}, err
	}

	p := s.extractor.Extract(html, in.Slug).Post(html)
	applyOverrides(&p, in.Overrides)
	p.Published = in.Published
	p.Featured = in.Featured

	var created entity.Post
	err = s.edit(ctx, func(sess *Session) error {
		var err error
		created, err = sess.Create(p)
		return err
	})
	if err != nil {
		return entity.Post{}, fmt.Errorf("create post: %w", err)
	}

	slog.Info("post created",
		slog.Int64("id", created.ID),
		slog.String("slug", created.Slug),
		slog.Bool("published", created.Published))
	return created, nil
}

// Import fetches a page and stores it as an unpublished draft. The metadata
// extractor runs over the full page while the post content is the sanitized
// main article.
func (s *Service) Import(ctx context.Context, in ImportInput) (entity.Post, error) {
	if s.importer == nil {
		return entity.Post{}, ErrImportNotConfigured
	}
	if err := entity.ValidateURL(in.URL); err != nil {
		return entity.Post{}, err
	}

	page, err := s.importer.Fetch(ctx, in.URL)
	if err != nil {
		metrics.RecordPostImport(false)
		return entity.Post{}, fmt.Errorf("import post: %w", err)
	}

	meta := s.extractor.Extract(page.HTML, in.Slug)
	p := meta.Post(page.Content)
	if !meta.Title.IsFound() && page.Title != "" {
		p.Title = page.Title
		p.SEO.MetaTitle = page.Title
		if in.Slug == "" {
			p.Slug = entity.Slugify(page.Title)
		}
	}

	var created entity.Post
	err = s.edit(ctx, func(sess *Session) error {
		var err error
		created, err = sess.Create(p)
		return err
	})
	metrics.RecordPostImport(err == nil)
	if err != nil {
		return entity.Post{}, fmt.Errorf("import post: %w", err)
	}

	slog.Info("post imported",
		slog.Int64("id", created.ID),
		slog.String("slug", created.Slug),
		slog.String("source", page.URL))
	return created, nil
}

// Update applies a partial update to the post with the given id.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (entity.Post, error) {
	var updated entity.Post
	err := s.edit(ctx, func(sess *Session) error {
		p, err := sess.Get(id)
		if err != nil {
			return err
		}
		in.apply(&p)
		updated, err = sess.Update(p)
		return err
	})
	if err != nil {
		return entity.Post{}, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

// Delete removes the post with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.edit(ctx, func(sess *Session) error {
		_, err := sess.Delete(id)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	slog.Info("post deleted", slog.Int64("id", id))
	return nil
}

// Replace overwrites the whole list.
func (s *Service) Replace(ctx context.Context, posts []entity.Post) error {
	err := s.edit(ctx, func(sess *Session) error {
		return sess.Replace(posts)
	})
	if err != nil {
		return fmt.Errorf("replace posts: %w", err)
	}
	return nil
}

// Snapshot returns the whole list in store order.
func (s *Service) Snapshot(ctx context.Context) ([]entity.Post, error) {
	posts, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	if posts == nil {
		posts = []entity.Post{}
	}
	return posts, nil
}

// List returns the posts matching f in store order.
func (s *Service) List(ctx context.Context, f Filter) ([]entity.Post, error) {
	posts, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Post, 0, len(posts))
	for _, p := range posts {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListPage returns one page of the posts matching f.
func (s *Service) ListPage(ctx context.Context, f Filter, params pagination.Params) (*ListResult, error) {
	posts, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}
	data, meta := pagination.Apply(posts, params.WithDefaults(s.pages))
	return &ListResult{Data: data, Pagination: meta}, nil
}

// Get returns the post with the given id.
func (s *Service) Get(ctx context.Context, id int64) (entity.Post, error) {
	posts, err := s.Snapshot(ctx)
	if err != nil {
		return entity.Post{}, err
	}
	return NewSession(posts).Get(id)
}

// GetBySlug returns the post with the given slug. With publishedOnly, drafts
// are reported as not found.
func (s *Service) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (entity.Post, error) {
	posts, err := s.Snapshot(ctx)
	if err != nil {
		return entity.Post{}, err
	}
	p, err := NewSession(posts).GetBySlug(slug)
	if err != nil {
		return entity.Post{}, err
	}
	if publishedOnly && !p.Published {
		return entity.Post{}, entity.ErrNotFound
	}
	return p, nil
}

// edit runs fn over a session loaded from the store and saves the result if
// fn succeeded and changed anything.
func (s *Service) edit(ctx context.Context, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	sess := NewSession(posts)
	if err := fn(sess); err != nil {
		return err
	}
	if !sess.Dirty() {
		return nil
	}

	saved := sess.Posts()
	if err := s.store.Save(ctx, saved); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	recordCounts(saved)
	return nil
}

func (s *Service) render(content string, format extractor.Format) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	html, err := extractor.ToHTML(content, format)
	if err != nil {
		return "", &entity.ValidationError{Field: "format", Message: err.Error()}
	}
	return html, nil
}

func applyOverrides(p *entity.Post, o Overrides) {
	if o.Title != "" {
		p.Title = o.Title
		p.SEO.MetaTitle = o.Title
	}
	if o.Excerpt != "" {
		p.Excerpt = o.Excerpt
	}
	if o.Image != "" {
		p.Image = o.Image
	}
	if o.Category != "" {
		p.Category = o.Category
	}
	if o.Author != "" {
		p.Author = o.Author
	}
	if o.Date != "" {
		p.Date = o.Date
	}
	if o.Tags != nil {
		p.Tags = append([]string{}, o.Tags...)
	}
}

func (in UpdateInput) apply(p *entity.Post) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Slug != nil {
		p.Slug = entity.Slugify(*in.Slug)
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Date != nil {
		p.Date = *in.Date
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Author != nil {
		p.Author = *in.Author
	}
	if in.Tags != nil {
		p.Tags = append([]string{}, (*in.Tags)...)
	}
	if in.SEO != nil {
		p.SEO = *in.SEO
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
}

func (f Filter) matches(p entity.Post) bool {
	if f.Published != nil && p.Published != *f.Published {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Tag != "" && !hasTag(p.Tags, f.Tag) {
		return false
	}
	return true
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func recordCounts(posts []entity.Post) {
	published := 0
	for _, p := range posts {
		if p.Published {
			published++
		}
	}
	metrics.UpdatePostsTotal(published, len(posts)-published)
}

// IsClientError reports whether err was caused by the request rather than
// the server.
func IsClientError(err error) bool {
	return errors.Is(err, entity.ErrInvalidInput) ||
		errors.Is(err, entity.ErrDuplicateSlug) ||
		errors.Is(err, ErrEmptyContent)
}

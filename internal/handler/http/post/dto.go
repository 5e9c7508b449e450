package post

import (
	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/extractor"
	postUC "adsnow-blog/internal/usecase/post"
)

// createRequest is the body of POST /api/admin/posts.
// Content is raw HTML unless Format is "markdown". The optional metadata
// fields override what the extractor finds.
type createRequest struct {
	Content   string   `json:"content" example:"<html><head><title>Ghid SEO</title></head><body><p>...</p></body></html>"`
	Format    string   `json:"format,omitempty" example:"html"`
	Slug      string   `json:"slug,omitempty"`
	Published bool     `json:"published"`
	Featured  bool     `json:"featured"`
	Title     string   `json:"title,omitempty"`
	Excerpt   string   `json:"excerpt,omitempty"`
	Image     string   `json:"image,omitempty"`
	Category  string   `json:"category,omitempty"`
	Author    string   `json:"author,omitempty"`
	Date      string   `json:"date,omitempty" example:"2026-03-14"`
	Tags      []string `json:"tags,omitempty"`
}

func (r createRequest) input(format extractor.Format) postUC.CreateInput {
	return postUC.CreateInput{
		Content:   r.Content,
		Format:    format,
		Slug:      r.Slug,
		Published: r.Published,
		Featured:  r.Featured,
		Overrides: postUC.Overrides{
			Title:    r.Title,
			Excerpt:  r.Excerpt,
			Image:    r.Image,
			Category: r.Category,
			Author:   r.Author,
			Date:     r.Date,
			Tags:     r.Tags,
		},
	}
}

// updateRequest is the body of PATCH /api/admin/posts/{id}. Absent fields are kept.
type updateRequest struct {
	Title     *string     `json:"title"`
	Slug      *string     `json:"slug"`
	Excerpt   *string     `json:"excerpt"`
	Content   *string     `json:"content"`
	Image     *string     `json:"image"`
	Date      *string     `json:"date"`
	Category  *string     `json:"category"`
	Author    *string     `json:"author"`
	Tags      *[]string   `json:"tags"`
	SEO       *entity.SEO `json:"seo"`
	Published *bool       `json:"published"`
	Featured  *bool       `json:"featured"`
}

func (r updateRequest) input() postUC.UpdateInput {
	return postUC.UpdateInput{
		Title:     r.Title,
		Slug:      r.Slug,
		Excerpt:   r.Excerpt,
		Content:   r.Content,
		Image:     r.Image,
		Date:      r.Date,
		Category:  r.Category,
		Author:    r.Author,
		Tags:      r.Tags,
		SEO:       r.SEO,
		Published: r.Published,
		Featured:  r.Featured,
	}
}

type importRequest struct {
	URL  string `json:"url" example:"https://example.com/articol"`
	Slug string `json:"slug,omitempty"`
}

type previewRequest struct {
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
	Slug    string `json:"slug,omitempty"`
}

// previewResponse shows the post that Create would store and, per field,
// whether the value was found in the document or defaulted.
type previewResponse struct {
	Post    entity.Post       `json:"post"`
	Sources map[string]string `json:"sources"`
}

func newPreviewResponse(m extractor.Metadata, content string) previewResponse {
	return previewResponse{
		Post:    m.Post(content),
		Sources: m.Sources(),
	}
}

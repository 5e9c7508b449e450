package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"adsnow-blog/internal/domain/entity"
)

// Encode serializes posts the way they are stored on disk and in the
// repository: a JSON array indented with two spaces. HTML in post content is
// written as-is rather than <-escaped so diffs stay readable.
func Encode(posts []entity.Post) ([]byte, error) {
	if posts == nil {
		posts = []entity.Post{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return nil, fmt.Errorf("Encode: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a stored post list. Blank input decodes to an empty list.
func Decode(data []byte) ([]entity.Post, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []entity.Post{}, nil
	}
	var posts []entity.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	if posts == nil {
		posts = []entity.Post{}
	}
	return posts, nil
}

package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adsnow-blog/internal/domain/entity"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePosts() []entity.Post {
	return []entity.Post{
		{
			ID:       1,
			Slug:     "ghid-seo",
			Title:    "Ghid SEO",
			Excerpt:  "Despre SEO",
			Content:  "<h1>Ghid SEO</h1><p>Despre SEO & altele</p>",
			Image:    "/images/blog/seo.jpg",
			Date:     "2025-01-20",
			Category: "SEO",
			Author:   "Ana Pop",
			Tags:     []string{"seo", "google"},
			SEO: entity.SEO{
				MetaTitle:       "Ghid SEO",
				MetaDescription: "Despre SEO",
				Keywords:        "seo,google",
			},
			Published: true,
			Featured:  true,
		},
		{
			ID:       2,
			Slug:     "ciorna",
			Title:    "Ciornă",
			Date:     "2025-02-01",
			Category: "Marketing Digital",
			Tags:     []string{},
		},
	}
}

func TestPostStore_LoadMissingFile(t *testing.T) {
	store := NewPostStore(filepath.Join(t.TempDir(), "posts.json"))

	posts, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "posts.json")
	store := NewPostStore(path)
	want := samplePosts()

	require.NoError(t, store.Save(context.Background(), want))
	got, err := store.Load(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPostStore_SaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	store := NewPostStore(path)

	require.NoError(t, store.Save(context.Background(), samplePosts()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"id\": 1,"), text)
	assert.Contains(t, text, `"content": "<h1>Ghid SEO</h1><p>Despre SEO & altele</p>"`)
	assert.Contains(t, text, `"metaTitle": "Ghid SEO"`)
	assert.False(t, strings.HasSuffix(text, "\n"))
}

func TestPostStore_SaveReplacesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	store := NewPostStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, samplePosts()))
	require.NoError(t, store.Save(ctx, samplePosts()[:1]))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestPostStore_SaveEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	store := NewPostStore(path)

	require.NoError(t, store.Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestPostStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewPostStore(path).Load(context.Background())

	assert.Error(t, err)
}

func TestPostStore_LoadBlankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	posts, err := NewPostStore(path).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostStore_CanceledContext(t *testing.T) {
	store := NewPostStore(filepath.Join(t.TempDir(), "posts.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, nil), context.Canceled)
}

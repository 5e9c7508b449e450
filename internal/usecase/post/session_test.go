package post_test

import (
	"testing"

	"adsnow-blog/internal/domain/entity"
	"adsnow-blog/internal/usecase/post"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPosts() []entity.Post {
	return []entity.Post{
		{ID: 1, Slug: "ghid-google-ads", Title: "Ghid Google Ads", Tags: []string{"ads"}, Published: true},
		{ID: 4, Slug: "seo-local", Title: "SEO local", Tags: []string{}},
	}
}

func TestSession_CreateAssignsNextID(t *testing.T) {
	sess := post.NewSession(seedPosts())

	created, err := sess.Create(entity.Post{ID: 99, Slug: "meta-ads", Title: "Meta Ads"})
	require.NoError(t, err)

	assert.Equal(t, int64(5), created.ID)
	assert.NotNil(t, created.Tags)
	assert.Equal(t, 3, sess.Len())
	assert.True(t, sess.Dirty())
}

func TestSession_CreateOnEmptyList(t *testing.T) {
	sess := post.NewSession(nil)

	created, err := sess.Create(entity.Post{Slug: "primul", Title: "Primul"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestSession_CreateRejectsDuplicateSlug(t *testing.T) {
	sess := post.NewSession(seedPosts())

	_, err := sess.Create(entity.Post{Slug: "seo-local", Title: "Alt SEO local"})
	assert.ErrorIs(t, err, entity.ErrDuplicateSlug)
	assert.Equal(t, 2, sess.Len())
	assert.False(t, sess.Dirty())
}

func TestSession_CreateWithoutSlugUsesID(t *testing.T) {
	sess := post.NewSession(seedPosts())

	created, err := sess.Create(entity.Post{Title: "Привет мир"})
	require.NoError(t, err)
	assert.Equal(t, "post-5", created.Slug)

	got, err := sess.GetBySlug("post-5")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestSession_CreateRejectsInvalidPost(t *testing.T) {
	sess := post.NewSession(seedPosts())

	_, err := sess.Create(entity.Post{Slug: "Not A Slug", Title: "x"})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestSession_Update(t *testing.T) {
	sess := post.NewSession(seedPosts())

	p, err := sess.Get(4)
	require.NoError(t, err)
	p.Title = "SEO local 2026"
	p.Published = true

	updated, err := sess.Update(p)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.ID)

	got, err := sess.Get(4)
	require.NoError(t, err)
	assert.Equal(t, "SEO local 2026", got.Title)
	assert.True(t, got.Published)
}

func TestSession_UpdateKeepsOwnSlug(t *testing.T) {
	sess := post.NewSession(seedPosts())

	p, err := sess.Get(1)
	require.NoError(t, err)
	_, err = sess.Update(p)
	assert.NoError(t, err)
}

func TestSession_UpdateRejectsTakenSlug(t *testing.T) {
	sess := post.NewSession(seedPosts())

	p, err := sess.Get(4)
	require.NoError(t, err)
	p.Slug = "ghid-google-ads"

	_, err = sess.Update(p)
	assert.ErrorIs(t, err, entity.ErrDuplicateSlug)
}

func TestSession_UpdateUnknownID(t *testing.T) {
	sess := post.NewSession(seedPosts())

	_, err := sess.Update(entity.Post{ID: 42, Slug: "x", Title: "x"})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSession_Delete(t *testing.T) {
	sess := post.NewSession(seedPosts())

	removed, err := sess.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, "ghid-google-ads", removed.Slug)
	assert.Equal(t, 1, sess.Len())

	_, err = sess.GetBySlug("ghid-google-ads")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = sess.Delete(1)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSession_SnapshotsAreCopies(t *testing.T) {
	seed := seedPosts()
	sess := post.NewSession(seed)

	// 呼び出し元の変更がセッションに漏れないこと
	seed[0].Title = "changed"
	snapshot := sess.Posts()
	snapshot[0].Tags[0] = "changed"

	got, err := sess.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Ghid Google Ads", got.Title)
	assert.Equal(t, []string{"ads"}, got.Tags)
}

func TestSession_Replace(t *testing.T) {
	sess := post.NewSession(seedPosts())

	err := sess.Replace([]entity.Post{{ID: 7, Slug: "nou", Title: "Nou"}})
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Len())
	assert.True(t, sess.Dirty())

	err = sess.Replace([]entity.Post{
		{ID: 1, Slug: "a", Title: "A"},
		{ID: 2, Slug: "a", Title: "B"},
	})
	assert.ErrorIs(t, err, entity.ErrDuplicateSlug)
	assert.Equal(t, 1, sess.Len())
}

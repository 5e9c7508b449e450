package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"adsnow-blog/internal/infra/adapter/persistence/jsonfile"
	"adsnow-blog/internal/usecase/index"
	publishUC "adsnow-blog/internal/usecase/publish"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<html><head>
<title>Ghid Google Ads 2026</title>
<meta name="description" content="Tot ce trebuie să știi despre campanii.">
<meta name="category" content="PPC">
</head><body><p>Primul paragraf.</p></body></html>`

// isolate points the configuration at an empty temp directory and clears
// the variables the commands read.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, ".env"))
	t.Setenv("SITE_CONFIG", filepath.Join(dir, "site.yaml"))
	t.Setenv("CONTENT_FILE", filepath.Join(dir, "blog-posts.json"))
	for _, key := range []string{
		"SITE_URL", "GITHUB_API_URL", "GITHUB_OWNER", "GITHUB_REPO", "GITHUB_BRANCH", "GITHUB_TOKEN",
		"GITHUB_CONTENT_PATH", "GOOGLE_APPLICATION_CREDENTIALS", "GOOGLE_SERVICE_ACCOUNT_JSON",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "adsnowctl dev (commit: none)\n", out)
}

func TestSlug(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "slug", "Ghid", "SEO", "pentru", "începători")
	require.NoError(t, err)
	assert.Equal(t, "ghid-seo-pentru-incepatori\n", out)

	_, _, err = execute(t, "", "slug", "!!!")
	assert.Error(t, err)
}

func TestExtract_Preview(t *testing.T) {
	dir := isolate(t)

	out, _, err := execute(t, sampleHTML, "extract", "-")
	require.NoError(t, err)

	var res extractResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "ghid-google-ads-2026", res.Post.Slug)
	assert.Equal(t, "PPC", res.Post.Category)
	assert.Equal(t, "found", res.Sources["category"])
	assert.Equal(t, "default", res.Sources["author"])

	// プレビューは保存しない
	_, err = os.Stat(filepath.Join(dir, "blog-posts.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtract_MarkdownFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "post.md")
	require.NoError(t, os.WriteFile(path, []byte("# Strategii SEO locale\n\nPrimul paragraf.\n"), 0o600))

	out, _, err := execute(t, "", "extract", "--format", "markdown", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"slug": "strategii-seo-locale"`)

	_, _, err = execute(t, "", "extract", "--format", "docx", path)
	assert.Error(t, err)

	_, _, err = execute(t, "", "extract", filepath.Join(dir, "missing.html"))
	assert.ErrorContains(t, err, "missing.html")
}

func TestExtract_Save(t *testing.T) {
	dir := isolate(t)

	_, stderr, err := execute(t, sampleHTML, "extract", "--save", "--published", "-")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Saved post 1 (ghid-google-ads-2026)")

	data, err := os.ReadFile(filepath.Join(dir, "blog-posts.json"))
	require.NoError(t, err)
	posts, err := jsonfile.Decode(data)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].Published)

	// 同じスラッグは拒否される
	_, _, err = execute(t, sampleHTML, "extract", "--save", "-")
	assert.Error(t, err)
}

func TestContentFlagOverridesEnvironment(t *testing.T) {
	dir := isolate(t)
	other := filepath.Join(dir, "other.json")

	_, _, err := execute(t, sampleHTML, "--content", other, "extract", "--save", "-")
	require.NoError(t, err)

	_, err = os.Stat(other)
	assert.NoError(t, err)
}

func TestPublish_NoRepository(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "publish", "--token", "ghp_x")
	assert.ErrorIs(t, err, errNoRepository)
}

func TestIndex_NotConfigured(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "index", "https://adsnow.ro/blog/x")
	assert.ErrorIs(t, err, index.ErrNotConfigured)
}

// fakeGitHub serves the endpoints used by verify and publish for one file.
type fakeGitHub struct {
	mu      sync.Mutex
	sha     string
	content []byte
	writes  int
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer ghp_test" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/user":
		_, _ = w.Write([]byte(`{"login":"ana","id":7}`))
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/repos/adsnow/site/contents/"):
		if f.sha == "" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"sha":"` + f.sha + `"}`))
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/repos/adsnow/site/contents/"):
		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.content, _ = base64.StdEncoding.DecodeString(body.Content)
		f.writes++
		status := http.StatusOK
		if f.sha == "" {
			status = http.StatusCreated
		}
		f.sha = "blob1"
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"content":{"sha":"blob1"},"commit":{"sha":"commit1"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func withGitHub(t *testing.T, gh *fakeGitHub) {
	t.Helper()
	srv := httptest.NewServer(gh)
	t.Cleanup(srv.Close)
	t.Setenv("GITHUB_API_URL", srv.URL)
	t.Setenv("GITHUB_OWNER", "adsnow")
	t.Setenv("GITHUB_REPO", "site")
	t.Setenv("PUBLISH_VERIFY", "false")
}

func TestVerify(t *testing.T) {
	isolate(t)
	withGitHub(t, &fakeGitHub{})
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	out, _, err := execute(t, "", "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Authenticated as ana")
	assert.Contains(t, out, "does not exist on adsnow/site@main yet")

	_, _, err = execute(t, "", "verify", "--token", "ghp_wrong")
	assert.ErrorContains(t, err, "GitHub answered 401")
}

func TestPublish(t *testing.T) {
	isolate(t)
	gh := &fakeGitHub{}
	withGitHub(t, gh)

	_, _, err := execute(t, sampleHTML, "extract", "--save", "--published", "-")
	require.NoError(t, err)

	out, _, err := execute(t, "", "publish", "--token", "ghp_test", "-m", "Articol nou")
	require.NoError(t, err, out)
	assert.Contains(t, out, "commit commit1")
	assert.Equal(t, 1, gh.writes)
	assert.Contains(t, string(gh.content), "ghid-google-ads-2026")

	out, _, err = execute(t, "", "publish", "--token", "ghp_wrong", "--json")
	require.Error(t, err)
	assert.Contains(t, out, `"success": false`)
	assert.Equal(t, 1, gh.writes)
}

func TestPublish_EmptyContentFile(t *testing.T) {
	isolate(t)
	gh := &fakeGitHub{sha: "blob0", content: []byte(`[{"id":1}]`)}
	withGitHub(t, gh)

	// CONTENT_FILE が存在しない
	_, _, err := execute(t, "", "publish", "--token", "ghp_test")
	require.ErrorIs(t, err, publishUC.ErrEmptyContent)
	assert.ErrorContains(t, err, "--allow-empty")
	assert.Zero(t, gh.writes)
	assert.Equal(t, `[{"id":1}]`, string(gh.content))

	out, _, err := execute(t, "", "publish", "--token", "ghp_test", "--allow-empty")
	require.NoError(t, err, out)
	assert.Equal(t, 1, gh.writes)
	assert.Equal(t, "[]", string(gh.content))
}

package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"linkdigest-api/core/domain"
	coreerrors "linkdigest-api/core/errors"
	"linkdigest-api/core/interfaces"
	"linkdigest-api/infrastructure/http/standard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

// fakeRepo emulates the parts of the contents API the store uses
type fakeRepo struct {
	mu       sync.Mutex
	files    map[string]string // path to decoded content
	shas     map[string]string
	puts     []putRequest
	deletes  []deleteRequest
	failWith int
	nextSHA  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{files: map[string]string{}, shas: map[string]string{}}
}

func (f *fakeRepo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer tok" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if f.failWith != 0 {
		w.WriteHeader(f.failWith)
		w.Write([]byte(`{"message":"Repository rule violations found"}`))
		return
	}

	const prefix = "/repos/me/notes/contents/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, prefix)

	switch r.Method {
	case http.MethodGet:
		sha, ok := f.shas[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"sha": sha, "path": path})

	case http.MethodPut:
		var req putRequest
		json.NewDecoder(r.Body).Decode(&req)
		if f.shas[path] != req.SHA {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"sha mismatch"}`))
			return
		}
		decoded, _ := base64.StdEncoding.DecodeString(req.Content)
		f.puts = append(f.puts, req)
		f.files[path] = string(decoded)
		f.nextSHA++
		status := http.StatusCreated
		if req.SHA != "" {
			status = http.StatusOK
		}
		f.shas[path] = fmt.Sprintf("sha%d", f.nextSHA)
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": map[string]string{
				"path":     path,
				"sha":      f.shas[path],
				"html_url": "https://github.example/me/notes/blob/main/" + path,
			},
		})

	case http.MethodDelete:
		var req deleteRequest
		json.NewDecoder(r.Body).Decode(&req)
		if f.shas[path] != req.SHA {
			w.WriteHeader(http.StatusConflict)
			return
		}
		f.deletes = append(f.deletes, req)
		delete(f.files, path)
		delete(f.shas, path)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"content":null}`))
	}
}

func sampleDigest() *domain.Digest {
	return &domain.Digest{
		Title:    "Context cancellation",
		Synopsis: "How cancellation flows.",
		Slug:     "context-cancellation",
		Category: domain.CategoryTech,
		Tags:     []string{"go", "concurrency"},
		Keywords: []string{"context"},
		Concepts: domain.ConceptMap{
			Broader:      []string{"concurrency"},
			Narrower:     []string{"Done channel"},
			Related:      []string{"deadlines"},
			Prerequisite: []string{"goroutines"},
			FollowUp:     []string{"errgroup"},
		},
		Quotes:     []domain.Quote{{Text: "Cancel early.", Reason: "thesis"}},
		Insights:   []string{"**Propagation**: Pass ctx down."},
		Simplified: "Stop work nobody waits for.",
		Summary:    "## Summary\n\n- point",
	}
}

func newTestStore(t *testing.T, repo *fakeRepo) *Store {
	t.Helper()
	server := httptest.NewServer(repo)
	t.Cleanup(server.Close)

	deps := interfaces.Dependencies{
		HTTPClient: standard.NewStandardHTTPClient(5 * time.Second),
		Logger:     nopLogger{},
	}
	clock := func() time.Time { return time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC) }
	return NewStore(deps, Config{Token: "tok", Repo: "me/notes", BaseURL: server.URL}, WithClock(clock))
}

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore(interfaces.Dependencies{}, Config{Dir: "/notes/"})

	assert.Equal(t, DefaultBaseURL, s.cfg.BaseURL)
	assert.Equal(t, "notes", s.cfg.Dir)
	assert.Equal(t, DefaultTimeout, s.cfg.Timeout)
	assert.Equal(t, DefaultDir, NewStore(interfaces.Dependencies{}, Config{}).cfg.Dir)
}

func TestPathFor(t *testing.T) {
	s := newTestStore(t, newFakeRepo())

	assert.Equal(t, "98-summaries/2025-05-01-context-cancellation.md", s.PathFor(sampleDigest()))
	assert.Equal(t, "98-summaries/2025-05-01-a-title.md", s.PathFor(&domain.Digest{Title: "A Title"}))
}

func TestSave_CreatesFile(t *testing.T) {
	repo := newFakeRepo()
	s := newTestStore(t, repo)

	doc, err := s.Save(context.Background(), sampleDigest(), "https://example.com/a")

	require.NoError(t, err)
	assert.Equal(t, "98-summaries/2025-05-01-context-cancellation.md", doc.Path)
	assert.Equal(t, "https://github.example/me/notes/blob/main/98-summaries/2025-05-01-context-cancellation.md", doc.URL)

	require.Len(t, repo.puts, 1)
	assert.Equal(t, "Add summary: Context cancellation", repo.puts[0].Message)
	assert.Empty(t, repo.puts[0].SHA)

	content := repo.files[doc.Path]
	meta, err := ParseFrontmatter([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", meta["source"])
	assert.Contains(t, content, "# Context cancellation")
}

func TestSave_UpdatesExistingFile(t *testing.T) {
	repo := newFakeRepo()
	s := newTestStore(t, repo)

	_, err := s.Save(context.Background(), sampleDigest(), "https://example.com/a")
	require.NoError(t, err)
	_, err = s.Save(context.Background(), sampleDigest(), "https://override.example/b")
	require.NoError(t, err)

	require.Len(t, repo.puts, 2)
	assert.Equal(t, "sha1", repo.puts[1].SHA)
	assert.Equal(t, "Update summary: Context cancellation", repo.puts[1].Message)
	assert.Contains(t, repo.files["98-summaries/2025-05-01-context-cancellation.md"], "https://override.example/b")
}

func TestSave_APIError(t *testing.T) {
	repo := newFakeRepo()
	repo.failWith = http.StatusForbidden
	s := newTestStore(t, repo)

	_, err := s.Save(context.Background(), sampleDigest(), "")

	require.Error(t, err)
	assert.True(t, coreerrors.IsExternalAPI(err))
	assert.Contains(t, err.Error(), "Repository rule violations found")
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	s := newTestStore(t, repo)
	doc, err := s.Save(context.Background(), sampleDigest(), "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), doc.Path))

	assert.Empty(t, repo.files)
	require.Len(t, repo.deletes, 1)
	assert.Equal(t, "sha1", repo.deletes[0].SHA)
}

func TestDelete_MissingFileIsNoop(t *testing.T) {
	repo := newFakeRepo()
	s := newTestStore(t, repo)

	assert.NoError(t, s.Delete(context.Background(), "98-summaries/missing.md"))
	assert.Empty(t, repo.deletes)
}

func TestDelete_APIError(t *testing.T) {
	repo := newFakeRepo()
	repo.failWith = http.StatusInternalServerError
	s := newTestStore(t, repo)

	err := s.Delete(context.Background(), "98-summaries/x.md")

	assert.True(t, coreerrors.IsExternalAPI(err))
}

func TestContentsURL_Branch(t *testing.T) {
	s := NewStore(interfaces.Dependencies{}, Config{Repo: "me/notes", Branch: "notes/main"})

	assert.Equal(t, "https://api.github.com/repos/me/notes/contents/dir/a%20b.md?ref=notes%2Fmain", s.contentsURL("dir/a b.md", true))
	assert.Equal(t, "https://api.github.com/repos/me/notes/contents/dir/a%20b.md", s.contentsURL("dir/a b.md", false))
}

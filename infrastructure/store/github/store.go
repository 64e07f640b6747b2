// ABOUTME: Document store writing rendered digests into a GitHub repository
// ABOUTME: Uses the contents API to create, update and delete markdown notes

package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"linkdigest-api/core/domain"
	coreerrors "linkdigest-api/core/errors"
	"linkdigest-api/core/interfaces"
)

const (
	DefaultBaseURL = "https://api.github.com"
	DefaultDir     = "98-summaries"
	DefaultTimeout = 15 * time.Second

	apiName    = "github"
	apiVersion = "2022-11-28"
)

// Config configures the repository target
type Config struct {
	Token   string
	Repo    string // owner/name
	Branch  string // empty means the default branch
	Dir     string
	BaseURL string
	Timeout time.Duration
}

// Store implements interfaces.DocumentStore
type Store struct {
	deps interfaces.Dependencies
	cfg  Config
	now  func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now for file naming
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a GitHub-backed document store
func NewStore(deps interfaces.Dependencies, cfg Config, opts ...Option) *Store {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	cfg.Dir = strings.Trim(cfg.Dir, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	s := &Store{deps: deps, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

type deleteRequest struct {
	Message string `json:"message"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch,omitempty"`
}

type contentResponse struct {
	Content struct {
		Path    string `json:"path"`
		SHA     string `json:"sha"`
		HTMLURL string `json:"html_url"`
	} `json:"content"`
}

type fileResponse struct {
	SHA string `json:"sha"`
}

// PathFor returns the repository path a digest is written to
func (s *Store) PathFor(digest *domain.Digest) string {
	slug := digest.Slug
	if slug == "" {
		slug = domain.Slugify(digest.Title)
	}
	return fmt.Sprintf("%s/%s-%s.md", s.cfg.Dir, s.now().Format("2006-01-02"), slug)
}

// Save renders digest and creates or updates its note
func (s *Store) Save(ctx context.Context, digest *domain.Digest, sourceURL string) (*domain.PersistedDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	path := s.PathFor(digest)
	doc, err := RenderMarkdown(digest, sourceURL, s.now())
	if err != nil {
		return nil, err
	}

	sha, err := s.lookupSHA(ctx, path)
	if err != nil {
		return nil, err
	}

	verb := "Add"
	if sha != "" {
		verb = "Update"
	}
	body, err := json.Marshal(putRequest{
		Message: fmt.Sprintf("%s summary: %s", verb, digest.Title),
		Content: base64.StdEncoding.EncodeToString(doc),
		SHA:     sha,
		Branch:  s.cfg.Branch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.deps.HTTPClient.Do(ctx, http.MethodPut, s.contentsURL(path, false), bytes.NewReader(body), s.headers())
	if err != nil {
		return nil, coreerrors.WrapError(err, "github save failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return nil, apiError(resp)
	}

	var out contentResponse
	if err := json.NewDecoder(resp.Body()).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}

	s.deps.Logger.Info("Saved digest to GitHub", map[string]interface{}{
		"path":    path,
		"updated": sha != "",
	})

	persisted := &domain.PersistedDocument{URL: out.Content.HTMLURL, Path: out.Content.Path}
	if persisted.Path == "" {
		persisted.Path = path
	}
	return persisted, nil
}

// Delete removes the note at path. A missing file counts as deleted.
func (s *Store) Delete(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	sha, err := s.lookupSHA(ctx, path)
	if err != nil {
		return err
	}
	if sha == "" {
		s.deps.Logger.Debug("GitHub file already absent", map[string]interface{}{"path": path})
		return nil
	}

	body, err := json.Marshal(deleteRequest{
		Message: fmt.Sprintf("Remove summary: %s", path),
		SHA:     sha,
		Branch:  s.cfg.Branch,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.deps.HTTPClient.Do(ctx, http.MethodDelete, s.contentsURL(path, false), bytes.NewReader(body), s.headers())
	if err != nil {
		return coreerrors.WrapError(err, "github delete failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return apiError(resp)
	}

	s.deps.Logger.Info("Deleted digest from GitHub", map[string]interface{}{"path": path})
	return nil
}

// lookupSHA returns the blob sha at path, or "" when there is no file
func (s *Store) lookupSHA(ctx context.Context, path string) (string, error) {
	resp, err := s.deps.HTTPClient.Get(ctx, s.contentsURL(path, true), s.headers())
	if err != nil {
		return "", coreerrors.WrapError(err, "github lookup failed")
	}
	defer resp.Body().Close()

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", nil
	default:
		return "", apiError(resp)
	}

	var file fileResponse
	if err := json.NewDecoder(resp.Body()).Decode(&file); err != nil {
		return "", fmt.Errorf("failed to decode github response: %w", err)
	}
	return file.SHA, nil
}

func (s *Store) contentsURL(path string, withRef bool) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	u := fmt.Sprintf("%s/repos/%s/contents/%s", s.cfg.BaseURL, s.cfg.Repo, strings.Join(segments, "/"))
	if withRef && s.cfg.Branch != "" {
		u += "?ref=" + url.QueryEscape(s.cfg.Branch)
	}
	return u
}

func (s *Store) headers() interfaces.Headers {
	return interfaces.Headers{
		"Authorization":        "Bearer " + s.cfg.Token,
		"Accept":               "application/vnd.github+json",
		"Content-Type":         "application/json",
		"X-GitHub-Api-Version": apiVersion,
	}
}

func apiError(resp interfaces.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body(), 4096))
	var payload struct {
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		msg = payload.Message
	}
	return &coreerrors.ExternalAPIError{API: apiName, StatusCode: resp.StatusCode(), Message: msg}
}

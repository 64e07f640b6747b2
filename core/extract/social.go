// ABOUTME: Social post resolver finds richer content behind X/Twitter post links
// ABOUTME: Ranks link-card and in-text URLs, tries each, then falls back to the post text

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"linkdigest-api/core/domain"
	"linkdigest-api/core/interfaces"
)

// DefaultLookupTimeout bounds the post lookup call
const DefaultLookupTimeout = 10 * time.Second

// postHosts are the hosts whose /status/<id> URLs are resolved as posts
var postHosts = map[string]bool{
	"x.com":       true,
	"twitter.com": true,
}

// internalHosts never carry article content: the platform itself, its media
// CDN and its link shortener.
var internalHosts = []string{
	"x.com",
	"twitter.com",
	"pic.twitter.com",
	"pbs.twimg.com",
	"video.twimg.com",
	"abs.twimg.com",
	"t.co",
}

var (
	statusPath    = regexp.MustCompile(`/status/(\d+)`)
	urlInText     = regexp.MustCompile(`https?://[^\s)]+`)
	trailingPunct = regexp.MustCompile(`[.,;:!?'"]+$`)
)

// PostID returns the status id of an X/Twitter post URL
func PostID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || !postHosts[strings.ToLower(u.Hostname())] {
		return "", false
	}
	m := statusPath.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsInternalURL reports whether rawURL points at the platform's own hosts
func IsInternalURL(rawURL string) bool {
	return hostIn(hostname(rawURL), internalHosts)
}

// Post is the subset of the lookup payload the resolver reads
type Post struct {
	Text    string
	Author  string
	CardURL string
	Quote   *QuotedPost
}

// QuotedPost is a post embedded in another post
type QuotedPost struct {
	Text    string
	CardURL string
}

type lookupPayload struct {
	Tweet *struct {
		Text    string          `json:"text"`
		RawText json.RawMessage `json:"raw_text"`
		Author  struct {
			Name string `json:"name"`
		} `json:"author"`
		Media *lookupMedia `json:"media"`
		Quote *struct {
			Text  string       `json:"text"`
			Media *lookupMedia `json:"media"`
		} `json:"quote"`
	} `json:"tweet"`
}

type lookupMedia struct {
	External *struct {
		URL string `json:"url"`
	} `json:"external"`
}

func (m *lookupMedia) externalURL() string {
	if m == nil || m.External == nil {
		return ""
	}
	return m.External.URL
}

// rawText accepts raw_text either as a string or as {"text": "..."}
func rawText(msg json.RawMessage) string {
	if len(msg) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(msg, &obj); err == nil {
		return obj.Text
	}
	return ""
}

// SocialResolverConfig configures the post lookup API
type SocialResolverConfig struct {
	// BaseURL is the lookup API root; posts are read from {BaseURL}/status/{id}
	BaseURL string

	// Timeout bounds the lookup call (DefaultLookupTimeout when zero)
	Timeout time.Duration
}

// SocialResolver resolves post URLs to the content they link to
type SocialResolver struct {
	deps    interfaces.Dependencies
	fetcher ContentFetcher
	cfg     SocialResolverConfig
}

// NewSocialResolver creates a resolver that tries candidates through fetcher
func NewSocialResolver(deps interfaces.Dependencies, fetcher ContentFetcher, cfg SocialResolverConfig) *SocialResolver {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultLookupTimeout
	}
	return &SocialResolver{deps: deps, fetcher: fetcher, cfg: cfg}
}

// Name identifies the strategy in logs
func (r *SocialResolver) Name() string {
	return "social-post"
}

// Try adapts Resolve to the Strategy interface
func (r *SocialResolver) Try(ctx context.Context, url string) (*domain.ExtractResult, bool) {
	return r.Resolve(ctx, url)
}

// Resolve returns content for a post URL. Non-post URLs, lookup failures and
// posts without text report false so the caller can move on.
func (r *SocialResolver) Resolve(ctx context.Context, postURL string) (*domain.ExtractResult, bool) {
	id, ok := PostID(postURL)
	if !ok {
		return nil, false
	}

	post, err := r.lookup(ctx, id)
	if err != nil {
		r.deps.Logger.Warn("Post lookup failed", map[string]interface{}{
			"url":   postURL,
			"error": err.Error(),
		})
		return nil, false
	}

	candidates := Candidates(post)
	r.deps.Logger.Debug("Resolved post candidates", map[string]interface{}{
		"url":        postURL,
		"candidates": candidates,
	})

	for _, candidate := range candidates {
		if result, ok := r.fetcher.Fetch(ctx, candidate); ok {
			r.deps.Logger.Info("Extracted content from inner URL", map[string]interface{}{
				"url":   postURL,
				"inner": candidate,
			})
			return result, true
		}
	}

	r.deps.Logger.Debug("No inner URL resolved, using post text", map[string]interface{}{
		"url": postURL,
	})
	title := ""
	if post.Author != "" {
		title = fmt.Sprintf("Post by %s", post.Author)
	}
	return &domain.ExtractResult{
		Title:   title,
		Content: post.Text,
		URL:     postURL,
	}, true
}

func (r *SocialResolver) lookup(ctx context.Context, id string) (*Post, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	resp, err := r.deps.HTTPClient.Get(ctx, r.cfg.BaseURL+"/status/"+id, interfaces.Headers{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode())
	}

	var payload lookupPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body(), maxResponseBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	if payload.Tweet == nil {
		return nil, fmt.Errorf("payload has no post")
	}

	tw := payload.Tweet
	post := &Post{
		Text:    tw.Text,
		Author:  tw.Author.Name,
		CardURL: tw.Media.externalURL(),
	}
	if post.Text == "" {
		post.Text = rawText(tw.RawText)
	}
	if strings.TrimSpace(post.Text) == "" {
		return nil, fmt.Errorf("post has no text")
	}
	if tw.Quote != nil {
		post.Quote = &QuotedPost{
			Text:    tw.Quote.Text,
			CardURL: tw.Quote.Media.externalURL(),
		}
	}
	return post, nil
}

// Candidates ranks the external URLs of a post: its link card, the quoted
// post's link card, URLs in its text, then URLs in the quoted text.
// Internal hosts are dropped and duplicates keep their first position.
func Candidates(post *Post) []string {
	var ranked []string

	if post.CardURL != "" && !IsInternalURL(post.CardURL) {
		ranked = append(ranked, post.CardURL)
	}
	if post.Quote != nil && post.Quote.CardURL != "" && !IsInternalURL(post.Quote.CardURL) {
		ranked = append(ranked, post.Quote.CardURL)
	}
	ranked = append(ranked, externalURLs(post.Text)...)
	if post.Quote != nil {
		ranked = append(ranked, externalURLs(post.Quote.Text)...)
	}

	return dedupe(ranked)
}

// ExtractURLs finds http(s) URLs in text with trailing punctuation removed
func ExtractURLs(text string) []string {
	matches := urlInText.FindAllString(text, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if u := trailingPunct.ReplaceAllString(m, ""); u != "" {
			urls = append(urls, u)
		}
	}
	return dedupe(urls)
}

func externalURLs(text string) []string {
	var urls []string
	for _, u := range ExtractURLs(text) {
		if !IsInternalURL(u) {
			urls = append(urls, u)
		}
	}
	return urls
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

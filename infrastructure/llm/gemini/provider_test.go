package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const digestJSON = `{"title":"Context cancellation","synopsis":"How cancellation flows.","slug":"context-cancellation","category":"Tech",` +
	`"tags":["go"],"keywords":["context"],` +
	`"concepts":{"broader":["concurrency"],"narrower":["Done channel"],"related":["deadlines"],"prerequisite":["goroutines"],"followUp":["errgroup"]},` +
	`"quotes":[{"text":"Cancel early.","reason":"thesis"}],` +
	`"insights":["Pass ctx down."],` +
	`"simplified":"Stop work nobody waits for.","summary":"## Summary"}`

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{{
			"content": map[string]interface{}{
				"role":  "model",
				"parts": []map[string]string{{"text": text}},
			},
			"finishReason": "STOP",
		}},
	})
	return string(b)
}

func TestNewProvider_Defaults(t *testing.T) {
	p := NewProvider(nopLogger{}, Config{})

	assert.Equal(t, DefaultModel, p.cfg.Model)
	assert.Equal(t, DefaultTimeout, p.cfg.Timeout)
	assert.Equal(t, "gemini", p.Name())
}

func TestSummarize_MissingKey(t *testing.T) {
	p := NewProvider(nopLogger{}, Config{})

	_, err := p.Summarize(context.Background(), "x")

	assert.ErrorContains(t, err, "API key is not configured")
}

func TestSummarize_Success(t *testing.T) {
	var path string
	var request map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &request))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody("```json\n" + digestJSON + "\n```")))
	}))
	defer server.Close()

	p := NewProvider(nopLogger{}, Config{APIKey: "k", BaseURL: server.URL + "/"})
	digest, err := p.Summarize(context.Background(), "article body")

	require.NoError(t, err)
	assert.Equal(t, "Context cancellation", digest.Title)
	assert.Equal(t, []string{"Pass ctx down."}, digest.Insights)
	assert.True(t, strings.HasSuffix(path, "models/"+DefaultModel+":generateContent"), path)

	raw, _ := json.Marshal(request)
	assert.Contains(t, string(raw), "article body")
	assert.Contains(t, string(raw), "application/json")
	assert.Contains(t, string(raw), "structured learning note")
}

func TestSummarize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	p := NewProvider(nopLogger{}, Config{APIKey: "k", BaseURL: server.URL + "/"})
	_, err := p.Summarize(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestDigestSchema(t *testing.T) {
	s := digestSchema()

	assert.Len(t, s.Required, 11)
	assert.ElementsMatch(t, []string{"Tech", "AI", "Business", "Design", "Productivity", "Life"}, s.Properties["category"].Enum)
	assert.Len(t, s.Properties["concepts"].Properties, 5)
	assert.Equal(t, "One sentence synopsis", s.Properties["synopsis"].Description)
}

func TestDigestSchema_ItemBounds(t *testing.T) {
	s := digestSchema()

	bounds := map[string][2]int64{
		"tags":     {3, 5},
		"keywords": {3, 7},
		"quotes":   {3, 5},
		"insights": {3, 5},
	}
	for field, want := range bounds {
		prop := s.Properties[field]
		require.NotNil(t, prop.MinItems, field)
		require.NotNil(t, prop.MaxItems, field)
		assert.Equal(t, want[0], *prop.MinItems, field)
		assert.Equal(t, want[1], *prop.MaxItems, field)
	}
	assert.Equal(t, "3 to 5 verbatim quotations", s.Properties["quotes"].Description)
}

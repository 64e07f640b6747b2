// ABOUTME: Renders a digest as a markdown note with YAML frontmatter
// ABOUTME: Frontmatter carries the metadata, the body carries the prose sections

package github

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"linkdigest-api/core/domain"

	"gopkg.in/yaml.v3"
)

type frontmatter struct {
	Title    string            `yaml:"title"`
	Synopsis string            `yaml:"synopsis,omitempty"`
	Category string            `yaml:"category"`
	Tags     []string          `yaml:"tags,flow"`
	Keywords []string          `yaml:"keywords,flow"`
	Concepts domain.ConceptMap `yaml:"concepts"`
	Source   string            `yaml:"source,omitempty"`
	Created  string            `yaml:"created"`
}

// RenderMarkdown renders digest as a markdown document dated created
func RenderMarkdown(digest *domain.Digest, sourceURL string, created time.Time) ([]byte, error) {
	fm := frontmatter{
		Title:    digest.Title,
		Synopsis: digest.Synopsis,
		Category: string(digest.Category),
		Tags:     digest.Tags,
		Keywords: digest.Keywords,
		Concepts: digest.Concepts,
		Source:   sourceURL,
		Created:  created.Format("2006-01-02"),
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	buf.WriteString("---\n\n")

	fmt.Fprintf(&buf, "# %s\n\n", digest.Title)
	if digest.Synopsis != "" {
		fmt.Fprintf(&buf, "> %s\n\n", digest.Synopsis)
	}

	if len(digest.Insights) > 0 {
		buf.WriteString("## Insights\n\n")
		for _, insight := range digest.Insights {
			fmt.Fprintf(&buf, "- %s\n", insight)
		}
		buf.WriteString("\n")
	}

	if len(digest.Quotes) > 0 {
		buf.WriteString("## Quotes\n\n")
		for _, q := range digest.Quotes {
			fmt.Fprintf(&buf, "> %s\n\n", strings.ReplaceAll(q.Text, "\n", "\n> "))
			if q.Reason != "" {
				fmt.Fprintf(&buf, "%s\n\n", q.Reason)
			}
		}
	}

	if digest.Simplified != "" {
		fmt.Fprintf(&buf, "## In Plain Words\n\n%s\n\n", digest.Simplified)
	}

	if summary := strings.TrimSpace(digest.Summary); summary != "" {
		fmt.Fprintf(&buf, "%s\n", summary)
	}

	return buf.Bytes(), nil
}

// ParseFrontmatter reads the metadata block back out of a rendered note
func ParseFrontmatter(doc []byte) (map[string]interface{}, error) {
	text := string(doc)
	if !strings.HasPrefix(text, "---\n") {
		return nil, fmt.Errorf("document has no frontmatter")
	}
	end := strings.Index(text[4:], "\n---\n")
	if end < 0 {
		return nil, fmt.Errorf("frontmatter is not terminated")
	}

	meta := make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(text[4:4+end+1]), &meta); err != nil {
		return nil, fmt.Errorf("failed to decode frontmatter: %w", err)
	}
	return meta, nil
}

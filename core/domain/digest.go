// ABOUTME: Digest domain model is the structured summary produced by a language model
// ABOUTME: Provides response parsing, insight normalization and validation

package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Category is the closed set of topics a digest can be filed under
type Category string

const (
	CategoryTech         Category = "Tech"
	CategoryAI           Category = "AI"
	CategoryBusiness     Category = "Business"
	CategoryDesign       Category = "Design"
	CategoryProductivity Category = "Productivity"
	CategoryLife         Category = "Life"
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryTech,
	CategoryAI,
	CategoryBusiness,
	CategoryDesign,
	CategoryProductivity,
	CategoryLife,
}

// ParseCategory matches a category name case-insensitively
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// ConceptMap places the content in a knowledge graph along five axes
type ConceptMap struct {
	Broader      []string `json:"broader" yaml:"broader,flow"`
	Narrower     []string `json:"narrower" yaml:"narrower,flow"`
	Related      []string `json:"related" yaml:"related,flow"`
	Prerequisite []string `json:"prerequisite" yaml:"prerequisite,flow"`
	FollowUp     []string `json:"followUp" yaml:"followUp,flow"`
}

// Quote is a verbatim passage and why it matters
type Quote struct {
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Digest is the structured summary of one piece of content
type Digest struct {
	Title      string     `json:"title"`
	Synopsis   string     `json:"synopsis"`
	Slug       string     `json:"slug"`
	Category   Category   `json:"category"`
	Tags       []string   `json:"tags"`
	Keywords   []string   `json:"keywords"`
	Concepts   ConceptMap `json:"concepts"`
	Quotes     []Quote    `json:"quotes"`
	Insights   []string   `json:"insights"`
	Simplified string     `json:"simplified"`
	Summary    string     `json:"summary"`
}

// ErrEmptyResponse is returned when a backend produced no text at all
var ErrEmptyResponse = errors.New("empty model response")

var (
	codeFenceOpen  = regexp.MustCompile("(?i)^```(?:json)?\\s*\\n?")
	codeFenceClose = regexp.MustCompile("\\n?```\\s*$")
	slugInvalid    = regexp.MustCompile(`[^a-z0-9]+`)
)

// rawDigest mirrors Digest but keeps insights undecoded, since models return
// them either as plain strings or as {title, description} objects.
type rawDigest struct {
	Digest
	Insights []json.RawMessage `json:"insights"`
}

// ParseDigest decodes a model response into a validated Digest
func ParseDigest(raw string) (*Digest, error) {
	text := StripCodeFence(raw)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var rd rawDigest
	if err := json.Unmarshal([]byte(text), &rd); err != nil {
		return nil, fmt.Errorf("invalid digest JSON: %w", err)
	}

	digest := rd.Digest
	insights, err := NormalizeInsights(rd.Insights)
	if err != nil {
		return nil, err
	}
	digest.Insights = insights
	digest.Slug = Slugify(digest.Slug)
	if c, ok := ParseCategory(string(digest.Category)); ok {
		digest.Category = c
	}

	if err := digest.Validate(); err != nil {
		return nil, err
	}
	return &digest, nil
}

// StripCodeFence removes a surrounding markdown code fence, if any
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = codeFenceOpen.ReplaceAllString(s, "")
	s = codeFenceClose.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// NormalizeInsights flattens insight entries to "**title**: description" strings
func NormalizeInsights(items []json.RawMessage) ([]string, error) {
	result := make([]string, 0, len(items))
	for i, item := range items {
		var plain string
		if err := json.Unmarshal(item, &plain); err == nil {
			if plain = strings.TrimSpace(plain); plain != "" {
				result = append(result, plain)
			}
			continue
		}

		var pair struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(item, &pair); err != nil {
			return nil, fmt.Errorf("insight %d: unsupported shape: %w", i, err)
		}
		switch {
		case pair.Title != "" && pair.Description != "":
			result = append(result, fmt.Sprintf("**%s**: %s", pair.Title, pair.Description))
		case pair.Description != "":
			result = append(result, pair.Description)
		case pair.Title != "":
			result = append(result, pair.Title)
		}
	}
	return result, nil
}

// Slugify lowercases s and collapses anything outside [a-z0-9] to single hyphens
func Slugify(s string) string {
	s = slugInvalid.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// Validate checks the fields every successful digest must carry
func (d *Digest) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("digest title is empty")
	}
	if d.Slug == "" {
		return errors.New("digest slug is empty")
	}
	if _, ok := ParseCategory(string(d.Category)); !ok {
		return fmt.Errorf("unknown digest category %q", d.Category)
	}

	lists := []struct {
		name string
		n    int
	}{
		{"tags", len(d.Tags)},
		{"keywords", len(d.Keywords)},
		{"concepts.broader", len(d.Concepts.Broader)},
		{"concepts.narrower", len(d.Concepts.Narrower)},
		{"concepts.related", len(d.Concepts.Related)},
		{"concepts.prerequisite", len(d.Concepts.Prerequisite)},
		{"concepts.followUp", len(d.Concepts.FollowUp)},
		{"quotes", len(d.Quotes)},
		{"insights", len(d.Insights)},
	}
	for _, l := range lists {
		if l.n == 0 {
			return fmt.Errorf("digest %s is empty", l.name)
		}
	}
	return nil
}

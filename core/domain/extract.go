// ABOUTME: Domain model for resolved input content
// ABOUTME: Defines the text handed from extraction to summarization

package domain

// ExtractResult is the clean text an input message resolved to
type ExtractResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	// URL is the page whose text ended up in Content. It can differ from the
	// original input (an inner link of a post) and is empty for plain text.
	URL string `json:"url"`
}

// IsPlainText reports whether the result came from a non-URL input
func (r *ExtractResult) IsPlainText() bool {
	return r.URL == ""
}

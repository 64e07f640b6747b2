// ABOUTME: URL classification helpers for the extraction pipeline
// ABOUTME: Decides whether input is a web URL and whether a host belongs to a denylist

package extract

import (
	"net/url"
	"strings"
)

// IsURL reports whether text is an absolute http or https URL.
// Scheme-only forms such as "http:example.com" have no host and are treated as text.
func IsURL(text string) bool {
	u, err := url.Parse(text)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// hostname returns the lowercased host of rawURL, or "" when it does not parse
func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// hostIn reports whether host equals one of hosts or is a subdomain of one
func hostIn(host string, hosts []string) bool {
	if host == "" {
		return false
	}
	for _, h := range hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

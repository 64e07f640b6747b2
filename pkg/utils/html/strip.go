// ABOUTME: HTML utilities for turning markup into plain text
// ABOUTME: Parses with goquery so entities are decoded and link targets survive

package html

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespace = regexp.MustCompile(`\s+`)

// noise holds elements that never carry readable text
const noise = "script, style, noscript, template"

// StripHTML returns the visible text of an HTML fragment with whitespace
// collapsed. Anchors are rendered as "text (href)", or just the href when the
// text is empty or equal to it.
func StripHTML(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	doc.Find(noise).Remove()
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		text := strings.TrimSpace(a.Text())
		if text == "" || text == href {
			a.ReplaceWithHtml(" " + escape(href) + " ")
			return
		}
		a.ReplaceWithHtml(" " + escape(text) + " (" + escape(href) + ") ")
	})

	return CollapseWhitespace(doc.Text())
}

// CollapseWhitespace trims text and folds every whitespace run to one space
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(s)
}

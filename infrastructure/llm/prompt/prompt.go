// ABOUTME: Shared prompts for the summarization backends
// ABOUTME: Describes the digest JSON shape every backend must return

package prompt

import (
	"fmt"
	"strings"

	"linkdigest-api/core/domain"
)

// DefaultLanguage is used for prose fields when none is configured
const DefaultLanguage = "English"

// Range is an inclusive item count for a list field
type Range struct {
	Min int
	Max int
}

func (r Range) String() string {
	return fmt.Sprintf("%d to %d", r.Min, r.Max)
}

// Item counts requested for the digest list fields
var (
	Tags     = Range{Min: 3, Max: 5}
	Keywords = Range{Min: 3, Max: 7}
	Quotes   = Range{Min: 3, Max: 5}
	Insights = Range{Min: 3, Max: 5}
)

const systemTemplate = `Analyze the given content and produce a structured learning note. A reader should gain the key insights and a map of the surrounding knowledge from this note alone.

<instructions>
Respond with a single valid JSON object and nothing else. No markdown fences, no commentary.

1. "title": a short title capturing the core of the content, in %[1]s
2. "synopsis": one sentence stating what the content is about, in %[1]s
3. "slug": an English kebab-case slug for the file name, e.g. "understanding-react-server-components"
4. "category": exactly one of %[2]s
5. "tags": %[3]s English search tags
6. "keywords": %[4]s key terms taken directly from the content
7. "concepts": placement in a knowledge graph, each list in %[1]s
   - "broader": 1 to 3 parent concepts this content belongs to
   - "narrower": 2 to 5 sub-concepts the content covers
   - "related": 2 to 5 adjacent concepts it does not cover directly
   - "prerequisite": 1 to 3 concepts a reader should know first
   - "followUp": 1 to 3 concepts worth studying next
8. "quotes": %[5]s objects {"text": verbatim passage, "reason": why it matters}
9. "insights": %[6]s insights as {"title": short label, "description": one or two declarative sentences}
10. "simplified": the main idea explained to a newcomer in a short paragraph
11. "summary": a detailed markdown summary in %[1]s with ## section headings and bullet points, using code blocks for technical content
</instructions>

<constraints>
- Ground every field in the source. Do not add information the source does not contain.
- The five concept lists must not overlap.
- Compress the summary to 30-50%% of the source length without dropping any key argument.
</constraints>`

// System returns the system prompt asking for prose in language
func System(language string) string {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}

	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = fmt.Sprintf("%q", string(c))
	}
	return fmt.Sprintf(systemTemplate, language, strings.Join(names, ", "), Tags, Keywords, Quotes, Insights)
}

// User wraps content in the user turn
func User(content string) string {
	return "Summarize the following content:\n\n" + content
}

package parse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// lineBreakTags are rewritten into newlines before text extraction so that
// paragraph structure survives as line separators.
var lineBreakTags = regexp.MustCompile(`(?i)<br\s*/?>|<p[^>]*>|</p>`)

// CleanHTML strips markup from comment HTML, decoding entities and keeping
// paragraph and line breaks as newline separators.
func CleanHTML(html string) string {
	withBreaks := lineBreakTags.ReplaceAllString(html, "\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(withBreaks))
	var text string
	if err != nil {
		// Fall back to the raw input; a later length check still applies.
		text = withBreaks
	} else {
		text = doc.Text()
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}

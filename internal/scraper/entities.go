package scraper

import (
	"html"
	"strings"
)

// DecodeEntities replaces HTML character references in text with their
// literal Unicode code points: numeric references (&#8217;, &#x2019;) and
// named references (&frac14;, &mdash;, &amp;, ...). Text without
// references is returned unchanged, so the function is idempotent.
func DecodeEntities(text string) string {
	if !strings.ContainsRune(text, '&') {
		return text
	}
	return html.UnescapeString(text)
}

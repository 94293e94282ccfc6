package scraper

import (
	"encoding/json"
	"log"
	"strings"

	"golang.org/x/net/html"
)

const jsonLDType = "application/ld+json"

// ExtractJSONLD scans raw HTML for <script type="application/ld+json">
// blocks and parses each as a generic JSON value. Blocks appear in the
// result in document order. A block that fails to parse is counted in
// skipped and scanning continues; a single malformed block never aborts
// extraction of the rest of the page.
func ExtractJSONLD(rawHTML string) (values []interface{}, skipped int) {
	tz := html.NewTokenizer(strings.NewReader(rawHTML))
	for {
		switch tz.Next() {
		case html.ErrorToken:
			return values, skipped
		case html.StartTagToken:
			name, hasAttr := tz.TagName()
			if !strings.EqualFold(string(name), "script") || !hasAttr {
				continue
			}
			if !hasJSONLDType(tz) {
				continue
			}
			// Script content is a single raw-text token; an empty or
			// missing body is treated like any other malformed block.
			if tz.Next() != html.TextToken {
				skipped++
				continue
			}
			raw := strings.TrimSpace(string(tz.Text()))
			var v interface{}
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				log.Printf("[Scraper] Skipping malformed JSON-LD block: %v", err)
				skipped++
				continue
			}
			values = append(values, v)
		}
	}
}

func hasJSONLDType(tz *html.Tokenizer) bool {
	found := false
	for {
		key, val, more := tz.TagAttr()
		if strings.EqualFold(string(key), "type") &&
			strings.EqualFold(strings.TrimSpace(string(val)), jsonLDType) {
			found = true
		}
		if !more {
			return found
		}
	}
}

package scraper

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a recipe or category name:
// lowercase, spaces become hyphens, and anything that is not a letter,
// digit or hyphen is dropped. A name that slugs down to nothing gets the
// literal fallback "recipe".
func Slugify(name string) string {
	lowered := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	var b strings.Builder
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "recipe"
	}
	return b.String()
}

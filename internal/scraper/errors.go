package scraper

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL indicates the caller supplied a string that is not an
	// absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrNoRecipeFound indicates extraction and search completed over the
	// whole page without locating a Recipe-typed node.
	ErrNoRecipeFound = errors.New("no recipe found")
)

// FetchError reports a network or transport failure while retrieving the
// page.
type FetchError struct {
	URL    string
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a normalization-level failure on a located Recipe
// node. Per-block JSON parse failures never surface as a ParseError; they
// are recovered inside extraction.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing failed: %s", e.Reason)
}

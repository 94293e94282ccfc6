package scraper

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"
)

// DefaultUserAgent is the desktop browser identification string sent with
// page requests. Many recipe sites return stripped-down markup (or a 403)
// to clients that do not look like a browser.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"

// Fetcher retrieves the decoded text content of a page.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Client is the default Fetcher backed by net/http.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each request when HTTPClient is nil.
	Timeout time.Duration
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

// FetchPage issues a GET with browser-like headers and returns the body as
// text. Non-200 responses are not treated as failures here: some sites
// serve usable markup with odd status codes, and the extractor decides
// whether the page holds a recipe.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Reason: err.Error(), Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Reason: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, Reason: err.Error(), Err: err}
	}

	log.Printf("[Scraper] Fetched %s -> HTTP %d, %d bytes", url, resp.StatusCode, len(body))
	return string(body), nil
}

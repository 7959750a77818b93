// Package fetch retrieves job description pages and reduces them to clean visible text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is a browser-like user agent; many job boards reject obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const (
	// MinContentLength is the shortest clean text accepted as a real page.
	// Shorter output usually means an error page or an access wall.
	MinContentLength = 100
	// MaxContentLength bounds the text handed to prompt templates.
	MaxContentLength = 6000
)

// noiseSelector lists elements that never carry job description content.
const noiseSelector = "script, style, noscript, nav, footer, header, aside"

// TextFetcher returns the clean visible text of a page.
type TextFetcher interface {
	FetchCleanText(ctx context.Context, urlStr string) (string, error)
}

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ContentTooShortError signals that a page produced implausibly little text.
// The URL is likely invalid or blocked.
type ContentTooShortError struct {
	URL    string
	Length int
}

func (e *ContentTooShortError) Error() string {
	return fmt.Sprintf("scraped content too short (%d chars) for %s: URL may be invalid", e.Length, e.URL)
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher performs HTTP GETs with a bounded timeout.
type Fetcher struct {
	client *http.Client
	opts   *Options
}

// New creates a Fetcher. Zero-valued options fall back to defaults.
func New(opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Fetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// Get retrieves HTML content from a URL. Any non-2xx status is an error,
// but the partial Result is still returned for inspection.
func (f *Fetcher) Get(ctx context.Context, urlStr string) (*Result, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", f.opts.UserAgent)
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	return result, nil
}

// FetchCleanText downloads a page and returns its visible text, whitespace
// collapsed and truncated to MaxContentLength characters.
func (f *Fetcher) FetchCleanText(ctx context.Context, urlStr string) (string, error) {
	result, err := f.Get(ctx, urlStr)
	if err != nil {
		return "", err
	}

	text, err := ExtractVisibleText(result.HTML)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}

	if n := utf8.RuneCountInString(text); n < MinContentLength {
		return "", &ContentTooShortError{URL: urlStr, Length: n}
	}

	return Truncate(text, MaxContentLength), nil
}

// ExtractVisibleText removes non-content elements and returns the remaining
// text nodes joined by single spaces.
func ExtractVisibleText(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	var parts []string
	for _, node := range doc.Nodes {
		collectText(node, &parts)
	}

	return CollapseWhitespace(strings.Join(parts, " ")), nil
}

// collectText walks the tree in document order so text keeps its reading order.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// CollapseWhitespace replaces every whitespace run with a single space and trims the ends.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate cuts text to at most limit characters without splitting a rune.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}

package jobs

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/skills"
	"github.com/jonathan/job-assistant/internal/types"
)

// LinkedInName identifies the live source in logs and metrics.
const LinkedInName = "linkedin"

// Defaults for the live source.
const (
	DefaultSearchURL     = "https://www.linkedin.com/jobs/search"
	DefaultSearchTimeout = 10 * time.Second
	DefaultSearchDelay   = 500 * time.Millisecond
)

const defaultLocation = "Not specified"

// Card selectors, primary first.
const (
	cardSelector         = "div.base-card"
	cardFallbackSelector = "li"
	titleSelector        = "h3.base-search-card__title"
	linkSelector         = "a.base-card__full-link"
	companySelector      = "h4.base-search-card__subtitle"
	companyAltSelector   = "a.hidden-nested-link"
	locationSelector     = "span.job-search-card__location"
	anyLinkSelector      = "a[href]"
	snippetSelector      = "p.base-search-card__snippet"
)

var searchHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Connection":      "keep-alive",
}

// LinkedInOptions configures a LinkedInSource.
type LinkedInOptions struct {
	SearchURL string
	Timeout   time.Duration
	Delay     time.Duration
	UserAgent string
}

// LinkedInSource scrapes the public LinkedIn job search page.
// Failures are logged and yield no postings.
type LinkedInSource struct {
	searchURL *url.URL
	fetcher   *fetch.Fetcher
	delay     time.Duration
	vocab     skills.Vocabulary
	logger    *zap.Logger
}

// NewLinkedInSource creates a live source. Zero-valued options fall back to defaults;
// a negative Delay disables the pause between requests.
func NewLinkedInSource(opts LinkedInOptions, vocab skills.Vocabulary, log *zap.Logger) (*LinkedInSource, error) {
	if opts.SearchURL == "" {
		opts.SearchURL = DefaultSearchURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultSearchTimeout
	}
	if opts.Delay == 0 {
		opts.Delay = DefaultSearchDelay
	}

	u, err := url.Parse(opts.SearchURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &fetch.Error{URL: opts.SearchURL, Message: "invalid search URL", Cause: err}
	}

	return &LinkedInSource{
		searchURL: u,
		fetcher: fetch.New(&fetch.Options{
			Timeout:   opts.Timeout,
			UserAgent: opts.UserAgent,
			Headers:   searchHeaders,
		}),
		delay:  opts.Delay,
		vocab:  vocab,
		logger: logger.OrNop(log),
	}, nil
}

// Name implements Source.
func (s *LinkedInSource) Name() string { return LinkedInName }

// ListPostings fetches one search results page and parses up to maxResults cards.
func (s *LinkedInSource) ListPostings(ctx context.Context, query, location string, maxResults int) []types.JobPosting {
	searchURL := s.SearchURL(query, location)

	result, err := s.fetcher.Get(ctx, searchURL)
	s.pause(ctx)
	if err != nil {
		s.logger.Warn("job scrape failed", zap.String("url", searchURL), zap.Error(err))
		return []types.JobPosting{}
	}

	postings, err := s.parse(result.HTML, maxResults)
	if err != nil {
		s.logger.Warn("job scrape parse failed", zap.String("url", searchURL), zap.Error(err))
		return []types.JobPosting{}
	}

	s.logger.Debug("job scrape complete", zap.String("url", searchURL), zap.Int("postings", len(postings)))
	return postings
}

// SearchURL builds the search page URL for a query and optional location.
func (s *LinkedInSource) SearchURL(query, location string) string {
	var b strings.Builder
	b.WriteString(s.searchURL.String())
	b.WriteString("?keywords=")
	b.WriteString(escape(query))
	if location != "" {
		b.WriteString("&location=")
		b.WriteString(escape(location))
	}
	b.WriteString("&position=1&pageNum=0")
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (s *LinkedInSource) pause(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (s *LinkedInSource) parse(rawHTML string, maxResults int) ([]types.JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	cards := doc.Find(cardSelector)
	if cards.Length() == 0 {
		cards = doc.Find(cardFallbackSelector)
	}

	postings := []types.JobPosting{}
	cards.EachWithBreak(func(i int, card *goquery.Selection) bool {
		if maxResults > 0 && i >= maxResults {
			return false
		}
		if p, ok := s.parseCard(card); ok {
			postings = append(postings, p)
		}
		return true
	})
	return postings, nil
}

func (s *LinkedInSource) parseCard(card *goquery.Selection) (types.JobPosting, bool) {
	title := firstText(card, titleSelector, linkSelector)
	company := firstText(card, companySelector, companyAltSelector)
	if title == "" || company == "" {
		return types.JobPosting{}, false
	}

	location := firstText(card, locationSelector)
	if location == "" {
		location = defaultLocation
	}

	description := firstText(card, snippetSelector)
	if description == "" {
		description = title
	}

	return types.JobPosting{
		Title:          title,
		Company:        company,
		Location:       location,
		Description:    description,
		URL:            s.resolve(firstHref(card, linkSelector, anyLinkSelector)),
		RequiredSkills: s.vocab.Extract(description),
	}, true
}

// firstText returns the trimmed text of the first selector that matches.
func firstText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if el := card.Find(sel).First(); el.Length() > 0 {
			return fetch.CollapseWhitespace(el.Text())
		}
	}
	return ""
}

func firstHref(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if el := card.Find(sel).First(); el.Length() > 0 {
			href, _ := el.Attr("href")
			return strings.TrimSpace(href)
		}
	}
	return ""
}

// resolve makes a card link absolute against the search site's origin.
func (s *LinkedInSource) resolve(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	origin := &url.URL{Scheme: s.searchURL.Scheme, Host: s.searchURL.Host}
	return origin.ResolveReference(ref).String()
}

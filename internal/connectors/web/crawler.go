package web

import (
	"context"
	"fmt"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/logger"
	"github.com/custodia-labs/sercha-assist/internal/normalisers/html"
)

// Ensure Crawler implements the interface.
var _ driven.Crawler = (*Crawler)(nil)

// Config holds crawler configuration.
type Config struct {
	// Delay is the pause between consecutive fetches. Zero disables it.
	Delay time.Duration
}

// Crawler walks one site breadth-first. Each Crawl call owns its own
// CrawlState; nothing is shared between calls.
type Crawler struct {
	fetcher driven.PageFetcher
	delay   time.Duration
}

// New creates a crawler over fetcher.
func New(fetcher driven.PageFetcher, cfg Config) *Crawler {
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	return &Crawler{fetcher: fetcher, delay: cfg.Delay}
}

// Crawl fetches at most maxPages URLs starting at seedURL and returns a
// webpage document for every page with enough readable text. Only links
// on the seed's host are followed, and only from pages that produced a
// document. Fetch and parse failures are logged and skipped.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxPages int) ([]domain.Document, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || (seed.Scheme != "http" && seed.Scheme != "https") || seed.Host == "" {
		return nil, fmt.Errorf("%w: seed url %q", domain.ErrInvalidInput, seedURL)
	}
	if maxPages <= 0 {
		return nil, nil
	}

	logger.Section("Crawl")
	state := domain.NewCrawlState(html.CanonicalURL(seed))
	pace := newPoliteness(c.delay)
	emitted := make(map[string]bool)

	var docs []domain.Document
	attempts := 0

	for attempts < maxPages {
		next, ok := state.Pop()
		if !ok {
			break
		}
		if state.IsVisited(next) {
			continue
		}
		state.MarkVisited(next)

		if err := pace.Wait(ctx); err != nil {
			return docs, err
		}
		attempts++

		doc, links, err := c.scrape(ctx, next)
		if err != nil {
			if ctx.Err() != nil {
				return docs, ctx.Err()
			}
			logger.Warn("Skipping %s: %v", next, err)
			continue
		}
		if doc == nil {
			continue
		}

		// A redirect can land on a page already emitted.
		source := doc.Source()
		if emitted[source] {
			continue
		}
		emitted[source] = true
		state.MarkVisited(source)

		docs = append(docs, *doc)
		logger.Info("Scraped %s (%d chars)", doc.Source(), utf8.RuneCountInString(doc.Text))

		for _, link := range links {
			if u, err := url.Parse(link); err == nil && html.SameHost(seed, u) {
				state.Enqueue(link)
			}
		}
	}

	logger.Info("Crawl finished: %d pages fetched, %d documents, %d pending", attempts, len(docs), state.Pending())
	return docs, nil
}

// scrape fetches one page. It returns a nil document for pages that are
// not HTML or whose cleaned text is too short.
func (c *Crawler) scrape(ctx context.Context, pageURL string) (*domain.Document, []string, error) {
	page, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}
	if !isHTML(page.ContentType) {
		logger.Debug("Skipping %s: content type %s", pageURL, page.ContentType)
		return nil, nil, nil
	}

	finalURL := page.URL
	if finalURL == "" {
		finalURL = pageURL
	}
	base, err := url.Parse(finalURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse final url: %w", err)
	}
	finalURL = html.CanonicalURL(base)

	extracted, err := html.Extract(page.Body, base)
	if err != nil {
		return nil, nil, err
	}
	if utf8.RuneCountInString(extracted.Text) <= html.MinContentLength {
		logger.Debug("Discarding %s: not enough content", finalURL)
		return nil, nil, nil
	}

	doc := domain.NewWebpageDocument(uuid.New().String(), finalURL, extracted.Title, extracted.Text)
	return &doc, extracted.Links, nil
}

// isHTML accepts HTML media types. An empty type is given the benefit of
// the doubt.
func isHTML(contentType string) bool {
	switch contentType {
	case "", "text/html", "application/xhtml+xml":
		return true
	default:
		return false
	}
}

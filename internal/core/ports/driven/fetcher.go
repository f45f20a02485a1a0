package driven

import "context"

// FetchedPage is the raw response for one crawled URL.
type FetchedPage struct {
	// URL is the final URL after redirects.
	URL string

	// StatusCode is the HTTP status.
	StatusCode int

	// ContentType is the response media type.
	ContentType string

	// Body is the response body.
	Body []byte
}

// PageFetcher retrieves pages for the crawler.
// Any transport error or non-2xx status is returned as an error
// wrapping domain.ErrFetchFailed.
type PageFetcher interface {
	// Fetch performs one GET with the fetcher's timeout and user agent.
	Fetch(ctx context.Context, url string) (*FetchedPage, error)

	// Close releases resources such as browser processes.
	Close() error
}

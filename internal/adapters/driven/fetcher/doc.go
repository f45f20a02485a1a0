// Package fetcher holds the page fetchers used by the web crawler.
//
//   - httpfetch: a plain net/http GET, the default
//   - browser: a headless Chromium driven by go-rod, for pages that render
//     their content with JavaScript
//
// Both return driven.FetchedPage and wrap every failure in
// domain.ErrFetchFailed so the crawler can skip the page and continue.
package fetcher

// Package domain defines the core business entities for Sercha Assist.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: Text from a local file or a crawled webpage
//   - Chunk: An overlapping window of a document's text
//   - SearchResult: A chunk matched by the embedding index
//   - Answer: The final response produced by the generation cascade
//   - CrawlState: Visited set and frontier for one crawl invocation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

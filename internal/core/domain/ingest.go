package domain

// IngestOptions selects which sources an ingest run reads.
type IngestOptions struct {
	// DataDir is scanned for local documents. Empty skips local files.
	DataDir string

	// SeedURL starts the crawl. Empty skips crawling.
	SeedURL string

	// MaxPages bounds the crawl.
	MaxPages int

	// Persist stores the combined corpus in the document store.
	Persist bool
}

// IngestReport summarises one ingest run.
type IngestReport struct {
	// Documents is the combined corpus, local files first.
	Documents []Document

	// LocalFiles is the number of documents read from DataDir.
	LocalFiles int

	// Webpages is the number of documents produced by the crawl.
	Webpages int
}

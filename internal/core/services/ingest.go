package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-assist/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService gathers the corpus from the data directory and the web.
type IngestService struct {
	loader  driven.DocumentLoader
	crawler driven.Crawler
	store   driven.DocumentStore
}

// NewIngestService creates an ingest service. Any collaborator may be nil:
// a nil loader or crawler skips that source, a nil store disables caching.
func NewIngestService(loader driven.DocumentLoader, crawler driven.Crawler, store driven.DocumentStore) *IngestService {
	return &IngestService{
		loader:  loader,
		crawler: crawler,
		store:   store,
	}
}

// Ingest reads local files, then crawls. A failing source is logged and
// skipped; the run only fails when persisting the corpus fails.
func (s *IngestService) Ingest(ctx context.Context, opts domain.IngestOptions) (*domain.IngestReport, error) {
	logger.Section("Ingest")
	report := &domain.IngestReport{}

	if s.loader != nil && opts.DataDir != "" {
		docs, err := s.loader.Load(ctx, opts.DataDir)
		if err != nil {
			logger.Warn("Loading %s failed: %v", opts.DataDir, err)
		}
		report.Documents = append(report.Documents, docs...)
		report.LocalFiles = len(docs)
		logger.Info("Loaded %d local documents", len(docs))
	}

	if s.crawler != nil && opts.SeedURL != "" {
		maxPages := opts.MaxPages
		if maxPages <= 0 {
			maxPages = domain.DefaultMaxPages
		}
		docs, err := s.crawler.Crawl(ctx, opts.SeedURL, maxPages)
		if err != nil {
			logger.Warn("Crawling %s failed: %v", opts.SeedURL, err)
		}
		report.Documents = append(report.Documents, docs...)
		report.Webpages = len(docs)
		logger.Info("Scraped %d web pages", len(docs))
	}

	if opts.Persist && s.store != nil && len(report.Documents) > 0 {
		if err := s.store.ReplaceAll(ctx, report.Documents); err != nil {
			return report, fmt.Errorf("store documents: %w", err)
		}
		logger.Debug("Stored %d documents", len(report.Documents))
	}

	return report, nil
}

// Cached returns the last persisted corpus. It returns domain.ErrNotFound
// when there is no store or it is empty.
func (s *IngestService) Cached(ctx context.Context) ([]domain.Document, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}
	return docs, nil
}

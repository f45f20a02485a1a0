package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

func TestIngestService_Ingest(t *testing.T) {
	loader := &mockLoader{docs: []domain.Document{docA()}}
	crawler := &mockCrawler{docs: []domain.Document{docB()}}
	store := memory.NewDocumentStore()
	svc := NewIngestService(loader, crawler, store)
	ctx := context.Background()

	report, err := svc.Ingest(ctx, domain.IngestOptions{
		DataDir:  "data/pdfs",
		SeedURL:  "https://example.com/support",
		MaxPages: 4,
		Persist:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.Document{docA(), docB()}, report.Documents)
	assert.Equal(t, 1, report.LocalFiles)
	assert.Equal(t, 1, report.Webpages)
	assert.Equal(t, "data/pdfs", loader.dir)
	assert.Equal(t, "https://example.com/support", crawler.seed)
	assert.Equal(t, 4, crawler.maxPages)

	cached, err := svc.Cached(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.Documents, cached)
}

func TestIngestService_Ingest_SourceFailuresAreNotFatal(t *testing.T) {
	loader := &mockLoader{err: errors.New("no such directory")}
	crawler := &mockCrawler{docs: []domain.Document{docB()}, err: errors.New("seed unreachable")}
	svc := NewIngestService(loader, crawler, nil)

	report, err := svc.Ingest(context.Background(), domain.IngestOptions{
		DataDir: "missing",
		SeedURL: "https://example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, report.LocalFiles)
	assert.Equal(t, 1, report.Webpages)
	assert.Equal(t, domain.DefaultMaxPages, crawler.maxPages)
}

func TestIngestService_Ingest_SkipsUnconfiguredSources(t *testing.T) {
	loader := &mockLoader{docs: []domain.Document{docA()}}
	crawler := &mockCrawler{docs: []domain.Document{docB()}}
	svc := NewIngestService(loader, crawler, nil)

	report, err := svc.Ingest(context.Background(), domain.IngestOptions{DataDir: "data"})

	require.NoError(t, err)
	assert.Len(t, report.Documents, 1)
	assert.Empty(t, crawler.seed)
}

func TestIngestService_Ingest_WithoutPersistLeavesStoreAlone(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := NewIngestService(&mockLoader{docs: []domain.Document{docA()}}, nil, store)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, domain.IngestOptions{DataDir: "data"})
	require.NoError(t, err)

	_, err = svc.Cached(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngestService_Cached_NoStore(t *testing.T) {
	svc := NewIngestService(nil, nil, nil)

	_, err := svc.Cached(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

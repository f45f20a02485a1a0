package driven

import (
	"context"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// DocumentStore caches the last ingested corpus so an index can be
// rebuilt without re-reading files or re-crawling.
type DocumentStore interface {
	// ReplaceAll swaps the stored corpus for docs in one transaction.
	ReplaceAll(ctx context.Context, docs []domain.Document) error

	// List returns all stored documents in ingestion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get returns one document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

package driving

import (
	"context"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// AssistantService answers questions against the embedding index.
// It is the complete query surface exposed to user interfaces.
type AssistantService interface {
	// BuildIndex chunks and embeds docs, replacing any loaded index.
	// Returns the number of chunks indexed, or domain.ErrEmptyCorpus.
	BuildIndex(ctx context.Context, docs []domain.Document) (int, error)

	// LoadIndex restores a persisted index. It returns false when the
	// file is missing or unusable and the index must be rebuilt.
	LoadIndex(ctx context.Context, path string) bool

	// SaveIndex persists the current index atomically.
	SaveIndex(ctx context.Context, path string) error

	// Ask searches the index and runs the answer cascade.
	Ask(ctx context.Context, query string) (*domain.Answer, error)

	// Search returns up to k relevant chunks without generating an answer.
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)

	// Stats describes the loaded index.
	Stats() domain.IndexStats
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-assist/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// AssistantService answers questions: search, then compose, then cascade.
type AssistantService struct {
	index     *IndexService
	pipeline  driven.BatchPipeline
	cascade   *Cascade
	retrieval domain.RetrievalSettings
}

// NewAssistantService creates an assistant over an index, a chunking
// pipeline and an answer cascade.
func NewAssistantService(
	index *IndexService,
	pipeline driven.BatchPipeline,
	cascade *Cascade,
	retrieval domain.RetrievalSettings,
) *AssistantService {
	return &AssistantService{
		index:     index,
		pipeline:  pipeline,
		cascade:   cascade,
		retrieval: retrieval,
	}
}

// BuildIndex chunks docs and rebuilds the index from the result.
func (s *AssistantService) BuildIndex(ctx context.Context, docs []domain.Document) (int, error) {
	valid := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if err := d.Validate(); err != nil {
			logger.Warn("Skipping document %s: %v", d.ID, err)
			continue
		}
		valid = append(valid, d)
	}

	chunks, err := s.pipeline.ProcessAll(ctx, valid)
	if err != nil {
		return 0, fmt.Errorf("chunk documents: %w", err)
	}
	logger.Info("Split %d documents into %d chunks", len(valid), len(chunks))

	if err := s.index.Build(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// LoadIndex restores a persisted index.
func (s *AssistantService) LoadIndex(ctx context.Context, path string) bool {
	return s.index.Load(ctx, path)
}

// SaveIndex persists the current index.
func (s *AssistantService) SaveIndex(ctx context.Context, path string) error {
	return s.index.Save(ctx, path)
}

// Search returns up to k relevant chunks. Non-positive k uses the configured TopK.
func (s *AssistantService) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = s.retrieval.TopK
	}
	return s.index.Search(ctx, query, k)
}

// Ask answers query. Only a missing index is an error; a failed query
// embedding is treated as finding nothing relevant.
func (s *AssistantService) Ask(ctx context.Context, query string) (*domain.Answer, error) {
	logger.Section("Ask")
	logger.Debug("Query: %q", query)

	results, err := s.Search(ctx, query, s.retrieval.TopK)
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotBuilt) {
			return nil, err
		}
		logger.Warn("Search failed, answering without context: %v", err)
		results = nil
	}

	passage := Compose(results, s.retrieval.ContextItemChars, s.retrieval.ContextItems)
	text, tier := s.cascade.Answer(ctx, query, passage)

	sources := make([]domain.AnswerSource, 0, len(results))
	for _, r := range results {
		sources = append(sources, domain.AnswerSource{
			Text:   r.Text,
			Score:  r.Distance,
			Source: r.Source,
		})
	}

	return &domain.Answer{Text: text, Tier: tier, Sources: sources}, nil
}

// Stats describes the loaded index.
func (s *AssistantService) Stats() domain.IndexStats {
	return s.index.Stats()
}

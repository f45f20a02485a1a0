package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/logger"
)

// embedBatchSize bounds how many chunks are sent to the embedder per call.
const embedBatchSize = 64

// IndexService owns the chunk list, the embedding matrix and the vector
// index. The three are always replaced together so that row i of each
// describes the same chunk.
type IndexService struct {
	mu        sync.RWMutex
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	store     driven.IndexStore
	screen    QueryScreen
	threshold float64

	chunks     []domain.Chunk
	embeddings [][]float32
	model      string
	ready      bool
}

// NewIndexService creates an index service. A non-positive threshold
// uses domain.DefaultRelevanceThreshold.
func NewIndexService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	store driven.IndexStore,
	threshold float64,
) *IndexService {
	if threshold <= 0 {
		threshold = domain.DefaultRelevanceThreshold
	}
	return &IndexService{
		embedder:  embedder,
		index:     index,
		store:     store,
		threshold: threshold,
	}
}

// Threshold returns the relevance threshold.
func (s *IndexService) Threshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

// Build embeds every chunk and replaces the index wholesale.
func (s *IndexService) Build(ctx context.Context, chunks []domain.Chunk) error {
	logger.Section("Index Build")

	if len(chunks) == 0 {
		return domain.ErrEmptyCorpus
	}
	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	start := time.Now()
	vectors := make([][]float32, 0, len(chunks))
	for i := 0; i < len(chunks); i += embedBatchSize {
		end := min(i+embedBatchSize, len(chunks))
		texts := make([]string, 0, end-i)
		for _, c := range chunks[i:end] {
			texts = append(texts, c.Text)
		}

		batch, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed chunks %d-%d: %w", i, end, err)
		}
		if len(batch) != len(texts) {
			return fmt.Errorf("embed chunks %d-%d: got %d vectors for %d texts", i, end, len(batch), len(texts))
		}
		vectors = append(vectors, batch...)
		logger.Debug("Embedded %d/%d chunks", len(vectors), len(chunks))
	}

	dims := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dims {
			return fmt.Errorf("chunk %d: %w: got %d, want %d", i, domain.ErrDimensionMismatch, len(v), dims)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ready = false
	s.index.Reset(dims)
	if err := s.index.Add(ctx, vectors); err != nil {
		s.clear(dims)
		return fmt.Errorf("add vectors: %w", err)
	}

	s.chunks = append([]domain.Chunk(nil), chunks...)
	s.embeddings = vectors
	s.model = s.embedder.ModelName()
	s.ready = true

	logger.Info("Indexed %d chunks (%d dims) in %s", len(chunks), dims, time.Since(start).Round(time.Millisecond))
	return nil
}

// Search returns up to k chunks whose distance to query is within the
// relevance threshold, ascending by distance. A gibberish query yields an
// empty result without touching the embedder.
func (s *IndexService) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.screen.Valid(query) {
		logger.Info("Rejected query %q: no recognisable words", query)
		return []domain.SearchResult{}, nil
	}
	if !s.ready {
		return nil, domain.ErrIndexNotBuilt
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if k <= 0 {
		k = domain.DefaultTopK
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.index.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for i, hit := range hits {
		if hit.Position < 0 || hit.Position >= len(s.chunks) {
			continue
		}
		if hit.Distance > s.threshold {
			logger.Debug("Result %d filtered out: distance %.3f > threshold %.3f", i+1, hit.Distance, s.threshold)
			continue
		}
		c := s.chunks[hit.Position]
		results = append(results, domain.SearchResult{
			Text:     c.Text,
			Distance: hit.Distance,
			Source:   c.Source,
			Title:    c.Title,
		})
	}

	if len(results) == 0 {
		logger.Info("No relevant results for %q", query)
	}
	return results, nil
}

// Save writes chunks, embeddings and the serialized index to path.
func (s *IndexService) Save(ctx context.Context, path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return domain.ErrIndexNotBuilt
	}
	ann, err := s.index.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serialize index: %w", err)
	}

	snap := &driven.IndexSnapshot{
		Chunks:     s.chunks,
		Embeddings: s.embeddings,
		ANN:        ann,
		Dimensions: s.index.Dimensions(),
		Model:      s.model,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Save(ctx, path, snap); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	logger.Info("Index saved to %s", path)
	return nil
}

// Load restores an index from path. It returns false when the file is
// missing, has no serialized index, is internally inconsistent, or was built
// with different vector dimensions than the embedder produces. Checks that
// need only the snapshot leave the current index in place; a vector index
// that fails to decode leaves the service empty.
func (s *IndexService) Load(ctx context.Context, path string) bool {
	snap, ok := s.store.Load(ctx, path)
	if !ok {
		logger.Info("No usable index at %s", path)
		return false
	}
	if snap.ANN == nil {
		logger.Info("Index file %s has no vector index", path)
		return false
	}
	if len(snap.Embeddings) != 0 && len(snap.Embeddings) != len(snap.Chunks) {
		logger.Warn("Index file %s: %d chunks but %d embeddings", path, len(snap.Chunks), len(snap.Embeddings))
		return false
	}
	if s.embedder != nil && s.embedder.Dimensions() > 0 && s.embedder.Dimensions() != snap.Dimensions {
		logger.Warn("Index file %s has %d dims, embedder produces %d", path, snap.Dimensions, s.embedder.Dimensions())
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.UnmarshalBinary(snap.ANN); err != nil {
		logger.Warn("Index file %s: %v", path, err)
		s.clear(snap.Dimensions)
		return false
	}
	if s.index.Size() != len(snap.Chunks) {
		logger.Warn("Index file %s: %d chunks but %d vectors", path, len(snap.Chunks), s.index.Size())
		s.clear(snap.Dimensions)
		return false
	}

	s.chunks = snap.Chunks
	s.embeddings = snap.Embeddings
	s.model = snap.Model
	s.ready = true

	logger.Info("Loaded %d chunks from %s", len(snap.Chunks), path)
	return true
}

// clear empties all three aligned structures. Callers hold mu.
func (s *IndexService) clear(dims int) {
	s.index.Reset(dims)
	s.chunks, s.embeddings, s.model = nil, nil, ""
	s.ready = false
}

// Stats describes the current index.
func (s *IndexService) Stats() domain.IndexStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.IndexStats{
		Chunks:     len(s.chunks),
		Dimensions: s.index.Dimensions(),
		Model:      s.model,
		Ready:      s.ready,
	}
}

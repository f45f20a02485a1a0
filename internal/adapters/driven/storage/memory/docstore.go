package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// It keeps ingestion order.
type DocumentStore struct {
	mu   sync.RWMutex
	docs []domain.Document
	byID map[string]int
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{byID: make(map[string]int)}
}

// ReplaceAll swaps the stored corpus for docs.
func (s *DocumentStore) ReplaceAll(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = append([]domain.Document(nil), docs...)
	s.byID = make(map[string]int, len(docs))
	for i, d := range s.docs {
		s.byID[d.ID] = i
	}
	return nil
}

// List returns all documents in ingestion order.
func (s *DocumentStore) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Document(nil), s.docs...), nil
}

// Get returns one document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := s.docs[i]
	return &doc, nil
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

// Close is a no-op.
func (s *DocumentStore) Close() error {
	return nil
}

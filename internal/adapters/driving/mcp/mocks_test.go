package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// mockAssistant is a mock implementation of driving.AssistantService.
type mockAssistant struct {
	answer    *domain.Answer
	results   []domain.SearchResult
	stats     domain.IndexStats
	err       error
	lastQuery string
	lastK     int
}

func (m *mockAssistant) BuildIndex(_ context.Context, docs []domain.Document) (int, error) {
	return len(docs), m.err
}

func (m *mockAssistant) LoadIndex(_ context.Context, _ string) bool {
	return m.err == nil
}

func (m *mockAssistant) SaveIndex(_ context.Context, _ string) error {
	return m.err
}

func (m *mockAssistant) Ask(_ context.Context, query string) (*domain.Answer, error) {
	m.lastQuery = query
	return m.answer, m.err
}

func (m *mockAssistant) Search(_ context.Context, query string, k int) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastK = k
	return m.results, m.err
}

func (m *mockAssistant) Stats() domain.IndexStats {
	return m.stats
}

// mockIngest is a mock implementation of driving.IngestService.
type mockIngest struct {
	docs []domain.Document
	err  error
}

func (m *mockIngest) Ingest(_ context.Context, _ domain.IngestOptions) (*domain.IngestReport, error) {
	return &domain.IngestReport{Documents: m.docs}, m.err
}

func (m *mockIngest) Cached(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

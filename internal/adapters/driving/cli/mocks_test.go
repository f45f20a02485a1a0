package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driving"
)

// Ensure mocks implement the interfaces.
var (
	_ driving.AssistantService = (*mockAssistant)(nil)
	_ driving.IngestService    = (*mockIngest)(nil)
	_ driving.SettingsService  = (*mockSettings)(nil)
)

type mockAssistant struct {
	mu sync.Mutex

	loaded   bool
	answer   *domain.Answer
	askErr   error
	results  []domain.SearchResult
	buildErr error
	saveErr  error

	asked     []string
	lastK     int
	built     [][]domain.Document
	savedTo   []string
	loadCalls int
}

func (m *mockAssistant) BuildIndex(_ context.Context, docs []domain.Document) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.built = append(m.built, docs)
	if m.buildErr != nil {
		return 0, m.buildErr
	}
	m.loaded = true
	return len(docs) * 2, nil
}

func (m *mockAssistant) LoadIndex(context.Context, string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls++
	return m.loaded
}

func (m *mockAssistant) SaveIndex(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedTo = append(m.savedTo, path)
	return m.saveErr
}

func (m *mockAssistant) Ask(_ context.Context, query string) (*domain.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.asked = append(m.asked, query)
	if m.askErr != nil {
		return nil, m.askErr
	}
	return m.answer, nil
}

func (m *mockAssistant) Search(_ context.Context, _ string, k int) ([]domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastK = k
	return m.results, nil
}

func (m *mockAssistant) Stats() domain.IndexStats {
	return domain.IndexStats{Ready: m.loaded}
}

type mockIngest struct {
	mu sync.Mutex

	report *domain.IngestReport
	err    error
	cached []domain.Document

	opts []domain.IngestOptions
}

func (m *mockIngest) Ingest(_ context.Context, opts domain.IngestOptions) (*domain.IngestReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &domain.IngestReport{}, nil
	}
	return m.report, nil
}

func (m *mockIngest) Cached(context.Context) ([]domain.Document, error) {
	if len(m.cached) == 0 {
		return nil, domain.ErrNotFound
	}
	return m.cached, nil
}

type mockSettings struct {
	settings domain.Settings
	values   map[string]string

	embeddingErr error
	tierErrs     map[domain.Tier]error

	set map[string]string
}

func newMockSettings() *mockSettings {
	return &mockSettings{
		settings: domain.DefaultSettings(),
		values: map[string]string{
			"data_dir":                      domain.DefaultDataDir,
			"retrieval.relevance_threshold": "1.8",
		},
		set: make(map[string]string),
	}
}

func (m *mockSettings) Load() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Get(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return v, nil
}

func (m *mockSettings) Set(key, value string) error {
	if _, ok := m.values[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	m.values[key] = value
	m.set[key] = value
	return nil
}

func (m *mockSettings) Keys() []string {
	return []string{"data_dir", "retrieval.relevance_threshold"}
}

func (m *mockSettings) Defaults() domain.Settings {
	return domain.DefaultSettings()
}

func (m *mockSettings) ValidateEmbeddingConfig() error {
	return m.embeddingErr
}

func (m *mockSettings) ValidateTierConfig(tier domain.Tier) error {
	return m.tierErrs[tier]
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	assistant *mockAssistant
	ingest    *mockIngest
	settings  *mockSettings
	effective *domain.Settings
}

// setupTestServices installs mocks and resets command flags. The returned
// cleanup restores the previous package state.
func setupTestServices() (*testServices, func()) {
	prevAssistant, prevIngest, prevSettings := assistantService, ingestService, settingsService
	prevEffective, prevWiring := effective, wiring

	s := domain.DefaultSettings()
	s.IndexPath = "test-index.db"
	s.DataDir = "docs"
	s.Crawl.SeedURL = "https://example.com/support"
	s.Crawl.MaxPages = 4

	ts := &testServices{
		assistant: &mockAssistant{
			loaded: true,
			answer: &domain.Answer{
				Text: "Delivery trades have zero brokerage.",
				Tier: domain.TierSeq2Seq,
				Sources: []domain.AnswerSource{
					{Text: "Brokerage is zero for delivery trades.", Score: 0.25, Source: "fees.pdf"},
				},
			},
		},
		ingest:    &mockIngest{},
		settings:  newMockSettings(),
		effective: &s,
	}

	assistantService = ts.assistant
	ingestService = ts.ingest
	settingsService = ts.settings
	effective = ts.effective
	wiring = Wiring{}
	resetFlags()

	return ts, func() {
		assistantService, ingestService, settingsService = prevAssistant, prevIngest, prevSettings
		effective, wiring = prevEffective, prevWiring
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

func resetFlags() {
	askJSON = false
	searchLimit = domain.DefaultTopK
	searchJSON = false
	ingestMaxPages = 0
	ingestNoCrawl = false
	crawlMaxPages = domain.DefaultMaxPages
	crawlJSON = false
	buildOffline = false
	chatPlain = false
}

func corpus() []domain.Document {
	return []domain.Document{
		domain.NewLocalFileDocument("doc-1", "docs/fees.pdf", "fees.pdf", "pdf", "Fees",
			"Brokerage is zero for delivery trades."),
		domain.NewWebpageDocument("doc-2", "https://example.com/support/kyc", "KYC",
			"Complete your KYC with a PAN card."),
	}
}

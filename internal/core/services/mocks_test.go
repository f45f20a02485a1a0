package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	response string
	err      error
	calls    int
	prompts  []string
	opts     []driven.GenerateOptions
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockExtractor implements driven.AnswerExtractor for testing.
type mockExtractor struct {
	answer domain.ExtractedAnswer
	err    error
	calls  int
}

func (m *mockExtractor) Extract(_ context.Context, _, _ string) (domain.ExtractedAnswer, error) {
	m.calls++
	return m.answer, m.err
}

func (m *mockExtractor) ModelName() string            { return "mock-qa" }
func (m *mockExtractor) Ping(_ context.Context) error { return nil }
func (m *mockExtractor) Close() error                 { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", errors.New("unknown prompt")
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// wordEmbedder implements driven.EmbeddingService with a bag-of-words
// model over a fixed vocabulary, normalised to unit length. Texts sharing
// vocabulary words end up close in L2 distance.
type wordEmbedder struct {
	vocab    []string
	err      error
	embedded int
}

func newWordEmbedder(vocab ...string) *wordEmbedder {
	return &wordEmbedder{vocab: vocab}
}

func (m *wordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.embedded++
	vec := make([]float32, len(m.vocab))
	var norm float64
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,?!:")
		for i, v := range m.vocab {
			if v == w {
				vec[i]++
				norm++
			}
		}
	}
	if norm == 0 {
		return vec, nil
	}
	var sum float64
	for _, x := range vec {
		sum += float64(x * x)
	}
	scale := float32(1 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= scale
	}
	return vec, nil
}

func (m *wordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *wordEmbedder) Dimensions() int              { return len(m.vocab) }
func (m *wordEmbedder) ModelName() string            { return "word-embedder" }
func (m *wordEmbedder) Ping(_ context.Context) error { return nil }
func (m *wordEmbedder) Close() error                 { return nil }

// bruteIndex implements driven.VectorIndex with exhaustive squared L2 search.
type bruteIndex struct {
	dims    int
	vectors [][]float32
	addErr  error
}

func (m *bruteIndex) Reset(dims int) {
	m.dims = dims
	m.vectors = nil
}

func (m *bruteIndex) Add(_ context.Context, vectors [][]float32) error {
	if m.addErr != nil {
		return m.addErr
	}
	for _, v := range vectors {
		if len(v) != m.dims {
			return domain.ErrDimensionMismatch
		}
	}
	m.vectors = append(m.vectors, vectors...)
	return nil
}

func (m *bruteIndex) Search(_ context.Context, q []float32, k int) ([]driven.VectorHit, error) {
	hits := make([]driven.VectorHit, 0, len(m.vectors))
	for i, v := range m.vectors {
		var d float64
		for j := range v {
			diff := float64(v[j] - q[j])
			d += diff * diff
		}
		hits = append(hits, driven.VectorHit{Position: i, Distance: d})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (m *bruteIndex) Size() int       { return len(m.vectors) }
func (m *bruteIndex) Dimensions() int { return m.dims }

func (m *bruteIndex) MarshalBinary() ([]byte, error) {
	return json.Marshal(struct {
		Dims    int
		Vectors [][]float32
	}{m.dims, m.vectors})
}

func (m *bruteIndex) UnmarshalBinary(data []byte) error {
	var v struct {
		Dims    int
		Vectors [][]float32
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m.dims, m.vectors = v.Dims, v.Vectors
	return nil
}

// memIndexStore implements driven.IndexStore in memory, keyed by path.
type memIndexStore struct {
	snaps   map[string]*driven.IndexSnapshot
	saveErr error
}

func newMemIndexStore() *memIndexStore {
	return &memIndexStore{snaps: make(map[string]*driven.IndexSnapshot)}
}

func (m *memIndexStore) Save(_ context.Context, path string, snap *driven.IndexSnapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *snap
	m.snaps[path] = &cp
	return nil
}

func (m *memIndexStore) Load(_ context.Context, path string) (*driven.IndexSnapshot, bool) {
	snap, ok := m.snaps[path]
	return snap, ok
}

// chunkAll implements driven.BatchPipeline by emitting one chunk per document.
type chunkAll struct {
	err error
}

func (m *chunkAll) Process(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	if doc.Text == "" {
		return nil, nil
	}
	return []domain.Chunk{domain.ChunkOf(*doc, 0, doc.Text)}, nil
}

func (m *chunkAll) ProcessAll(ctx context.Context, docs []domain.Document) ([]domain.Chunk, error) {
	var out []domain.Chunk
	for i := range docs {
		c, err := m.Process(ctx, &docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c...)
	}
	return out, nil
}

// mockLoader implements driven.DocumentLoader for testing.
type mockLoader struct {
	docs []domain.Document
	err  error
	dir  string
}

func (m *mockLoader) Load(_ context.Context, dir string) ([]domain.Document, error) {
	m.dir = dir
	return m.docs, m.err
}

// mockCrawler implements driven.Crawler for testing.
type mockCrawler struct {
	docs     []domain.Document
	err      error
	seed     string
	maxPages int
}

func (m *mockCrawler) Crawl(_ context.Context, seed string, maxPages int) ([]domain.Document, error) {
	m.seed, m.maxPages = seed, maxPages
	return m.docs, m.err
}

// mockValidator implements driven.AIConfigValidator for testing.
type mockValidator struct {
	embedErr  error
	modelErr  error
	lastModel *domain.ModelSettings
	lastTier  domain.Tier
}

func (m *mockValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error {
	return m.embedErr
}

func (m *mockValidator) ValidateModel(tier domain.Tier, cfg *domain.ModelSettings) error {
	m.lastTier = tier
	m.lastModel = cfg
	return m.modelErr
}

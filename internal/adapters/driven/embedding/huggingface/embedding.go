// Package huggingface provides an embedding service adapter using the
// Hugging Face feature-extraction pipeline.
package huggingface

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/hfinference"
	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultModel produces 384-dimensional sentence embeddings.
const DefaultModel = "sentence-transformers/all-MiniLM-L6-v2"

// Config holds configuration for the embedding service.
type Config struct {
	hfinference.Config

	// Model is the sentence-transformers model (default: all-MiniLM-L6-v2).
	Model string

	// Dimensions is the expected vector size (default: 384).
	Dimensions int
}

// EmbeddingService generates embeddings with a hosted sentence-transformers model.
type EmbeddingService struct {
	client     *hfinference.Client
	model      string
	dimensions int
}

type featureRequest struct {
	Inputs  []string       `json:"inputs"`
	Options map[string]any `json:"options,omitempty"`
}

// NewEmbeddingService creates a new Hugging Face embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = domain.DefaultEmbeddingDims
	}
	return &EmbeddingService{
		client:     hfinference.New(cfg.Config),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch sends all texts in one request. The model must return
// pooled sentence vectors, one per input.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var out [][]float32
	req := featureRequest{Inputs: texts, Options: map[string]any{"wait_for_model": true}}
	if err := s.client.Infer(ctx, s.model, "feature-extraction", req, &out); err != nil {
		return nil, err
	}
	if len(out) != len(texts) {
		return nil, fmt.Errorf("huggingface: got %d embeddings for %d texts", len(out), len(texts))
	}
	for i, v := range out {
		if len(v) != s.dimensions {
			return nil, fmt.Errorf("huggingface: embedding %d: %w: got %d, want %d", i, domain.ErrDimensionMismatch, len(v), s.dimensions)
		}
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping embeds a single word.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	_, err := s.Embed(ctx, "ping")
	return err
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

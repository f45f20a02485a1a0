// Package huggingface provides the extractive question-answering adapter
// backed by a hosted SQuAD model.
package huggingface

import (
	"context"
	"strings"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/hfinference"
	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.AnswerExtractor = (*Extractor)(nil)

// DefaultModel is a distilled SQuAD model.
const DefaultModel = "distilbert-base-cased-distilled-squad"

// Config holds configuration for the extractor.
type Config struct {
	hfinference.Config

	// Model is the question-answering model (default: distilbert SQuAD).
	Model string
}

// Extractor finds answer spans with the question-answering pipeline.
type Extractor struct {
	client *hfinference.Client
	model  string
}

type qaInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type qaRequest struct {
	Inputs qaInputs `json:"inputs"`
}

type qaResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

// NewExtractor creates an extractor.
func NewExtractor(cfg Config) *Extractor {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Extractor{client: hfinference.New(cfg.Config), model: cfg.Model}
}

// Extract returns the best span for question within passage.
func (e *Extractor) Extract(ctx context.Context, question, passage string) (domain.ExtractedAnswer, error) {
	var resp qaResponse
	req := qaRequest{Inputs: qaInputs{Question: question, Context: passage}}
	if err := e.client.Infer(ctx, e.model, "question-answering", req, &resp); err != nil {
		return domain.ExtractedAnswer{}, err
	}
	return domain.ExtractedAnswer{Text: strings.TrimSpace(resp.Answer), Score: resp.Score}, nil
}

// ModelName returns the name of the QA model.
func (e *Extractor) ModelName() string {
	return e.model
}

// Ping answers a trivial question.
func (e *Extractor) Ping(ctx context.Context) error {
	_, err := e.Extract(ctx, "What is this?", "This is a test.")
	return err
}

// Close releases resources.
func (e *Extractor) Close() error {
	return nil
}

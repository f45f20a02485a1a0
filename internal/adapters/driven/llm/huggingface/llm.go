// Package huggingface provides an LLM service adapter for hosted
// text-generation and text2text-generation models.
package huggingface

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/hfinference"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is a small instruction-tuned seq2seq model.
const DefaultModel = "google/flan-t5-small"

// Config holds configuration for the Hugging Face LLM service.
type Config struct {
	hfinference.Config

	// Model is the model repository (default: google/flan-t5-small).
	Model string
}

// LLMService generates text with a hosted model. Both causal and seq2seq
// models answer on the bare model endpoint with the same response shape.
type LLMService struct {
	client *hfinference.Client
	model  string
}

type generateRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters parameters     `json:"parameters"`
	Options    map[string]any `json:"options,omitempty"`
}

type parameters struct {
	MaxNewTokens int      `json:"max_new_tokens,omitempty"`
	Temperature  float64  `json:"temperature,omitempty"`
	NumBeams     int      `json:"num_beams,omitempty"`
	DoSample     bool     `json:"do_sample"`
	Stop         []string `json:"stop,omitempty"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

// NewLLMService creates a new Hugging Face LLM service.
func NewLLMService(cfg Config) *LLMService {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &LLMService{client: hfinference.New(cfg.Config), model: cfg.Model}
}

// Generate produces text from a prompt. A positive temperature enables
// sampling; NumBeams requests beam search.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	req := generateRequest{
		Inputs: prompt,
		Parameters: parameters{
			MaxNewTokens: opts.MaxTokens,
			Temperature:  opts.Temperature,
			NumBeams:     opts.NumBeams,
			DoSample:     opts.Temperature > 0,
			Stop:         opts.StopWords,
		},
		Options: map[string]any{"wait_for_model": true},
	}

	var out []generation
	if err := s.client.Infer(ctx, s.model, "", req, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", fmt.Errorf("huggingface: no generation returned")
	}
	return out[0].GeneratedText, nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping generates a few tokens.
func (s *LLMService) Ping(ctx context.Context) error {
	_, err := s.Generate(ctx, "ping", driven.GenerateOptions{MaxTokens: 1})
	return err
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}

// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService generates text from a prompt.
// Each generative tier of the answer cascade holds its own LLMService;
// a nil service means the tier is unavailable.
//
// Implementations may include:
//   - Hugging Face inference (flan-t5, distilgpt2)
//   - OpenAI, Anthropic, Gemini (cloud)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	// A failed ping at startup disables the tier.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// NumBeams requests beam search where the backend supports it.
	NumBeams int

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}

package driven

import (
	"context"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// AnswerExtractor finds an answer span inside a context passage.
// It backs the extractive tier of the answer cascade.
type AnswerExtractor interface {
	// Extract returns the best span for question within context,
	// with the model's confidence score.
	Extract(ctx context.Context, question, context string) (domain.ExtractedAnswer, error)

	// ModelName returns the name of the QA model.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

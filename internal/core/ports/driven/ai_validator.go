package driven

import "github.com/custodia-labs/sercha-assist/internal/core/domain"

// AIConfigValidator validates AI provider configurations.
// Implementations verify that configurations are valid by testing connectivity
// to the underlying AI services.
type AIConfigValidator interface {
	// ValidateEmbedding validates an embedding configuration by pinging the provider.
	// Returns nil if configuration is valid or not configured.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateModel validates the model behind a cascade tier by pinging the
	// provider with the tier's kind of request.
	// Returns nil if configuration is valid or not configured.
	ValidateModel(tier domain.Tier, config *domain.ModelSettings) error
}

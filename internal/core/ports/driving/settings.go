package driving

import "github.com/custodia-labs/sercha-assist/internal/core/domain"

// SettingsService manages application settings.
// Keys use dot notation ("retrieval.relevance_threshold").
type SettingsService interface {
	// Load returns the effective settings: defaults overlaid with stored
	// values, API keys filled from the environment when not stored.
	Load() (*domain.Settings, error)

	// Get returns one setting formatted for display.
	Get(key string) (string, error)

	// Set parses, validates and persists one setting.
	Set(key, value string) error

	// Keys returns every settable key in display order.
	Keys() []string

	// Defaults returns the built-in settings.
	Defaults() domain.Settings

	// ValidateEmbeddingConfig pings the configured embedding provider.
	ValidateEmbeddingConfig() error

	// ValidateTierConfig pings the model behind one generation tier.
	ValidateTierConfig(tier domain.Tier) error
}

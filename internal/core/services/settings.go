package services

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// apiKeyEnv maps cloud providers to the environment variable holding their key.
//
//nolint:gosec // G101: These are variable names, not credentials.
var apiKeyEnv = map[domain.AIProvider]string{
	domain.AIProviderOpenAI:      "OPENAI_API_KEY",
	domain.AIProviderAnthropic:   "ANTHROPIC_API_KEY",
	domain.AIProviderHuggingFace: "HF_TOKEN",
	domain.AIProviderGemini:      "GEMINI_API_KEY",
}

// setting binds a config key to a field of domain.Settings.
// field returns a pointer to one of string, int, float64, time.Duration or domain.AIProvider.
type setting struct {
	key      string
	field    func(*domain.Settings) any
	validate func(any) error
	secret   bool
	escaped  bool
}

var settingsTable = []setting{
	{key: "data_dir", field: func(s *domain.Settings) any { return &s.DataDir }},
	{key: "index_path", field: func(s *domain.Settings) any { return &s.IndexPath }, validate: nonEmpty},
	{key: "store_path", field: func(s *domain.Settings) any { return &s.StorePath }, validate: nonEmpty},

	{key: "embedding.provider", field: func(s *domain.Settings) any { return &s.Embedding.Provider }, validate: embeddingProvider},
	{key: "embedding.model", field: func(s *domain.Settings) any { return &s.Embedding.Model }, validate: nonEmpty},
	{key: "embedding.base_url", field: func(s *domain.Settings) any { return &s.Embedding.BaseURL }, validate: optionalURL},
	{key: "embedding.api_key", field: func(s *domain.Settings) any { return &s.Embedding.APIKey }, secret: true},
	{key: "embedding.dimensions", field: func(s *domain.Settings) any { return &s.Embedding.Dimensions }, validate: positive},

	{key: "generation.max_tokens", field: func(s *domain.Settings) any { return &s.Generation.MaxTokens }, validate: positive},
	{key: "generation.seq2seq.provider", field: func(s *domain.Settings) any { return &s.Generation.Seq2Seq.Provider }, validate: tierProvider},
	{key: "generation.seq2seq.model", field: func(s *domain.Settings) any { return &s.Generation.Seq2Seq.Model }},
	{key: "generation.seq2seq.base_url", field: func(s *domain.Settings) any { return &s.Generation.Seq2Seq.BaseURL }, validate: optionalURL},
	{key: "generation.seq2seq.api_key", field: func(s *domain.Settings) any { return &s.Generation.Seq2Seq.APIKey }, secret: true},
	{key: "generation.causal.provider", field: func(s *domain.Settings) any { return &s.Generation.Causal.Provider }, validate: tierProvider},
	{key: "generation.causal.model", field: func(s *domain.Settings) any { return &s.Generation.Causal.Model }},
	{key: "generation.causal.base_url", field: func(s *domain.Settings) any { return &s.Generation.Causal.BaseURL }, validate: optionalURL},
	{key: "generation.causal.api_key", field: func(s *domain.Settings) any { return &s.Generation.Causal.APIKey }, secret: true},
	{key: "generation.extractive.provider", field: func(s *domain.Settings) any { return &s.Generation.Extractive.Provider }, validate: extractiveProvider},
	{key: "generation.extractive.model", field: func(s *domain.Settings) any { return &s.Generation.Extractive.Model }},
	{key: "generation.extractive.base_url", field: func(s *domain.Settings) any { return &s.Generation.Extractive.BaseURL }, validate: optionalURL},
	{key: "generation.extractive.api_key", field: func(s *domain.Settings) any { return &s.Generation.Extractive.APIKey }, secret: true},

	{key: "retrieval.top_k", field: func(s *domain.Settings) any { return &s.Retrieval.TopK }, validate: positive},
	{key: "retrieval.relevance_threshold", field: func(s *domain.Settings) any { return &s.Retrieval.RelevanceThreshold }, validate: positive},
	{key: "retrieval.context_items", field: func(s *domain.Settings) any { return &s.Retrieval.ContextItems }, validate: positive},
	{key: "retrieval.context_item_chars", field: func(s *domain.Settings) any { return &s.Retrieval.ContextItemChars }, validate: positive},

	{key: "crawl.seed_url", field: func(s *domain.Settings) any { return &s.Crawl.SeedURL }, validate: optionalURL},
	{key: "crawl.max_pages", field: func(s *domain.Settings) any { return &s.Crawl.MaxPages }, validate: positive},
	{key: "crawl.delay", field: func(s *domain.Settings) any { return &s.Crawl.Delay }, validate: nonNegative},
	{key: "crawl.timeout", field: func(s *domain.Settings) any { return &s.Crawl.Timeout }, validate: positive},
	{key: "crawl.user_agent", field: func(s *domain.Settings) any { return &s.Crawl.UserAgent }, validate: nonEmpty},
	{key: "crawl.fetcher", field: func(s *domain.Settings) any { return &s.Crawl.Fetcher }, validate: fetcherName},

	{key: "chunking.size", field: func(s *domain.Settings) any { return &s.Chunking.Size }, validate: positive},
	{key: "chunking.overlap", field: func(s *domain.Settings) any { return &s.Chunking.Overlap }, validate: nonNegative},
	{key: "chunking.separator", field: func(s *domain.Settings) any { return &s.Chunking.Separator }, validate: nonEmpty, escaped: true},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
// The aiValidator parameter is optional (can be nil).
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Load returns defaults overlaid with stored values. Stored values of the
// wrong type are ignored. Empty API keys are taken from the environment.
func (s *SettingsService) Load() (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	for _, st := range settingsTable {
		raw, ok := s.configStore.Get(st.key)
		if !ok {
			continue
		}
		_ = assign(st.field(&settings), raw)
	}

	for _, m := range []*domain.ModelSettings{
		&settings.Embedding.ModelSettings,
		&settings.Generation.Seq2Seq,
		&settings.Generation.Causal,
		&settings.Generation.Extractive,
	} {
		if m.APIKey == "" {
			if env, ok := apiKeyEnv[m.Provider]; ok {
				m.APIKey = s.getenv(env)
			}
		}
	}

	return &settings, nil
}

// Get returns one effective setting as text. Secrets are masked.
func (s *SettingsService) Get(key string) (string, error) {
	st, ok := lookupSetting(key)
	if !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Load()
	if err != nil {
		return "", err
	}

	value := format(st.field(settings))
	switch {
	case st.secret && value != "":
		return "********", nil
	case st.escaped:
		q := strconv.Quote(value)
		return q[1 : len(q)-1], nil
	}
	return value, nil
}

// Set parses value for key, validates it and persists it.
func (s *SettingsService) Set(key, value string) error {
	st, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if st.escaped {
		unquoted, err := strconv.Unquote(`"` + value + `"`)
		if err != nil {
			return fmt.Errorf("%w: %s: bad escape in %q", domain.ErrInvalidInput, key, value)
		}
		value = unquoted
	}

	var scratch domain.Settings
	field := st.field(&scratch)
	if err := parseInto(field, value); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if st.validate != nil {
		if err := st.validate(field); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
	}

	if err := s.configStore.Set(key, storable(field)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsTable))
	for i, st := range settingsTable {
		keys[i] = st.key
	}
	return keys
}

// Defaults returns the built-in settings.
func (s *SettingsService) Defaults() domain.Settings {
	return domain.DefaultSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Load()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateTierConfig validates the model behind a generative or extractive tier.
func (s *SettingsService) ValidateTierConfig(tier domain.Tier) error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Load()
	if err != nil {
		return err
	}

	switch tier {
	case domain.TierSeq2Seq:
		return s.aiValidator.ValidateModel(tier, &settings.Generation.Seq2Seq)
	case domain.TierCausal:
		return s.aiValidator.ValidateModel(tier, &settings.Generation.Causal)
	case domain.TierExtractive:
		return s.aiValidator.ValidateModel(tier, &settings.Generation.Extractive)
	default:
		return fmt.Errorf("%w: tier %q has no model", domain.ErrInvalidInput, tier)
	}
}

func lookupSetting(key string) (setting, bool) {
	for _, st := range settingsTable {
		if st.key == key {
			return st, true
		}
	}
	return setting{}, false
}

// assign stores a raw config value into field, converting TOML types.
func assign(field, raw any) error {
	switch f := field.(type) {
	case *string:
		v, ok := raw.(string)
		if !ok {
			return fmt.Errorf("want string, got %T", raw)
		}
		*f = v
	case *domain.AIProvider:
		v, ok := raw.(string)
		if !ok {
			return fmt.Errorf("want string, got %T", raw)
		}
		*f = domain.AIProvider(v)
	case *int:
		switch v := raw.(type) {
		case int64:
			*f = int(v)
		case int:
			*f = v
		default:
			return fmt.Errorf("want integer, got %T", raw)
		}
	case *float64:
		switch v := raw.(type) {
		case float64:
			*f = v
		case int64:
			*f = float64(v)
		case int:
			*f = float64(v)
		default:
			return fmt.Errorf("want number, got %T", raw)
		}
	case *time.Duration:
		v, ok := raw.(string)
		if !ok {
			return fmt.Errorf("want duration string, got %T", raw)
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*f = d
	default:
		return fmt.Errorf("unsupported field type %T", field)
	}
	return nil
}

// parseInto parses text into field.
func parseInto(field any, text string) error {
	switch f := field.(type) {
	case *string:
		*f = text
	case *domain.AIProvider:
		*f = domain.AIProvider(text)
	case *int:
		v, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("not an integer: %q", text)
		}
		*f = v
	case *float64:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", text)
		}
		*f = v
	case *time.Duration:
		d, err := time.ParseDuration(text)
		if err != nil {
			return fmt.Errorf("not a duration: %q", text)
		}
		*f = d
	default:
		return fmt.Errorf("unsupported field type %T", field)
	}
	return nil
}

// storable converts field to the value written to the config store.
func storable(field any) any {
	switch f := field.(type) {
	case *string:
		return *f
	case *domain.AIProvider:
		return f.String()
	case *int:
		return *f
	case *float64:
		return *f
	case *time.Duration:
		return f.String()
	default:
		return nil
	}
}

func format(field any) string {
	switch f := field.(type) {
	case *string:
		return *f
	case *domain.AIProvider:
		return f.String()
	case *int:
		return strconv.Itoa(*f)
	case *float64:
		return strconv.FormatFloat(*f, 'g', -1, 64)
	case *time.Duration:
		return f.String()
	default:
		return ""
	}
}

// Validators receive the field pointer after parsing.

func nonEmpty(field any) error {
	if p, ok := field.(*string); ok && *p == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

func positive(field any) error {
	switch f := field.(type) {
	case *int:
		if *f <= 0 {
			return fmt.Errorf("must be positive")
		}
	case *float64:
		if *f <= 0 {
			return fmt.Errorf("must be positive")
		}
	case *time.Duration:
		if *f <= 0 {
			return fmt.Errorf("must be positive")
		}
	}
	return nil
}

func nonNegative(field any) error {
	switch f := field.(type) {
	case *int:
		if *f < 0 {
			return fmt.Errorf("must not be negative")
		}
	case *time.Duration:
		if *f < 0 {
			return fmt.Errorf("must not be negative")
		}
	}
	return nil
}

func optionalURL(field any) error {
	p, ok := field.(*string)
	if !ok || *p == "" {
		return nil
	}
	u, err := url.Parse(*p)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("not an http(s) URL: %q", *p)
	}
	return nil
}

func embeddingProvider(field any) error {
	p := *field.(*domain.AIProvider)
	for _, valid := range domain.AllEmbeddingProviders() {
		if p == valid {
			return nil
		}
	}
	return fmt.Errorf("provider %q does not support embeddings", p)
}

func tierProvider(field any) error {
	p := *field.(*domain.AIProvider)
	if p == domain.AIProviderNone {
		return nil
	}
	for _, valid := range domain.AllLLMProviders() {
		if p == valid {
			return nil
		}
	}
	return fmt.Errorf("provider %q does not support generation", p)
}

func extractiveProvider(field any) error {
	p := *field.(*domain.AIProvider)
	if p == domain.AIProviderNone || p == domain.AIProviderHuggingFace {
		return nil
	}
	return fmt.Errorf("provider %q does not support extractive QA", p)
}

func fetcherName(field any) error {
	switch *field.(*string) {
	case "http", "browser":
		return nil
	default:
		return fmt.Errorf("fetcher must be http or browser")
	}
}

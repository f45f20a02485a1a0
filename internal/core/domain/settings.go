package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderHuggingFace is the Hugging Face inference API.
	AIProviderHuggingFace AIProvider = "huggingface"

	// AIProviderGemini is Google's Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderNone disables a cascade tier.
	AIProviderNone AIProvider = "none"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderHuggingFace, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
// Hugging Face accepts anonymous calls at a lower rate limit.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderHuggingFace:
		return "Hugging Face Inference (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderNone:
		return "Disabled"
	default:
		return unknownDescription
	}
}

// ModelSettings configures one model endpoint.
type ModelSettings struct {
	// Provider is the service provider.
	Provider AIProvider

	// Model is the model name.
	Model string

	// BaseURL is the API endpoint. Empty uses the provider default.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the provider is set up.
func (m ModelSettings) IsConfigured() bool {
	if !m.Provider.IsValid() {
		return false
	}
	if m.Provider.RequiresAPIKey() && m.APIKey == "" {
		return false
	}
	return true
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	ModelSettings

	// Dimensions is the expected vector size.
	Dimensions int
}

// GenerationSettings holds the model for each cascade tier.
// A tier whose provider is unconfigured or unreachable is skipped.
type GenerationSettings struct {
	// Seq2Seq is the primary sequence-to-sequence model.
	Seq2Seq ModelSettings

	// Causal is the secondary continuation model.
	Causal ModelSettings

	// Extractive is the extractive question-answering model.
	Extractive ModelSettings

	// MaxTokens bounds generated output for the generative tiers.
	MaxTokens int
}

// RetrievalSettings holds query-time search configuration.
type RetrievalSettings struct {
	// TopK is the number of nearest neighbours requested.
	TopK int

	// RelevanceThreshold drops results with a larger distance. Smaller is stricter.
	RelevanceThreshold float64

	// ContextItems is how many results the compositor uses.
	ContextItems int

	// ContextItemChars is the per-result truncation length.
	ContextItemChars int
}

// CrawlSettings holds web crawler configuration.
type CrawlSettings struct {
	// SeedURL is where the crawl starts. Empty disables crawling.
	SeedURL string

	// MaxPages bounds the number of fetch attempts.
	MaxPages int

	// Delay is the politeness pause between fetches.
	Delay time.Duration

	// Timeout bounds each fetch.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Fetcher selects the page fetcher: "http" or "browser".
	Fetcher string
}

// ChunkSettings holds chunker configuration.
type ChunkSettings struct {
	// Size is the maximum chunk length in characters.
	Size int

	// Overlap is the number of characters shared by consecutive chunks.
	Overlap int

	// Separator is the preferred break string.
	Separator string
}

// Settings holds all application settings.
type Settings struct {
	// DataDir is the directory scanned for local documents.
	DataDir string

	// IndexPath is where the persisted index is written.
	IndexPath string

	// StorePath is the document catalog database.
	StorePath string

	Embedding  EmbeddingSettings
	Generation GenerationSettings
	Retrieval  RetrievalSettings
	Crawl      CrawlSettings
	Chunking   ChunkSettings
}

// Default values shared by settings and services.
const (
	DefaultDataDir            = "data/pdfs"
	DefaultIndexFile          = "vector_store.db"
	DefaultStoreFile          = "documents.db"
	DefaultSeedURL            = "https://www.angelone.in/support"
	DefaultMaxPages           = 10
	DefaultCrawlDelay         = time.Second
	DefaultCrawlTimeout       = 10 * time.Second
	DefaultUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultChunkSize          = 1500
	DefaultChunkOverlap       = 200
	DefaultChunkSeparator     = "\n"
	DefaultEmbeddingDims      = 384
	DefaultTopK               = 3
	DefaultRelevanceThreshold = 1.8
	DefaultContextItems       = 3
	DefaultContextItemChars   = 250
	DefaultMaxTokens          = 150
)

// DefaultSettings returns settings matching the reference deployment:
// MiniLM embeddings through local Ollama, flan-t5 and distilgpt2 for the
// generative tiers and DistilBERT for extractive QA on Hugging Face.
func DefaultSettings() Settings {
	return Settings{
		DataDir:   DefaultDataDir,
		IndexPath: DefaultIndexFile,
		StorePath: DefaultStoreFile,
		Embedding: EmbeddingSettings{
			ModelSettings: ModelSettings{
				Provider: AIProviderOllama,
				Model:    DefaultEmbeddingModels()[AIProviderOllama],
			},
			Dimensions: DefaultEmbeddingDims,
		},
		Generation: GenerationSettings{
			Seq2Seq: ModelSettings{
				Provider: AIProviderHuggingFace,
				Model:    "google/flan-t5-small",
			},
			Causal: ModelSettings{
				Provider: AIProviderHuggingFace,
				Model:    "distilgpt2",
			},
			Extractive: ModelSettings{
				Provider: AIProviderHuggingFace,
				Model:    "distilbert-base-cased-distilled-squad",
			},
			MaxTokens: DefaultMaxTokens,
		},
		Retrieval: RetrievalSettings{
			TopK:               DefaultTopK,
			RelevanceThreshold: DefaultRelevanceThreshold,
			ContextItems:       DefaultContextItems,
			ContextItemChars:   DefaultContextItemChars,
		},
		Crawl: CrawlSettings{
			SeedURL:   DefaultSeedURL,
			MaxPages:  DefaultMaxPages,
			Delay:     DefaultCrawlDelay,
			Timeout:   DefaultCrawlTimeout,
			UserAgent: DefaultUserAgent,
			Fetcher:   "http",
		},
		Chunking: ChunkSettings{
			Size:      DefaultChunkSize,
			Overlap:   DefaultChunkOverlap,
			Separator: DefaultChunkSeparator,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderHuggingFace,
		AIProviderGemini,
	}
}

// AllLLMProviders returns providers that support text generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderHuggingFace,
		AIProviderGemini,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
// Every default produces 384-dimensional vectors.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:      "all-minilm",
		AIProviderOpenAI:      "text-embedding-3-small",
		AIProviderHuggingFace: "sentence-transformers/all-MiniLM-L6-v2",
		AIProviderGemini:      "gemini-embedding-001",
	}
}

// DefaultLLMModels returns default models for each generation provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:      "llama3.2",
		AIProviderOpenAI:      "gpt-4o-mini",
		AIProviderAnthropic:   "claude-3-5-haiku-latest",
		AIProviderHuggingFace: "google/flan-t5-small",
		AIProviderGemini:      "gemini-2.0-flash",
	}
}

// EmbeddingDimensions returns the native vector dimensions for known models.
// Providers that support truncation (OpenAI, Gemini) are asked for the
// configured dimensions instead.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		"all-minilm":                             384,
		"nomic-embed-text":                       768,
		"mxbai-embed-large":                      1024,
		"sentence-transformers/all-MiniLM-L6-v2": 384,
		"text-embedding-3-small":                 1536,
		"text-embedding-3-large":                 3072,
		"gemini-embedding-001":                   3072,
	}
}

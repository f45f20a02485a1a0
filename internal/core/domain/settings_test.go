package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{name: "ollama", provider: AIProviderOllama, expected: true},
		{name: "openai", provider: AIProviderOpenAI, expected: true},
		{name: "anthropic", provider: AIProviderAnthropic, expected: true},
		{name: "huggingface", provider: AIProviderHuggingFace, expected: true},
		{name: "gemini", provider: AIProviderGemini, expected: true},
		{name: "none is not a provider", provider: AIProviderNone, expected: false},
		{name: "empty", provider: AIProvider(""), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestModelSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings ModelSettings
		expected bool
	}{
		{name: "ollama needs no key", settings: ModelSettings{Provider: AIProviderOllama}, expected: true},
		{name: "huggingface needs no key", settings: ModelSettings{Provider: AIProviderHuggingFace}, expected: true},
		{name: "openai without key", settings: ModelSettings{Provider: AIProviderOpenAI}, expected: false},
		{name: "openai with key", settings: ModelSettings{Provider: AIProviderOpenAI, APIKey: "sk"}, expected: true},
		{name: "disabled tier", settings: ModelSettings{Provider: AIProviderNone}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, 1500, s.Chunking.Size)
	assert.Equal(t, 200, s.Chunking.Overlap)
	assert.Equal(t, "\n", s.Chunking.Separator)
	assert.Equal(t, 384, s.Embedding.Dimensions)
	assert.Equal(t, 3, s.Retrieval.TopK)
	assert.InDelta(t, 1.8, s.Retrieval.RelevanceThreshold, 1e-9)
	assert.Equal(t, 10, s.Crawl.MaxPages)
	assert.Equal(t, 10*time.Second, s.Crawl.Timeout)
	assert.Equal(t, DefaultUserAgent, s.Crawl.UserAgent)
	assert.Equal(t, EmbeddingDimensions()[s.Embedding.Model], s.Embedding.Dimensions)
}

func TestAIProvider_Description(t *testing.T) {
	for _, p := range AllLLMProviders() {
		assert.NotEqual(t, unknownDescription, p.Description(), p)
	}
	assert.Equal(t, unknownDescription, AIProvider("x").Description())
}

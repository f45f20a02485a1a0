package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateEmbedding(t *testing.T) {
	server := fakeProviders(t)
	v := NewConfigValidator()

	tests := []struct {
		name    string
		config  *domain.EmbeddingSettings
		wantErr bool
	}{
		{name: "nil config", config: nil},
		{name: "unconfigured provider", config: &domain.EmbeddingSettings{ModelSettings: domain.ModelSettings{Model: "x"}}},
		{
			name:   "reachable ollama",
			config: &domain.EmbeddingSettings{ModelSettings: domain.ModelSettings{Provider: domain.AIProviderOllama, BaseURL: server.URL}},
		},
		{
			name:    "unreachable ollama",
			config:  &domain.EmbeddingSettings{ModelSettings: domain.ModelSettings{Provider: domain.AIProviderOllama, BaseURL: unreachableURL(t)}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateEmbedding(tc.config)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfigValidator_ValidateModel(t *testing.T) {
	server := fakeProviders(t)
	v := NewConfigValidator()

	extractive := &domain.ModelSettings{Provider: domain.AIProviderHuggingFace, Model: "squad", BaseURL: server.URL}
	causal := &domain.ModelSettings{Provider: domain.AIProviderHuggingFace, Model: "distilgpt2", BaseURL: server.URL}

	assert.NoError(t, v.ValidateModel(domain.TierExtractive, extractive))
	assert.NoError(t, v.ValidateModel(domain.TierCausal, causal))
	assert.Error(t, v.ValidateModel(domain.TierCausal, extractive), "a QA model does not answer generation requests")
	assert.ErrorIs(t, v.ValidateModel(domain.TierKeyword, causal), domain.ErrInvalidInput)
	assert.NoError(t, v.ValidateModel(domain.TierSeq2Seq, nil))
}

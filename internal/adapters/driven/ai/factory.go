// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	geminiembed "github.com/custodia-labs/sercha-assist/internal/adapters/driven/embedding/gemini"
	hfembed "github.com/custodia-labs/sercha-assist/internal/adapters/driven/embedding/huggingface"
	ollamaembed "github.com/custodia-labs/sercha-assist/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/sercha-assist/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/hfinference"
	anthropicllm "github.com/custodia-labs/sercha-assist/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/sercha-assist/internal/adapters/driven/llm/gemini"
	hfllm "github.com/custodia-labs/sercha-assist/internal/adapters/driven/llm/huggingface"
	ollamallm "github.com/custodia-labs/sercha-assist/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/sercha-assist/internal/adapters/driven/llm/openai"
	hfqa "github.com/custodia-labs/sercha-assist/internal/adapters/driven/qa/huggingface"
	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Models holds the services behind the answer cascade.
// A nil tier is unavailable and is skipped by the cascade.
type Models struct {
	Embedding  driven.EmbeddingService
	Seq2Seq    driven.LLMService
	Causal     driven.LLMService
	Extractive driven.AnswerExtractor
	Warnings   []string // Tiers that were disabled and why.
}

// Close releases all resources held by Models.
func (m *Models) Close() {
	if m.Embedding != nil {
		m.Embedding.Close()
	}
	if m.Seq2Seq != nil {
		m.Seq2Seq.Close()
	}
	if m.Causal != nil {
		m.Causal.Close()
	}
	if m.Extractive != nil {
		m.Extractive.Close()
	}
}

// Init creates the embedding service and every cascade tier.
// Only the embedding service is required.
func Init(ctx context.Context, settings *domain.Settings) (*Models, error) {
	emb, err := CreateAndValidateEmbeddingService(ctx, &settings.Embedding)
	if err != nil {
		return nil, err
	}
	m := InitTiers(ctx, &settings.Generation)
	m.Embedding = emb
	return m, nil
}

// InitTiers creates and pings the three model tiers concurrently.
// A tier that is disabled, misconfigured or unreachable is left nil.
func InitTiers(ctx context.Context, gen *domain.GenerationSettings) *Models {
	m := &Models{}
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	warn := func(tier domain.Tier, err error) {
		mu.Lock()
		defer mu.Unlock()
		msg := fmt.Sprintf("%s tier disabled: %v", tier, err)
		m.Warnings = append(m.Warnings, msg)
		logger.Warn("%s", msg)
	}

	g.Go(func() error {
		svc, err := CreateAndValidateLLMService(ctx, &gen.Seq2Seq)
		if err != nil {
			warn(domain.TierSeq2Seq, err)
			return nil
		}
		m.Seq2Seq = svc
		return nil
	})
	g.Go(func() error {
		svc, err := CreateAndValidateLLMService(ctx, &gen.Causal)
		if err != nil {
			warn(domain.TierCausal, err)
			return nil
		}
		m.Causal = svc
		return nil
	})
	g.Go(func() error {
		svc, err := CreateAndValidateExtractor(ctx, &gen.Extractive)
		if err != nil {
			warn(domain.TierExtractive, err)
			return nil
		}
		m.Extractive = svc
		return nil
	})
	_ = g.Wait()

	return m
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
func CreateAndValidateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'sercha-assist settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured", domain.ErrEmbeddingUnavailable)
	}

	if err := ping(ctx, svc.Ping); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService creates a generation service and validates
// connectivity. A disabled tier returns nil and no error.
func CreateAndValidateLLMService(ctx context.Context, settings *domain.ModelSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(ctx, settings)
	if err != nil || svc == nil {
		return nil, err
	}
	if err := ping(ctx, svc.Ping); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateExtractor creates the extractive QA service and validates
// connectivity. A disabled tier returns nil and no error.
func CreateAndValidateExtractor(ctx context.Context, settings *domain.ModelSettings) (driven.AnswerExtractor, error) {
	svc, err := CreateExtractor(settings)
	if err != nil || svc == nil {
		return nil, err
	}
	if err := ping(ctx, svc.Ping); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// ValidateEmbeddingConfig creates an embedding service and pings it.
// An unconfigured provider is not an error.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}
	ctx := context.Background()
	svc, err := CreateEmbeddingService(ctx, settings)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()
	return ping(ctx, svc.Ping)
}

// ValidateModelConfig pings the model behind tier.
func ValidateModelConfig(tier domain.Tier, settings *domain.ModelSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}
	ctx := context.Background()
	switch tier {
	case domain.TierExtractive:
		svc, err := CreateExtractor(settings)
		if err != nil || svc == nil {
			return err
		}
		defer svc.Close()
		return ping(ctx, svc.Ping)
	case domain.TierSeq2Seq, domain.TierCausal:
		svc, err := CreateLLMService(ctx, settings)
		if err != nil || svc == nil {
			return err
		}
		defer svc.Close()
		return ping(ctx, svc.Ping)
	default:
		return fmt.Errorf("%w: tier %q has no model", domain.ErrInvalidInput, tier)
	}
}

func ping(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return fn(ctx)
}

// CreateEmbeddingService creates the embedding service for the provider.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		}), nil

	case domain.AIProviderOpenAI:
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderHuggingFace:
		return hfembed.NewEmbeddingService(hfembed.Config{
			Config:     hfConfig(&settings.ModelSettings),
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		}), nil

	case domain.AIProviderGemini:
		svc, err := geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderAnthropic:
		return nil, fmt.Errorf("anthropic does not support embeddings")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the generation service for the provider.
// Returns nil if the provider is not configured or disabled.
func CreateLLMService(ctx context.Context, settings *domain.ModelSettings) (driven.LLMService, error) {
	if settings == nil || settings.Provider == domain.AIProviderNone || settings.Provider == "" {
		return nil, nil
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%s provider is missing an API key", settings.Provider)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderAnthropic:
		svc, err := anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderHuggingFace:
		return hfllm.NewLLMService(hfllm.Config{
			Config: hfConfig(settings),
			Model:  settings.Model,
		}), nil

	case domain.AIProviderGemini:
		svc, err := geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// CreateExtractor creates the extractive QA service. Only Hugging Face
// hosts question-answering models.
func CreateExtractor(settings *domain.ModelSettings) (driven.AnswerExtractor, error) {
	if settings == nil || settings.Provider == domain.AIProviderNone || settings.Provider == "" {
		return nil, nil
	}
	if settings.Provider != domain.AIProviderHuggingFace {
		return nil, fmt.Errorf("extractive QA is not supported by %s", settings.Provider)
	}
	return hfqa.NewExtractor(hfqa.Config{
		Config: hfConfig(settings),
		Model:  settings.Model,
	}), nil
}

func hfConfig(settings *domain.ModelSettings) hfinference.Config {
	return hfinference.Config{Token: settings.APIKey, BaseURL: settings.BaseURL}
}

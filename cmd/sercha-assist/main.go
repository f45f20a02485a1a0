// Command sercha-assist is a customer support assistant that answers
// questions from local documents and a crawled support site.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/ai"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/fetcher/browser"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/fetcher/httpfetch"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driven/vectorindex/flat"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-assist/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-assist/internal/connectors/web"
	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-assist/internal/core/services"
	"github.com/custodia-labs/sercha-assist/internal/logger"
	"github.com/custodia-labs/sercha-assist/internal/normalisers"
	"github.com/custodia-labs/sercha-assist/internal/postprocessors"
)

// version is set at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := &app{}
	cli.SetVersion(version)
	cli.Configure(cli.Wiring{
		Settings:  a.settings,
		Ingest:    a.ingest,
		Assistant: a.assistant,
	})

	err := cli.Execute(ctx)
	a.close()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app owns the resources opened while wiring services.
type app struct {
	configDir string
	closers   []func() error
}

func (a *app) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("Shutdown: %v", err)
		}
	}
}

func (a *app) settings(configDir string, noConfig bool) (driving.SettingsService, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	a.configDir = configDir

	if noConfig {
		logger.Debug("Settings held in memory; %s is ignored", filepath.Join(configDir, "config.toml"))
		return services.NewSettingsService(memory.NewConfigStore(nil), ai.NewConfigValidator()), nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(store, ai.NewConfigValidator()), nil
}

func (a *app) ingest(s *domain.Settings) (driving.IngestService, error) {
	loader := filesystem.NewLoader(normalisers.NewDefaultRegistry())

	var fetcher driven.PageFetcher
	switch s.Crawl.Fetcher {
	case "browser":
		fetcher = browser.New(browser.Config{Timeout: s.Crawl.Timeout, UserAgent: s.Crawl.UserAgent})
	default:
		fetcher = httpfetch.New(httpfetch.Config{Timeout: s.Crawl.Timeout, UserAgent: s.Crawl.UserAgent})
	}
	a.onClose(fetcher.Close)
	crawler := web.New(fetcher, web.Config{Delay: s.Crawl.Delay})

	var store driven.DocumentStore
	if s.StorePath == "" {
		store = memory.NewDocumentStore()
	} else {
		sqliteStore, err := sqlite.NewStore(s.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open document store: %w", err)
		}
		store = sqliteStore
	}
	a.onClose(store.Close)

	return services.NewIngestService(loader, crawler, store), nil
}

func (a *app) assistant(ctx context.Context, s *domain.Settings) (driving.AssistantService, error) {
	done := logger.Timed("Connecting models")
	models, err := ai.Init(ctx, s)
	done()
	if err != nil {
		return nil, err
	}
	a.onClose(func() error {
		models.Close()
		return nil
	})

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := postprocessors.BuildPipeline(registry, s.Chunking)
	if err != nil {
		return nil, err
	}

	prompts, err := file.NewPromptStore(filepath.Join(a.configDir, "prompts"))
	if err != nil {
		return nil, err
	}

	index := services.NewIndexService(
		models.Embedding,
		flat.New(models.Embedding.Dimensions()),
		sqlite.NewIndexFile(),
		s.Retrieval.RelevanceThreshold,
	)
	cascade := services.NewCascade(services.CascadeModels{
		Seq2Seq:    models.Seq2Seq,
		Causal:     models.Causal,
		Extractive: models.Extractive,
	}, prompts, s.Generation.MaxTokens)

	return services.NewAssistantService(index, pipeline, cascade, s.Retrieval), nil
}

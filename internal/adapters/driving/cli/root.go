// Package cli provides the command-line interface for sercha-assist.
// It is a driving adapter: commands parse flags and delegate to the
// driving ports in internal/core/ports/driving.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-assist/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Wiring builds services on first use. Commands that never answer a
// question, such as settings and version, do not need a model to be
// reachable.
type Wiring struct {
	// Settings opens the settings store in configDir. Empty uses the default.
	// With noConfig set no file is read or written and changes last for the
	// current run only.
	Settings func(configDir string, noConfig bool) (driving.SettingsService, error)

	// Ingest builds the loader, crawler and document store.
	Ingest func(settings *domain.Settings) (driving.IngestService, error)

	// Assistant connects the models and builds the assistant.
	Assistant func(ctx context.Context, settings *domain.Settings) (driving.AssistantService, error)
}

var (
	wiring Wiring

	settingsService  driving.SettingsService
	ingestService    driving.IngestService
	assistantService driving.AssistantService

	// effective holds the loaded settings with flag overrides applied.
	effective *domain.Settings

	verbose   bool
	configDir string
	noConfig  bool
	dataDir   string
	threshold float64
	noCache   bool
)

var rootCmd = &cobra.Command{
	Use:   "sercha-assist",
	Short: "Customer support assistant over local documents and a support site",
	Long: `sercha-assist answers customer support questions from a folder of PDF,
DOCX and text documents plus pages crawled from a support website.

Documents are split into overlapping chunks, embedded and indexed. Each
question retrieves the closest chunks and a cascade of models turns them
into an answer, falling back to simpler tiers when a model is unavailable.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.sercha-assist)")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false, "ignore config.toml and keep setting changes for this run only")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory of local documents (overrides data_dir)")
	rootCmd.PersistentFlags().Float64Var(&threshold, "threshold", 0,
		"maximum distance of a relevant chunk (overrides retrieval.relevance_threshold)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "keep the ingested corpus in memory only")
}

// Configure sets the service builders used by commands.
func Configure(w Wiring) {
	wiring = w
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Command output goes to stdout.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if settingsService == nil && wiring.Settings != nil {
		svc, err := wiring.Settings(configDir, noConfig)
		if err != nil {
			return fmt.Errorf("open settings: %w", err)
		}
		settingsService = svc
	}
	return nil
}

// loadSettings returns the effective settings, loading them once.
func loadSettings() (*domain.Settings, error) {
	if effective != nil {
		return effective, nil
	}
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	s, err := settingsService.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	applyOverrides(s)
	effective = s
	return effective, nil
}

func applyOverrides(s *domain.Settings) {
	flags := rootCmd.PersistentFlags()
	if flags.Changed("data-dir") {
		s.DataDir = dataDir
	}
	if flags.Changed("threshold") && threshold > 0 {
		s.Retrieval.RelevanceThreshold = threshold
	}
	if noCache {
		s.StorePath = ""
	}
}

func getIngest() (driving.IngestService, error) {
	if ingestService != nil {
		return ingestService, nil
	}
	if wiring.Ingest == nil {
		return nil, errors.New("ingest service not configured")
	}
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	svc, err := wiring.Ingest(s)
	if err != nil {
		return nil, fmt.Errorf("initialise ingest: %w", err)
	}
	ingestService = svc
	return ingestService, nil
}

func getAssistant(ctx context.Context) (driving.AssistantService, error) {
	if assistantService != nil {
		return assistantService, nil
	}
	if wiring.Assistant == nil {
		return nil, errors.New("assistant service not configured")
	}
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	svc, err := wiring.Assistant(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("initialise assistant: %w", err)
	}
	assistantService = svc
	return assistantService, nil
}

// readyAssistant returns an assistant with a loaded index. When the saved
// index is missing or unusable it is rebuilt from a fresh ingest and saved.
func readyAssistant(cmd *cobra.Command) (driving.AssistantService, error) {
	ctx := cmd.Context()

	assistant, err := getAssistant(ctx)
	if err != nil {
		return nil, err
	}
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}

	if assistant.LoadIndex(ctx, s.IndexPath) {
		return assistant, nil
	}

	cmd.PrintErrln("No saved index found, building one. This may take a while.")
	ingest, err := getIngest()
	if err != nil {
		return nil, err
	}
	if _, err := rebuild(ctx, ingest, assistant, s); err != nil {
		return nil, err
	}
	return assistant, nil
}

// rebuild ingests every source, indexes the result and saves the index.
// A failed save is logged: the in-memory index still serves questions.
func rebuild(
	ctx context.Context,
	ingest driving.IngestService,
	assistant driving.AssistantService,
	s *domain.Settings,
) (int, error) {
	report, err := ingest.Ingest(ctx, ingestOptions(s))
	if err != nil {
		return 0, fmt.Errorf("ingest: %w", err)
	}

	n, err := assistant.BuildIndex(ctx, report.Documents)
	if err != nil {
		return 0, fmt.Errorf("build index: %w", err)
	}

	if err := assistant.SaveIndex(ctx, s.IndexPath); err != nil {
		logger.Warn("Saving index to %s failed: %v", s.IndexPath, err)
	}
	return n, nil
}

func ingestOptions(s *domain.Settings) domain.IngestOptions {
	return domain.IngestOptions{
		DataDir:  s.DataDir,
		SeedURL:  s.Crawl.SeedURL,
		MaxPages: s.Crawl.MaxPages,
		Persist:  true,
	}
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.sercha-assist/config.toml.

Keys use dot notation, for example retrieval.relevance_threshold or
generation.seq2seq.provider. API keys left empty are read from
OPENAI_API_KEY, ANTHROPIC_API_KEY, HF_TOKEN and GEMINI_API_KEY.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the configured models are reachable",
	Long: `Pings the embedding model and the model behind each answer tier.
Only the embedding model is required; an unreachable tier is skipped
when answering.`,
	Args: cobra.NoArgs,
	RunE: runSettingsValidate,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Load()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	for _, key := range settingsService.Keys() {
		value, err := settingsService.Get(key)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", key, err)
		}
		cmd.Printf("  %-36s %s\n", key, value)
	}
	cmd.Println()

	cmd.Println("[Models]")
	printModel(cmd, "Embedding", settings.Embedding.ModelSettings)
	printModel(cmd, "Seq2seq", settings.Generation.Seq2Seq)
	printModel(cmd, "Causal", settings.Generation.Causal)
	printModel(cmd, "Extractive", settings.Generation.Extractive)
	return nil
}

func printModel(cmd *cobra.Command, label string, m domain.ModelSettings) {
	if m.Provider == domain.AIProviderNone || m.Provider == "" {
		cmd.Printf("  %-11s %s\n", label+":", domain.AIProviderNone.Description())
		return
	}

	status := "configured"
	if !m.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  %-11s %s, %s (%s)\n", label+":", m.Provider.Description(), m.Model, status)
	if m.Provider.RequiresAPIKey() {
		if m.APIKey != "" {
			cmd.Printf("  %-11s API key %s\n", "", maskAPIKey(m.APIKey))
		} else {
			cmd.Printf("  %-11s API key (not set)\n", "")
		}
	}
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	value, err := settingsService.Get(args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	effective = nil
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Embedding... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	for _, tier := range []domain.Tier{domain.TierSeq2Seq, domain.TierCausal, domain.TierExtractive} {
		cmd.Printf("%s... ", tier)
		if err := settingsService.ValidateTierConfig(tier); err != nil {
			cmd.Printf("unavailable: %v\n", err)
			continue
		}
		cmd.Println("OK")
	}
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

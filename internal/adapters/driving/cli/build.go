package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

var buildOffline bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build and save the embedding index",
	Long: `Chunks and embeds the corpus and saves the index, replacing any previous one.

By default the corpus comes from a fresh ingest. With --offline the corpus
stored by the last ingest is used and nothing is read or crawled.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildOffline, "offline", false, "index the stored corpus instead of ingesting")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := loadSettings()
	if err != nil {
		return err
	}
	ingest, err := getIngest()
	if err != nil {
		return err
	}
	assistant, err := getAssistant(ctx)
	if err != nil {
		return err
	}

	var docs []domain.Document
	if buildOffline {
		docs, err = ingest.Cached(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("no stored corpus: run 'sercha-assist ingest' first")
		}
		if err != nil {
			return fmt.Errorf("load stored corpus: %w", err)
		}
	} else {
		report, ingestErr := ingest.Ingest(ctx, ingestOptions(s))
		if ingestErr != nil {
			return fmt.Errorf("ingest failed: %w", ingestErr)
		}
		docs = report.Documents
	}

	n, err := assistant.BuildIndex(ctx, docs)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	if err := assistant.SaveIndex(ctx, s.IndexPath); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	cmd.Printf("Indexed %d chunks from %d documents\n", n, len(docs))
	cmd.Printf("Saved index to %s\n", s.IndexPath)
	return nil
}

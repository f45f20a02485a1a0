package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Show the passages most relevant to a query",
	Long: `Embeds the query and returns the nearest chunks from the index without
generating an answer. Chunks further away than the relevance threshold are
dropped, so fewer than --limit results may be shown.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultTopK, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	assistant, err := readyAssistant(cmd)
	if err != nil {
		return err
	}

	results, err := assistant.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchTable(cmd, results)
	return nil
}

type searchResultJSON struct {
	Source    string  `json:"source"`
	Title     string  `json:"title,omitempty"`
	Text      string  `json:"text"`
	Distance  float64 `json:"distance"`
	Relevance float64 `json:"relevance"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	out := make([]searchResultJSON, len(results))
	for i, r := range results {
		out[i] = searchResultJSON{
			Source:    r.Source,
			Title:     r.Title,
			Text:      r.Text,
			Distance:  r.Distance,
			Relevance: 1 - r.Distance,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) {
	if len(results) == 0 {
		cmd.Println("No relevant passages found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		label := r.Source
		if r.Title != "" && r.Title != r.Source {
			label = fmt.Sprintf("%s - %s", r.Title, r.Source)
		}
		cmd.Printf("  [%d] %s (relevance %.2f)\n", i+1, label, 1-r.Distance)
		cmd.Printf("      %s\n", snippet(r.Text, 200))
		cmd.Println()
	}
}

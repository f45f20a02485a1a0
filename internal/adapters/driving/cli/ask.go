package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one question",
	Long: `Answers a customer support question from the indexed documents.

The index is loaded from disk. If no usable index exists it is built from a
fresh ingest of the data directory and the support site, then saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	assistant, err := readyAssistant(cmd)
	if err != nil {
		return err
	}

	answer, err := assistant.Ask(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	printAnswer(cmd.OutOrStdout(), answer)
	return nil
}

type answerJSON struct {
	Answer  string             `json:"answer"`
	Tier    string             `json:"tier"`
	Sources []answerSourceJSON `json:"sources"`
}

type answerSourceJSON struct {
	Source    string  `json:"source"`
	Text      string  `json:"text"`
	Relevance float64 `json:"relevance"`
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	out := answerJSON{
		Answer:  answer.Text,
		Tier:    answer.Tier.String(),
		Sources: make([]answerSourceJSON, len(answer.Sources)),
	}
	for i, src := range answer.Sources {
		out.Sources[i] = answerSourceJSON{Source: src.Source, Text: src.Text, Relevance: 1 - src.Score}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printAnswer writes the answer followed by its sources.
func printAnswer(w io.Writer, answer *domain.Answer) {
	fmt.Fprintln(w, answer.Text)
	if len(answer.Sources) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sources:")
	for i, src := range answer.Sources {
		fmt.Fprintf(w, "  [%d] %s (relevance %.2f)\n", i+1, src.Source, 1-src.Score)
		fmt.Fprintf(w, "      %s\n", snippet(src.Text, 150))
	}
}

// snippet collapses whitespace and cuts text to at most n runes.
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}

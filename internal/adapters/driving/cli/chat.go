package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/tui"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driving"
)

var chatPlain bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat",
	Long: `Starts an interactive chat with the assistant.

On a terminal this opens the full-screen chat:
  Enter     - Ask
  Tab       - Show or hide sources
  Ctrl+L    - Clear the conversation
  PgUp/PgDn - Scroll
  Esc       - Quit

When stdin is not a terminal, or with --plain, questions are read one per
line and answers written to stdout. Type "exit" or "quit" to stop.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatPlain, "plain", false, "use line mode even on a terminal")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	assistant, err := readyAssistant(cmd)
	if err != nil {
		return err
	}

	if chatPlain || !isTerminal(cmd.InOrStdin()) {
		return chatLines(cmd, assistant)
	}

	app, err := tui.NewApp(&tui.Ports{Assistant: assistant})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// chatLines answers one question per input line until EOF or "exit".
func chatLines(cmd *cobra.Command, assistant driving.AssistantService) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(question) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		answer, err := assistant.Ask(cmd.Context(), question)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}
		printAnswer(out, answer)
		fmt.Fprintln(out)
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sercha-assist/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-assist/internal/logger"
)

var (
	servePort  int
	serveWatch bool
)

// watchFunc is replaced in tests.
var watchFunc = filesystem.Watch

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server exposing the assistant to AI clients.

Tools:
  ask     - answer a support question
  search  - return the most relevant passages

Resources:
  sercha-assist://index                  - index statistics
  sercha-assist://documents              - the stored corpus
  sercha-assist://documents/{documentId} - text of one document

By default the server speaks JSON-RPC over stdio. Use --port to serve the
streamable HTTP transport instead. With --watch the index is rebuilt
whenever files in the data directory change.

Examples:
  sercha-assist serve
  sercha-assist serve --port 8080 --watch`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = use stdio)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild the index when the data directory changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	assistant, err := readyAssistant(cmd)
	if err != nil {
		return err
	}
	s, err := loadSettings()
	if err != nil {
		return err
	}
	ingest, err := getIngest()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Assistant: assistant, Ingest: ingest})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if servePort > 0 {
			addr := fmt.Sprintf(":%d", servePort)
			cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(gctx, addr)
		}
		return server.Run(gctx)
	})

	if serveWatch && s.DataDir != "" {
		g.Go(func() error {
			return watchFunc(gctx, s.DataDir, filesystem.DefaultDebounce, func() {
				rebuildOnChange(gctx, ingest, assistant, s)
			})
		})
	}

	return g.Wait()
}

func rebuildOnChange(
	ctx context.Context,
	ingest driving.IngestService,
	assistant driving.AssistantService,
	s *domain.Settings,
) {
	logger.Info("Change detected in %s, rebuilding index", s.DataDir)
	n, err := rebuild(ctx, ingest, assistant, s)
	if err != nil {
		logger.Warn("Rebuild failed: %v", err)
		return
	}
	logger.Info("Rebuilt index with %d chunks", n)
}

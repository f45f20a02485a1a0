package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

var (
	ingestMaxPages int
	ingestNoCrawl  bool
	crawlMaxPages  int
	crawlJSON      bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Read local documents and crawl the support site",
	Long: `Reads every supported document in the data directory and crawls the
configured support site, then stores the combined corpus so that
'build --offline' can index it without reading or crawling again.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [url]",
	Short: "Crawl a site and list the pages that would be indexed",
	Long: `Crawls breadth-first from the given URL, staying on its host, and prints
each page whose readable content would be indexed. Nothing is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawl,
}

func init() {
	ingestCmd.Flags().IntVar(&ingestMaxPages, "max-pages", 0, "maximum pages to fetch (default from crawl.max_pages)")
	ingestCmd.Flags().BoolVar(&ingestNoCrawl, "no-crawl", false, "skip the support site")
	crawlCmd.Flags().IntVar(&crawlMaxPages, "max-pages", domain.DefaultMaxPages, "maximum pages to fetch")
	crawlCmd.Flags().BoolVar(&crawlJSON, "json", false, "output pages as JSON")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(crawlCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	ingest, err := getIngest()
	if err != nil {
		return err
	}

	opts := ingestOptions(s)
	if ingestMaxPages > 0 {
		opts.MaxPages = ingestMaxPages
	}
	if ingestNoCrawl {
		opts.SeedURL = ""
	}

	report, err := ingest.Ingest(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d documents (%d local files, %d web pages)\n",
		len(report.Documents), report.LocalFiles, report.Webpages)
	for i := range report.Documents {
		d := &report.Documents[i]
		cmd.Printf("  [%s] %s\n", d.Kind, d.Source())
	}
	return nil
}

type pageJSON struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Chars int    `json:"chars"`
}

func runCrawl(cmd *cobra.Command, args []string) error {
	ingest, err := getIngest()
	if err != nil {
		return err
	}

	report, err := ingest.Ingest(cmd.Context(), domain.IngestOptions{
		SeedURL:  args[0],
		MaxPages: crawlMaxPages,
	})
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	pages := make([]pageJSON, 0, len(report.Documents))
	for i := range report.Documents {
		d := &report.Documents[i]
		pages = append(pages, pageJSON{URL: d.Source(), Title: d.Title, Chars: len([]rune(d.Text))})
	}

	if crawlJSON {
		data, err := json.MarshalIndent(pages, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal pages: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(pages) == 0 {
		cmd.Println("No pages with readable content found.")
		return nil
	}
	cmd.Printf("Crawled %d pages:\n", len(pages))
	for _, p := range pages {
		cmd.Printf("  %s\n", p.URL)
		cmd.Printf("      %s (%d chars)\n", p.Title, p.Chars)
	}
	return nil
}

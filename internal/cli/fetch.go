package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pressparse/internal/pipeline"
	"github.com/ppiankov/pressparse/internal/worker"
)

var fetchTextOnly bool

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a press release page and parse it",
	Long: `Fetch downloads a release page and parses the text found on it:
- Honours robots.txt and per-domain rate limits
- Strips navigation, scripts and page chrome with site adapters
  (PR Newswire, Business Wire, GlobeNewswire, government sites)
- Uses the page's published date when the release text has no dated dateline
- Caches pages in memory and on disk

Example:
  pressparse fetch https://www.prnewswire.com/news-releases/example.html
  pressparse fetch https://www.governor.virginia.gov/news/example --format json
  pressparse fetch https://example.com/release --text`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchTextOnly, "text", false, "print the extracted page text and exit")
	addOutputFlags(fetchCmd)
	addParserFlags(fetchCmd)
	addFetchFlags(fetchCmd)
	addLLMFlags(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	url := args[0]
	if !pipeline.IsURL(url) {
		return fmt.Errorf("not an http(s) URL: %s", url)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, newLogger())
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	p.SetLimiter(worker.LimiterFromConfig(cfg.RateLimiting))

	// Room for retries and editor notes on top of the HTTP timeout
	ctx, cancel := context.WithTimeout(context.Background(), 3*cfg.HTTP.Timeout+time.Minute)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Fetching %s...\n", url)
	}

	if fetchTextOnly {
		fetched, err := p.Fetch(ctx, url)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), fetched.Page.Text+"\n")
		return err
	}

	report, err := p.ProcessURL(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if verbose && report.Fetch != nil {
		fmt.Fprintf(os.Stderr, "✓ HTTP %d (%s), cached: %v\n", report.Fetch.StatusCode, report.Fetch.ContentType, report.Fetch.FromCache)
		if report.Fetch.PublishedDate != "" {
			fmt.Fprintf(os.Stderr, "✓ Published date: %s\n", report.Fetch.PublishedDate)
		}
		fmt.Fprintln(os.Stderr)
	}

	return emit(cmd, p.Renderer(), report)
}

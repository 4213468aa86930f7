package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pressparse/internal/model"
	"github.com/ppiankov/pressparse/internal/pipeline"
	"github.com/ppiankov/pressparse/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	sourcesFile  string
	batchMD      bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [sources...]",
	Short: "Parse many releases (files, directories or URLs) in parallel",
	Long: `Batch processes many releases concurrently:
- Sources are files, directories (*.txt, *.md) or http(s) URLs
- A sources file can list one source per line (# starts a comment)
- URL fetches are rate limited per domain
- Writes one JSON report per source plus batch.json with the summary

Example:
  pressparse batch releases/
  pressparse batch --file sources.txt --concurrency 8 --output-dir ./reports
  pressparse batch a.txt b.txt https://example.com/release --md`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&sourcesFile, "file", "", "read sources from this file (one per line)")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./pressparse-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchMD, "md", false, "also write a Markdown report per source")
	batchCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any release is rejected or fails")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&noFields, "no-fields", false, "omit fields_data from reports")
	addParserFlags(batchCmd)
	addFetchFlags(batchCmd)
	addLLMFlags(batchCmd)
}

// batchEntry is one line of batch.json
type batchEntry struct {
	Source       string              `json:"source"`
	Report       string              `json:"report,omitempty"`
	QualityScore *int                `json:"quality_score,omitempty"`
	Status       model.QualityStatus `json:"status,omitempty"`
	Error        string              `json:"error,omitempty"`
}

// batchFile is the layout of batch.json
type batchFile struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Summary    worker.Summary `json:"summary"`
	Results    []batchEntry   `json:"results"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	sources, err := worker.ExpandSources(args)
	if err != nil {
		return err
	}
	if sourcesFile != "" {
		listed, err := worker.ReadSourcesFromFile(sourcesFile)
		if err != nil {
			return fmt.Errorf("read sources: %w", err)
		}
		sources = append(sources, listed...)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources given: pass files, directories or URLs, or --file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  pressparse Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Sources:      %d\n", len(sources))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger := newLogger()
	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	p.SetLimiter(worker.LimiterFromConfig(cfg.RateLimiting))

	fmt.Fprintf(os.Stderr, "⚙️  Processing %d sources with %d workers...\n\n", len(sources), cfg.Concurrency.Workers)
	batch := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, logger).Process(ctx, sources)

	out := batchFile{
		RunID:      batch.RunID,
		StartedAt:  batch.StartedAt,
		FinishedAt: batch.FinishedAt,
		Summary:    batch.Summary,
	}
	renderer := p.Renderer()

	for i, result := range batch.Results {
		entry := batchEntry{Source: result.Source}
		if result.Error != nil {
			entry.Error = result.ErrMsg
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			out.Results = append(out.Results, entry)
			continue
		}

		base := fmt.Sprintf("%03d-%s", i+1, slugify(result.Source))
		jsonPath := filepath.Join(outputDir, base+".json")
		mdPath := ""
		if batchMD {
			mdPath = filepath.Join(outputDir, base+".md")
		}
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			return fmt.Errorf("render %s: %w", result.Source, err)
		}
		if mdPath != "" {
			if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
				return fmt.Errorf("render %s: %w", result.Source, err)
			}
		}
		entry.Report = filepath.Base(jsonPath)

		if v := result.Report.Validation; v != nil {
			score := v.QualityScore
			entry.QualityScore = &score
			entry.Status = v.Status
			mark := "✓"
			if v.ShouldReject {
				mark = "✗"
			}
			fmt.Fprintf(os.Stderr, "%s %s: %d/100 (%s)\n", mark, result.Source, v.QualityScore, v.Status)
		} else {
			fmt.Fprintf(os.Stderr, "✗ %s: not parseable\n", result.Source)
		}
		out.Results = append(out.Results, entry)
	}

	summaryPath := filepath.Join(outputDir, "batch.json")
	f, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("create batch summary: %w", err)
	}
	if err := renderer.WriteJSON(f, out); err != nil {
		_ = f.Close()
		return fmt.Errorf("write batch summary: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close batch summary: %w", err)
	}

	s := batch.Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Run %s\n", batch.RunID)
	fmt.Fprintf(os.Stderr, "  Accepted: %d  Rejected: %d  Not parseable: %d  Failed: %d\n", s.Accepted, s.Rejected, s.NotParseable, s.Failed)
	fmt.Fprintf(os.Stderr, "  Average score: %.1f\n", s.AverageScore)
	fmt.Fprintf(os.Stderr, "  Summary: %s\n", summaryPath)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")

	if strict && s.Accepted < s.Total {
		return ErrRejected
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a path or URL into a short file-name-safe stem
func slugify(source string) string {
	source = strings.TrimPrefix(strings.TrimPrefix(source, "https://"), "http://")
	source = strings.TrimSuffix(source, filepath.Ext(source))
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(source), "-"), "-")
	if len(slug) > 60 {
		slug = strings.Trim(slug[len(slug)-60:], "-")
	}
	if slug == "" {
		return "source"
	}
	return slug
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pressparse/internal/pipeline"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a press release into structured fields and score it",
	Long: `Parse reads a press release from a file or stdin and:
- Cleans and normalises the text
- Extracts headline, subhead, dateline, lead and body paragraphs
- Extracts quotes and resolves who said them
- Extracts the release header, contact block and boilerplate
- Scores the result 0-100 with every deduction explained

Example:
  pressparse parse release.txt
  cat release.txt | pressparse parse --format json
  pressparse parse release.txt --json report.json --md report.md
  pressparse parse release.txt --strict --llm`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	addOutputFlags(parseCmd)
	addParserFlags(parseCmd)
	addLLMFlags(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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

	source, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Parsing %s (%d bytes)...\n", source, len(text))
	}

	report := p.ProcessText(context.Background(), source, text)

	if verbose && report.ParseResult != nil {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d paragraphs\n", report.ParseResult.ContentStructure.TotalParagraphs)
		fmt.Fprintf(os.Stderr, "✓ Extracted %d quotes (%d attributed)\n", report.ParseResult.Metadata.QuoteCount, report.ParseResult.Metadata.AttributedQuoteCount)
		fmt.Fprintf(os.Stderr, "✓ Quality score: %d/100\n", report.Validation.QualityScore)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated editor notes using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	return emit(cmd, p.Renderer(), report)
}

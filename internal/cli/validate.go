package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pressparse/internal/model"
	"github.com/ppiankov/pressparse/internal/parser"
	"github.com/ppiankov/pressparse/internal/pipeline"
)

var validateJSON bool

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Check whether a press release passes the technical and quality gates",
	Long: `Validate runs the two gates without printing the parsed fields:
1. Technical: encoding, size, binary data, markup
2. Quality: header, headline, quotes, body length, dateline, speakers

Exits non-zero when the input is not parseable or the score is below 40.

Example:
  pressparse validate release.txt
  pressparse validate - --json < release.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print the verdict as JSON")
	addParserFlags(validateCmd)
}

// verdict is the machine-readable output of validate
type verdict struct {
	Source     string                    `json:"source"`
	Technical  model.TechnicalValidation `json:"technical"`
	Validation *model.ValidationResult   `json:"validation,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	p, err := parser.New(cfg)
	if err != nil {
		return err
	}

	source, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	v, parseErr := p.ParseWithValidation(text)
	out := verdict{Source: source, Technical: v.Technical, Validation: v.Validation}

	if validateJSON {
		if err := pipeline.NewRenderer(cfg.Output).WriteJSON(cmd.OutOrStdout(), out); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	} else {
		printVerdict(cmd, out)
	}

	var techErr *parser.TechnicalError
	if errors.As(parseErr, &techErr) {
		return parseErr
	}
	if v.Validation != nil && v.Validation.ShouldReject {
		return ErrRejected
	}
	return nil
}

func printVerdict(cmd *cobra.Command, v verdict) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n\n", v.Source)

	if !v.Technical.IsParseable {
		fmt.Fprintln(w, "  ✗ Not parseable")
	} else {
		fmt.Fprintln(w, "  ✓ Technical checks passed")
	}
	for _, issue := range v.Technical.Errors {
		fmt.Fprintf(w, "    ✗ %s: %s\n", issue.Type, issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(w, "      → %s\n", issue.Suggestion)
		}
	}
	for _, issue := range v.Technical.Warnings {
		fmt.Fprintf(w, "    ! %s: %s\n", issue.Type, issue.Message)
	}

	if v.Validation == nil {
		fmt.Fprintln(w)
		return
	}

	mark := "✓"
	if v.Validation.ShouldReject {
		mark = "✗"
	}
	fmt.Fprintf(w, "  %s Quality: %d/100 (%s)\n", mark, v.Validation.QualityScore, v.Validation.Status)
	for _, e := range v.Validation.Errors {
		fmt.Fprintf(w, "    ✗ %s\n", e)
	}
	for _, warn := range v.Validation.Warnings {
		fmt.Fprintf(w, "    ! %s\n", warn)
	}
	for _, s := range v.Validation.Suggestions {
		fmt.Fprintf(w, "    → %s\n", s)
	}
	fmt.Fprintln(w)
}

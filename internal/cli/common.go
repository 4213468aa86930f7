package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/pressparse/internal/model"
	"github.com/ppiankov/pressparse/internal/pipeline"
)

// ErrRejected is returned under --strict when a release fails the quality gate
var ErrRejected = errors.New("release rejected by quality gate")

var (
	outJSON      string
	outMD        string
	format       string
	strict       bool
	noFooter     bool
	noFields     bool
	noCache      bool
	patternsFile string
	timeout      time.Duration
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// loadConfig layers config file and environment over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outJSON, "json", "", "write the JSON report to this path")
	cmd.Flags().StringVar(&outMD, "md", "", "write the Markdown report to this path")
	cmd.Flags().StringVarP(&format, "format", "f", "summary", "stdout format: summary, json or markdown")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the release is rejected")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().BoolVar(&noFields, "no-fields", false, "omit fields_data from reports")
}

func addParserFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&patternsFile, "patterns", "", "YAML file overriding titles, verbs and states")
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout for fetching release pages")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
}

func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate editor notes with an LLM (never affects the score)")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// applyFlags overrides configuration with flags the user set
func applyFlags(cmd *cobra.Command, cfg *model.Config) error {
	flags := cmd.Flags()
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if noFields {
		cfg.Output.IncludeFields = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if patternsFile != "" {
		cfg.Parser.PatternsFile = patternsFile
	}
	if flags.Lookup("timeout") != nil && flags.Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}
	cfg.Output.Verbose = verbose

	// A provider set in the config file stays on without --llm
	if !llmEnabled {
		return nil
	}

	if flags.Changed("llm-provider") || cfg.LLM.Provider == "" {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") || cfg.LLM.Model == "" {
		cfg.LLM.Model = llmModel
	}
	if strings.EqualFold(cfg.LLM.Provider, "openai") && cfg.LLM.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	return nil
}

// readInput reads a file, or stdin for "-" or no argument
func readInput(cmd *cobra.Command, args []string) (source, text string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "stdin", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}

// emit writes the report to stdout in the chosen format and to any requested files
func emit(cmd *cobra.Command, r *pipeline.Renderer, report *model.Report) error {
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		if err := r.WriteJSON(out, report); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if err := r.RenderReport(io.Discard, report, outJSON, outMD, verbose); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	case "markdown", "md":
		if _, err := io.WriteString(out, r.Markdown(report)); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
		if err := r.RenderReport(io.Discard, report, outJSON, outMD, verbose); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	case "summary", "":
		if err := r.RenderReport(out, report, outJSON, outMD, verbose); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (supported: summary, json, markdown)", format)
	}

	if strict && !report.Accepted() {
		return ErrRejected
	}
	return nil
}

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/pressparse/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Annotate writes editor notes for a parsed release
	Annotate(ctx context.Context, req AnnotateRequest) (*AnnotateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AnnotateRequest contains the input for editor notes
type AnnotateRequest struct {
	// Report is the parse report to comment on
	Report model.Report

	// AllowedQuotes is the set of quote texts the notes may reproduce verbatim
	AllowedQuotes []string

	// Prompt overrides the default prompt when set
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AnnotateResponse contains the model's notes
type AnnotateResponse struct {
	Notes      string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	Model   string
	APIKey  string
	BaseURL string // Custom endpoint, e.g. a local Ollama server

	// Timeout for API requests
	Timeout int // seconds

	// StrictQuote strips quoted spans that do not appear in the extracted quotes
	StrictQuote bool

	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:     30,
		StrictQuote: true,
		MaxTokens:   800,
	}
}

// BuildPrompt constructs the default editor-notes prompt
func BuildPrompt(report model.Report, quotes []string) string {
	var b strings.Builder
	b.WriteString(`You are a copy editor reviewing a press release that was parsed into fields.
Write short Markdown notes for the editor about what is missing or weak.

RULES:
1. Only reproduce quotations that appear verbatim in the list below.
2. Do not invent speakers, titles, dates or locations.
3. Comment on structure and completeness, not on the newsworthiness of the release.

Extracted quotes:
`)
	b.WriteString(joinQuotes(quotes))

	b.WriteString("\n\nParse summary:\n")
	fmt.Fprintf(&b, "- Subject: %s\n", report.Subject)
	if r := report.ParseResult; r != nil {
		cs := r.ContentStructure
		fmt.Fprintf(&b, "- Headline: %s\n", orNone(cs.Headline))
		fmt.Fprintf(&b, "- Subhead: %s\n", orNone(cs.Subhead))
		fmt.Fprintf(&b, "- Dateline: %s (confidence %s)\n", orNone(cs.Dateline.Full), cs.Dateline.Confidence)
		fmt.Fprintf(&b, "- Paragraphs: %d\n", cs.TotalParagraphs)
		fmt.Fprintf(&b, "- Quotes: %d (%d attributed)\n", r.Metadata.QuoteCount, r.Metadata.AttributedQuoteCount)
		fmt.Fprintf(&b, "- Contact email: %s\n", orNone(r.ContactInfo.Email))
	}
	if v := report.Validation; v != nil {
		fmt.Fprintf(&b, "- Quality score: %d/100 (%s)\n", v.QualityScore, v.Status)
		for _, e := range v.Errors {
			fmt.Fprintf(&b, "- Error: %s\n", e)
		}
		for _, w := range v.Warnings {
			fmt.Fprintf(&b, "- Warning: %s\n", w)
		}
	}

	b.WriteString("\nProvide at most five bullet points.")
	return b.String()
}

func joinQuotes(quotes []string) string {
	if len(quotes) == 0 {
		return "(No quotes extracted)"
	}
	var b strings.Builder
	for i, q := range quotes {
		if i >= 10 {
			fmt.Fprintf(&b, "\n... and %d more quotes", len(quotes)-10)
			break
		}
		fmt.Fprintf(&b, "\n- %q", q)
	}
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

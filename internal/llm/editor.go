package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/pressparse/internal/model"
)

// Editor produces optional editor notes for a report.
// Notes are generated after scoring and never change it.
type Editor struct {
	provider Provider
	config   Config
}

// NewEditor creates an Editor; a disabled config yields an Editor that does nothing
func NewEditor(config Config) (*Editor, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Editor{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (e *Editor) IsEnabled() bool {
	return e.provider != nil
}

// ProviderName returns the configured provider, or "" when disabled
func (e *Editor) ProviderName() string {
	if e.provider == nil {
		return ""
	}
	return e.provider.Name()
}

// Notes generates editor notes for report.
// Returns nil, nil when disabled.
func (e *Editor) Notes(ctx context.Context, report model.Report) (*model.LLMNotes, error) {
	if e.provider == nil {
		return nil, nil
	}

	notes := &model.LLMNotes{
		Provider:    e.provider.Name(),
		Model:       e.config.Model,
		StrictQuote: e.config.StrictQuote,
	}

	if !e.provider.IsAvailable(ctx) {
		notes.Warnings = append(notes.Warnings, fmt.Sprintf("LLM provider %s is not available", e.provider.Name()))
		return notes, nil
	}

	allowed := extractedQuotes(report)
	resp, err := e.provider.Annotate(ctx, AnnotateRequest{
		Report:        report,
		AllowedQuotes: allowed,
		Model:         e.config.Model,
		MaxTokens:     e.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate notes: %w", err)
	}

	text, leaks := GuardQuotes(resp.Notes, allowed, e.config.StrictQuote)
	for _, leak := range leaks {
		if e.config.StrictQuote {
			notes.Warnings = append(notes.Warnings, fmt.Sprintf("QUOTE LEAK: removed quotation not found in release: %q", leak))
		} else {
			notes.Warnings = append(notes.Warnings, fmt.Sprintf("quotation not found in release: %q", leak))
		}
	}

	notes.Enabled = true
	notes.NotesMD = text
	if resp.Model != "" {
		notes.Model = resp.Model
	}
	return notes, nil
}

func extractedQuotes(report model.Report) []string {
	if report.ParseResult == nil {
		return nil
	}
	quotes := make([]string, 0, len(report.ParseResult.Quotes))
	for _, q := range report.ParseResult.Quotes {
		quotes = append(quotes, q.QuoteText)
	}
	return quotes
}

// quotedSpan matches straight or curly double-quoted spans of at least 12 characters.
// Shorter spans are usually scare quotes or field names.
var quotedSpan = regexp.MustCompile(`["\x{201C}]([^"\x{201C}\x{201D}\n]{12,})["\x{201D}]`)

const removedQuote = "[quotation removed]"

// GuardQuotes finds quoted spans in notes that do not occur in any allowed quote.
// When strip is set those spans are replaced; the unmatched spans are returned either way.
func GuardQuotes(notes string, allowed []string, strip bool) (string, []string) {
	normAllowed := make([]string, len(allowed))
	for i, q := range allowed {
		normAllowed[i] = normalizeQuote(q)
	}

	var leaks []string
	out := quotedSpan.ReplaceAllStringFunc(notes, func(m string) string {
		span := quotedSpan.FindStringSubmatch(m)[1]
		if quoteAllowed(normalizeQuote(span), normAllowed) {
			return m
		}
		leaks = append(leaks, span)
		if strip {
			return removedQuote
		}
		return m
	})
	return out, leaks
}

func quoteAllowed(span string, allowed []string) bool {
	if span == "" {
		return true
	}
	for _, q := range allowed {
		if strings.Contains(q, span) {
			return true
		}
	}
	return false
}

func normalizeQuote(s string) string {
	s = strings.NewReplacer("’", "'", "‘", "'", "“", "", "”", "", `"`, "").Replace(s)
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return strings.Trim(s, " .,;:!?")
}

// RenderNotesMarkdown renders editor notes as a standalone Markdown document
func RenderNotesMarkdown(notes *model.LLMNotes) string {
	if notes == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Editor Notes\n\n")
	if notes.Enabled {
		fmt.Fprintf(&b, "_Generated by %s", notes.Provider)
		if notes.Model != "" {
			fmt.Fprintf(&b, " (%s)", notes.Model)
		}
		b.WriteString(". Notes do not affect the quality score._\n\n")
		b.WriteString(notes.NotesMD)
		b.WriteString("\n")
	} else {
		b.WriteString("_Editor notes were not generated._\n")
	}

	if len(notes.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range notes.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

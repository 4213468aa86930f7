package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/pressparse/internal/llm"
	"github.com/ppiankov/pressparse/internal/model"
)

// Renderer writes reports as JSON, Markdown or a terminal summary
type Renderer struct {
	includeFooter bool
	includeFields bool
}

// NewRenderer creates a new renderer
func NewRenderer(cfg model.OutputConfig) *Renderer {
	return &Renderer{
		includeFooter: cfg.IncludeFooter,
		includeFields: cfg.IncludeFields,
	}
}

// WriteJSON encodes v as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// RenderJSON writes the report as JSON to path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	out := report
	if !r.includeFields && report.ParseResult != nil {
		trimmed := *report
		result := *report.ParseResult
		result.FieldsData = nil
		trimmed.ParseResult = &result
		out = &trimmed
	}
	return writeFile(path, func(w io.Writer) error {
		return r.WriteJSON(w, out)
	})
}

// RenderMarkdown writes the report as Markdown to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, r.Markdown(report))
		return err
	})
}

// RenderNotesMarkdown writes editor notes next to the Markdown report
func (r *Renderer) RenderNotesMarkdown(notes *model.LLMNotes, path string) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, llm.RenderNotesMarkdown(notes))
		return err
	})
}

// RenderReport renders the report to the requested outputs and prints a summary to w
func (r *Renderer) RenderReport(w io.Writer, report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := r.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := r.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}

		if report.LLM != nil && report.LLM.Enabled {
			notesPath := strings.TrimSuffix(mdPath, ".md") + ".notes.md"
			if err := r.RenderNotesMarkdown(report.LLM, notesPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to write editor notes: %v\n", err)
			} else if verbose {
				fmt.Fprintf(os.Stderr, "✓ Wrote Editor Notes: %s\n", notesPath)
			}
		}
	}

	r.RenderSummary(w, report)
	return nil
}

// Markdown renders the report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", mdTitle(report))
	fmt.Fprintf(&b, "**Source:** %s  \n", report.Source)
	fmt.Fprintf(&b, "**Parsed:** %s\n\n", report.ParsedAt.Format("2006-01-02 15:04:05 UTC"))

	if !report.Technical.IsParseable {
		b.WriteString("## Not Parseable\n\n")
		for _, issue := range report.Technical.Errors {
			fmt.Fprintf(&b, "- **%s**: %s\n", issue.Type, issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintf(&b, "  - %s\n", issue.Suggestion)
			}
		}
		r.footer(&b)
		return b.String()
	}

	v := report.Validation
	res := report.ParseResult

	fmt.Fprintf(&b, "## Quality: %d/100 (%s)\n\n", v.QualityScore, v.Status)
	if v.ShouldReject {
		b.WriteString("> **Rejected:** quality score below 40.\n\n")
	}
	writeList(&b, "Errors", v.Errors)
	writeList(&b, "Warnings", v.Warnings)
	writeList(&b, "Suggestions", v.Suggestions)

	if len(report.Technical.Warnings) > 0 {
		b.WriteString("### Input Warnings\n\n")
		for _, issue := range report.Technical.Warnings {
			fmt.Fprintf(&b, "- %s\n", issue.Message)
		}
		b.WriteString("\n")
	}

	cs := res.ContentStructure
	b.WriteString("## Structure\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	if res.ReleaseInfo.ReleaseType != "" {
		fmt.Fprintf(&b, "| Release | %s |\n", cell(res.ReleaseInfo.ReleaseType))
	}
	if res.ReleaseInfo.Embargo != "" {
		fmt.Fprintf(&b, "| Embargo | %s |\n", cell(res.ReleaseInfo.Embargo))
	}
	fmt.Fprintf(&b, "| Headline | %s |\n", cell(cs.Headline))
	fmt.Fprintf(&b, "| Subhead | %s |\n", cell(cs.Subhead))
	fmt.Fprintf(&b, "| Dateline | %s (%s) |\n", cell(cs.Dateline.Full), cs.Dateline.Confidence)
	fmt.Fprintf(&b, "| Paragraphs | %d |\n", cs.TotalParagraphs)
	fmt.Fprintf(&b, "| Words | %d |\n\n", res.Metadata.WordCount)

	for _, issue := range cs.Dateline.Issues {
		fmt.Fprintf(&b, "- Dateline: %s\n", issue)
	}
	if len(cs.Dateline.Issues) > 0 {
		b.WriteString("\n")
	}

	if cs.LeadParagraph != "" {
		b.WriteString("### Lead\n\n")
		b.WriteString(cs.LeadParagraph)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "## Quotes (%d)\n\n", len(res.Quotes))
	for i, q := range res.Quotes {
		fmt.Fprintf(&b, "%d. \"%s\"\n", i+1, q.QuoteText)
		fmt.Fprintf(&b, "   - **Speaker:** %s\n", speakerLine(q))
		if q.Type == model.QuoteTypeMultiParagraph {
			b.WriteString("   - Spans multiple paragraphs\n")
		}
	}
	if len(res.Quotes) > 0 {
		b.WriteString("\n")
	}

	c := res.ContactInfo
	if c.Name != "" || c.Email != "" || c.Phone != "" {
		b.WriteString("## Contact\n\n")
		for _, line := range []struct{ label, value string }{
			{"Name", c.Name}, {"Email", c.Email}, {"Phone", c.Phone},
		} {
			if line.value != "" {
				fmt.Fprintf(&b, "- **%s:** %s\n", line.label, line.value)
			}
		}
		b.WriteString("\n")
	}

	if len(v.Metrics.Signals) > 0 {
		b.WriteString("## Score Deductions\n\n")
		for _, s := range v.Metrics.Signals {
			fmt.Fprintf(&b, "- `%s` (-%d): %s\n", s.Type, s.Penalty, s.Description)
		}
		b.WriteString("\n")
	}

	if r.includeFields && len(res.FieldsData) > 0 {
		b.WriteString("## Fields\n\n| Key | Value |\n|---|---|\n")
		keys := make([]string, 0, len(res.FieldsData))
		for k := range res.FieldsData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "| `%s` | %s |\n", k, cell(res.FieldsData[k]))
		}
		b.WriteString("\n")
	}

	r.footer(&b)
	return b.String()
}

// RenderSummary prints a short terminal summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintln(w, "\n═══════════════════════════════════════════════════════")
	fmt.Fprintf(w, "  %s\n", mdTitle(report))
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")

	if !report.Technical.IsParseable {
		for _, issue := range report.Technical.Errors {
			fmt.Fprintf(w, "  ✗ %s: %s\n", issue.Type, issue.Message)
		}
		fmt.Fprintln(w)
		return
	}

	v := report.Validation
	res := report.ParseResult
	mark := "✓"
	if v.ShouldReject {
		mark = "✗"
	}
	fmt.Fprintf(w, "  %s Quality: %d/100 (%s)\n", mark, v.QualityScore, v.Status)
	fmt.Fprintf(w, "  Dateline: %s (%s)\n", orDash(res.ContentStructure.Dateline.Full), res.ContentStructure.Dateline.Confidence)
	fmt.Fprintf(w, "  Quotes: %d (%d attributed)\n", res.Metadata.QuoteCount, res.Metadata.AttributedQuoteCount)
	fmt.Fprintf(w, "  Paragraphs: %d\n", res.ContentStructure.TotalParagraphs)

	for _, e := range v.Errors {
		fmt.Fprintf(w, "  ✗ %s\n", e)
	}
	for _, warn := range v.Warnings {
		fmt.Fprintf(w, "  ! %s\n", warn)
	}
	fmt.Fprintln(w)
}

func (r *Renderer) footer(b *strings.Builder) {
	if !r.includeFooter {
		return
	}
	b.WriteString("---\n\n")
	b.WriteString("_Structure and quality score are derived from the text alone. ")
	b.WriteString("A high score means the release is well formed, not that its claims are accurate._\n")
}

func mdTitle(report *model.Report) string {
	if report.Subject != "" {
		return report.Subject
	}
	return report.Source
}

func speakerLine(q model.Quote) string {
	if !q.IsAttributed() {
		return model.UnknownSpeaker
	}
	if q.SpeakerTitle != "" {
		return q.SpeakerName + ", " + q.SpeakerTitle
	}
	return q.SpeakerName
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

// cell makes a value safe for a Markdown table cell
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// writeFile writes through a temp file so a failed render never leaves a partial report
func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pressparse-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

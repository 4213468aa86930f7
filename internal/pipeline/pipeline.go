package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/pressparse/internal/cache"
	"github.com/ppiankov/pressparse/internal/llm"
	"github.com/ppiankov/pressparse/internal/model"
	"github.com/ppiankov/pressparse/internal/parser"
)

// NoteWriter produces optional editor notes for a scored report
type NoteWriter interface {
	Notes(ctx context.Context, report model.Report) (*model.LLMNotes, error)
}

// Pipeline orchestrates one parse run: acquire text, parse, score, annotate
type Pipeline struct {
	parser   *parser.Parser
	fetcher  *Fetcher
	notes    NoteWriter // nil when editor notes are disabled
	renderer *Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	p, err := parser.New(cfg)
	if err != nil {
		return nil, err
	}

	pl := &Pipeline{
		parser:   p,
		fetcher:  NewFetcher(cfg.HTTP, cache.New(cfg.Cache), logger),
		renderer: NewRenderer(cfg.Output),
		logger:   logger,
		now:      time.Now,
	}

	if cfg.LLM.Provider != "" {
		editor, err := llm.NewEditor(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			// Notes are optional; a bad provider config must not stop parsing
			logger.Warn("failed to initialize LLM provider", "provider", cfg.LLM.Provider, "error", err)
		} else if editor.IsEnabled() {
			pl.notes = editor
		}
	}
	return pl, nil
}

// SetNoteWriter replaces the editor-notes generator; nil disables notes
func (p *Pipeline) SetNoteWriter(w NoteWriter) {
	p.notes = w
}

// SetLimiter throttles URL fetches
func (p *Pipeline) SetLimiter(l RateLimiter) {
	p.fetcher.SetLimiter(l)
}

// Renderer returns the pipeline's report renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// IsURL reports whether source should be fetched rather than read from disk
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Process runs a file path or URL through the pipeline
func (p *Pipeline) Process(ctx context.Context, source string) (*model.Report, error) {
	if IsURL(source) {
		return p.ProcessURL(ctx, source)
	}
	return p.ProcessFile(ctx, source)
}

// ProcessFile parses a release stored on disk
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.ProcessText(ctx, path, string(data)), nil
}

// Fetch downloads and extracts a release page without parsing it
func (p *Pipeline) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	return p.fetcher.Fetch(ctx, rawURL)
}

// ProcessURL fetches a release page and parses its text
func (p *Pipeline) ProcessURL(ctx context.Context, rawURL string) (*model.Report, error) {
	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	report := p.run(ctx, fetched.FinalURL, fetched.Page.Text, fetched.Page.PublishedDate)
	meta := fetched.Meta
	report.Fetch = &meta
	if report.Subject == "" {
		report.Subject = fetched.Subject
	}
	return report, nil
}

// ProcessText parses text that is already in memory.
// A technically invalid input still yields a report carrying the verdict.
func (p *Pipeline) ProcessText(ctx context.Context, source, text string) *model.Report {
	report := p.run(ctx, source, text, "")
	if report.Subject == "" {
		report.Subject = subjectFromSource(source)
	}
	return report
}

func (p *Pipeline) run(ctx context.Context, source, text, publishedDate string) *model.Report {
	report := &model.Report{
		Source:   source,
		ParsedAt: p.now().UTC(),
	}

	// 1. Technical gate, parse and score
	v, err := p.parser.ParseWithValidation(text)
	report.Technical = v.Technical
	if err != nil {
		p.logger.Info("input rejected", "source", source, "error", err)
		return report
	}

	// 2. Out-of-band publish date, then rescore
	if spliceDate(v.Result, publishedDate) {
		validation := p.parser.Validate(v.Result, text)
		v.Validation = &validation
		p.logger.Debug("dateline date taken from page metadata", "source", source, "date", publishedDate)
	}

	report.ParseResult = v.Result
	report.Validation = v.Validation
	report.Subject = v.Result.ContentStructure.Headline

	p.logger.Debug("parsed release",
		"source", source,
		"score", v.Validation.QualityScore,
		"quotes", len(v.Result.Quotes),
		"dateline", v.Result.ContentStructure.Dateline.Confidence)

	// 3. Editor notes (AFTER scoring, never affects score)
	if p.notes != nil {
		notes, err := p.notes.Notes(ctx, *report)
		if err != nil {
			p.logger.Warn("editor notes failed", "source", source, "error", err)
		} else if notes != nil {
			report.LLM = notes
		}
	}
	return report
}

// spliceDate fills an empty dateline date from page metadata.
// Returns false when the text already carried a date.
func spliceDate(r *model.ParseResult, date string) bool {
	d := &r.ContentStructure.Dateline
	if date == "" || d.Date != "" {
		return false
	}

	d.Date = date
	if d.Location != "" {
		d.Full = d.Location + " — " + date
		d.Confidence = model.ConfidenceMedium
	} else {
		d.Full = date
		d.Confidence = model.ConfidenceLow
	}
	d.Issues = append(d.Issues, "Date taken from page metadata, not from the release text")

	r.Metadata.DatelineConfidence = string(d.Confidence)
	r.FieldsData = parser.Fields(*r)
	return true
}

func subjectFromSource(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

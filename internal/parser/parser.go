// Package parser turns press-release text into a structured ParseResult.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/pressparse/internal/extract"
	"github.com/ppiankov/pressparse/internal/model"
	"github.com/ppiankov/pressparse/internal/pattern"
	"github.com/ppiankov/pressparse/internal/score"
	"github.com/ppiankov/pressparse/internal/validate"
)

// ErrNotParseable is returned when the technical validator rejects the input
var ErrNotParseable = errors.New("input is not parseable")

// TechnicalError carries the fatal issue behind ErrNotParseable
type TechnicalError struct {
	Issue model.TechnicalIssue
}

func (e *TechnicalError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrNotParseable, e.Issue.Type, e.Issue.Message)
}

func (e *TechnicalError) Unwrap() error {
	return ErrNotParseable
}

// Parser runs the extractors over one release at a time.
// It holds no per-call state and is safe for concurrent use.
type Parser struct {
	ext    *extract.Extractor
	scorer *score.Scorer
	now    func() time.Time
}

// Option configures a Parser
type Option func(*Parser)

// WithClock sets the clock used for metadata.parsed_at
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// New creates a parser from configuration, loading pattern overrides when configured
func New(cfg *model.Config, opts ...Option) (*Parser, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	lib := pattern.Default()
	if cfg.Parser.PatternsFile != "" {
		var err error
		lib, err = pattern.Load(cfg.Parser.PatternsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load patterns: %w", err)
		}
	}

	p := &Parser{
		ext:    extract.New(lib, extract.ThresholdsFromConfig(cfg.Parser)),
		scorer: score.NewScorer(score.PenaltiesFromConfig(cfg.Quality)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse extracts the structure of text. It never fails; weak input yields
// empty fields and low-confidence annotations.
func (p *Parser) Parse(text string) model.ParseResult {
	clean := Clean(text)

	headline := p.ext.Headline(clean)
	subhead := p.ext.Subhead(strings.Split(clean, "\n"), headline)
	dateline := p.ext.Dateline(clean)
	paragraphs := p.ext.Paragraphs(clean, headline, dateline)
	quotes := p.ext.Quotes(clean, headline, subhead)
	sourcePositions(text, clean, quotes)

	result := model.ParseResult{
		ReleaseInfo: p.ext.ReleaseInfo(clean),
		ContentStructure: model.ContentStructure{
			Headline:        headline,
			Subhead:         subhead,
			Dateline:        dateline,
			LeadParagraph:   paragraphs.Lead,
			BodyParagraphs:  paragraphs.Body,
			TotalParagraphs: paragraphs.Total(),
		},
		Quotes:      quotes,
		ContactInfo: p.ext.Contact(clean),
		CleanText:   clean,
	}
	result.Metadata = p.metadata(result)
	result.FieldsData = Fields(result)
	return result
}

// Validated is the outcome of ParseWithValidation
type Validated struct {
	Technical  model.TechnicalValidation
	Result     *model.ParseResult      // nil when the input is not parseable
	Validation *model.ValidationResult // nil when the input is not parseable
}

// ParseWithValidation gates text through the technical validator, then parses
// and scores it. A rejected input returns a *TechnicalError wrapping ErrNotParseable.
func (p *Parser) ParseWithValidation(text string) (Validated, error) {
	out := Validated{Technical: validate.Technical(text)}
	if !out.Technical.IsParseable {
		return out, &TechnicalError{Issue: out.Technical.Errors[0]}
	}

	result := p.Parse(text)
	validation := p.scorer.Validate(&result, text)
	out.Result = &result
	out.Validation = &validation
	return out, nil
}

// Validate scores an existing result against its source text
func (p *Parser) Validate(result *model.ParseResult, originalText string) model.ValidationResult {
	return p.scorer.Validate(result, originalText)
}

func (p *Parser) metadata(r model.ParseResult) model.Metadata {
	attributed := 0
	for _, q := range r.Quotes {
		if q.IsAttributed() {
			attributed++
		}
	}
	return model.Metadata{
		WordCount:            len(strings.Fields(r.CleanText)),
		CharacterCount:       utf8.RuneCountInString(r.CleanText),
		ParagraphCount:       r.ContentStructure.TotalParagraphs,
		QuoteCount:           len(r.Quotes),
		AttributedQuoteCount: attributed,
		DatelineConfidence:   string(r.ContentStructure.Dateline.Confidence),
		ParsedAt:             p.now().UTC(),
	}
}

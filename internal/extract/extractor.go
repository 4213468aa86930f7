// Package extract recovers the editorial structure of a press release:
// headline, subhead, dateline, paragraphs, quotes and speakers.
//
// Every pass is best-effort. Nothing here returns an error; absence of a
// signal is reported as an empty field or a lower confidence.
package extract

import (
	"regexp"

	"github.com/ppiankov/pressparse/internal/model"
	"github.com/ppiankov/pressparse/internal/pattern"
)

// Thresholds are empirically tuned distances and limits
type Thresholds struct {
	CombineDistance         int // Max gap between multi-part quote fragments
	AttributionWindow       int // Chars inspected before/after a quote for attribution
	PronounLookback         int // Chars scanned backwards for a pronoun's antecedent
	MultiParagraphScanLimit int // Max paragraphs a multi-paragraph quote may span
	HeadlineCandidates      int // Substantive lines scored as headline candidates
	LooseDatelineLines      int // Lines searched by the loose dateline scan
	MinParagraphLength      int // Paragraphs at or below this length are dropped
}

// DefaultThresholds returns the tuned defaults
func DefaultThresholds() Thresholds {
	return ThresholdsFromConfig(model.DefaultConfig().Parser)
}

// ThresholdsFromConfig converts parser config, falling back to defaults for unset values
func ThresholdsFromConfig(cfg model.ParserConfig) Thresholds {
	t := Thresholds{
		CombineDistance:         cfg.CombineDistance,
		AttributionWindow:       cfg.AttributionWindow,
		PronounLookback:         cfg.PronounLookback,
		MultiParagraphScanLimit: cfg.MultiParagraphScanLimit,
		HeadlineCandidates:      cfg.HeadlineCandidates,
		LooseDatelineLines:      cfg.LooseDatelineLines,
		MinParagraphLength:      cfg.MinParagraphLength,
	}
	orDefault(&t.CombineDistance, 300)
	orDefault(&t.AttributionWindow, 200)
	orDefault(&t.PronounLookback, 500)
	orDefault(&t.MultiParagraphScanLimit, 10)
	orDefault(&t.HeadlineCandidates, 5)
	orDefault(&t.LooseDatelineLines, 10)
	orDefault(&t.MinParagraphLength, 20)
	return t
}

func orDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

// Extractor runs the structural passes. It holds only immutable tables and
// compiled patterns, so one Extractor may serve concurrent callers.
type Extractor struct {
	lib *pattern.Library
	th  Thresholds

	saidName       *regexp.Regexp // "said Senator Jane Doe" after a quote
	reversed       *regexp.Regexp // "Porter continued"
	pronounAfter   *regexp.Regexp // "she added", "said he"
	beforeVerb     *regexp.Regexp // verbs introducing a quote that follows
	statement      *regexp.Regexp // "released the following statement"
	properName     *regexp.Regexp
	corporateName  *regexp.Regexp
	titledName     *regexp.Regexp
	titleWords     *regexp.Regexp
	leadVerb       *regexp.Regexp
	tailVerb       *regexp.Regexp
	trailingClause *regexp.Regexp
}

// New creates an Extractor over lib. A nil lib uses pattern.Default().
func New(lib *pattern.Library, th Thresholds) *Extractor {
	if lib == nil {
		lib = pattern.Default()
	}
	e := &Extractor{lib: lib, th: th}
	e.compileAttribution()
	return e
}

// Library returns the pattern library in use
func (e *Extractor) Library() *pattern.Library {
	return e.lib
}

// Thresholds returns the thresholds in use
func (e *Extractor) Thresholds() Thresholds {
	return e.th
}

package score

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/pressparse/internal/model"
)

// Body and headline limits behind the quality penalties
const (
	MinBodyLength       = 100
	BriefBodyLength     = 200
	MinHeadlineLength   = 10
	MaxHeadlineLength   = 200
	MinHeadlineWords    = 3
	RejectThreshold     = 40
	mostlyUnknownRatio  = 0.75
	halfUnknownRatio    = 0.50
	originalHeaderLines = 20
)

var releaseHeaderRe = regexp.MustCompile(`(?i)\b(?:for\s+immediate\s+release|embargoed|news\s+release|press\s+release|media\s+advisory)\b`)

// Penalties are the points deducted per quality defect
type Penalties struct {
	MissingHeader   int
	NoQuotes        int
	WeakHeadline    int
	ShortBody       int
	MissingDateline int
	MostlyUnknown   int
	HalfUnknown     int
	SingleQuote     int
	SomeUnknown     int
	BriefBody       int
}

// DefaultPenalties returns the tuned deductions
func DefaultPenalties() Penalties {
	return PenaltiesFromConfig(model.QualityConfig{})
}

// PenaltiesFromConfig applies configured deductions. Unset fields keep the
// tuned default; an explicit 0 disables a deduction.
func PenaltiesFromConfig(cfg model.QualityConfig) Penalties {
	return Penalties{
		MissingHeader:   orDefault(cfg.MissingHeader, 30),
		NoQuotes:        orDefault(cfg.NoQuotes, 40),
		WeakHeadline:    orDefault(cfg.WeakHeadline, 25),
		ShortBody:       orDefault(cfg.ShortBody, 35),
		MissingDateline: orDefault(cfg.MissingDateline, 15),
		MostlyUnknown:   orDefault(cfg.MostlyUnknown, 20),
		HalfUnknown:     orDefault(cfg.HalfUnknown, 10),
		SingleQuote:     orDefault(cfg.SingleQuote, 5),
		SomeUnknown:     orDefault(cfg.SomeUnknown, 5),
		BriefBody:       orDefault(cfg.BriefBody, 5),
	}
}

func orDefault(v *int, def int) int {
	if v == nil || *v < 0 {
		return def
	}
	return *v
}

// Scorer grades a parse result and explains every deduction
type Scorer struct {
	penalties Penalties
}

// NewScorer creates a new scorer
func NewScorer(penalties Penalties) *Scorer {
	return &Scorer{penalties: penalties}
}

// check inspects one aspect of a release. A zero penalty means the check passed.
type check func(s *Scorer, in input) finding

type input struct {
	result       *model.ParseResult
	originalText string
	body         string
	unknown      int
}

type finding struct {
	signal     model.Signal
	message    string
	suggestion string
	fatal      bool // reported as an error rather than a warning
}

// checks run in order; each contributes at most one deduction
var checks = []check{
	(*Scorer).checkHeader,
	(*Scorer).checkQuotes,
	(*Scorer).checkHeadline,
	(*Scorer).checkBody,
	(*Scorer).checkDateline,
	(*Scorer).checkUnknownSpeakers,
	(*Scorer).checkSingleQuote,
}

// Validate scores result starting from 100 and subtracting a penalty per defect.
// originalText is the text the result was parsed from.
func (s *Scorer) Validate(result *model.ParseResult, originalText string) model.ValidationResult {
	in := input{
		result:       result,
		originalText: originalText,
		body:         bodyText(result.ContentStructure),
	}
	for _, q := range result.Quotes {
		if !q.IsAttributed() {
			in.unknown++
		}
	}

	v := model.ValidationResult{
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
		Metrics: model.QualityMetrics{
			HasReleaseHeader:   s.hasHeader(in),
			HeadlineLength:     utf8.RuneCountInString(result.ContentStructure.Headline),
			BodyLength:         utf8.RuneCountInString(in.body),
			QuoteCount:         len(result.Quotes),
			UnknownSpeakers:    in.unknown,
			UnknownRatio:       unknownRatio(in.unknown, len(result.Quotes)),
			DatelineConfidence: string(result.ContentStructure.Dateline.Confidence),
			Signals:            []model.Signal{},
		},
	}

	score := 100
	for _, c := range checks {
		f := c(s, in)
		if f.signal.Penalty == 0 {
			continue
		}
		score -= f.signal.Penalty
		v.Metrics.Signals = append(v.Metrics.Signals, f.signal)
		if f.fatal {
			v.Errors = append(v.Errors, f.message)
		} else {
			v.Warnings = append(v.Warnings, f.message)
		}
		if f.suggestion != "" {
			v.Suggestions = append(v.Suggestions, f.suggestion)
		}
	}

	v.QualityScore = clamp(score)
	v.Status = Status(v.QualityScore)
	v.ShouldReject = v.QualityScore < RejectThreshold
	return v
}

// Status bands a quality score
func Status(score int) model.QualityStatus {
	switch {
	case score < 40:
		return model.StatusRejected
	case score < 60:
		return model.StatusPoor
	case score < 75:
		return model.StatusFair
	case score < 90:
		return model.StatusGood
	default:
		return model.StatusExcellent
	}
}

func (s *Scorer) hasHeader(in input) bool {
	if in.result.ReleaseInfo.HasReleaseHeader {
		return true
	}
	lines := strings.SplitN(in.originalText, "\n", originalHeaderLines+1)
	if len(lines) > originalHeaderLines {
		lines = lines[:originalHeaderLines]
	}
	return releaseHeaderRe.MatchString(strings.Join(lines, "\n"))
}

func (s *Scorer) checkHeader(in input) finding {
	if s.hasHeader(in) {
		return finding{}
	}
	return finding{
		signal: model.Signal{
			Type:        model.SignalReleaseHeader,
			Severity:    model.SeverityCritical,
			Description: "No release header such as FOR IMMEDIATE RELEASE",
			Penalty:     s.penalties.MissingHeader,
		},
		message:    "Missing release header (e.g. FOR IMMEDIATE RELEASE)",
		suggestion: "Add a FOR IMMEDIATE RELEASE line or an embargo line at the top",
		fatal:      true,
	}
}

func (s *Scorer) checkQuotes(in input) finding {
	if len(in.result.Quotes) > 0 {
		return finding{}
	}
	return finding{
		signal: model.Signal{
			Type:        model.SignalNoQuotes,
			Severity:    model.SeverityCritical,
			Description: "No quotations found",
			Penalty:     s.penalties.NoQuotes,
		},
		message:    "No quotes found in the release",
		suggestion: "Include at least one attributed quote from a spokesperson",
		fatal:      true,
	}
}

func (s *Scorer) checkHeadline(in input) finding {
	headline := in.result.ContentStructure.Headline
	n := utf8.RuneCountInString(headline)
	words := len(strings.Fields(headline))
	if n >= MinHeadlineLength && n <= MaxHeadlineLength && words >= MinHeadlineWords {
		return finding{}
	}

	message := "Headline is missing"
	if headline != "" {
		message = fmt.Sprintf("Headline is weak (%d characters, %d words)", n, words)
	}
	return finding{
		signal: model.Signal{
			Type:        model.SignalHeadline,
			Severity:    model.SeverityCritical,
			Description: message,
			Penalty:     s.penalties.WeakHeadline,
			Data:        map[string]interface{}{"length": n, "words": words},
		},
		message:    message,
		suggestion: fmt.Sprintf("Write a headline of %d-%d characters naming who did what", MinHeadlineLength, MaxHeadlineLength),
		fatal:      true,
	}
}

func (s *Scorer) checkBody(in input) finding {
	n := utf8.RuneCountInString(in.body)
	switch {
	case n < MinBodyLength:
		return finding{
			signal: model.Signal{
				Type:        model.SignalBodyLength,
				Severity:    model.SeverityCritical,
				Description: fmt.Sprintf("Body text is %d characters (minimum %d)", n, MinBodyLength),
				Penalty:     s.penalties.ShortBody,
				Data:        map[string]interface{}{"length": n},
			},
			message:    fmt.Sprintf("Body text is too short (%d characters)", n),
			suggestion: "Add a lead paragraph covering who, what, when and where",
			fatal:      true,
		}
	case n < BriefBodyLength:
		return finding{
			signal: model.Signal{
				Type:        model.SignalShortBodyWarning,
				Severity:    model.SeverityInfo,
				Description: fmt.Sprintf("Body text is %d characters", n),
				Penalty:     s.penalties.BriefBody,
				Data:        map[string]interface{}{"length": n},
			},
			message:    fmt.Sprintf("Body text is brief (%d characters)", n),
			suggestion: "Expand the body with supporting details",
		}
	}
	return finding{}
}

func (s *Scorer) checkDateline(in input) finding {
	d := in.result.ContentStructure.Dateline
	if d.Confidence != model.ConfidenceNone && d.Confidence != "" {
		return finding{}
	}
	return finding{
		signal: model.Signal{
			Type:        model.SignalDateline,
			Severity:    model.SeverityWarning,
			Description: "No dateline found",
			Penalty:     s.penalties.MissingDateline,
		},
		message:    "Missing dateline",
		suggestion: "Open the first paragraph with CITY, ST — Month Day, Year",
	}
}

func (s *Scorer) checkUnknownSpeakers(in input) finding {
	total := len(in.result.Quotes)
	if in.unknown == 0 || total == 0 {
		return finding{}
	}

	ratio := unknownRatio(in.unknown, total)
	penalty := s.penalties.SomeUnknown
	severity := model.SeverityInfo
	switch {
	case ratio > mostlyUnknownRatio:
		penalty, severity = s.penalties.MostlyUnknown, model.SeverityWarning
	case ratio > halfUnknownRatio:
		penalty, severity = s.penalties.HalfUnknown, model.SeverityWarning
	}

	message := fmt.Sprintf("%d of %d quotes have unknown speakers", in.unknown, total)
	return finding{
		signal: model.Signal{
			Type:        model.SignalUnknownSpeakers,
			Severity:    severity,
			Description: message,
			Penalty:     penalty,
			Data:        map[string]interface{}{"unknown": in.unknown, "total": total, "ratio": ratio},
		},
		message:    message,
		suggestion: "Attribute every quote, e.g. \"...,\" said Jane Doe, CEO of Acme.",
	}
}

func (s *Scorer) checkSingleQuote(in input) finding {
	if len(in.result.Quotes) != 1 {
		return finding{}
	}
	return finding{
		signal: model.Signal{
			Type:        model.SignalSingleQuote,
			Severity:    model.SeverityInfo,
			Description: "Only one quote found",
			Penalty:     s.penalties.SingleQuote,
		},
		message:    "Only one quote in the release",
		suggestion: "Consider adding a second voice, such as a partner or customer",
	}
}

// bodyText joins the lead and body paragraphs
func bodyText(cs model.ContentStructure) string {
	parts := make([]string, 0, len(cs.BodyParagraphs)+1)
	if cs.LeadParagraph != "" {
		parts = append(parts, cs.LeadParagraph)
	}
	parts = append(parts, cs.BodyParagraphs...)
	return strings.Join(parts, "\n\n")
}

func unknownRatio(unknown, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(unknown) / float64(total)
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

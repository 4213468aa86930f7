package model

import "time"

// Report wraps one parse run for rendering and batch output
type Report struct {
	Source      string              `json:"source"`                 // File path, URL or "stdin"
	Subject     string              `json:"subject"`                // Headline or derived name
	ParsedAt    time.Time           `json:"parsed_at"`              // When the run happened
	Fetch       *FetchMeta          `json:"fetch_meta,omitempty"`   // Present for URL sources
	Technical   TechnicalValidation `json:"technical"`              // Gatekeeper verdict
	ParseResult *ParseResult        `json:"parse_result,omitempty"` // Nil when not parseable
	Validation  *ValidationResult   `json:"validation,omitempty"`   // Nil when not parseable
	LLM         *LLMNotes           `json:"llm,omitempty"`          // Optional editor notes (never affects score)
}

// FetchMeta contains HTTP metadata from fetching a release page
type FetchMeta struct {
	StatusCode    int               `json:"status_code"`
	ContentType   string            `json:"content_type,omitempty"`
	LastModified  string            `json:"last_modified,omitempty"`
	PublishedDate string            `json:"published_date,omitempty"` // From page meta tags
	FromCache     bool              `json:"from_cache"`
	Headers       map[string]string `json:"headers,omitempty"`
}

// LLMNotes contains optional model-generated editor notes
// They are produced after scoring and never change the score.
type LLMNotes struct {
	Enabled     bool     `json:"enabled"`
	Provider    string   `json:"provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	StrictQuote bool     `json:"strict_quotes"` // Whether quote-leak enforcement was on
	NotesMD     string   `json:"notes_md,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Accepted reports whether the run produced a release that should not be rejected
func (r *Report) Accepted() bool {
	return r.Technical.IsParseable && r.Validation != nil && !r.Validation.ShouldReject
}

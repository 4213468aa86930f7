package model

import "time"

// ParseResult is the structured view of a single press release.
// Field names are consumed by form-filling and persistence layers; keep them stable.
type ParseResult struct {
	ReleaseInfo      ReleaseInfo       `json:"release_info"`
	ContentStructure ContentStructure  `json:"content_structure"`
	Quotes           []Quote           `json:"quotes"`
	ContactInfo      ContactInfo       `json:"contact_info"`
	Metadata         Metadata          `json:"metadata"`
	FieldsData       map[string]string `json:"fields_data"`
	CleanText        string            `json:"clean_text"`
}

// ReleaseInfo describes the release header and footer markers
type ReleaseInfo struct {
	ReleaseType      string `json:"release_type"`       // e.g. "FOR IMMEDIATE RELEASE"
	Embargo          string `json:"embargo,omitempty"`  // Embargo line if present
	HasReleaseHeader bool   `json:"has_release_header"` // Any release header found
	HasEndMarker     bool   `json:"has_end_marker"`     // "###" or "-30-"
}

// ContentStructure holds the editorial structure of the release
type ContentStructure struct {
	Headline        string   `json:"headline"`
	Subhead         string   `json:"subhead"`
	Dateline        Dateline `json:"dateline"`
	LeadParagraph   string   `json:"lead_paragraph"`
	BodyParagraphs  []string `json:"body_paragraphs"`
	TotalParagraphs int      `json:"total_paragraphs"`
}

// Dateline is the "CITY, ST — Month Day, Year" opener
type Dateline struct {
	Location   string     `json:"location"`
	Date       string     `json:"date"`
	Full       string     `json:"full"`
	Confidence Confidence `json:"confidence"`
	Issues     []string   `json:"issues"`
}

// Confidence ranks how much of an extraction was inferred
type Confidence string

const (
	ConfidenceNone   Confidence = "none"
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Rank returns the position of c in the order none < low < medium < high.
// Unknown values rank as none.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceLow:
		return 1
	case ConfidenceMedium:
		return 2
	case ConfidenceHigh:
		return 3
	default:
		return 0
	}
}

// Weaker returns the lower of two confidence levels
func Weaker(a, b Confidence) Confidence {
	if a.Rank() <= b.Rank() {
		return a
	}
	return b
}

// QuoteType distinguishes single-span quotes from quotes spanning paragraphs
type QuoteType string

const (
	QuoteTypeRegular        QuoteType = "regular"
	QuoteTypeMultiParagraph QuoteType = "multi-paragraph"
)

// UnknownSpeaker is the attribution given to quotes with no resolvable speaker
const UnknownSpeaker = "Unknown Speaker"

// Quote is a quoted statement and who said it
type Quote struct {
	QuoteText       string    `json:"quote_text"`
	SpeakerName     string    `json:"speaker_name"`  // "" when unresolved
	SpeakerTitle    string    `json:"speaker_title"` // e.g. "Governor of Virginia"
	FullAttribution string    `json:"full_attribution"`
	Position        int       `json:"position"` // Byte offset in the source text
	Type            QuoteType `json:"type,omitempty"`
}

// IsAttributed reports whether the quote has a usable speaker
func (q Quote) IsAttributed() bool {
	return q.SpeakerName != "" && q.SpeakerName != UnknownSpeaker
}

// ContactInfo holds the media contact block and closing boilerplate
type ContactInfo struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Block       string `json:"block,omitempty"`       // Raw contact block
	Boilerplate string `json:"boilerplate,omitempty"` // "About X" paragraph
}

// Metadata contains derived counts about the release
type Metadata struct {
	WordCount            int       `json:"word_count"`
	CharacterCount       int       `json:"character_count"`
	ParagraphCount       int       `json:"paragraph_count"`
	QuoteCount           int       `json:"quote_count"`
	AttributedQuoteCount int       `json:"attributed_quote_count"`
	DatelineConfidence   string    `json:"dateline_confidence"`
	ParsedAt             time.Time `json:"parsed_at"` // Only time-dependent field
}

package model

// TechnicalValidation is the gatekeeper verdict produced before structural parsing
type TechnicalValidation struct {
	IsParseable bool             `json:"is_parseable"`
	Errors      []TechnicalIssue `json:"errors"`
	Warnings    []TechnicalIssue `json:"warnings"`
}

// TechnicalIssue describes one raw-input problem
type TechnicalIssue struct {
	Type       TechnicalIssueType `json:"type"`
	Message    string             `json:"message"`
	Suggestion string             `json:"suggestion,omitempty"`
	Severity   SignalSeverity     `json:"severity"`
}

// TechnicalIssueType enumerates technical-tier problems
type TechnicalIssueType string

const (
	// Fatal
	IssueInvalidInput  TechnicalIssueType = "invalid_input"
	IssueEmptyInput    TechnicalIssueType = "empty_input"
	IssueTooShort      TechnicalIssueType = "too_short"
	IssueTooLarge      TechnicalIssueType = "too_large"
	IssueBinaryData    TechnicalIssueType = "binary_data"
	IssueNoTextContent TechnicalIssueType = "no_text_content"

	// Non-fatal
	IssueHTMLContent       TechnicalIssueType = "html_content"
	IssueJSONContent       TechnicalIssueType = "json_content"
	IssueLongLines         TechnicalIssueType = "long_lines"
	IssueNoLineBreaks      TechnicalIssueType = "no_line_breaks"
	IssueHighSymbolDensity TechnicalIssueType = "high_symbol_density"
)

// ValidationResult is the quality-tier verdict for a parsed release
type ValidationResult struct {
	QualityScore int            `json:"quality_score"` // 0-100
	Status       QualityStatus  `json:"status"`
	Errors       []string       `json:"errors"`
	Warnings     []string       `json:"warnings"`
	Suggestions  []string       `json:"suggestions"`
	ShouldReject bool           `json:"should_reject"` // quality_score < 40
	Metrics      QualityMetrics `json:"metrics"`
}

// QualityStatus is a banding of the quality score
type QualityStatus string

const (
	StatusExcellent QualityStatus = "excellent"
	StatusGood      QualityStatus = "good"
	StatusFair      QualityStatus = "fair"
	StatusPoor      QualityStatus = "poor"
	StatusRejected  QualityStatus = "rejected"
)

// QualityMetrics exposes the inputs behind the score
type QualityMetrics struct {
	HasReleaseHeader   bool     `json:"has_release_header"`
	HeadlineLength     int      `json:"headline_length"`
	BodyLength         int      `json:"body_length"`
	QuoteCount         int      `json:"quote_count"`
	UnknownSpeakers    int      `json:"unknown_speakers"`
	UnknownRatio       float64  `json:"unknown_ratio"`
	DatelineConfidence string   `json:"dateline_confidence"`
	Signals            []Signal `json:"signals"`
}

// Signal records one transparent scoring deduction
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Penalty     int                    `json:"penalty"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies a quality signal
type SignalType string

const (
	SignalReleaseHeader    SignalType = "release_header"
	SignalNoQuotes         SignalType = "no_quotes"
	SignalHeadline         SignalType = "headline"
	SignalBodyLength       SignalType = "body_length"
	SignalDateline         SignalType = "dateline"
	SignalUnknownSpeakers  SignalType = "unknown_speakers"
	SignalSingleQuote      SignalType = "single_quote"
	SignalShortBodyWarning SignalType = "short_body_warning"
)

// SignalSeverity indicates the importance of a signal or issue
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

package validate

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/pressparse/internal/model"
)

// Input size limits
const (
	MinLength      = 50
	MaxLength      = 1_000_000
	MinLetters     = 20
	LongLineLimit  = 5000
	SymbolDensity  = 0.30
	htmlTagMinimum = 2
)

// fatalCheck inspects raw input and returns an issue when parsing must not proceed
type fatalCheck func(text string) *model.TechnicalIssue

// warningCheck inspects raw input for non-blocking problems
type warningCheck func(text string) *model.TechnicalIssue

// fatalChecks run in order; the first failure short-circuits
var fatalChecks = []fatalCheck{
	checkEncoding,
	checkEmpty,
	checkTooShort,
	checkTooLarge,
	checkBinary,
	checkLetters,
}

var warningChecks = []warningCheck{
	checkHTML,
	checkJSON,
	checkLongLines,
	checkLineBreaks,
	checkSymbolDensity,
}

// Technical checks raw-input sanity before any structural work.
// It is a pure function of text.
func Technical(text string) model.TechnicalValidation {
	result := model.TechnicalValidation{
		IsParseable: true,
		Errors:      []model.TechnicalIssue{},
		Warnings:    []model.TechnicalIssue{},
	}

	for _, check := range fatalChecks {
		if issue := check(text); issue != nil {
			result.IsParseable = false
			result.Errors = append(result.Errors, *issue)
			return result
		}
	}

	for _, check := range warningChecks {
		if issue := check(text); issue != nil {
			result.Warnings = append(result.Warnings, *issue)
		}
	}

	return result
}

func fatal(kind model.TechnicalIssueType, message, suggestion string) *model.TechnicalIssue {
	return &model.TechnicalIssue{
		Type:       kind,
		Message:    message,
		Suggestion: suggestion,
		Severity:   model.SeverityCritical,
	}
}

func warning(kind model.TechnicalIssueType, severity model.SignalSeverity, message, suggestion string) *model.TechnicalIssue {
	return &model.TechnicalIssue{
		Type:       kind,
		Message:    message,
		Suggestion: suggestion,
		Severity:   severity,
	}
}

func checkEncoding(text string) *model.TechnicalIssue {
	if !utf8.ValidString(text) {
		return fatal(model.IssueInvalidInput, "Input is not valid UTF-8 text",
			"Convert the document to UTF-8 before submitting it")
	}
	return nil
}

func checkEmpty(text string) *model.TechnicalIssue {
	if strings.TrimSpace(text) == "" {
		return fatal(model.IssueEmptyInput, "Input is empty",
			"Paste the full text of the press release")
	}
	return nil
}

func checkTooShort(text string) *model.TechnicalIssue {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n < MinLength {
		return fatal(model.IssueTooShort,
			fmt.Sprintf("Input is too short (%d characters, minimum %d)", n, MinLength),
			"Include the headline, dateline and at least one full paragraph")
	}
	return nil
}

func checkTooLarge(text string) *model.TechnicalIssue {
	n := utf8.RuneCountInString(text)
	if n > MaxLength {
		return fatal(model.IssueTooLarge,
			fmt.Sprintf("Input is too large (%d characters, maximum %d)", n, MaxLength),
			"Submit a single press release rather than a full archive")
	}
	return nil
}

func checkBinary(text string) *model.TechnicalIssue {
	for _, r := range text {
		if r == 0 || (unicode.IsControl(r) && !isAllowedControl(r)) {
			return fatal(model.IssueBinaryData,
				fmt.Sprintf("Input contains binary or control characters (U+%04X)", r),
				"Export the document as plain text instead of uploading a binary file")
		}
	}
	return nil
}

func isAllowedControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func checkLetters(text string) *model.TechnicalIssue {
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if letters >= MinLetters {
				return nil
			}
		}
	}
	return fatal(model.IssueNoTextContent,
		fmt.Sprintf("Input has only %d letters (minimum %d)", letters, MinLetters),
		"Make sure the document contains readable prose, not only numbers or symbols")
}

func checkHTML(text string) *model.TechnicalIssue {
	if tags := countHTMLTags(text); tags >= htmlTagMinimum {
		return warning(model.IssueHTMLContent, model.SeverityWarning,
			fmt.Sprintf("Input appears to contain HTML markup (%d tags)", tags),
			"Paste the rendered text, or fetch the page so markup is stripped first")
	}
	return nil
}

func checkJSON(text string) *model.TechnicalIssue {
	trimmed := strings.TrimSpace(text)
	if !(strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) {
		return nil
	}
	if json.Valid([]byte(trimmed)) {
		return warning(model.IssueJSONContent, model.SeverityWarning,
			"Input is a JSON document rather than release text",
			"Extract the release body field from the JSON payload")
	}
	return nil
}

func checkLongLines(text string) *model.TechnicalIssue {
	longest := 0
	for _, line := range strings.Split(text, "\n") {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}
	if longest > LongLineLimit {
		return warning(model.IssueLongLines, model.SeverityInfo,
			fmt.Sprintf("Input has a line of %d characters", longest),
			"Keep paragraph breaks when copying text so paragraphs can be detected")
	}
	return nil
}

func checkLineBreaks(text string) *model.TechnicalIssue {
	if !strings.ContainsAny(strings.TrimSpace(text), "\n\r") {
		return warning(model.IssueNoLineBreaks, model.SeverityInfo,
			"Input has no line breaks; structure will be inferred from sentences",
			"Separate headline, dateline and paragraphs with blank lines")
	}
	return nil
}

func checkSymbolDensity(text string) *model.TechnicalIssue {
	total, symbols := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			symbols++
		}
	}
	if total == 0 {
		return nil
	}
	ratio := float64(symbols) / float64(total)
	if ratio > SymbolDensity {
		return warning(model.IssueHighSymbolDensity, model.SeverityWarning,
			fmt.Sprintf("%.0f%% of characters are symbols", ratio*100),
			"Check for encoding problems or leftover markup")
	}
	return nil
}

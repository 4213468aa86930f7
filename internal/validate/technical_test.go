package validate

import (
	"strings"
	"testing"

	"github.com/ppiankov/pressparse/internal/model"
)

const validRelease = `FOR IMMEDIATE RELEASE

Acme Opens Solar Plant

RICHMOND, Va. — Oct 1, 2025 — Acme Corp opened its first solar plant today.`

func TestTechnical_Valid(t *testing.T) {
	result := Technical(validRelease)

	if !result.IsParseable {
		t.Fatalf("Expected parseable input, got errors %+v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %d", len(result.Errors))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %+v", result.Warnings)
	}
}

func TestTechnical_Fatal(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.TechnicalIssueType
	}{
		{"invalid utf8", "Acme opened a plant \xff\xfe in Richmond today and hired many workers.", model.IssueInvalidInput},
		{"empty", "   \n\t ", model.IssueEmptyInput},
		{"too short", "Hello", model.IssueTooShort},
		{"too large", strings.Repeat("a", MaxLength+1), model.IssueTooLarge},
		{"binary", "Acme opened a plant\x00 in Richmond today and hired many workers there.", model.IssueBinaryData},
		{"no letters", strings.Repeat("12345 67890 ", 10), model.IssueNoTextContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Technical(tt.text)

			if result.IsParseable {
				t.Fatal("Expected input to be rejected")
			}
			if len(result.Errors) != 1 {
				t.Fatalf("Expected exactly 1 error, got %d", len(result.Errors))
			}
			if result.Errors[0].Type != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, result.Errors[0].Type)
			}
			if result.Errors[0].Severity != model.SeverityCritical {
				t.Errorf("Expected critical severity, got %s", result.Errors[0].Severity)
			}
			if len(result.Warnings) != 0 {
				t.Errorf("Expected warnings to be skipped after a fatal error, got %d", len(result.Warnings))
			}
		})
	}
}

func TestTechnical_Warnings(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.TechnicalIssueType
	}{
		{"html", "<p>Acme Corp opened its first solar plant today in Richmond.</p>\n<p>More to come.</p>", model.IssueHTMLContent},
		{"json", "{\"headline\": \"Acme opens plant\",\n \"body\": \"Acme Corp opened its first solar plant today.\"}", model.IssueJSONContent},
		{"long line", "Acme\n" + strings.Repeat("word ", LongLineLimit/5+1), model.IssueLongLines},
		{"no line breaks", "Acme Corp opened its first solar plant today in Richmond, Virginia.", model.IssueNoLineBreaks},
		{"symbols", "Acme ### *** ### *** ### *** opened\n### *** ### *** a plant in Richmond today ### ***", model.IssueHighSymbolDensity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Technical(tt.text)

			if !result.IsParseable {
				t.Fatalf("Expected warnings only, got errors %+v", result.Errors)
			}
			found := false
			for _, w := range result.Warnings {
				if w.Type == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected warning %s, got %+v", tt.want, result.Warnings)
			}
		})
	}
}

func TestTechnical_Pure(t *testing.T) {
	a := Technical(validRelease)
	b := Technical(validRelease)

	if a.IsParseable != b.IsParseable || len(a.Warnings) != len(b.Warnings) {
		t.Error("Expected identical results for identical input")
	}
}

func TestCountHTMLTags(t *testing.T) {
	if n := countHTMLTags("Revenue grew 5% <compared> to last year"); n != 0 {
		t.Errorf("Expected unknown tags to be ignored, got %d", n)
	}
	if n := countHTMLTags("<div><b>Acme</b></div>"); n != 4 {
		t.Errorf("Expected 4 tags, got %d", n)
	}
	if n := countHTMLTags("no markup here"); n != 0 {
		t.Errorf("Expected 0 tags, got %d", n)
	}
}

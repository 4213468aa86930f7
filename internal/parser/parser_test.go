package parser

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/pressparse/internal/model"
)

const example1 = "FOR IMMEDIATE RELEASE\n\nRICHMOND, Va. — Oct 1, 2025\n\nSenator Announces Plan\n\n\"We will act,\" said Senator Jane Doe."

const example4 = "FOR IMMEDIATE RELEASE\n\nAgency Publishes Annual Regional Report\n\n" +
	"The agency published its annual report this week.\n\n" +
	"\"Budgets remain tight across every division.\"\n\n" +
	"The report covers twelve regions."

const fullRelease = `FOR IMMEDIATE RELEASE

Governor Youngkin Announces $40 Million for Rural Broadband

Grants will connect 12,000 homes across Southside Virginia

RICHMOND, Va. — Oct 1, 2025 — Governor Glenn Youngkin today announced $40 million in grants to expand broadband access in rural communities across the Commonwealth.

"Every Virginian deserves a reliable connection," said Gov. Glenn Youngkin. "These grants bring us closer to that goal."

"Broadband is the backbone of a modern economy," said Secretary of Commerce Caren Merrick.

The grants will be administered by the Department of Housing and Community Development over the next two years.

Media Contact:
Jane Smith
jane.smith@governor.virginia.gov
(804) 555-0100

###
`

var fixedTime = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := New(nil, WithClock(func() time.Time { return fixedTime }))
	require.NoError(t, err)
	return p
}

func TestParse_Example1(t *testing.T) {
	p := newTestParser(t)

	result := p.Parse(example1)

	d := result.ContentStructure.Dateline
	assert.Equal(t, "RICHMOND, Va.", d.Location)
	assert.Equal(t, "Oct 1, 2025", d.Date)
	assert.Equal(t, model.ConfidenceHigh, d.Confidence)
	assert.Equal(t, "Senator Announces Plan", result.ContentStructure.Headline)

	require.Len(t, result.Quotes, 1)
	assert.Contains(t, result.Quotes[0].SpeakerName, "Jane Doe")
	assert.True(t, result.ReleaseInfo.HasReleaseHeader)
	assert.Equal(t, fixedTime, result.Metadata.ParsedAt)
}

func TestParseWithValidation_Example2(t *testing.T) {
	p := newTestParser(t)

	out, err := p.ParseWithValidation("Hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotParseable))
	var techErr *TechnicalError
	require.True(t, errors.As(err, &techErr))
	assert.Equal(t, model.IssueTooShort, techErr.Issue.Type)
	assert.False(t, out.Technical.IsParseable)
	assert.Nil(t, out.Result)
	assert.Nil(t, out.Validation)
}

func TestParse_Example3(t *testing.T) {
	p := newTestParser(t)
	text := "Jane Doe, director of the Acme Foundation, spoke to reporters.\n\n\"Part one,\" said Jane Doe. \"part two.\""

	result := p.Parse(text)

	require.Len(t, result.Quotes, 1)
	assert.Equal(t, "Part one, part two.", result.Quotes[0].QuoteText)
}

func TestParse_QuotePositionsReferToSource(t *testing.T) {
	p := newTestParser(t)
	src := "\ufeff  Acme Opens Plant In Richmond Today\r\n\r\n\r\n\r\n" +
		"RICHMOND, Va. — Oct 1, 2025 — Acme opened a plant.\r\n\r\n" +
		"\"We are proud of this plant,\" said Jane Doe.\r\n\r\n\r\n" +
		"\"It brings many new jobs,\" said John Roe."

	result := p.Parse(src)

	require.Len(t, result.Quotes, 2)
	assert.Equal(t, strings.Index(src, "\"We are proud"), result.Quotes[0].Position)
	assert.Equal(t, strings.Index(src, "\"It brings"), result.Quotes[1].Position)
	assert.NotEqual(t, strings.Index(result.CleanText, "\"It brings"), result.Quotes[1].Position)
}

func TestParseWithValidation_Example4(t *testing.T) {
	p := newTestParser(t)

	out, err := p.ParseWithValidation(example4)

	require.NoError(t, err)
	require.NotNil(t, out.Result)
	require.Len(t, out.Result.Quotes, 1)
	q := out.Result.Quotes[0]
	assert.Equal(t, "", q.SpeakerName)
	assert.Equal(t, model.UnknownSpeaker, q.FullAttribution)

	found := false
	for _, w := range out.Validation.Warnings {
		if strings.Contains(w, "unknown speakers") {
			found = true
		}
	}
	assert.True(t, found, "expected an unknown speaker warning, got %v", out.Validation.Warnings)
}

func TestParse_FullRelease(t *testing.T) {
	p := newTestParser(t)

	out, err := p.ParseWithValidation(fullRelease)
	require.NoError(t, err)
	r := out.Result

	assert.Equal(t, "FOR IMMEDIATE RELEASE", r.ReleaseInfo.ReleaseType)
	assert.True(t, r.ReleaseInfo.HasEndMarker)
	assert.Equal(t, "Governor Youngkin Announces $40 Million for Rural Broadband", r.ContentStructure.Headline)
	assert.Equal(t, model.ConfidenceHigh, r.ContentStructure.Dateline.Confidence)
	assert.Equal(t, "jane.smith@governor.virginia.gov", r.ContactInfo.Email)

	require.NotEmpty(t, r.Quotes)
	assert.Equal(t, "Glenn Youngkin", r.Quotes[0].SpeakerName)
	assert.Equal(t, "Governor of Virginia", r.Quotes[0].SpeakerTitle)
	assert.Equal(t, len(r.Quotes), r.Metadata.QuoteCount)
	assert.Equal(t, r.ContentStructure.TotalParagraphs, r.Metadata.ParagraphCount)

	assert.Equal(t, "Glenn Youngkin", r.FieldsData["quote_1_speaker"])
	assert.Equal(t, "RICHMOND, Va.", r.FieldsData["dateline_location"])
}

func TestParse_AllFieldsPresent(t *testing.T) {
	p := newTestParser(t)
	inputs := []string{
		example1,
		example4,
		fullRelease,
		strings.Repeat("lorem ipsum dolor sit amet ", 5),
		"\"\"\"\" unbalanced \"quotes\" everywhere \" and more words to pass the length check",
		"ALL CAPS LINE WITHOUT ANY STRUCTURE AT ALL, JUST SHOUTING INTO THE VOID FOREVER",
		strings.Repeat("\n", 30) + "Text buried below many blank lines that still has enough letters.",
	}

	for _, in := range inputs {
		r := p.Parse(in)

		assert.NotNil(t, r.Quotes)
		assert.NotNil(t, r.ContentStructure.BodyParagraphs)
		assert.NotNil(t, r.ContentStructure.Dateline.Issues)
		assert.NotNil(t, r.FieldsData)
		assert.NotEmpty(t, r.ContentStructure.Dateline.Confidence)
		if r.ContentStructure.Dateline.Confidence != model.ConfidenceHigh {
			assert.NotEmpty(t, r.ContentStructure.Dateline.Issues)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	p, err := New(nil)
	require.NoError(t, err)

	encode := func(r model.ParseResult) string {
		r.Metadata.ParsedAt = time.Time{}
		data, err := json.Marshal(r)
		require.NoError(t, err)
		return string(data)
	}

	for _, in := range []string{example1, example4, fullRelease} {
		assert.Equal(t, encode(p.Parse(in)), encode(p.Parse(in)))
	}
}

func TestParse_QuoteCountBoundedByMarks(t *testing.T) {
	p := newTestParser(t)
	inputs := []string{
		example1,
		fullRelease,
		"\"First part of the statement,\n\n\"second part of the statement,\n\n\"and the end of it,\" said Jane Doe of the Acme Foundation today.",
		"He called it \"fine\" and \"good\" and \"done\" in his remarks to the committee on Tuesday.",
	}

	for _, in := range inputs {
		marks := 0
		for _, r := range in {
			if r == '"' || r == '“' || r == '”' {
				marks++
			}
		}
		assert.LessOrEqual(t, len(p.Parse(in).Quotes), marks/2)
	}
}

func TestParseWithValidation_ShouldRejectMatchesScore(t *testing.T) {
	p := newTestParser(t)

	for _, in := range []string{example1, example4, fullRelease, strings.Repeat("lorem ipsum dolor sit amet ", 5)} {
		out, err := p.ParseWithValidation(in)
		require.NoError(t, err)
		assert.Equal(t, out.Validation.QualityScore < 40, out.Validation.ShouldReject)
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "Headline\n\nBody text", Clean("\ufeffHeadline\r\n\r\n\r\n\r\nBody text  \r\n"))
	assert.Equal(t, "caf\u00e9 opens", Clean("cafe\u0301\u00a0opens"))
}

func TestFields(t *testing.T) {
	r := model.ParseResult{
		ContentStructure: model.ContentStructure{
			Headline:       "Acme Opens Plant",
			BodyParagraphs: []string{"One.", "Two."},
		},
		Quotes: []model.Quote{
			{QuoteText: "We are proud", SpeakerName: "Jane Doe", SpeakerTitle: "CEO of Acme", FullAttribution: "said Jane Doe"},
		},
	}

	fields := Fields(r)

	assert.Equal(t, "Acme Opens Plant", fields["headline"])
	assert.Equal(t, "One.\n\nTwo.", fields["body"])
	assert.Equal(t, "1", fields["quote_count"])
	assert.Equal(t, "We are proud", fields["quote_1_text"])
	assert.Equal(t, "CEO of Acme", fields["quote_1_title"])
	_, ok := fields["quote_2_text"]
	assert.False(t, ok)
}

func TestNew_MissingPatternsFile(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Parser.PatternsFile = "/nonexistent/patterns.yaml"

	_, err := New(cfg)

	assert.Error(t, err)
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/pressparse/internal/model"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return New(nil, DefaultThresholds())
}

func TestDateline_Formal(t *testing.T) {
	e := newTestExtractor(t)
	text := "FOR IMMEDIATE RELEASE\n\nRICHMOND, Va. — Oct 1, 2025\n\nSenator Announces Plan\n\n\"We will act,\" said Senator Jane Doe."

	d := e.Dateline(text)

	assert.Equal(t, "RICHMOND, Va.", d.Location)
	assert.Equal(t, "Oct 1, 2025", d.Date)
	assert.Equal(t, "RICHMOND, Va. — Oct 1, 2025", d.Full)
	assert.Equal(t, model.ConfidenceHigh, d.Confidence)
	assert.NotNil(t, d.Issues)
	assert.Empty(t, d.Issues)
}

func TestDateline_FormalParenthesisedDate(t *testing.T) {
	e := newTestExtractor(t)
	text := "Acme Expands Solar Program\n\nAUSTIN, TX (March 3, 2025) — Acme Corp today expanded its solar program."

	d := e.Dateline(text)

	assert.Equal(t, "AUSTIN, TX", d.Location)
	assert.Equal(t, "March 3, 2025", d.Date)
	assert.Equal(t, model.ConfidenceHigh, d.Confidence)
}

func TestDateline_SeparatedLines(t *testing.T) {
	e := newTestExtractor(t)
	text := "FOR IMMEDIATE RELEASE\nOctober 1, 2025\nRICHMOND, VA\n\nGovernor Jane Doe signed the budget into law on Wednesday afternoon."

	d := e.Dateline(text)

	assert.Equal(t, "RICHMOND, VA", d.Location)
	assert.Equal(t, "October 1, 2025", d.Date)
	assert.Equal(t, model.ConfidenceHigh, d.Confidence)
}

func TestDateline_SeparatedDateOnly(t *testing.T) {
	e := newTestExtractor(t)
	text := "FOR IMMEDIATE RELEASE\nOctober 1, 2025\n\nthe budget was signed into law this afternoon by the governor."

	d := e.Dateline(text)

	assert.Equal(t, "October 1, 2025", d.Date)
	assert.Empty(t, d.Location)
	assert.Equal(t, model.ConfidenceMedium, d.Confidence)
	assert.NotEmpty(t, d.Issues)
}

func TestDateline_StructuredHeader(t *testing.T) {
	e := newTestExtractor(t)
	text := "Title: Budget Signed\nDate: 2025-10-01T09:00:00Z\n\nRICHMOND — The governor signed the budget on Wednesday."

	d := e.Dateline(text)

	assert.Equal(t, "October 1, 2025", d.Date)
	assert.Equal(t, "RICHMOND", d.Location)
	assert.Equal(t, model.ConfidenceHigh, d.Confidence)
}

func TestDateline_LooseLocationOnly(t *testing.T) {
	e := newTestExtractor(t)
	text := "Acme Corp opened a new office in Austin, TX this week to serve customers across the region."

	d := e.Dateline(text)

	assert.Equal(t, "Austin, TX", d.Location)
	assert.Empty(t, d.Date)
	assert.Equal(t, model.ConfidenceMedium, d.Confidence)
	assert.NotEmpty(t, d.Issues)
}

func TestDateline_LooseDateOnly(t *testing.T) {
	e := newTestExtractor(t)
	text := "The committee will meet on October 12, 2025 to review the proposal and discuss next steps with members."

	d := e.Dateline(text)

	assert.Equal(t, "October 12, 2025", d.Date)
	assert.Empty(t, d.Location)
	assert.Equal(t, model.ConfidenceLow, d.Confidence)
	assert.NotEmpty(t, d.Issues)
}

func TestDateline_None(t *testing.T) {
	e := newTestExtractor(t)
	text := "this is a plain paragraph of text without any places or times mentioned at all, only words and more words."

	d := e.Dateline(text)

	assert.Equal(t, model.ConfidenceNone, d.Confidence)
	assert.Empty(t, d.Location)
	assert.Empty(t, d.Date)
	require.NotEmpty(t, d.Issues)
}

func TestDateline_StrategiesAreOrdered(t *testing.T) {
	names := make([]string, 0, len(datelineStrategies))
	for _, s := range datelineStrategies {
		names = append(names, s.name)
	}
	assert.Equal(t, []string{"formal", "separated_lines", "structured_header", "loose_scan"}, names)
}

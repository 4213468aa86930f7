package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/pressparse/internal/model"
)

func TestQuotes_SaidName(t *testing.T) {
	e := newTestExtractor(t)
	text := "FOR IMMEDIATE RELEASE\n\nRICHMOND, Va. — Oct 1, 2025\n\nSenator Announces Plan\n\n\"We will act,\" said Senator Jane Doe."

	quotes := e.Quotes(text, "Senator Announces Plan", "")

	require.Len(t, quotes, 1)
	q := quotes[0]
	assert.Equal(t, "We will act", q.QuoteText)
	assert.Equal(t, "Jane Doe", q.SpeakerName)
	assert.Equal(t, "Senator", q.SpeakerTitle)
	assert.Equal(t, "said Senator Jane Doe", q.FullAttribution)
	assert.Equal(t, strings.Index(text, "\"We will act"), q.Position)
	assert.Equal(t, model.QuoteTypeRegular, q.Type)
}

func TestQuotes_MergesContinuation(t *testing.T) {
	e := newTestExtractor(t)
	text := "Jane Doe, director of the Acme Foundation, spoke to reporters.\n\n\"Part one,\" said Jane Doe. \"part two.\""

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 1)
	assert.Equal(t, "Part one, part two.", quotes[0].QuoteText)
	assert.Equal(t, "Jane Doe", quotes[0].SpeakerName)
}

func TestQuotes_DifferentSpeakersDoNotMerge(t *testing.T) {
	e := newTestExtractor(t)
	text := "\"We start tomorrow morning,\" said Jane Doe. \"We finish next spring,\" said John Roe."

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 2)
	assert.Equal(t, "Jane Doe", quotes[0].SpeakerName)
	assert.Equal(t, "John Roe", quotes[1].SpeakerName)
}

func TestQuotes_UnknownSpeaker(t *testing.T) {
	e := newTestExtractor(t)
	text := "The agency published its annual report this week.\n\n\"Budgets remain tight across every division.\"\n\nThe report covers twelve regions."

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 1)
	assert.Equal(t, "", quotes[0].SpeakerName)
	assert.Equal(t, model.UnknownSpeaker, quotes[0].FullAttribution)
	assert.False(t, quotes[0].IsAttributed())
}

func TestQuotes_PronounUsesPreviousSpeaker(t *testing.T) {
	e := newTestExtractor(t)
	text := "\"We are proud of this team and its work,\" said Mayor Ana Lopez.\n\n\"The city will keep investing in parks,\" she added."

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 2)
	assert.Equal(t, "Ana Lopez", quotes[1].SpeakerName)
	assert.Equal(t, "she added", quotes[1].FullAttribution)
	assert.Equal(t, "Mayor", quotes[1].SpeakerTitle)
}

func TestQuotes_PronounFallsBackToLookback(t *testing.T) {
	e := newTestExtractor(t)
	text := "Chief economist Maria Porter briefed reporters on the outlook.\n\n\"Growth will slow next quarter,\" she said."

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 1)
	assert.Equal(t, "Maria Porter", quotes[0].SpeakerName)
}

func TestQuotes_PronounLookbackSkipsHeadline(t *testing.T) {
	e := newTestExtractor(t)
	text := "Headline Here About Stuff Happening\n\n" +
		"The council met on Tuesday to discuss the plan.\n\n" +
		"\"Part one of the plan starts now,\" she said."

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 1)
	assert.Empty(t, quotes[0].SpeakerName)
	assert.False(t, quotes[0].IsAttributed())
}

func TestQuotes_ReversedExpandsSurname(t *testing.T) {
	e := newTestExtractor(t)
	text := "Chief economist Maria Porter briefed reporters on the outlook.\n\n\"We expect strong growth next year,\" Porter continued."

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 1)
	assert.Equal(t, "Maria Porter", quotes[0].SpeakerName)
	assert.Equal(t, "Porter continued", quotes[0].FullAttribution)
}

func TestQuotes_NarrativeColon(t *testing.T) {
	e := newTestExtractor(t)
	text := "At the assembly, Principal Dana Reed told students:\n\n\"Every one of you belongs here and matters.\""

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 1)
	assert.Equal(t, "Dana Reed", quotes[0].SpeakerName)
	assert.Equal(t, "Principal", quotes[0].SpeakerTitle)
}

func TestQuotes_SpeakerBeforeWithInterveningWords(t *testing.T) {
	e := newTestExtractor(t)
	text := "Jane Doe said on Instagram that \"the new schedule starts Monday for everyone.\""

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 1)
	assert.Equal(t, "Jane Doe", quotes[0].SpeakerName)
}

func TestQuotes_MultiParagraph(t *testing.T) {
	e := newTestExtractor(t)
	text := "Governor Jane Doe spoke at the ceremony on Tuesday.\n\n" +
		"\"This is the first part of what I have to say\n\n" +
		"\"And this is the second part that continues it\n\n" +
		"\"And this is the end of it,\" said Governor Jane Doe."

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 1)
	q := quotes[0]
	assert.Equal(t, model.QuoteTypeMultiParagraph, q.Type)
	assert.Equal(t, "This is the first part of what I have to say And this is the second part that continues it And this is the end of it", q.QuoteText)
	assert.Equal(t, "Jane Doe", q.SpeakerName)
	assert.Equal(t, strings.Index(text, "\"This is"), q.Position)
}

func TestQuotes_StatementPropagation(t *testing.T) {
	e := newTestExtractor(t)
	text := "WASHINGTON — Representative Jane Doe-Smith (D-VA) today released the following statement:\n\n" +
		"\"This bill protects working families across the country.\""

	quotes := e.Quotes(text, "", "")

	require.Len(t, quotes, 1)
	assert.Equal(t, "Jane Doe-Smith", quotes[0].SpeakerName)
	assert.Equal(t, "Representative", quotes[0].SpeakerTitle)
}

func TestQuotes_DropsHeadlineFragments(t *testing.T) {
	e := newTestExtractor(t)
	headline := "Mayor Calls Plan \"A New Beginning\" For Downtown"
	text := headline + "\n\nThe mayor unveiled the plan on Monday."

	assert.Empty(t, e.Quotes(text, headline, ""))
}

func TestQuotes_DropsScareQuotes(t *testing.T) {
	e := newTestExtractor(t)
	text := "The so-called \"disruptors\" met on Monday to discuss the plan in detail."

	assert.Empty(t, e.Quotes(text, "", ""))
}

func TestQuotes_SortedByPosition(t *testing.T) {
	e := newTestExtractor(t)
	text := "\"First statement here,\" said Jane Doe.\n\n" +
		"\"A\n\n\"multi part quote ends here,\" said John Roe.\n\n" +
		"\"Last statement here,\" said Jane Doe."

	quotes := e.Quotes(text, "", "")

	require.NotEmpty(t, quotes)
	for i := 1; i < len(quotes); i++ {
		assert.Less(t, quotes[i-1].Position, quotes[i].Position)
	}
}

func TestQuotes_EmptyText(t *testing.T) {
	e := newTestExtractor(t)
	quotes := e.Quotes("", "", "")
	assert.NotNil(t, quotes)
	assert.Empty(t, quotes)
}

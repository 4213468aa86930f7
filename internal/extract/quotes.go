package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/pressparse/internal/model"
)

// quoteRe pairs straight or smart quotation marks within one paragraph
var quoteRe = regexp.MustCompile(`["“]([^"“”]{2,})["”]`)

// quoteSpan is a quotation found in the text, before attribution
type quoteSpan struct {
	start, end int // byte offsets including the quotation marks
	text       string
	kind       model.QuoteType
}

// attributedQuote is a quoteSpan after the attribution fold
type attributedQuote struct {
	quoteSpan
	attr attribution
	ok   bool
}

// Quotes extracts quotations with speaker attribution, sorted by position.
// Positions are byte offsets into text.
func (e *Extractor) Quotes(text, headline, subhead string) []model.Quote {
	spans := e.multiParagraphQuotes(text)
	spans = append(spans, e.regularQuotes(text, spans)...)
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	st := attributionState{location: e.Dateline(text).Location}
	attributed := make([]attributedQuote, 0, len(spans))
	for i, q := range spans {
		c := quoteContext{text: text, start: q.start}
		prevEnd, nextStart := 0, len(text)
		if i > 0 {
			prevEnd = spans[i-1].end
		}
		if i+1 < len(spans) {
			nextStart = spans[i+1].start
		}
		c.before = clampWindow(text, max(prevEnd, q.start-e.th.AttributionWindow), q.start)
		c.after = clampWindow(text, q.end, min(nextStart, q.end+e.th.AttributionWindow))

		a, ok := e.attribute(c, st)
		if ok {
			st = st.next(a)
		}
		attributed = append(attributed, attributedQuote{quoteSpan: q, attr: a, ok: ok})
	}

	attributed = e.mergeContinuations(attributed)
	e.propagateStatement(text, st.location, attributed)

	headline = normalizeSpace(headline)
	subhead = normalizeSpace(subhead)
	quotes := make([]model.Quote, 0, len(attributed))
	for _, q := range attributed {
		quoteText := strings.TrimSpace(strings.TrimRight(q.text, ", "))
		if quoteText == "" || containedIn(quoteText, headline) || containedIn(quoteText, subhead) {
			continue
		}
		out := model.Quote{
			QuoteText:       quoteText,
			FullAttribution: model.UnknownSpeaker,
			Position:        q.start,
			Type:            q.kind,
		}
		if q.ok {
			out.SpeakerName = q.attr.speaker
			out.SpeakerTitle = q.attr.title
			out.FullAttribution = q.attr.phrase
		}
		quotes = append(quotes, out)
	}
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Position < quotes[j].Position })
	return quotes
}

// multiParagraphQuotes finds quotations that open in one paragraph and close in a later one.
// A paragraph with two or more quotation marks closes the run, even when the
// second mark belongs to a short quoted phrase.
func (e *Extractor) multiParagraphQuotes(text string) []quoteSpan {
	paragraphs := paragraphSpans(text)
	var out []quoteSpan

	for i := 0; i < len(paragraphs); i++ {
		open := paragraphs[i]
		if !startsWithQuote(open.text) || countQuoteMarks(open.text) >= 2 {
			continue
		}

		fragments := []string{open.text}
		for j := i + 1; j < len(paragraphs) && j < i+e.th.MultiParagraphScanLimit; j++ {
			p := paragraphs[j]
			if !startsWithQuote(p.text) {
				break
			}
			if countQuoteMarks(p.text) < 2 {
				fragments = append(fragments, p.text)
				continue
			}
			closeAt := nthQuoteMark(p.text, 2)
			_, size := utf8.DecodeRuneInString(p.text[closeAt:])
			fragments = append(fragments, p.text[:closeAt+size])
			out = append(out, quoteSpan{
				start: open.start,
				end:   p.start + closeAt + size,
				text:  joinFragments(fragments),
				kind:  model.QuoteTypeMultiParagraph,
			})
			i = j
			break
		}
	}
	return out
}

// regularQuotes pairs quotation marks paragraph by paragraph, skipping consumed ranges
func (e *Extractor) regularQuotes(text string, consumed []quoteSpan) []quoteSpan {
	var out []quoteSpan
	for _, p := range paragraphSpans(text) {
		for _, m := range quoteRe.FindAllStringSubmatchIndex(p.text, -1) {
			start, end := p.start+m[0], p.start+m[1]
			if overlaps(consumed, start, end) {
				continue
			}
			inner := normalizeSpace(p.text[m[2]:m[3]])
			// Single words in quotes are scare quotes, not statements
			if len(strings.Fields(inner)) < 2 {
				continue
			}
			out = append(out, quoteSpan{start: start, end: end, text: inner, kind: model.QuoteTypeRegular})
		}
	}
	return out
}

// mergeContinuations joins a fragment ending in a comma with the fragments
// that continue it. A fragment with an attribution of its own starts a new quote.
func (e *Extractor) mergeContinuations(quotes []attributedQuote) []attributedQuote {
	out := make([]attributedQuote, 0, len(quotes))
	for i := 0; i < len(quotes); i++ {
		cur := quotes[i]
		for strings.HasSuffix(cur.text, ",") && i+1 < len(quotes) {
			next := quotes[i+1]
			if next.ok || next.start-cur.end > e.th.CombineDistance {
				break
			}
			cur.text = cur.text + " " + next.text
			cur.end = next.end
			i++
		}
		out = append(out, cur)
	}
	return out
}

// propagateStatement attributes every unattributed quote to the author of a
// "released the following statement" line
func (e *Extractor) propagateStatement(text, location string, quotes []attributedQuote) {
	unknown := false
	for _, q := range quotes {
		if !q.ok {
			unknown = true
			break
		}
	}
	if !unknown {
		return
	}
	a, ok := e.statementSpeaker(text, location)
	if !ok {
		return
	}
	for i := range quotes {
		if !quotes[i].ok {
			quotes[i].attr, quotes[i].ok = a, true
		}
	}
}

func nthQuoteMark(s string, n int) int {
	seen := 0
	for i, r := range s {
		if isQuoteMark(r) {
			if seen++; seen == n {
				return i
			}
		}
	}
	return len(s)
}

func joinFragments(fragments []string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f = normalizeSpace(trimQuoteMarks(f)); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

func overlaps(spans []quoteSpan, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

func containedIn(quote, line string) bool {
	return line != "" && strings.Contains(line, quote)
}

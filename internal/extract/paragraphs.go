package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/pressparse/internal/model"
)

const (
	// fallbackMinContent is the content length below which a single paragraph is left alone
	fallbackMinContent = 200
	// groupLength closes a sentence group once it grows past this many characters
	groupLength = 400
)

var (
	quoteBoundaryRe = regexp.MustCompile(`[.!?]["”]?[ \t\n]+["“]`)
	sentenceEndRe   = regexp.MustCompile(`[.!?]["”]?[ \t\n]+`)
)

// Paragraphs is the segmented body
type Paragraphs struct {
	Lead string
	Body []string
}

// Total returns the number of paragraphs including the lead
func (p Paragraphs) Total() int {
	if p.Lead == "" {
		return len(p.Body)
	}
	return len(p.Body) + 1
}

// Paragraphs splits the text below the headline and dateline into a lead and body paragraphs
func (e *Extractor) Paragraphs(text, headline string, dateline model.Dateline) Paragraphs {
	content := e.bodyContent(text, headline, dateline)
	if strings.TrimSpace(content) == "" {
		if headline != "" {
			// A one-line release: the headline is all there is
			return Paragraphs{Lead: headline, Body: []string{}}
		}
		return Paragraphs{Body: []string{}}
	}

	var paragraphs []string
	for _, s := range paragraphSpans(content) {
		paragraphs = append(paragraphs, s.text)
	}
	paragraphs = e.keepParagraphs(paragraphs)

	if len(paragraphs) <= 1 && utf8.RuneCountInString(normalizeSpace(content)) > fallbackMinContent {
		flat := normalizeSpace(content)
		if split := e.keepParagraphs(splitAtQuotes(flat)); len(split) > 1 {
			paragraphs = split
		} else if grouped := e.keepParagraphs(e.groupSentences(flat)); len(grouped) > 1 {
			paragraphs = grouped
		}
	}

	if len(paragraphs) == 0 {
		return Paragraphs{Lead: normalizeSpace(content), Body: []string{}}
	}
	return Paragraphs{Lead: paragraphs[0], Body: append([]string{}, paragraphs[1:]...)}
}

// bodyContent removes boilerplate, the headline, the subhead and lines that are only a dateline
func (e *Extractor) bodyContent(text, headline string, dateline model.Dateline) string {
	lines := splitLines(stripHeader(text))
	subhead := e.Subhead(lines, headline)
	headlineDone, subheadDone := false, false

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		norm := normalizeSpace(strings.Trim(line, "*# \t"))
		switch {
		case !headlineDone && headline != "" && norm == headline:
			headlineDone = true
			out = append(out, "")
		case !subheadDone && subhead != "" && norm == subhead:
			subheadDone = true
			out = append(out, "")
		case norm != "" && e.datelineOnly(norm, dateline):
			out = append(out, "")
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// datelineOnly reports a line that carries the dateline and nothing else
func (e *Extractor) datelineOnly(line string, dateline model.Dateline) bool {
	if dateline.Full != "" && line == dateline.Full {
		return true
	}
	if e.lib.PureDate.MatchString(line) || e.standaloneLocation(line) != "" {
		return true
	}
	if d, ok := e.formalDateline(line); ok {
		idx := strings.Index(line, d.Date)
		rest := ""
		if idx >= 0 {
			rest = strings.Trim(line[idx+len(d.Date):], " )—–-|*")
		}
		return utf8.RuneCountInString(rest) < 5
	}
	return false
}

// keepParagraphs normalises whitespace and drops fragments too short to be paragraphs
func (e *Extractor) keepParagraphs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = normalizeSpace(p)
		if utf8.RuneCountInString(p) > e.th.MinParagraphLength && !isBoilerplateLine(p) {
			out = append(out, p)
		}
	}
	return out
}

// splitAtQuotes breaks before each sentence that opens with a quotation mark
func splitAtQuotes(text string) []string {
	var out []string
	start := 0
	for _, loc := range quoteBoundaryRe.FindAllStringIndex(text, -1) {
		// Keep the punctuation with the preceding piece; break before the opening mark
		_, size := utf8.DecodeLastRuneInString(text[:loc[1]])
		cut := loc[1] - size
		out = append(out, text[start:cut])
		start = cut
	}
	return append(out, text[start:])
}

// sentences splits text at sentence ends that are not abbreviations
func (e *Extractor) sentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		if loc[1] >= len(text) {
			break
		}
		r, _ := utf8.DecodeRuneInString(text[loc[1]:])
		if !isCapitalized(string(r)) && !isOpenQuote(r) {
			continue
		}
		if text[loc[0]] == '.' && e.isAbbreviation(lastField(text[start:loc[0]+1])) {
			continue
		}
		out = append(out, strings.TrimSpace(text[start:loc[1]]))
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// groupSentences rebuilds paragraphs from sentences, breaking on length, an
// opening quotation, an attribution ending or a topic-shift connective
func (e *Extractor) groupSentences(text string) []string {
	sentences := e.sentences(text)
	var out []string
	var group []string
	size := 0

	for i, s := range sentences {
		group = append(group, s)
		size += len(s) + 1

		if i+1 == len(sentences) {
			break
		}
		next := sentences[i+1]
		if size >= groupLength || startsWithQuote(next) || e.lib.AttributionEnd.MatchString(s) || e.opensWithConnective(next) {
			out = append(out, strings.Join(group, " "))
			group, size = nil, 0
		}
	}
	if len(group) > 0 {
		out = append(out, strings.Join(group, " "))
	}
	return out
}

func (e *Extractor) opensWithConnective(sentence string) bool {
	for _, c := range e.lib.Connectives() {
		if strings.HasPrefix(sentence, c) {
			return true
		}
	}
	return false
}

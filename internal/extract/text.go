package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	releaseHeaderRe = regexp.MustCompile(`(?i)^[ \t*]*(for\s+immediate\s+release|immediate\s+release|for\s+release|embargoed|under\s+embargo|news\s+release|press\s+release|media\s+advisory|for\s+planning\s+purposes)\b`)
	embargoRe       = regexp.MustCompile(`(?i)^[ \t*]*(?:embargoed|under\s+embargo)\b.*$`)
	contactLineRe   = regexp.MustCompile(`(?i)^[ \t*]*(?:(?:media|press|news)\s+)?contacts?\b\s*(?:[:\-–—]|$)|^[ \t*]*for\s+(?:more\s+information|media\s+inquiries)\b`)
	endMarkerRe     = regexp.MustCompile(`^[ \t]*(?:#{3,}|-\s*30\s*-)[ \t]*$`)
	emailRe         = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe         = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?\b\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}\b`)
	urlRe           = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
	blankLineRe     = regexp.MustCompile(`\n[ \t]*\n`)
	spaceRe         = regexp.MustCompile(`\s+`)
)

// span is a slice of the source text with its byte offsets
type span struct {
	start, end int
	text       string
}

// normalizeSpace collapses runs of whitespace to single spaces
func normalizeSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// splitLines splits on \n without trimming
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// paragraphSpans splits text on blank lines and keeps byte offsets
func paragraphSpans(text string) []span {
	var spans []span
	start := 0
	for _, loc := range blankLineRe.FindAllStringIndex(text, -1) {
		spans = appendSpan(spans, text, start, loc[0])
		start = loc[1]
	}
	spans = appendSpan(spans, text, start, len(text))
	return spans
}

func appendSpan(spans []span, text string, start, end int) []span {
	if start >= end {
		return spans
	}
	raw := text[start:end]
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return spans
	}
	offset := start + strings.Index(raw, trimmed)
	return append(spans, span{start: offset, end: offset + len(trimmed), text: trimmed})
}

// isOpenQuote reports whether r opens a quotation
func isOpenQuote(r rune) bool {
	return r == '"' || r == '“'
}

// isCloseQuote reports whether r closes a quotation
func isCloseQuote(r rune) bool {
	return r == '"' || r == '”'
}

// isQuoteMark reports whether r is any double quotation mark
func isQuoteMark(r rune) bool {
	return r == '"' || r == '“' || r == '”'
}

// countQuoteMarks counts double quotation marks in s
func countQuoteMarks(s string) int {
	n := 0
	for _, r := range s {
		if isQuoteMark(r) {
			n++
		}
	}
	return n
}

// startsWithQuote reports whether the trimmed text opens with a quotation mark
func startsWithQuote(s string) bool {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(s))
	return isOpenQuote(r)
}

// trimQuoteMarks removes surrounding quotation marks and whitespace
func trimQuoteMarks(s string) string {
	return strings.TrimSpace(strings.TrimFunc(strings.TrimSpace(s), isQuoteMark))
}

// lastRune returns the final non-space rune of s, or 0
func lastRune(s string) rune {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	r, _ := utf8.DecodeLastRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// endsSentence reports whether s ends with terminal punctuation
func endsSentence(s string) bool {
	switch lastRune(s) {
	case '.', '!', '?':
		return true
	}
	return false
}

// isReleaseHeader reports whether a line is a release header such as FOR IMMEDIATE RELEASE
func isReleaseHeader(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) < 120 && releaseHeaderRe.MatchString(line)
}

// isContactLine reports whether a line opens a media contact block
func isContactLine(line string) bool {
	return contactLineRe.MatchString(line)
}

// isEndMarker reports whether a line is ### or -30-
func isEndMarker(line string) bool {
	return endMarkerRe.MatchString(line)
}

// isBoilerplateLine reports lines that never carry editorial content
func isBoilerplateLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if isReleaseHeader(trimmed) || isContactLine(trimmed) || isEndMarker(trimmed) {
		return true
	}
	// Bare contact details: an email or phone with little else on the line
	stripped := phoneRe.ReplaceAllString(emailRe.ReplaceAllString(trimmed, ""), "")
	stripped = urlRe.ReplaceAllString(stripped, "")
	if stripped != trimmed && len(strings.Fields(stripped)) <= 3 {
		return true
	}
	return false
}

// stripHeader removes release headers, contact blocks and everything after an end marker
func stripHeader(text string) string {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	inContact := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isEndMarker(trimmed) {
			break
		}
		if isContactLine(trimmed) {
			inContact = true
			continue
		}
		if inContact {
			if trimmed == "" {
				inContact = false
				out = append(out, "")
			}
			continue
		}
		if isReleaseHeader(trimmed) || (trimmed != "" && isBoilerplateLine(trimmed)) {
			out = append(out, "")
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// nonEmptyLines returns trimmed lines with content
func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range splitLines(text) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// isCapitalized reports whether a word starts with an upper-case letter
func isCapitalized(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}

// isAllCaps reports whether every letter in s is upper case and there is at least one
func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 0
}

// clampWindow returns text[from:to] clamped to valid, rune-aligned bounds
func clampWindow(text string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(text) {
		to = len(text)
	}
	if from >= to {
		return ""
	}
	for from < to && !utf8.RuneStart(text[from]) {
		from++
	}
	for to < len(text) && to > from && !utf8.RuneStart(text[to]) {
		to--
	}
	return text[from:to]
}

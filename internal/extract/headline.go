package extract

import (
	"strings"
	"unicode/utf8"
)

// headlineSignal adds to or subtracts from a candidate line's score
type headlineSignal struct {
	weight int
	match  func(e *Extractor, line string) bool
}

var headlineSignals = []headlineSignal{
	{3, func(_ *Extractor, l string) bool { n := utf8.RuneCountInString(l); return n >= 40 && n <= 150 }},
	{2, func(e *Extractor, l string) bool { return e.lib.AnnounceVerb.MatchString(l) }},
	{2, func(e *Extractor, l string) bool { return e.lib.TwoWordName.MatchString(l) }},
	{1, func(_ *Extractor, l string) bool { return lastRune(l) != '.' }},
	{-5, func(_ *Extractor, l string) bool { return strings.Contains(l, "@") }},
	{-5, func(_ *Extractor, l string) bool {
		lower := strings.ToLower(l)
		return strings.HasPrefix(lower, "contact") || strings.HasPrefix(l, "###")
	}},
	{-5, func(e *Extractor, l string) bool { return e.lib.PureDate.MatchString(l) }},
	{-3, func(e *Extractor, l string) bool { return e.isDatelineLine(l) }},
	{-2, func(_ *Extractor, l string) bool { return startsWithQuote(l) }},
	{-2, func(_ *Extractor, l string) bool { return utf8.RuneCountInString(l) > 250 }},
}

// Headline returns the most headline-like line among the first substantive lines
func (e *Extractor) Headline(text string) string {
	candidates := e.headlineCandidates(text)
	if len(candidates) == 0 {
		return ""
	}

	best, bestScore := candidates[0], e.scoreHeadline(candidates[0])
	for _, c := range candidates[1:] {
		if score := e.scoreHeadline(c); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore <= 0 {
		// Nothing looks like a headline; the first substantive line is the best guess
		return candidates[0]
	}
	return best
}

func (e *Extractor) headlineCandidates(text string) []string {
	var out []string
	for _, line := range nonEmptyLines(stripHeader(text)) {
		line = strings.Trim(line, "*# \t")
		if line == "" || isBoilerplateLine(line) {
			continue
		}
		out = append(out, normalizeSpace(line))
		if len(out) >= e.th.HeadlineCandidates {
			break
		}
	}
	return out
}

func (e *Extractor) scoreHeadline(line string) int {
	score := 0
	for _, s := range headlineSignals {
		if s.match(e, line) {
			score += s.weight
		}
	}
	return score
}

// isDatelineLine reports whether the line is, or opens with, a dateline
func (e *Extractor) isDatelineLine(line string) bool {
	if e.standaloneLocation(line) != "" || e.lib.PureDate.MatchString(line) {
		return true
	}
	d, ok := e.formalDateline(line)
	return ok && strings.HasPrefix(strings.TrimLeft(line, "* "), strings.TrimLeft(d.Location, "* "))
}

// Subhead finds the line between the headline and the dateline that reads as a subheadline
func (e *Extractor) Subhead(lines []string, headline string) string {
	if headline == "" {
		return ""
	}

	start := -1
	for i, line := range lines {
		if normalizeSpace(strings.Trim(line, "*# \t")) == headline {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	// Up to two content lines before the dateline qualify. Without a dateline
	// only the line right after the headline does, and only when content follows it.
	limit := -1
	for i := start + 1; i < len(lines) && i <= start+10; i++ {
		if e.isDatelineLine(strings.TrimSpace(lines[i])) {
			limit = i
			break
		}
	}
	maxSeen := 2
	if limit < 0 {
		limit = len(lines)
		maxSeen = 1
	}

	maxLen := int(float64(utf8.RuneCountInString(headline)) * 1.2)
	seen := 0
	for i := start + 1; i < limit; i++ {
		line := normalizeSpace(strings.Trim(lines[i], "*# \t"))
		if line == "" {
			continue
		}
		if seen++; seen > maxSeen {
			break
		}
		if isBoilerplateLine(line) || startsWithQuote(line) || e.isAttributedQuote(line) {
			continue
		}
		n := utf8.RuneCountInString(line)
		if n > 250 {
			// Reached body prose
			break
		}
		if maxSeen == 1 && !hasContentAfter(lines[i+1:]) {
			break
		}
		if strings.Contains(line, ":") || n < maxLen {
			return line
		}
	}
	return ""
}

func hasContentAfter(lines []string) bool {
	for _, line := range lines {
		if normalizeSpace(strings.Trim(line, "*# \t")) != "" && !isEndMarker(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

// isAttributedQuote reports whether a line is a complete quotation with an attribution
func (e *Extractor) isAttributedQuote(line string) bool {
	if countQuoteMarks(line) < 2 {
		return false
	}
	lower := strings.ToLower(line)
	for _, v := range e.lib.Verbs() {
		if strings.Contains(lower, " "+v+" ") || strings.HasSuffix(strings.TrimRight(lower, "."), " "+v) {
			return true
		}
	}
	return false
}

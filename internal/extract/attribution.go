package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	namePattern = `[A-Z][a-zA-Z'’\-]+(?:[ \t]+(?:[A-Z]\.[ \t]+)?[A-Z][a-zA-Z'’\-]+){0,2}`
	leadPunct   = `^[\s,;:—–\-]*`
)

// abbreviations that end in a period without ending the sentence
var abbreviations = map[string]bool{
	"Jr.": true, "Sr.": true, "Inc.": true, "Corp.": true, "Co.": true, "Ltd.": true,
	"St.": true, "Mt.": true, "U.S.": true, "No.": true, "vs.": true, "Ft.": true,
}

var parentheticalRe = regexp.MustCompile(`[ \t]*\([^)]{0,40}\)`)

func (e *Extractor) compileAttribution() {
	verbs := e.lib.VerbAlt
	e.saidName = regexp.MustCompile(`(?i)` + leadPunct + `(?:` + verbs + `|according[ \t]+to)[ \t]+`)
	e.reversed = regexp.MustCompile(leadPunct + `([A-Z][^\n"“”!?;]{0,100}?)[ \t]+(?i:` + verbs + `)\b`)
	e.pronounAfter = regexp.MustCompile(`(?i)` + leadPunct + `(?:(?:he|she|they)[ \t]+(?:` + verbs + `)|(?:` + verbs + `)[ \t]+(?:he|she|they))\b`)
	e.beforeVerb = regexp.MustCompile(`(?i)\b(?:` + verbs + `|say|says|according[ \t]+to)\b`)
	e.statement = regexp.MustCompile(`(?i)\b(?:released|issued|made|shared|delivered|provided)[ \t]+(?:the[ \t]+following|a|an|this|his|her|their)?[ \t]*(?:[a-z]+[ \t]+)?statement\b`)
	e.properName = regexp.MustCompile(namePattern)
	e.titledName = regexp.MustCompile(`(?:^|[ \t])((?:(?:` + e.lib.TitleAlt + `)[ \t]+)+)(` + namePattern + `)`)
	e.titleWords = regexp.MustCompile(`(?:` + e.lib.TitleAlt + `)`)
	e.corporateName = regexp.MustCompile(`^(.+?)[ \t]+(` + e.lib.CorporateAlt + `)[ \t]+(` + namePattern + `)`)
	e.leadVerb = regexp.MustCompile(`(?i)^(?:(?:` + verbs + `)|according[ \t]+to|by)[ \t]+`)
	e.tailVerb = regexp.MustCompile(`(?i)[ \t]+(?:` + verbs + `)$`)
	e.trailingClause = regexp.MustCompile(`(?i)[ \t,]+(?:at|in|during|on|after|before|while|when|from|about|regarding|following|outside|inside|who|which|where|adding|noting|explaining|speaking|with|via|through|last|this|today|yesterday|earlier|later|tomorrow|that)\b`)
}

// quoteContext is what a matcher may look at for one quote
type quoteContext struct {
	text   string // full document
	start  int    // offset of the opening quotation mark
	before string // window before the quote, cut at the previous quote
	after  string // window after the quote, cut at the next quote
}

// earlier returns the document up to the quote
func (c quoteContext) earlier() string {
	return c.text[:c.start]
}

// attribution is a resolved speaker for one quote
type attribution struct {
	phrase  string
	speaker string
	title   string
}

// attributionState is carried across quotes in document order
type attributionState struct {
	previousSpeaker string
	previousTitle   string
	location        string
}

func (st attributionState) next(a attribution) attributionState {
	st.previousSpeaker = a.speaker
	st.previousTitle = a.title
	return st
}

type attributionMatcher struct {
	name  string
	match func(e *Extractor, c quoteContext, st attributionState) (attribution, bool)
}

// attributionMatchers run in priority order; the first match wins
var attributionMatchers = []attributionMatcher{
	{name: "said_name", match: (*Extractor).matchSaidName},
	{name: "reversed", match: (*Extractor).matchReversed},
	{name: "pronoun", match: (*Extractor).matchPronoun},
	{name: "narrative_colon", match: (*Extractor).matchNarrativeColon},
	{name: "speaker_before", match: (*Extractor).matchSpeakerBefore},
}

func (e *Extractor) attribute(c quoteContext, st attributionState) (attribution, bool) {
	for _, m := range attributionMatchers {
		if a, ok := m.match(e, c, st); ok {
			return a, true
		}
	}
	return attribution{}, false
}

// matchSaidName handles `"...," said Senator Jane Doe` and `according to Jane Doe`
func (e *Extractor) matchSaidName(c quoteContext, st attributionState) (attribution, bool) {
	loc := e.saidName.FindStringIndex(c.after)
	if loc == nil {
		return attribution{}, false
	}
	clause := e.firstClause(c.after[loc[1]:])
	if !isCapitalized(clause) {
		return attribution{}, false
	}
	phrase := trimPhrase(c.after[:loc[1]] + clause)
	name := e.speakerName(phrase, c.earlier())
	if name == "" {
		return attribution{}, false
	}
	return e.resolved(phrase, name, st), true
}

// matchReversed handles `"...," Porter continued`
func (e *Extractor) matchReversed(c quoteContext, st attributionState) (attribution, bool) {
	m := e.reversed.FindStringSubmatchIndex(c.after)
	if m == nil {
		return attribution{}, false
	}
	candidate := strings.TrimSpace(c.after[m[2]:m[3]])
	// The verb must sit in the same sentence as the candidate name
	if strings.TrimSpace(e.firstClause(candidate)) != candidate || len(strings.Fields(candidate)) > 8 {
		return attribution{}, false
	}
	if first := strings.Fields(candidate)[0]; e.lib.IsPronoun(first) || e.lib.IsRolePhrase(candidate) {
		return attribution{}, false
	}
	phrase := trimPhrase(c.after[m[2]:m[1]])
	name := e.speakerName(phrase, c.earlier())
	if name == "" {
		return attribution{}, false
	}
	return e.resolved(phrase, name, st), true
}

// matchPronoun handles `"...," she added` using the running previous speaker
func (e *Extractor) matchPronoun(c quoteContext, st attributionState) (attribution, bool) {
	loc := e.pronounAfter.FindStringIndex(c.after)
	if loc == nil {
		return attribution{}, false
	}
	return e.resolvePronoun(trimPhrase(c.after[:loc[1]]), c, st)
}

// matchNarrativeColon handles `Doe told students: "..."`
func (e *Extractor) matchNarrativeColon(c quoteContext, st attributionState) (attribution, bool) {
	clause := e.lastClause(c.before)
	if !strings.HasSuffix(clause, ":") {
		return attribution{}, false
	}
	return e.speakerBeforeVerb(strings.TrimSuffix(clause, ":"), c, st)
}

// matchSpeakerBefore handles `Doe said on Instagram that "..."` and `As you heard Doe say, "..."`
func (e *Extractor) matchSpeakerBefore(c quoteContext, st attributionState) (attribution, bool) {
	clause := strings.TrimRight(e.lastClause(c.before), ":")
	// A finished sentence does not introduce the quote that follows it
	if clause == "" || endsSentence(clause) {
		return attribution{}, false
	}
	return e.speakerBeforeVerb(clause, c, st)
}

// speakerBeforeVerb finds the last attribution verb in clause and the speaker around it
func (e *Extractor) speakerBeforeVerb(clause string, c quoteContext, st attributionState) (attribution, bool) {
	locs := e.beforeVerb.FindAllStringIndex(clause, -1)
	if len(locs) == 0 {
		return attribution{}, false
	}
	v := locs[len(locs)-1]
	if len(clause)-v[1] > 60 {
		return attribution{}, false
	}

	verb := strings.ToLower(clause[v[0]:v[1]])
	if strings.HasPrefix(verb, "according") {
		who := strings.Trim(clause[v[1]:], " ,")
		name := e.speakerName(who, c.earlier())
		if name == "" {
			return attribution{}, false
		}
		return e.resolved(trimPhrase(clause[v[0]:]), name, st), true
	}

	head := strings.TrimSpace(clause[:v[0]])
	if fields := strings.Fields(head); len(fields) > 0 && e.lib.IsPronoun(strings.Trim(fields[len(fields)-1], ",")) {
		last := fields[len(fields)-1]
		return e.resolvePronoun(trimPhrase(last+" "+clause[v[0]:]), c, st)
	}

	who := trailingSpeaker(parentheticalRe.ReplaceAllString(head, ""))
	if who == "" {
		return attribution{}, false
	}
	name := e.speakerName(who, c.earlier())
	if name == "" {
		return attribution{}, false
	}
	return e.resolved(trimPhrase(who+" "+clause[v[0]:]), name, st), true
}

// resolvePronoun attributes to the previous speaker, or the most recent full
// name within the lookback window when no quote has been attributed yet
func (e *Extractor) resolvePronoun(phrase string, c quoteContext, st attributionState) (attribution, bool) {
	if st.previousSpeaker != "" {
		return attribution{phrase: phrase, speaker: st.previousSpeaker, title: st.previousTitle}, true
	}
	name := e.lookbackName(c)
	if name == "" {
		return attribution{}, false
	}
	return attribution{phrase: phrase, speaker: name}, true
}

// lookbackName returns the last plausible two-word personal name before the quote.
// Names on a headline-like line are skipped.
func (e *Extractor) lookbackName(c quoteContext) string {
	window := clampWindow(c.text, c.start-e.th.PronounLookback, c.start)
	offset := c.start - len(window)
	locs := e.properName.FindAllStringIndex(window, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		match := window[locs[i][0]:locs[i][1]]
		if e.lib.IsRolePhrase(match) || titleLine(c.text, offset+locs[i][0]) {
			continue
		}
		name := e.trimName(match)
		words := strings.Fields(name)
		if len(words) >= 2 && e.plausibleFirstName(words[0]) {
			return name
		}
	}
	return ""
}

// titleLine reports whether pos falls in a one-line paragraph without closing punctuation
func titleLine(text string, pos int) bool {
	start := strings.LastIndex(text[:pos], "\n\n")
	if start < 0 {
		start = 0
	} else {
		start += 2
	}
	end := strings.Index(text[pos:], "\n\n")
	if end < 0 {
		end = len(text)
	} else {
		end += pos
	}
	para := strings.TrimSpace(text[start:end])
	return !strings.Contains(para, "\n") && !endsSentence(para) && !isCloseQuote(lastRune(para))
}

func (e *Extractor) resolved(phrase, name string, st attributionState) attribution {
	title := e.speakerTitle(phrase, st.location)
	if title == "" && name == st.previousSpeaker {
		title = st.previousTitle
	}
	return attribution{phrase: phrase, speaker: name, title: title}
}

// statementSpeaker finds "<Name> released the following statement" anywhere in text
func (e *Extractor) statementSpeaker(text string, location string) (attribution, bool) {
	for _, loc := range e.statement.FindAllStringIndex(text, -1) {
		prefix := e.lastClause(clampWindow(text, loc[0]-160, loc[0]))
		prefix = parentheticalRe.ReplaceAllString(prefix, "")
		if i := strings.LastIndexAny(prefix, "—–"); i >= 0 {
			// Drop a dateline in front of the speaker
			_, size := utf8.DecodeRuneInString(prefix[i:])
			prefix = strings.TrimSpace(prefix[i+size:])
		}
		for _, candidate := range []string{trailingSpeaker(prefix), prefix} {
			if candidate == "" {
				continue
			}
			name := e.speakerName(candidate, text[:loc[0]])
			if name == "" {
				continue
			}
			phrase := trimPhrase(candidate + " " + text[loc[0]:loc[1]])
			return attribution{phrase: phrase, speaker: name, title: e.speakerTitle(candidate, location)}, true
		}
	}
	return attribution{}, false
}

// firstClause returns s up to the first sentence end, quotation mark or line break
func (e *Extractor) firstClause(s string) string {
	if i := strings.IndexAny(s, "\n\"“”"); i >= 0 {
		s = s[:i]
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '!', '?', ';':
			return s[:i]
		case '.':
			if i+1 < len(s) && s[i+1] != ' ' {
				continue
			}
			if e.isAbbreviation(lastField(s[:i+1])) {
				continue
			}
			return s[:i]
		}
	}
	return s
}

// lastClause returns the trimmed text after the last sentence end or line break in s
func (e *Extractor) lastClause(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	cut := 0
	for i := 0; i+1 < len(s); i++ {
		switch s[i] {
		case '!', '?':
			if s[i+1] == ' ' {
				cut = i + 1
			}
		case '.':
			if s[i+1] == ' ' && !e.isAbbreviation(lastField(s[:i+1])) {
				cut = i + 1
			}
		}
	}
	return strings.TrimSpace(s[cut:])
}

// isAbbreviation reports whether a period-terminated word is an abbreviation
func (e *Extractor) isAbbreviation(word string) bool {
	if abbreviations[word] || e.lib.IsTitle(word) {
		return true
	}
	if len(word) == 2 && isCapitalized(word) {
		// Middle initial
		return true
	}
	if strings.HasSuffix(word, ".") && e.lib.StateName(word) != "" {
		return true
	}
	return false
}

func lastField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func trimPhrase(s string) string {
	return strings.Trim(normalizeSpace(s), " ,;:—–-")
}

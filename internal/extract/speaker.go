package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SpeakerName resolves the speaker's name from an attribution phrase such as
// "said Senator Jane Doe" or "Porter continued". A bare surname is expanded
// to the first "First Surname" mention in fullText.
func (e *Extractor) SpeakerName(attribution, fullText string) string {
	return e.speakerName(attribution, fullText)
}

// SpeakerTitle resolves the speaker's title, qualifying state- and
// city-scoped titles with the dateline found in fullText.
func (e *Extractor) SpeakerTitle(attribution, fullText string) string {
	return e.speakerTitle(attribution, e.Dateline(fullText).Location)
}

func (e *Extractor) speakerName(attribution, fullText string) string {
	phrase := e.cleanAttribution(attribution)
	if phrase == "" {
		return ""
	}
	namePart, titlePart := splitCommaTitle(phrase)
	if name := e.nameIn(namePart, fullText); name != "" {
		return name
	}
	// "Today, Governor Jane Doe" puts the speaker after the comma
	if e.lib.IsLeadingWord(namePart) {
		return e.nameIn(titlePart, fullText)
	}
	return ""
}

func (e *Extractor) nameIn(part, fullText string) string {
	if part == "" || e.lib.IsPronoun(part) || e.lib.IsRolePhrase(part) {
		return ""
	}

	if _, _, name := e.corporateSpeaker(part); name != "" {
		return name
	}

	if m := e.titledName.FindStringSubmatch(part); m != nil {
		if name := e.trimName(m[2]); name != "" {
			return e.completeName(name, fullText)
		}
	}

	for _, candidate := range e.properName.FindAllString(part, -1) {
		if name := e.trimName(candidate); name != "" {
			return e.completeName(name, fullText)
		}
	}
	return ""
}

func (e *Extractor) speakerTitle(attribution, location string) string {
	phrase := e.cleanAttribution(attribution)
	if phrase == "" {
		return ""
	}
	namePart, titlePart := splitCommaTitle(phrase)

	// "Jane Doe, CEO of Acme"
	if titlePart != "" {
		titlePart = strings.TrimRight(titlePart, " .")
		if idx := strings.Index(titlePart, " of "); idx > 0 {
			return e.lib.ExpandTitle(titlePart[:idx]) + titlePart[idx:]
		}
		if e.lib.IsTitle(titlePart) {
			return e.qualifyTitle(e.lib.ExpandTitle(titlePart), "", location)
		}
	}

	if company, title, _ := e.corporateSpeaker(namePart); company != "" {
		return e.lib.ExpandTitle(title) + " of " + company
	}

	loc := e.titledName.FindStringSubmatchIndex(namePart)
	if loc == nil {
		return ""
	}
	prefix := strings.TrimSpace(namePart[:loc[2]])
	for _, t := range e.titleWords.FindAllString(namePart[loc[2]:loc[3]], -1) {
		t = strings.TrimSpace(t)
		if e.lib.IsGovernmentTitle(t) || e.lib.IsCorporateTitle(t) {
			return e.qualifyTitle(e.lib.ExpandTitle(t), prefix, location)
		}
	}
	return ""
}

// qualifyTitle turns "Governor" into "Governor of Virginia" and "Mayor" into
// "Mayor of Richmond". A state named right before the title wins over the dateline.
func (e *Extractor) qualifyTitle(title, prefix, location string) string {
	switch {
	case e.lib.IsStateScoped(title):
		if state := e.lib.StateName(prefix); state != "" {
			return title + " of " + state
		}
		if _, state := splitLocation(location); state != "" {
			if name := e.lib.StateName(state); name != "" {
				return title + " of " + name
			}
		}
	case e.lib.IsCityScoped(title):
		if city, _ := splitLocation(location); city != "" {
			return title + " of " + titleCase(city)
		}
	}
	return title
}

// corporateSpeaker matches "Acme Corp CEO Jane Doe"
func (e *Extractor) corporateSpeaker(phrase string) (company, title, name string) {
	m := e.corporateName.FindStringSubmatch(phrase)
	if m == nil {
		return "", "", ""
	}
	company = strings.TrimSpace(m[1])
	words := strings.Fields(company)
	for len(words) > 0 && e.lib.IsLeadingWord(words[0]) {
		words = words[1:]
	}
	company = strings.Join(words, " ")
	if company == "" || !isCapitalized(company) || e.lib.IsTitle(company) {
		return "", "", ""
	}
	// "Vice President Jane Doe" is a compound title, not a company
	last := words[len(words)-1]
	if e.lib.IsTitle(last+" "+m[2]) || e.lib.IsTitle(last) {
		return "", "", ""
	}
	name = e.trimName(m[3])
	if len(strings.Fields(name)) < 2 {
		return "", "", ""
	}
	return company, m[2], name
}

// cleanAttribution reduces an attribution to the phrase naming the speaker
func (e *Extractor) cleanAttribution(s string) string {
	s = normalizeSpace(strings.TrimFunc(s, isQuoteMark))
	s = strings.Trim(s, " ,;:—–-")
	if loc := e.leadVerb.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	if loc := e.tailVerb.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	if loc := e.trailingClause.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.TrimRight(strings.TrimSpace(s), " ,;:.")
}

// splitCommaTitle splits "Jane Doe, CEO of Acme" into name and title parts
func splitCommaTitle(phrase string) (name, title string) {
	idx := strings.Index(phrase, ",")
	if idx < 0 {
		return strings.TrimSpace(phrase), ""
	}
	name = strings.TrimSpace(phrase[:idx])
	title = strings.TrimSpace(phrase[idx+1:])
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(strings.ToLower(title), article) {
			title = strings.TrimSpace(title[len(article):])
			break
		}
	}
	if title != "" && !isCapitalized(title) {
		// "Doe, who" or "Doe, adding" is not a title
		title = ""
	}
	return name, title
}

// trimName drops words that cannot start or end a personal name
func (e *Extractor) trimName(candidate string) string {
	words := strings.Fields(candidate)
	for len(words) > 0 {
		w := words[0]
		if e.lib.IsLeadingWord(w) || e.lib.IsTitle(w) || e.lib.IsInstitutional(w) || e.lib.IsPronoun(w) || shouting(w) {
			words = words[1:]
			continue
		}
		break
	}
	for len(words) > 0 {
		w := words[len(words)-1]
		if e.lib.IsInstitutional(w) || e.lib.IsLeadingWord(w) || shouting(w) || (e.lib.StateName(w) != "" && len(words) > 1) {
			words = words[:len(words)-1]
			continue
		}
		break
	}
	if len(words) == 1 && e.lib.StateName(words[0]) != "" {
		return ""
	}
	for _, w := range words {
		if e.lib.IsInstitutional(w) || shouting(w) {
			return ""
		}
	}
	return strings.Join(words, " ")
}

// shouting reports an all-caps word such as a dateline city
func shouting(word string) bool {
	return utf8.RuneCountInString(word) > 2 && isAllCaps(word)
}

// completeName expands a lone surname to the earliest "First Surname" in fullText.
// Hyphenated and apostrophe surnames are distinctive enough to stand alone.
func (e *Extractor) completeName(name, fullText string) string {
	if strings.Contains(name, " ") || strings.ContainsAny(name, "-'’") {
		return name
	}
	if first := e.firstNameFor(name, fullText); first != "" {
		return first + " " + name
	}
	return name
}

// firstNameFor scans fullText left to right for "<First> <surname>"
func (e *Extractor) firstNameFor(surname, fullText string) string {
	from := 0
	for from < len(fullText) {
		idx := strings.Index(fullText[from:], surname)
		if idx < 0 {
			return ""
		}
		at := from + idx
		from = at + len(surname)

		if r, _ := utf8.DecodeRuneInString(fullText[from:]); from < len(fullText) && (unicode.IsLetter(r) || r == '-') {
			continue
		}
		before := fullText[:at]
		if !strings.HasSuffix(before, " ") {
			continue
		}
		fields := strings.Fields(before[max(0, len(before)-40):])
		if len(fields) == 0 {
			continue
		}
		first := fields[len(fields)-1]
		if !e.plausibleFirstName(first) {
			continue
		}
		return first
	}
	return ""
}

// plausibleFirstName rejects titles, sentence openers and abbreviations in first-name position
func (e *Extractor) plausibleFirstName(word string) bool {
	if utf8.RuneCountInString(word) < 2 || !isCapitalized(word) {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) && r != '\'' && r != '’' && r != '-' {
			return false
		}
	}
	if shouting(word) {
		return false
	}
	return !e.lib.IsTitle(word) && !e.lib.IsLeadingWord(word) &&
		!e.lib.IsInstitutional(word) && !e.lib.IsPronoun(word) && e.lib.StateName(word) == ""
}

// trailingSpeaker returns the capitalised run that ends s: "In remarks Tuesday, Jane Doe" -> "Jane Doe"
func trailingSpeaker(s string) string {
	words := strings.Fields(s)
	i := len(words)
	for i > 0 {
		w := words[i-1]
		if i != len(words) && strings.HasSuffix(w, ",") {
			break
		}
		if !isCapitalized(strings.Trim(w, ",(")) {
			break
		}
		i--
	}
	return strings.Join(words[i:], " ")
}

// splitLocation splits a dateline location into city and state tokens
func splitLocation(location string) (city, state string) {
	location = strings.Trim(location, "* ")
	idx := strings.Index(location, ",")
	if idx < 0 {
		return location, ""
	}
	return strings.TrimSpace(location[:idx]), strings.TrimSpace(location[idx+1:])
}

// titleCase turns "RICHMOND" into "Richmond"
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

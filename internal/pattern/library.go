// Package pattern holds the lexical tables and compiled regular expressions
// shared by every extraction pass. A Library is immutable after construction
// and safe for concurrent use.
package pattern

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Month, day and location building blocks
const (
	monthAlt = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?`
	dayAlt   = `\d{1,2}(?:st|nd|rd|th)?`
	weekday  = `(?:(?:Mon|Tues|Wednes|Thurs|Fri|Satur|Sun)day,?[ \t]+)`
	cityWord = `[A-Z][A-Za-z'’.\-]*`
	city     = cityWord + `(?:[ \t]+` + cityWord + `){0,3}`
	dash     = `(?:—|–|--?|\|)`

	// DateFull matches "October 1, 2025", "Oct. 1 2025" and "1 October 2025"
	DateFull = `(?i:\b` + monthAlt + `[ \t]+` + dayAlt + `,?[ \t]+\d{4}\b|\b\d{1,2}[ \t]+` + monthAlt + `,?[ \t]+\d{4}\b)`
	// DatePartial matches a month and day without a year
	DatePartial = `(?i:\b` + monthAlt + `[ \t]+` + dayAlt + `\b)`
	// DateNumeric matches 10/01/2025 and 2025-10-01
	DateNumeric = `\b(?:\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2})\b`
)

// Library is the immutable set of tables and compiled patterns
type Library struct {
	governmentTitles []string
	honorificTitles  []string
	corporateTitles  []string
	stateScoped      map[string]bool
	cityScoped       map[string]bool
	expansions       map[string]string
	verbs            []string
	announce         []string
	institutional    map[string]bool
	roles            map[string]bool
	leading          map[string]bool
	pronouns         map[string]bool
	connectives      []string
	states           map[string]string
	stateNames       []string

	// TitleAlt, VerbAlt, CorporateAlt and StateAlt are regexp alternations,
	// longest entry first so leftmost-first matching prefers "Lt. Gov." over "Gov.".
	TitleAlt     string
	VerbAlt      string
	CorporateAlt string
	StateAlt     string

	DateFull       *regexp.Regexp
	DatePartial    *regexp.Regexp
	DateNumeric    *regexp.Regexp
	PureDate       *regexp.Regexp // whole line is a date
	DateLine       *regexp.Regexp // standalone date line, optional "Date:" prefix
	ISODateHeader  *regexp.Regexp // "Date: 2025-10-01T09:00:00Z"
	CityState      *regexp.Regexp // "Richmond, Va."
	LocationLine   *regexp.Regexp // standalone "CITY, ST" line
	DashLocation   *regexp.Regexp // "RICHMOND —" at line start
	FormalDateline []*regexp.Regexp
	TwoWordName    *regexp.Regexp
	AnnounceVerb   *regexp.Regexp
	AttributionEnd *regexp.Regexp // sentence ends with an attribution verb phrase
	StateNameRe    *regexp.Regexp
}

// Overrides extends the built-in tables from YAML
type Overrides struct {
	Titles struct {
		Government []string `yaml:"government"`
		Honorific  []string `yaml:"honorific"`
		Corporate  []string `yaml:"corporate"`
	} `yaml:"titles"`
	AttributionVerbs   []string          `yaml:"attribution_verbs"`
	AnnouncementVerbs  []string          `yaml:"announcement_verbs"`
	InstitutionalWords []string          `yaml:"institutional_words"`
	RolePhrases        []string          `yaml:"role_phrases"`
	States             map[string]string `yaml:"states"`
}

var defaultLibrary = mustBuild(Overrides{})

// Default returns the built-in library
func Default() *Library {
	return defaultLibrary
}

// Load builds a library from the built-in tables plus YAML overrides at path
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns: %w", err)
	}
	return Parse(data)
}

// Parse builds a library from YAML override bytes
func Parse(data []byte) (*Library, error) {
	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}
	return build(ov)
}

func mustBuild(ov Overrides) *Library {
	lib, err := build(ov)
	if err != nil {
		panic(fmt.Sprintf("pattern: built-in tables do not compile: %v", err))
	}
	return lib
}

func build(ov Overrides) (lib *Library, err error) {
	lib = &Library{
		governmentTitles: merge(governmentTitles, ov.Titles.Government),
		honorificTitles:  merge(honorificTitles, ov.Titles.Honorific),
		corporateTitles:  merge(corporateTitles, ov.Titles.Corporate),
		stateScoped:      setOf(stateScopedTitles, false),
		cityScoped:       setOf(cityScopedTitles, false),
		expansions:       titleExpansions,
		verbs:            merge(attributionVerbs, ov.AttributionVerbs),
		announce:         merge(announcementVerbs, ov.AnnouncementVerbs),
		institutional:    setOf(merge(institutionalWords, ov.InstitutionalWords), false),
		roles:            setOf(merge(rolePhrases, ov.RolePhrases), true),
		leading:          setOf(leadingFunctionWords, false),
		pronouns:         setOf(pronouns, true),
		connectives:      topicShiftConnectives,
		states:           make(map[string]string, len(states)+len(ov.States)),
	}
	for k, v := range states {
		lib.states[k] = v
	}
	for k, v := range ov.States {
		lib.states[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	seen := make(map[string]bool)
	for _, name := range lib.states {
		if !seen[name] {
			seen[name] = true
			lib.stateNames = append(lib.stateNames, name)
		}
	}
	sort.Strings(lib.stateNames)

	allTitles := merge(merge(lib.governmentTitles, lib.honorificTitles), lib.corporateTitles)
	lib.TitleAlt = alternation(allTitles)
	lib.VerbAlt = alternation(lib.verbs)
	lib.CorporateAlt = alternation(lib.corporateTitles)

	stateKeys := make([]string, 0, len(lib.states)+len(lib.stateNames))
	for k := range lib.states {
		stateKeys = append(stateKeys, k)
	}
	stateKeys = append(stateKeys, lib.stateNames...)
	lib.StateAlt = alternation(stateKeys)

	location := city + `,[ \t]*(?:` + lib.StateAlt + `)`

	compile := func(expr string) *regexp.Regexp {
		if err != nil {
			return nil
		}
		re, cErr := regexp.Compile(expr)
		if cErr != nil {
			err = fmt.Errorf("compile %q: %w", expr, cErr)
		}
		return re
	}

	lib.DateFull = compile(DateFull)
	lib.DatePartial = compile(DatePartial)
	lib.DateNumeric = compile(DateNumeric)
	lib.PureDate = compile(`^[ \t]*` + weekday + `?(?:` + DateFull + `|` + DatePartial + `|` + DateNumeric + `)[ \t.]*$`)
	lib.DateLine = compile(`(?m)^[ \t]*(?:(?i:date|dated|released?)[ \t]*:[ \t]*)?` + weekday + `?(` + DateFull + `)[ \t]*$`)
	lib.ISODateHeader = compile(`(?mi)^[ \t]*date[ \t]*:[ \t]*(\d{4}-\d{2}-\d{2})(?:[T ][0-9:.]+(?:Z|[+-]\d{2}:?\d{2})?)?[ \t]*$`)
	lib.CityState = compile(`(` + city + `),[ \t]*(` + lib.StateAlt + `)`)
	lib.LocationLine = compile(`(?m)^[ \t]*(` + location + `)[ \t]*` + dash + `?[ \t]*$`)
	lib.DashLocation = compile(`(?m)^[ \t]*(?:\*\*)?(` + city + `(?:,[ \t]*[A-Z][A-Za-z.]+(?:[ \t]+[A-Z][A-Za-z.]+)?)?)(?:\*\*)?[ \t]*(?:—|–)`)
	lib.FormalDateline = []*regexp.Regexp{
		// RICHMOND, Va. — October 1, 2025
		compile(`(?m)^[ \t]*(?:\*\*)?(` + city + `(?:,[ \t]*[A-Z][A-Za-z.]+(?:[ \t]+[A-Z][A-Za-z.]+)?)?)(?:\*\*)?[ \t]*` + dash + `[ \t]*\(?(` + DateFull + `)\)?`),
		// RICHMOND, Va. (October 1, 2025)
		compile(`(?m)^[ \t]*(` + city + `(?:,[ \t]*[A-Z][A-Za-z.]+(?:[ \t]+[A-Z][A-Za-z.]+)?)?)[ \t]*\((` + DateFull + `)\)`),
		// Richmond, Va. — October 1, 2025 mid-line
		compile(`(` + location + `)[ \t]*` + dash + `[ \t]*\(?(` + DateFull + `)\)?`),
	}
	lib.TwoWordName = compile(`\b[A-Z][a-z]+[ \t]+[A-Z][a-z]+\b`)
	lib.AnnounceVerb = compile(`(?i)\b(?:` + alternation(lib.announce) + `)\b`)
	lib.AttributionEnd = compile(`(?i)\b(?:` + lib.VerbAlt + `)\b[^.!?]{0,60}[.!?]["”]?$`)
	lib.StateNameRe = compile(`\b(` + alternation(lib.stateNames) + `)\b`)

	if err != nil {
		return nil, err
	}
	return lib, nil
}

// Verbs returns the attribution verbs
func (l *Library) Verbs() []string {
	return append([]string(nil), l.verbs...)
}

// Connectives returns topic-shift connectives
func (l *Library) Connectives() []string {
	return l.connectives
}

// StateName resolves a postal code, AP abbreviation or state name to the full name
func (l *Library) StateName(token string) string {
	token = strings.TrimSpace(strings.Trim(token, ",;"))
	if token == "" {
		return ""
	}
	if name, ok := l.states[token]; ok {
		return name
	}
	if name, ok := l.states[strings.ToUpper(token)]; ok && len(token) == 2 {
		return name
	}
	if name, ok := l.states[token+"."]; ok {
		return name
	}
	for _, name := range l.stateNames {
		if strings.EqualFold(name, token) {
			return name
		}
	}
	return ""
}

// StateNames returns all full state names, sorted
func (l *Library) StateNames() []string {
	return l.stateNames
}

// IsTitle reports whether s is a known title of any kind
func (l *Library) IsTitle(s string) bool {
	return contains(l.governmentTitles, s) || contains(l.honorificTitles, s) || contains(l.corporateTitles, s)
}

// IsGovernmentTitle reports whether s is a government or legislative title
func (l *Library) IsGovernmentTitle(s string) bool {
	return contains(l.governmentTitles, s)
}

// IsCorporateTitle reports whether s is a corporate title
func (l *Library) IsCorporateTitle(s string) bool {
	return contains(l.corporateTitles, s)
}

// IsStateScoped reports whether a title is qualified by a state ("Governor of Virginia")
func (l *Library) IsStateScoped(title string) bool {
	return l.stateScoped[title]
}

// IsCityScoped reports whether a title is qualified by a city ("Mayor of Richmond")
func (l *Library) IsCityScoped(title string) bool {
	return l.cityScoped[title]
}

// ExpandTitle returns the long form of an abbreviated title
func (l *Library) ExpandTitle(title string) string {
	if long, ok := l.expansions[title]; ok {
		return long
	}
	return title
}

// IsInstitutional reports whether a capitalised word names an institution, place or date
func (l *Library) IsInstitutional(word string) bool {
	return l.institutional[strings.Trim(word, ".,;:'’")]
}

// IsRolePhrase reports whether s is a generic role reference such as "The Governor"
func (l *Library) IsRolePhrase(s string) bool {
	return l.roles[strings.ToLower(strings.TrimSpace(s))]
}

// IsLeadingWord reports whether a word is capitalised only by sentence position
func (l *Library) IsLeadingWord(word string) bool {
	return l.leading[word]
}

// IsPronoun reports whether s is a speaker pronoun
func (l *Library) IsPronoun(s string) bool {
	return l.pronouns[strings.ToLower(strings.TrimSpace(s))]
}

func alternation(items []string) string {
	sorted := append([]string(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	quoted := make([]string, 0, len(sorted))
	for _, s := range sorted {
		if s = strings.TrimSpace(s); s != "" {
			quoted = append(quoted, regexp.QuoteMeta(s))
		}
	}
	return strings.Join(quoted, "|")
}

func merge(base, extra []string) []string {
	out := append([]string(nil), base...)
	for _, s := range extra {
		if s = strings.TrimSpace(s); s != "" && !contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func setOf(items []string, fold bool) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		if fold {
			s = strings.ToLower(s)
		}
		m[s] = true
	}
	return m
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

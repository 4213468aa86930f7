package extract

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/pressparse/internal/model"
)

// datelineStrategy tries one way of finding the dateline.
// ok is true when the strategy found anything at all.
type datelineStrategy struct {
	name string
	find func(e *Extractor, text string) (d model.Dateline, ok bool)
}

// datelineStrategies run in priority order
var datelineStrategies = []datelineStrategy{
	{name: "formal", find: (*Extractor).formalDateline},
	{name: "separated_lines", find: (*Extractor).separatedDateline},
	{name: "structured_header", find: (*Extractor).structuredDateline},
	{name: "loose_scan", find: (*Extractor).looseDateline},
}

// Dateline resolves location and date with a confidence tier.
// The first strategy that resolves both wins at high confidence; otherwise the
// candidate carrying the most data is kept.
func (e *Extractor) Dateline(text string) model.Dateline {
	var best model.Dateline
	found := false

	for _, s := range datelineStrategies {
		d, ok := s.find(e, text)
		if !ok {
			continue
		}
		if d.Location != "" && d.Date != "" && d.Confidence == model.ConfidenceHigh {
			d.Issues = []string{}
			return d
		}
		if !found {
			best, found = d, true
			continue
		}
		if fieldCount(d) > fieldCount(best) {
			// A later strategy with more data replaces the earlier one but never
			// lowers the confidence already established.
			if best.Confidence.Rank() > d.Confidence.Rank() {
				d.Confidence = best.Confidence
			}
			best = d
		}
	}

	if !found {
		return model.Dateline{
			Confidence: model.ConfidenceNone,
			Issues:     []string{"No dateline found: add a \"CITY, ST — Month Day, Year\" line"},
		}
	}
	if len(best.Issues) == 0 {
		best.Issues = []string{"Dateline could not be confirmed"}
	}
	return best
}

func fieldCount(d model.Dateline) int {
	n := 0
	if d.Location != "" {
		n++
	}
	if d.Date != "" {
		n++
	}
	return n
}

// formalDateline matches "LOCATION — Month Day, Year" anywhere in the text
func (e *Extractor) formalDateline(text string) (model.Dateline, bool) {
	for _, re := range e.lib.FormalDateline {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if m[2] < 0 || m[4] < 0 {
				continue
			}
			location := strings.TrimSpace(text[m[2]:m[3]])
			if !e.plausibleLocation(location) {
				continue
			}
			date := normalizeSpace(text[m[4]:m[5]])
			full := strings.Trim(strings.TrimSpace(text[m[0]:m[1]]), "*")
			return model.Dateline{
				Location:   location,
				Date:       date,
				Full:       normalizeSpace(full),
				Confidence: model.ConfidenceHigh,
			}, true
		}
	}
	return model.Dateline{}, false
}

// plausibleLocation rejects headline text that happens to precede a dash and a date
func (e *Extractor) plausibleLocation(location string) bool {
	location = strings.Trim(location, "* ")
	if location == "" || len(location) > 60 || isReleaseHeader(location) {
		return false
	}
	if idx := strings.LastIndex(location, ","); idx > 0 {
		cityPart := strings.TrimSpace(location[:idx])
		statePart := strings.TrimSpace(location[idx+1:])
		if e.lib.StateName(statePart) != "" {
			return true
		}
		// "LONDON, England" style: accept an all-caps city with any proper-noun region
		return isAllCaps(cityPart) && isCapitalized(statePart)
	}
	// Single-token datelines must be in caps: "WASHINGTON — ..."
	return isAllCaps(location) && len(strings.Fields(location)) <= 3
}

// separatedDateline handles a standalone date line followed by a location line
func (e *Extractor) separatedDateline(text string) (model.Dateline, bool) {
	lines := splitLines(text)
	limit := len(lines)
	if limit > 40 {
		limit = 40
	}

	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		m := e.lib.DateLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		date := normalizeSpace(m[1])

		for j := i + 1; j < len(lines) && j <= i+3; j++ {
			if location := e.standaloneLocation(lines[j]); location != "" {
				return model.Dateline{
					Location:   location,
					Date:       date,
					Full:       location + " — " + date,
					Confidence: model.ConfidenceHigh,
				}, true
			}
		}

		return model.Dateline{
			Date:       date,
			Full:       date,
			Confidence: model.ConfidenceMedium,
			Issues:     []string{"Date found on its own line but no location line follows it"},
		}, true
	}
	return model.Dateline{}, false
}

// standaloneLocation returns the location when line is only a location
func (e *Extractor) standaloneLocation(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if m := e.lib.LocationLine.FindStringSubmatch(line); m != nil && stateBoundary(line, m[1]) {
		return strings.TrimSpace(m[1])
	}
	// "RICHMOND —" on its own
	if m := e.lib.DashLocation.FindStringSubmatch(line); m != nil {
		rest := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line[len(m[0]):]), "—–-"))
		location := strings.TrimSpace(m[1])
		if rest == "" && e.plausibleLocation(location) {
			return location
		}
	}
	return ""
}

// stateBoundary guards against "Va" matching the start of "Valley"
func stateBoundary(text, match string) bool {
	idx := strings.Index(text, match)
	if idx < 0 {
		return true
	}
	next := idx + len(match)
	if next >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[next:])
	return !unicode.IsLetter(r)
}

// structuredDateline converts "Date: 2025-10-01T..." and pairs it with a "LOCATION —" line
func (e *Extractor) structuredDateline(text string) (model.Dateline, bool) {
	loc := e.lib.ISODateHeader.FindStringSubmatchIndex(text)
	if loc == nil {
		return model.Dateline{}, false
	}
	parsed, err := time.Parse("2006-01-02", text[loc[2]:loc[3]])
	if err != nil {
		return model.Dateline{}, false
	}
	date := parsed.Format("January 2, 2006")

	following := splitLines(text[loc[1]:])
	checked := 0
	for _, line := range following {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if checked++; checked > 5 {
			break
		}
		m := e.lib.DashLocation.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		location := strings.TrimSpace(m[1])
		if !e.plausibleLocation(location) {
			continue
		}
		return model.Dateline{
			Location:   location,
			Date:       date,
			Full:       location + " — " + date,
			Confidence: model.ConfidenceHigh,
		}, true
	}

	return model.Dateline{
		Date:       date,
		Full:       date,
		Confidence: model.ConfidenceMedium,
		Issues:     []string{"Date converted from a structured Date: header; no location found"},
	}, true
}

// looseDateline scans the opening lines for any location and any date
func (e *Extractor) looseDateline(text string) (model.Dateline, bool) {
	var window []string
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isReleaseHeader(trimmed) || isContactLine(trimmed) {
			continue
		}
		window = append(window, trimmed)
		if len(window) >= e.th.LooseDatelineLines {
			break
		}
	}
	scan := strings.Join(window, "\n")

	var d model.Dateline
	var issues []string

	for _, m := range e.lib.CityState.FindAllStringSubmatchIndex(scan, -1) {
		candidate := scan[m[0]:m[1]]
		if !stateBoundary(scan[m[0]:], candidate) {
			continue
		}
		if city := e.trimCity(scan[m[2]:m[3]]); city != "" {
			d.Location = city + ", " + scan[m[4]:m[5]]
			break
		}
	}

	yearless := false
	if m := e.lib.DateFull.FindString(scan); m != "" {
		d.Date = normalizeSpace(m)
	} else if m := e.lib.DatePartial.FindString(scan); m != "" {
		d.Date = normalizeSpace(m)
		yearless = true
	} else if m := e.lib.DateNumeric.FindString(scan); m != "" {
		d.Date = m
	}

	inferred := false
	if d.Location == "" {
		if location := e.inferLocation(window, text); location != "" {
			d.Location = location
			inferred = true
		}
	}

	switch {
	case d.Location == "" && d.Date == "":
		return model.Dateline{}, false
	case d.Location != "" && !inferred:
		d.Confidence = model.ConfidenceMedium
		if d.Date == "" {
			issues = append(issues, "Location found but no date; add the release date to the dateline")
		} else {
			issues = append(issues, "Location and date found separately; no formal dateline line")
		}
	default:
		d.Confidence = model.ConfidenceLow
		if d.Location == "" {
			issues = append(issues, "Date found but no location; add \"CITY, ST\" to the dateline")
		}
		if inferred {
			issues = append(issues, fmt.Sprintf("Location %q inferred from city and state mentions", d.Location))
		}
	}
	if yearless {
		d.Confidence = model.Weaker(d.Confidence, model.ConfidenceLow)
		issues = append(issues, "Date has no year")
	}

	switch {
	case d.Location != "" && d.Date != "":
		d.Full = d.Location + " — " + d.Date
	case d.Location != "":
		d.Full = d.Location
	default:
		d.Full = d.Date
	}
	d.Issues = issues
	return d, true
}

// trimCity drops leading words that cannot be part of a city name
func (e *Extractor) trimCity(city string) string {
	words := strings.Fields(city)
	for len(words) > 0 {
		w := words[0]
		if e.lib.IsLeadingWord(w) || e.lib.IsTitle(w) || (e.lib.IsInstitutional(w) && len(words) > 1) {
			words = words[1:]
			continue
		}
		break
	}
	return strings.Join(words, " ")
}

// inferLocation pairs a "CITY —" opener with the first state named in the document
func (e *Extractor) inferLocation(window []string, text string) string {
	for _, line := range window {
		m := e.lib.DashLocation.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		city := strings.TrimSpace(m[1])
		if strings.Contains(city, ",") || !isAllCaps(city) || isReleaseHeader(city) {
			continue
		}
		state := e.lib.StateNameRe.FindString(text)
		if state == "" {
			return ""
		}
		return titleCase(city) + ", " + state
	}
	return ""
}

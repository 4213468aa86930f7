package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/pressparse/internal/model"
)

// headerScanLines bounds the search for a release header
const headerScanLines = 20

// ReleaseInfo detects the release header, an embargo line and the end marker
func (e *Extractor) ReleaseInfo(text string) model.ReleaseInfo {
	var info model.ReleaseInfo
	seen := 0
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if isEndMarker(trimmed) {
			info.HasEndMarker = true
			continue
		}
		if trimmed == "" || seen >= headerScanLines {
			continue
		}
		seen++
		if info.Embargo == "" && embargoRe.MatchString(trimmed) {
			info.Embargo = normalizeSpace(strings.Trim(trimmed, "* "))
		}
		if !info.HasReleaseHeader && isReleaseHeader(trimmed) {
			info.HasReleaseHeader = true
			m := releaseHeaderRe.FindStringSubmatch(trimmed)
			info.ReleaseType = strings.ToUpper(normalizeSpace(m[1]))
		}
	}
	return info
}

// Contact extracts the media contact block and the "About" boilerplate paragraph
func (e *Extractor) Contact(text string) model.ContactInfo {
	var info model.ContactInfo

	block := contactBlock(text)
	info.Block = strings.Join(block, "\n")
	scope := info.Block
	if scope == "" {
		scope = text
	}
	info.Email = emailRe.FindString(scope)
	info.Phone = strings.TrimSpace(phoneRe.FindString(scope))

	for _, line := range block {
		if name := e.contactName(line); name != "" {
			info.Name = name
			break
		}
	}

	info.Boilerplate = boilerplate(text)
	return info
}

// contactBlock returns the contact line and the lines that follow it up to a blank line
func contactBlock(text string) []string {
	var block []string
	inBlock := false
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if !inBlock {
			if isContactLine(trimmed) {
				inBlock = true
				block = append(block, trimmed)
			}
			continue
		}
		if trimmed == "" || isEndMarker(trimmed) {
			if len(block) > 1 {
				break
			}
			// "Contact:" alone on its line, details follow after a blank
			continue
		}
		block = append(block, trimmed)
		if len(block) > 6 {
			break
		}
	}
	return block
}

// contactName returns a personal name from a contact line
func (e *Extractor) contactName(line string) string {
	if idx := strings.IndexAny(line, ":–—"); idx >= 0 && isContactLine(line) {
		line = line[idx+1:]
	}
	line = emailRe.ReplaceAllString(line, "")
	line = phoneRe.ReplaceAllString(line, "")
	for _, candidate := range e.properName.FindAllString(line, -1) {
		if name := e.trimName(candidate); len(strings.Fields(name)) >= 2 {
			return name
		}
	}
	return ""
}

// boilerplate returns the "About <Organization>" paragraph
func boilerplate(text string) string {
	paragraphs := paragraphSpans(text)
	for i, p := range paragraphs {
		first := strings.TrimSpace(strings.Trim(splitLines(p.text)[0], "*#"))
		if !strings.HasPrefix(first, "About ") {
			continue
		}
		if len(splitLines(p.text)) == 1 && utf8.RuneCountInString(first) < 80 && !endsSentence(first) {
			// A heading on its own: the boilerplate is the next paragraph
			if i+1 < len(paragraphs) && !isEndMarker(paragraphs[i+1].text) {
				return first + "\n" + normalizeSpace(paragraphs[i+1].text)
			}
			continue
		}
		return normalizeSpace(p.text)
	}
	return ""
}

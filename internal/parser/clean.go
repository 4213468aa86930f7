package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/ppiankov/pressparse/internal/model"
)

var (
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
)

var invisible = strings.NewReplacer(
	"\ufeff", "",
	"\u200b", "",
	"\u00a0", " ",
	"\u2028", "\n",
	"\u2029", "\n\n",
)

// Clean normalises text before extraction: NFC composition, \n line endings,
// no byte-order marks or zero-width spaces, and at most one blank line in a row.
func Clean(text string) string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = invisible.Replace(text)
	text = trailingSpaceRe.ReplaceAllString(text, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// anchorLengths are the prefix sizes tried when locating a quote in the source
var anchorLengths = []int{48, 16, 1}

// sourcePositions rewrites quote positions from offsets into clean to offsets
// into source. Quotes must be sorted by position. Each quote is located by
// the longest prefix of its cleaned text that occurs verbatim in the source
// after the previous quote; a quote that cannot be found keeps its clean offset.
func sourcePositions(source, clean string, quotes []model.Quote) {
	cursor := 0
	for i := range quotes {
		pos := quotes[i].Position
		if pos < 0 || pos >= len(clean) {
			continue
		}
		line := clean[pos:]
		if nl := strings.IndexByte(line, '\n'); nl > 0 {
			line = line[:nl]
		}
		for _, n := range anchorLengths {
			anchor := runePrefix(line, n)
			if anchor == "" {
				continue
			}
			if idx := strings.Index(source[cursor:], anchor); idx >= 0 {
				quotes[i].Position = cursor + idx
				cursor += idx + len(anchor)
				break
			}
		}
	}
}

// runePrefix returns at most n bytes of s, cut back to a rune boundary
func runePrefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

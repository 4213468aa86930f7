package validate

import (
	"strings"

	"golang.org/x/net/html"
)

// knownTags are elements worth flagging; stray angle brackets in prose are not.
var knownTags = map[string]bool{
	"html": true, "head": true, "body": true, "div": true, "span": true, "p": true,
	"br": true, "a": true, "b": true, "i": true, "em": true, "strong": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "ul": true, "ol": true, "li": true,
	"table": true, "tr": true, "td": true, "img": true, "script": true, "style": true,
	"meta": true, "article": true, "section": true, "header": true, "footer": true,
}

// countHTMLTags tokenizes text and counts recognised element tags
func countHTMLTags(text string) int {
	if !strings.Contains(text, "<") {
		return 0
	}

	count := 0
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return count
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if knownTags[strings.ToLower(string(name))] {
				count++
			}
		}
	}
}

package adapters

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Page is the plain-text rendition of a release page
type Page struct {
	Title         string // Page headline
	Text          string // Visible text with paragraphs separated by blank lines
	PublishedDate string // "January 2, 2006" when the page declares one
	Adapter       string // Name of the adapter that produced the page
}

// Adapter defines the interface for site-specific page extractors
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given URL/content
	CanHandle(url string, contentType string) bool

	// ExtractPage converts the HTML document into release text
	ExtractPage(doc *html.Node, url string) (Page, error)
}

// Registry manages site adapters
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a new adapter registry
func NewRegistry() *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	// Register built-in adapters
	registry.Register(NewNewswireAdapter())
	registry.Register(NewGovernmentAdapter())

	// Set generic adapter as fallback
	registry.generic = NewGenericAdapter()

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter finds the best adapter for the given URL and content type
func (r *Registry) FindAdapter(url string, contentType string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(url, contentType) {
			return adapter
		}
	}
	return r.generic
}

// Extract parses htmlContent and runs the matching adapter over it
func (r *Registry) Extract(htmlContent, url, contentType string) (Page, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return Page{}, err
	}
	adapter := r.FindAdapter(url, contentType)
	page, err := adapter.ExtractPage(doc, url)
	if err != nil {
		return Page{}, err
	}
	page.Adapter = adapter.Name()
	return page, nil
}

// blockTags end a line of visible text
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "table": true, "ul": true, "ol": true,
	"header": true, "footer": true, "address": true, "figure": true, "figcaption": true,
	"dl": true, "hr": true,
}

// lineTags break a line without starting a paragraph
var lineTags = map[string]bool{"br": true, "li": true, "tr": true, "dt": true, "dd": true}

// skipTags never contribute visible text
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "nav": true, "aside": true,
	"form": true, "iframe": true, "svg": true, "button": true, "template": true, "head": true,
}

var inlineSpaceRe = regexp.MustCompile(`[ \t\r\n\f]+`)

// BaseAdapter provides common functionality for adapters
type BaseAdapter struct{}

// ExtractText extracts text content from a node on a single line
func (b *BaseAdapter) ExtractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	if n.Type == html.ElementNode && skipTags[n.Data] {
		return ""
	}

	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(b.ExtractText(c))
		buf.WriteString(" ")
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}

// BlockText renders the visible text under n, one block per paragraph
func (b *BaseAdapter) BlockText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			buf.WriteString(inlineSpaceRe.ReplaceAllString(node.Data, " "))
			return
		case html.ElementNode:
			if skipTags[node.Data] {
				return
			}
		case html.CommentNode, html.DoctypeNode:
			return
		}

		// Blocks are fenced on both sides; line tags only end their line
		before, after := "", ""
		if node.Type == html.ElementNode {
			if blockTags[node.Data] {
				before, after = "\n\n", "\n\n"
			} else if lineTags[node.Data] {
				after = "\n"
			}
		}
		buf.WriteString(before)
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		buf.WriteString(after)
	}

	walk(n)
	return collapseLines(buf.String())
}

// collapseLines trims every line and keeps at most one blank line between blocks
func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
				blank = true
			}
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// HasClass checks if a node has a specific CSS class
func (b *BaseAdapter) HasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, class := range strings.Fields(attr.Val) {
				if class == className {
					return true
				}
			}
		}
	}
	return false
}

// GetAttribute gets an attribute value from a node
func (b *BaseAdapter) GetAttribute(n *html.Node, attrKey string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrKey {
			return attr.Val
		}
	}
	return ""
}

// FindAll finds all nodes matching a predicate
func (b *BaseAdapter) FindAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// FindFirst finds the first node matching a predicate
func (b *BaseAdapter) FindFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// element matches an element by tag name
func element(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// publishedMeta lists meta tags carrying a publication date, most specific first
var publishedMeta = []struct{ attr, value string }{
	{"property", "article:published_time"},
	{"name", "article:published_time"},
	{"itemprop", "datePublished"},
	{"name", "pubdate"},
	{"name", "publishdate"},
	{"name", "DC.date.issued"},
	{"name", "dcterms.date"},
	{"name", "date"},
}

// PublishedDate reads the publication date from meta tags or the first <time datetime>
func (b *BaseAdapter) PublishedDate(doc *html.Node) string {
	metas := b.FindAll(doc, element("meta"))
	for _, want := range publishedMeta {
		for _, m := range metas {
			if strings.EqualFold(b.GetAttribute(m, want.attr), want.value) {
				if date := formatDate(b.GetAttribute(m, "content")); date != "" {
					return date
				}
			}
		}
	}

	t := b.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "time" && b.GetAttribute(n, "datetime") != ""
	})
	if t != nil {
		return formatDate(b.GetAttribute(t, "datetime"))
	}
	return ""
}

// PageTitle returns og:title, the first <h1> or <title>, in that order
func (b *BaseAdapter) PageTitle(doc *html.Node) string {
	for _, m := range b.FindAll(doc, element("meta")) {
		if b.GetAttribute(m, "property") == "og:title" {
			if title := strings.TrimSpace(b.GetAttribute(m, "content")); title != "" {
				return title
			}
		}
	}
	if h1 := b.FindFirst(doc, element("h1")); h1 != nil {
		if title := b.ExtractText(h1); title != "" {
			return title
		}
	}
	if t := b.FindFirst(doc, element("title")); t != nil {
		return b.ExtractText(t)
	}
	return ""
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// formatDate converts a machine-readable date into "January 2, 2006"
func formatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return ""
}

// withTitle prepends the title when the body text does not already open with it
func withTitle(title, body string) string {
	if title == "" || strings.HasPrefix(body, title) {
		return body
	}
	if body == "" {
		return title
	}
	return title + "\n\n" + body
}

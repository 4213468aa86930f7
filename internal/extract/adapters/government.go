package adapters

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// GovernmentAdapter extracts releases from government newsroom pages
type GovernmentAdapter struct {
	BaseAdapter
	hostSuffixes []string
	bodyClasses  []string
}

// NewGovernmentAdapter creates a new government newsroom adapter
func NewGovernmentAdapter() *GovernmentAdapter {
	return &GovernmentAdapter{
		hostSuffixes: []string{".gov", ".mil", ".gov.uk", ".gc.ca", ".gov.au"},
		bodyClasses: []string{
			"field--name-body", "press-release", "usa-prose",
			"news-release", "page-content", "content-body",
		},
	}
}

// Name returns the adapter name
func (a *GovernmentAdapter) Name() string {
	return "government"
}

// CanHandle checks for government hosts, including state portals like virginia.gov or ny.gov
func (a *GovernmentAdapter) CanHandle(rawURL string, contentType string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, suffix := range a.hostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return strings.Contains(host, ".state.") && strings.HasSuffix(host, ".us")
}

// ExtractPage renders the newsroom body and keeps the release date shown above it
func (a *GovernmentAdapter) ExtractPage(doc *html.Node, rawURL string) (Page, error) {
	body := a.FindFirst(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, class := range a.bodyClasses {
			if a.HasClass(n, class) {
				return true
			}
		}
		return false
	})
	if body == nil {
		body = a.FindFirst(doc, element("main"))
	}
	if body == nil {
		return NewGenericAdapter().ExtractPage(doc, rawURL)
	}

	title := a.PageTitle(doc)
	published := a.PublishedDate(doc)
	if published == "" {
		published = a.visibleDate(doc)
	}
	return Page{
		Title:         title,
		Text:          withTitle(title, a.BlockText(body)),
		PublishedDate: published,
	}, nil
}

// visibleDate reads a date rendered in an element classed "date" or "release-date"
func (a *GovernmentAdapter) visibleDate(doc *html.Node) string {
	n := a.FindFirst(doc, func(n *html.Node) bool {
		return a.HasClass(n, "date") || a.HasClass(n, "release-date")
	})
	if n == nil {
		return ""
	}
	return formatDate(a.ExtractText(n))
}

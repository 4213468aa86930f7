package adapters

import (
	"golang.org/x/net/html"
)

// GenericAdapter is the fallback adapter for unknown sites
type GenericAdapter struct {
	BaseAdapter
}

// NewGenericAdapter creates a new generic adapter
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{}
}

// Name returns the adapter name
func (a *GenericAdapter) Name() string {
	return "generic"
}

// CanHandle always returns true (fallback adapter)
func (a *GenericAdapter) CanHandle(url string, contentType string) bool {
	return true
}

// ExtractPage renders the article, main or body element as text
func (a *GenericAdapter) ExtractPage(doc *html.Node, url string) (Page, error) {
	root := a.contentRoot(doc)
	title := a.PageTitle(doc)
	return Page{
		Title:         title,
		Text:          withTitle(title, a.BlockText(root)),
		PublishedDate: a.PublishedDate(doc),
	}, nil
}

func (a *GenericAdapter) contentRoot(doc *html.Node) *html.Node {
	for _, tag := range []string{"article", "main"} {
		if n := a.FindFirst(doc, element(tag)); n != nil {
			return n
		}
	}
	if n := a.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && a.GetAttribute(n, "role") == "main"
	}); n != nil {
		return n
	}
	if body := a.FindFirst(doc, element("body")); body != nil {
		return body
	}
	return doc
}

package adapters

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// NewswireAdapter extracts releases from wire distribution services
type NewswireAdapter struct {
	BaseAdapter
	hosts map[string]string // host suffix -> body container class or id
}

// NewNewswireAdapter creates a new newswire adapter
func NewNewswireAdapter() *NewswireAdapter {
	return &NewswireAdapter{
		hosts: map[string]string{
			"prnewswire.com":    "release-body",
			"businesswire.com":  "bw-release-story",
			"globenewswire.com": "main-body-container",
			"accesswire.com":    "article-body",
			"einpresswire.com":  "article_column",
		},
	}
}

// Name returns the adapter name
func (a *NewswireAdapter) Name() string {
	return "newswire"
}

// CanHandle checks if this is a wire service URL
func (a *NewswireAdapter) CanHandle(rawURL string, contentType string) bool {
	return a.container(rawURL) != ""
}

// ExtractPage renders the release body container, falling back to the generic layout
func (a *NewswireAdapter) ExtractPage(doc *html.Node, rawURL string) (Page, error) {
	marker := a.container(rawURL)
	body := a.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && (a.HasClass(n, marker) || a.GetAttribute(n, "id") == marker)
	})
	if body == nil {
		return NewGenericAdapter().ExtractPage(doc, rawURL)
	}

	title := a.PageTitle(doc)
	return Page{
		Title:         title,
		Text:          withTitle(title, a.BlockText(body)),
		PublishedDate: a.PublishedDate(doc),
	}, nil
}

func (a *NewswireAdapter) container(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	for suffix, marker := range a.hosts {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return marker
		}
	}
	return ""
}

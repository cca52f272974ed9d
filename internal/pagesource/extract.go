package pagesource

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// skippedElements are HTML elements whose text content is not rendered
// and must be excluded from the visible text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

// extractContent parses an HTML document and returns its visible text
// and the absolute URLs of all anchors. Relative hrefs are resolved
// against baseURL; hrefs that cannot be resolved are kept verbatim and
// left for the engine's per-check exclusion.
func extractContent(doc *html.Node, baseURL string) (string, []string) {
	base, baseErr := url.Parse(baseURL)

	var text strings.Builder
	links := make([]string, 0)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
			if n.Data == "a" {
				for _, attr := range n.Attr {
					if attr.Key != "href" || attr.Val == "" {
						continue
					}
					links = append(links, resolveHref(base, baseErr == nil, attr.Val))
					break
				}
			}
		case html.TextNode:
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				if text.Len() > 0 {
					text.WriteByte(' ')
				}
				text.WriteString(trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return text.String(), links
}

// resolveHref makes an href absolute against the page URL when
// possible.
func resolveHref(base *url.URL, haveBase bool, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() || !haveBase {
		return href
	}
	return base.ResolveReference(ref).String()
}

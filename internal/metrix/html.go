package metrix

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// getAttr returns the named attribute of an HTML node, or "".
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasClass reports whether the node's class attribute contains the given
// class name as a whole word.
func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(getAttr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

// findFirst returns the first element with the given tag name in document
// order, or nil.
func findFirst(n *html.Node, tag string) *html.Node {
	return findFirstFunc(n, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	})
}

// findFirstFunc returns the first node matching the predicate in document
// order, or nil.
func findFirstFunc(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstFunc(c, match); found != nil {
			return found
		}
	}
	return nil
}

// rawText concatenates all text node data under n without separators,
// matching what a browser's textContent returns.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// joinedText collects the text segments under n, trims each, drops the
// empty ones and joins the rest with sep. Used where the markup splits
// a logical string across nested elements.
func joinedText(n *html.Node, sep string) string {
	segments := make([]string, 0, 4)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				segments = append(segments, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(segments, sep)
}

// resolveURL resolves a relative href against the base URL.
//
// Design decision: We resolve URLs at parse time rather than storing them
// as-is because:
//  1. The selected round's URL is fetched and published verbatim later
//  2. Deduplication in the ledger keys on the absolute URL
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	// Skip pseudo-links
	if strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		href == "#" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return u.String()
	}

	return base.ResolveReference(u).String()
}

// isDigits reports whether s is non-empty and consists of ASCII digits only.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

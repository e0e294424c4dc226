package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// Tags that never carry article text.
var chromeTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"header":   true,
	"footer":   true,
	"nav":      true,
	"aside":    true,
	"form":     true,
}

// Class fragments commonly wrapping the article body, tried after the
// semantic tags.
var containerClasses = []string{
	"article", "post-content", "entry-content", "story",
	"main-content", "page-content", "content", "post",
}

// minContainerText is the minimum amount of text a candidate container
// must hold before it is trusted over the whole body.
const minContainerText = 200

// removeChrome unlinks script/style/navigation subtrees in place.
func removeChrome(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && chromeTags[c.Data] {
			n.RemoveChild(c)
			continue
		}
		removeChrome(c)
	}
}

// findArticleNode picks the most article-like subtree: a semantic
// article/main element or a known content class with enough text, the
// document body otherwise.
func findArticleNode(doc *html.Node) *html.Node {
	for _, tag := range []string{"article", "main"} {
		if n := findByTag(doc, tag); n != nil && textLength(n) > minContainerText {
			return n
		}
	}
	for _, class := range containerClasses {
		if n := findByClass(doc, class); n != nil && textLength(n) > minContainerText {
			return n
		}
	}
	if body := findByTag(doc, "body"); body != nil {
		return body
	}
	return doc
}

func findByTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "class" && strings.Contains(attr.Val, class) {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func textLength(n *html.Node) int {
	total := 0
	if n.Type == html.TextNode {
		total += len(strings.TrimSpace(n.Data))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLength(c)
	}
	return total
}

// Text flattens an HTML fragment into whitespace-collapsed plain text.
// Malformed input degrades to the input itself rather than failing.
func Text(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(b.String()), " ")
}

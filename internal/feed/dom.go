package feed

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/IshaanNene/FeedStalk/internal/types"
)

// Item is a ContentItem over a parsed HTML element node. It only ever
// reads; the node tree is never mutated through it.
type Item struct {
	node *html.Node
}

// NewItem wraps an element node.
func NewItem(node *html.Node) *Item {
	return &Item{node: node}
}

// Text returns the readable text of the subtree, fragments joined with
// single spaces. Script and style subtrees are skipped.
func (it *Item) Text() string {
	return strings.Join(it.Fragments(), " ")
}

// Attr returns the named attribute on the element itself.
func (it *Item) Attr(name string) (string, bool) {
	for _, a := range it.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Children returns the direct child elements.
func (it *Item) Children() []types.ContentItem {
	var out []types.ContentItem
	for c := it.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, NewItem(c))
		}
	}
	return out
}

// Fragments returns the non-empty leaf text fragments of the subtree,
// in document order.
func (it *Item) Fragments() []string {
	var frags []string
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				frags = append(frags, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(it.node)
	return frags
}

// Node exposes the underlying node for callers that need structural
// access beyond the ContentItem capability.
func (it *Item) Node() *html.Node {
	return it.node
}

// SelectItems parses a rendered document and returns the elements
// matched by the item selector as ContentItems. CSS selectors go
// through goquery, XPath through htmlquery.
func SelectItems(document, selector, selectorType string) ([]types.ContentItem, error) {
	switch selectorType {
	case "xpath":
		root, err := htmlquery.Parse(strings.NewReader(document))
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		nodes, err := htmlquery.QueryAll(root, selector)
		if err != nil {
			return nil, fmt.Errorf("invalid xpath %q: %w", selector, err)
		}
		items := make([]types.ContentItem, 0, len(nodes))
		for _, n := range nodes {
			items = append(items, NewItem(n))
		}
		return items, nil

	case "css", "":
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		var items []types.ContentItem
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			for _, n := range sel.Nodes {
				items = append(items, NewItem(n))
			}
		})
		return items, nil

	default:
		return nil, fmt.Errorf("unknown selector type %q", selectorType)
	}
}

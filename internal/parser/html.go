package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/checktree/internal/checktree"
	"golang.org/x/net/html"
)

// HTMLParser reads the first <ul> or <ol> in the body as a checklist. Each
// <li> is an item; its <label> (or its own text) is the label and the
// data-value (or value) of its checkbox is the value. Output of the HTML
// renderer reads back unchanged, checked boxes included.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{Title: titleFromFilename(filename)}

	// Extract title from <title> tag if present.
	if title := findTitle(root); title != "" {
		doc.Title = title
	}

	// Find <body> or use whole document.
	scope := findElement(root, "body")
	if scope == nil {
		scope = root
	}
	list := findList(scope)
	if list == nil {
		return doc, nil
	}

	doc.Items = htmlListItems(list, &doc.Checked)
	fillLabelValues(doc.Items)
	return doc, nil
}

func htmlListItems(list *html.Node, checked *[]string) []checktree.Item {
	var items []checktree.Item
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		parts := scanListItem(li)

		item := checktree.Item{Label: parts.label()}
		if parts.input != nil {
			item.Value = attr(parts.input, "data-value")
			if item.Value == "" {
				item.Value = attr(parts.input, "value")
			}
		}
		for _, sub := range parts.sublists {
			item.Items = append(item.Items, htmlListItems(sub, checked)...)
		}
		if item.Label == "" && len(item.Items) == 0 {
			continue
		}
		if parts.input != nil && len(item.Items) == 0 && hasAttr(parts.input, "checked") {
			v := item.Value
			if v == "" {
				v = item.Label
			}
			*checked = append(*checked, v)
		}
		items = append(items, item)
	}
	return items
}

// listItemParts is what belongs to an <li> itself, nested lists excluded.
type listItemParts struct {
	text      strings.Builder
	labelNode *html.Node
	input     *html.Node
	sublists  []*html.Node
}

func scanListItem(li *html.Node) *listItemParts {
	p := &listItemParts{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				p.text.WriteString(c.Data)
				p.text.WriteByte(' ')
				continue
			case html.ElementNode:
				switch c.Data {
				case "ul", "ol":
					p.sublists = append(p.sublists, c)
					continue
				case "script", "style":
					continue
				case "label":
					if p.labelNode == nil {
						p.labelNode = c
					}
				case "input":
					if p.input == nil && attr(c, "type") == "checkbox" {
						p.input = c
					}
				}
			}
			walk(c)
		}
	}
	walk(li)
	return p
}

// label prefers <label> text over the item's plain text.
func (p *listItemParts) label() string {
	if p.labelNode != nil {
		return textContent(p.labelNode)
	}
	return strings.Join(strings.Fields(p.text.String()), " ")
}

func findList(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if l := findList(c); l != nil {
			return l
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if t := findElement(n, "title"); t != nil {
		return textContent(t)
	}
	return ""
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/checktree/internal/checktree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLOptions controls the HTML rendering of a tree.
type HTMLOptions struct {
	ID            string // id of the root <ul>, also the prefix of element ids
	Collapse      bool   // Emit collapse/expand toggles on branches
	CollapseSpeed time.Duration
	Filterable    bool   // Emit a filter <input> above the list
	Query         string // Current filter query, prefilled in the filter input
}

const (
	toggleCollapseClass = "checktree-toggle checktree-toggle-collapse"
	toggleExpandClass   = "checktree-toggle checktree-toggle-expand"
)

// HTML writes the tree as nested <ul>/<li> elements.
func HTML(w io.Writer, roots []*checktree.Node, opts HTMLOptions) error {
	if opts.ID == "" {
		opts.ID = "list"
	}
	if opts.Filterable {
		if err := html.Render(w, filterInput(opts)); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	root := tier(roots, opts)
	root.Attr = append(root.Attr, html.Attribute{Key: "id", Val: opts.ID})
	if opts.Collapse && opts.CollapseSpeed > 0 {
		root.Attr = append(root.Attr, html.Attribute{
			Key: "data-collapse-speed",
			Val: strconv.FormatInt(opts.CollapseSpeed.Milliseconds(), 10),
		})
	}
	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// Page writes a complete HTML document holding the tree.
func Page(w io.Writer, title string, roots []*checktree.Node, opts HTMLOptions) error {
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>\n",
		html.EscapeString(title)); err != nil {
		return err
	}
	if err := HTML(w, roots, opts); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n</body></html>\n")
	return err
}

func filterInput(opts HTMLOptions) *html.Node {
	attrs := []html.Attribute{
		{Key: "type", Val: "text"},
		{Key: "class", Val: "checktree-filter"},
		{Key: "placeholder", Val: "Find a filter.."},
		{Key: "id", Val: opts.ID + "-filter-input"},
	}
	if opts.Query != "" {
		attrs = append(attrs, html.Attribute{Key: "value", Val: opts.Query})
	}
	return element(atom.Input, attrs...)
}

func tier(nodes []*checktree.Node, opts HTMLOptions) *html.Node {
	ul := element(atom.Ul)
	for _, n := range nodes {
		ul.AppendChild(listItem(n, opts))
	}
	return ul
}

func listItem(n *checktree.Node, opts HTMLOptions) *html.Node {
	li := element(atom.Li)
	if n.Hidden {
		li.Attr = append(li.Attr, html.Attribute{Key: "hidden"})
	}

	row := element(atom.Div, html.Attribute{Key: "class", Val: "checktree-row"})
	if opts.Collapse && !n.IsLeaf() {
		class := toggleCollapseClass
		if n.Collapsed {
			class = toggleExpandClass
		}
		row.AppendChild(element(atom.I, html.Attribute{Key: "class", Val: class}))
	}

	id := elementID(opts.ID, n)
	input := element(atom.Input,
		html.Attribute{Key: "type", Val: "checkbox"},
		html.Attribute{Key: "id", Val: id},
		html.Attribute{Key: "data-id", Val: n.ID},
		html.Attribute{Key: "data-path", Val: n.Path()},
		html.Attribute{Key: "data-value", Val: n.Value},
	)
	if n.IsLeaf() {
		input.Attr = append(input.Attr, html.Attribute{Key: "class", Val: "leaf"})
	}
	if n.Checked {
		input.Attr = append(input.Attr, html.Attribute{Key: "checked"})
	}
	if n.Indeterminate {
		input.Attr = append(input.Attr, html.Attribute{Key: "data-indeterminate", Val: "true"})
	}
	row.AppendChild(input)

	label := element(atom.Label, html.Attribute{Key: "for", Val: id})
	label.AppendChild(&html.Node{Type: html.TextNode, Data: n.Label})
	row.AppendChild(label)
	li.AppendChild(row)

	if !n.IsLeaf() {
		sub := tier(n.Children, opts)
		if n.Collapsed {
			sub.Attr = append(sub.Attr, html.Attribute{Key: "hidden"})
		}
		li.AppendChild(sub)
	}
	return li
}

// elementID makes a document-unique id from the node path. Slugs never
// contain dots.
func elementID(prefix string, n *checktree.Node) string {
	return prefix + "-" + strings.ReplaceAll(n.Path(), "/", ".")
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

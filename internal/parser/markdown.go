package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/checktree/internal/checktree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown checklists using goldmark. Headings
// become branches, list items become items under the current heading and
// nested lists nest. A code span in a list item is its value; "[x]" task
// markers preselect the item.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	root := md.Parser().Parse(text.NewReader(src))

	doc := &Document{Title: titleFromFilename(filename)}
	o := newOutline()
	var marks [][]int

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := inlineText(node, src)
			if title == "" {
				continue
			}
			o.add(node.Level, checktree.Item{Label: title})

		case *ast.List:
			items, listMarks := listItems(node, src)
			parent := o.current()
			base := len(parent.Items)
			parent.Items = append(parent.Items, items...)
			prefix := o.path()
			for _, m := range listMarks {
				m[0] += base
				marks = append(marks, append(append([]int{}, prefix...), m...))
			}
		}
	}

	doc.Items = o.items()
	doc.Checked = resolveMarks(doc.Items, marks)
	return doc, nil
}

// listItems converts a list and its nested lists. marks holds the index
// paths, relative to the returned items, of task items marked done.
func listItems(list *ast.List, src []byte) ([]checktree.Item, [][]int) {
	var items []checktree.Item
	var marks [][]int
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var item checktree.Item
		var done bool
		var childMarks [][]int
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.List:
				children, m := listItems(c, src)
				for _, path := range m {
					path[0] += len(item.Items)
				}
				item.Items = append(item.Items, children...)
				childMarks = append(childMarks, m...)
			case *ast.TextBlock, *ast.Paragraph:
				if item.Label == "" {
					item.Label, item.Value, done = listItemLabel(c, src)
				}
			}
		}
		if item.Label == "" && len(item.Items) == 0 {
			continue
		}
		index := len(items)
		if done {
			marks = append(marks, []int{index})
		}
		for _, m := range childMarks {
			marks = append(marks, append([]int{index}, m...))
		}
		items = append(items, item)
	}
	return items, marks
}

// listItemLabel splits a list item's first block into label, code-span
// value and task state.
func listItemLabel(n ast.Node, src []byte) (label, value string, done bool) {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *extast.TaskCheckBox:
			done = c.IsChecked
		case *ast.CodeSpan:
			if value == "" {
				value = strings.TrimSpace(inlineText(c, src))
				continue
			}
			writeInline(c, src, &b)
		default:
			writeInline(c, src, &b)
		}
	}
	label = strings.Join(strings.Fields(b.String()), " ")
	if label == "" {
		// A bare code span is both label and value.
		label = value
	}
	return label, value, done
}

// inlineText gets the text content of a goldmark node's inline children.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	writeInline(n, src, &b)
	return strings.TrimSpace(b.String())
}

func writeInline(n ast.Node, src []byte, b *strings.Builder) {
	switch t := n.(type) {
	case *ast.Text:
		b.Write(t.Value(src))
		if t.HardLineBreak() || t.SoftLineBreak() {
			b.WriteByte(' ')
		}
		return
	case *ast.String:
		b.Write(t.Value)
		return
	}
	// Recurse for nested inlines.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeInline(c, src, b)
	}
}

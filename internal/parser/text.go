package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/checktree/internal/checktree"
)

// TextParser handles indented plain text outlines. Each non-blank line is
// an item nested under the closest less-indented line above it. Leading
// bullets ("-", "*", "+") and "[ ]"/"[x]" markers are stripped, and
// "label = value" sets an explicit value.
type TextParser struct{}

const tabWidth = 4

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	o := newOutline()
	var marks [][]int

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := indentWidth(line)
		label, value, done := splitOutlineLine(strings.TrimSpace(line))
		if label == "" {
			continue
		}
		o.add(indent, checktree.Item{Label: label, Value: value})
		if done {
			marks = append(marks, o.path())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	doc := &Document{Title: titleFromFilename(filename)}
	doc.Items = o.items()
	doc.Checked = resolveMarks(doc.Items, marks)
	return doc, nil
}

func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += tabWidth
		default:
			return w
		}
	}
	return w
}

func splitOutlineLine(s string) (label, value string, done bool) {
	for _, bullet := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(s, bullet) {
			s = strings.TrimSpace(s[len(bullet):])
			break
		}
	}
	switch {
	case strings.HasPrefix(s, "[ ]"):
		s = strings.TrimSpace(s[3:])
	case strings.HasPrefix(s, "[x]"), strings.HasPrefix(s, "[X]"):
		s = strings.TrimSpace(s[3:])
		done = true
	}
	if i := strings.LastIndex(s, " = "); i >= 0 {
		value = strings.TrimSpace(s[i+3:])
		s = strings.TrimSpace(s[:i])
	}
	return s, value, done
}

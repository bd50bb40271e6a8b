package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/checktree/internal/checktree"
	"github.com/muesli/termenv"
)

// TextOptions controls terminal rendering.
type TextOptions struct {
	Profile    termenv.Profile // termenv.Ascii disables colors
	ShowHidden bool            // Print nodes hidden by a filter
	ShowPaths  bool            // Append each node's path
}

// Box returns the checkbox marker for a node: "[x]", "[-]" or "[ ]".
func Box(n *checktree.Node) string {
	switch {
	case n.Checked:
		return "[x]"
	case n.Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

// Text writes one line per node, indented two spaces per level. Children
// of collapsed branches are not printed.
func Text(w io.Writer, roots []*checktree.Node, opts TextOptions) error {
	p := opts.Profile
	green := p.Color("2")
	yellow := p.Color("3")

	bw := bufio.NewWriter(w)
	checktree.Walk(roots, func(n *checktree.Node) bool {
		if n.Hidden && !opts.ShowHidden {
			return false
		}
		var line strings.Builder
		line.WriteString(strings.Repeat("  ", n.Depth()))

		box := p.String(Box(n))
		switch {
		case n.Checked:
			box = box.Foreground(green)
		case n.Indeterminate:
			box = box.Foreground(yellow)
		}
		line.WriteString(box.String())
		line.WriteByte(' ')

		label := p.String(n.Label)
		if !n.IsLeaf() {
			label = label.Bold()
		}
		if n.Hidden {
			label = label.Faint()
		}
		line.WriteString(label.String())

		if n.IsLeaf() && n.Value != n.Label {
			line.WriteString(p.String(" (" + n.Value + ")").Faint().String())
		}
		if n.Collapsed {
			line.WriteString(" +")
		}
		if opts.ShowPaths {
			line.WriteString(p.String("  " + n.Path()).Faint().String())
		}
		line.WriteByte('\n')
		bw.WriteString(line.String())
		return !n.Collapsed
	})
	return bw.Flush()
}

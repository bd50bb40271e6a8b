package checktree

// Toggle applies a user check or uncheck of n and brings every affected
// ancestor and descendant back in line. n must belong to the tree being
// operated on; that is not verified.
//
// Roots only propagate down, leaves only up, interior nodes do both with
// the downward pass first so the upward pass sees the new leaf states.
func Toggle(n *Node, checked bool) {
	switch {
	case n.IsRoot():
		propagateDown(n, checked)
	case n.IsLeaf():
		n.Checked = checked
		n.Indeterminate = false
		propagateUp(n)
	default:
		propagateDown(n, checked)
		propagateUp(n)
	}
}

// propagateDown overrides n and its whole subtree with checked.
func propagateDown(n *Node, checked bool) {
	n.Checked = checked
	n.Indeterminate = false
	for _, c := range n.Children {
		propagateDown(c, checked)
	}
}

// propagateUp recomputes every ancestor of n from its leaves, stopping at
// the root.
func propagateUp(n *Node) {
	for a := n.parent; a != nil; a = a.parent {
		all, some := leafState(a)
		switch {
		case all:
			a.Checked, a.Indeterminate = true, false
		case some:
			// Clear checked first: a previously all-checked branch must not
			// stay checked once it turns mixed.
			a.Checked, a.Indeterminate = false, true
		default:
			a.Checked, a.Indeterminate = false, false
		}
	}
}

// leafState reports whether all, and whether any, leaves under n are
// checked.
func leafState(n *Node) (all, some bool) {
	total, checked := 0, 0
	Walk(n.Children, func(c *Node) bool {
		if c.IsLeaf() {
			total++
			if c.Checked {
				checked++
			}
		}
		return true
	})
	return total > 0 && checked == total, checked > 0
}

// Recompute derives every branch state from the current leaves. It is
// used after bulk leaf edits that bypass Toggle.
func Recompute(roots []*Node) {
	var visit func(n *Node) (total, checked int)
	visit = func(n *Node) (total, checked int) {
		if n.IsLeaf() {
			n.Indeterminate = false
			if n.Checked {
				return 1, 1
			}
			return 1, 0
		}
		for _, c := range n.Children {
			t, ch := visit(c)
			total += t
			checked += ch
		}
		n.Checked = checked == total
		n.Indeterminate = checked > 0 && checked < total
		return total, checked
	}
	for _, r := range roots {
		visit(r)
	}
}

package checktree

import "strings"

// Item is one entry of the nested input data a tree is built from.
type Item struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	Value string `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Items []Item `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
}

// Node is a checkable entry in a built tree.
type Node struct {
	ID       string  // slug(label) + "-" + sibling index
	Label    string  // Display text
	Value    string  // Reported by CollectChecked when the leaf is checked
	Children []*Node // Subtree in input order

	Checked       bool
	Indeterminate bool

	Hidden    bool // Set by Filter
	Collapsed bool // Presentation only

	parent *Node
}

// Parent returns the enclosing node, or nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Path returns the slash-joined IDs from the root down to n. IDs are only
// unique among siblings; paths are unique in the whole tree.
func (n *Node) Path() string {
	var ids []string
	for c := n; c != nil; c = c.parent {
		ids = append(ids, c.ID)
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return strings.Join(ids, "/")
}

// Depth is 0 for roots.
func (n *Node) Depth() int {
	d := 0
	for c := n.parent; c != nil; c = c.parent {
		d++
	}
	return d
}

// Walk visits roots and their descendants in pre-order. Returning false
// from fn skips the node's subtree.
func Walk(roots []*Node, fn func(*Node) bool) {
	for _, n := range roots {
		if fn(n) {
			Walk(n.Children, fn)
		}
	}
}

// Leaves returns the leaf descendants of n in pre-order. A leaf is its
// own single leaf.
func (n *Node) Leaves() []*Node {
	var out []*Node
	Walk([]*Node{n}, func(c *Node) bool {
		if c.IsLeaf() {
			out = append(out, c)
		}
		return true
	})
	return out
}

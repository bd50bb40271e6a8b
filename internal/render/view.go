package render

import "github.com/dgallion1/checktree/internal/checktree"

// NodeView is the JSON shape of a node.
type NodeView struct {
	ID            string     `json:"id"`
	Path          string     `json:"path"`
	Label         string     `json:"label"`
	Value         string     `json:"value,omitempty"`
	Leaf          bool       `json:"leaf"`
	Checked       bool       `json:"checked"`
	Indeterminate bool       `json:"indeterminate"`
	Hidden        bool       `json:"hidden,omitempty"`
	Collapsed     bool       `json:"collapsed,omitempty"`
	Children      []NodeView `json:"children,omitempty"`
}

// Views converts a tree to its JSON view model.
func Views(roots []*checktree.Node) []NodeView {
	out := make([]NodeView, 0, len(roots))
	for _, n := range roots {
		out = append(out, View(n))
	}
	return out
}

// View converts a single node and its subtree.
func View(n *checktree.Node) NodeView {
	v := NodeView{
		ID:            n.ID,
		Path:          n.Path(),
		Label:         n.Label,
		Value:         n.Value,
		Leaf:          n.IsLeaf(),
		Checked:       n.Checked,
		Indeterminate: n.Indeterminate,
		Hidden:        n.Hidden,
		Collapsed:     n.Collapsed,
	}
	if len(n.Children) > 0 {
		v.Children = Views(n.Children)
	}
	return v
}

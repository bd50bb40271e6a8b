package checktree

// CollectChecked returns the value of every checked leaf in pre-order.
func CollectChecked(roots []*Node) []string {
	values := []string{}
	Walk(roots, func(n *Node) bool {
		if n.IsLeaf() && n.Checked {
			values = append(values, n.Value)
		}
		return true
	})
	return values
}

// CheckValues sets every leaf whose value is in values to checked and every
// other leaf to unchecked, then rederives the branches. It returns the
// number of leaves checked.
func CheckValues(roots []*Node, values []string) int {
	want := make(map[string]bool, len(values))
	for _, v := range values {
		want[v] = true
	}
	n := 0
	Walk(roots, func(c *Node) bool {
		if c.IsLeaf() {
			c.Checked = want[c.Value]
			if c.Checked {
				n++
			}
		}
		return true
	})
	Recompute(roots)
	return n
}

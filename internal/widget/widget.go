package widget

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgallion1/checktree/internal/checktree"
)

var (
	ErrUnknownNode      = errors.New("unknown node")
	ErrCollapseDisabled = errors.New("collapse is not enabled")
	ErrNotBranch        = errors.New("node has no children")
)

// CollapseOptions controls the expand/collapse toggles on branches.
type CollapseOptions struct {
	Enabled bool
	Speed   time.Duration // Animation hint for renderers
}

// Options configures a Widget.
type Options struct {
	UseLabelAsValue bool
	Filterable      bool
	Collapse        CollapseOptions

	// FuzzyThreshold switches Filter to fuzzy matching when > 0.
	FuzzyThreshold float64

	// OnChange, if set, is called synchronously after each state change.
	OnChange func(Change)
}

// DefaultOptions returns the defaults: no filter bar, no collapse toggles.
func DefaultOptions() Options {
	return Options{
		Collapse: CollapseOptions{Speed: 250 * time.Millisecond},
	}
}

// ChangeKind identifies what a Change reports.
type ChangeKind string

const (
	ChangeLoad     ChangeKind = "load"
	ChangeToggle   ChangeKind = "toggle"
	ChangeSelect   ChangeKind = "select"
	ChangeFilter   ChangeKind = "filter"
	ChangeCollapse ChangeKind = "collapse"
	ChangeExpand   ChangeKind = "expand"
)

// Change describes a completed state change.
type Change struct {
	Kind    ChangeKind
	Node    *checktree.Node // Toggled/collapsed node; nil otherwise
	Checked bool            // New value for ChangeToggle
	Query   string          // ChangeFilter query
}

// Widget is one checkbox tree instance. It is not safe for concurrent use.
type Widget struct {
	opts  Options
	roots []*checktree.Node
	index map[string]*checktree.Node
	query string
}

// New creates an empty widget.
func New(opts Options) *Widget {
	if opts.Collapse.Speed <= 0 {
		opts.Collapse.Speed = 250 * time.Millisecond
	}
	return &Widget{opts: opts, index: map[string]*checktree.Node{}}
}

// Options returns the options the widget was created with.
func (w *Widget) Options() Options { return w.opts }

// Load replaces the tree using the widget's UseLabelAsValue option.
func (w *Widget) Load(items []checktree.Item) error {
	return w.Build(items, w.opts.UseLabelAsValue)
}

// Build replaces the tree with one built from items. The current tree is
// kept if items are invalid.
func (w *Widget) Build(items []checktree.Item, useLabelAsValue bool) error {
	roots, err := checktree.Build(items, useLabelAsValue)
	if err != nil {
		return fmt.Errorf("build tree: %w", err)
	}
	index := make(map[string]*checktree.Node)
	checktree.Walk(roots, func(n *checktree.Node) bool {
		index[n.Path()] = n
		return true
	})
	w.roots = roots
	w.index = index
	w.query = ""
	w.notify(Change{Kind: ChangeLoad})
	return nil
}

// Roots returns the root-level nodes.
func (w *Widget) Roots() []*checktree.Node { return w.roots }

// Node looks a node up by path.
func (w *Widget) Node(path string) (*checktree.Node, bool) {
	n, ok := w.index[path]
	return n, ok
}

// Len returns the number of nodes in the tree.
func (w *Widget) Len() int { return len(w.index) }

// Walk visits every node in pre-order.
func (w *Widget) Walk(fn func(*checktree.Node) bool) {
	checktree.Walk(w.roots, fn)
}

// Toggle sets the node at path to checked and propagates.
func (w *Widget) Toggle(path string, checked bool) error {
	n, ok := w.index[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, path)
	}
	w.ToggleNode(n, checked)
	return nil
}

// ToggleNode sets n to checked and propagates. n must come from this
// widget's current tree.
func (w *Widget) ToggleNode(n *checktree.Node, checked bool) {
	checktree.Toggle(n, checked)
	w.notify(Change{Kind: ChangeToggle, Node: n, Checked: checked})
}

// Select checks exactly the leaves whose values are listed and returns how
// many were checked.
func (w *Widget) Select(values []string) int {
	n := checktree.CheckValues(w.roots, values)
	w.notify(Change{Kind: ChangeSelect})
	return n
}

// Collect returns the values of all checked leaves.
func (w *Widget) Collect() []string {
	return checktree.CollectChecked(w.roots)
}

// Filter hides nodes not matching query and returns the visible count.
func (w *Widget) Filter(query string) int {
	var m checktree.Matcher
	if w.opts.FuzzyThreshold > 0 {
		m = checktree.FuzzyMatcher(query, w.opts.FuzzyThreshold)
	} else {
		m = checktree.NewMatcher(query)
	}
	visible := checktree.Filter(w.roots, m)
	w.query = query
	w.notify(Change{Kind: ChangeFilter, Query: query})
	return visible
}

// Query returns the last filter query.
func (w *Widget) Query() string { return w.query }

// Collapse hides the children of the branch at path.
func (w *Widget) Collapse(path string) error {
	return w.setCollapsed(path, true)
}

// Expand shows the children of the branch at path.
func (w *Widget) Expand(path string) error {
	return w.setCollapsed(path, false)
}

func (w *Widget) setCollapsed(path string, collapsed bool) error {
	if !w.opts.Collapse.Enabled {
		return ErrCollapseDisabled
	}
	n, ok := w.index[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, path)
	}
	if n.IsLeaf() {
		return fmt.Errorf("%w: %s", ErrNotBranch, path)
	}
	n.Collapsed = collapsed
	kind := ChangeExpand
	if collapsed {
		kind = ChangeCollapse
	}
	w.notify(Change{Kind: kind, Node: n})
	return nil
}

func (w *Widget) notify(c Change) {
	if w.opts.OnChange != nil {
		w.opts.OnChange(c)
	}
}

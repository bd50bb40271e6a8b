package checktree

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ValidationError reports a malformed input item.
type ValidationError struct {
	Path   string // Position of the item, e.g. items[0].items[2]
	Label  string // Label of the item, if it had one
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("invalid item %s (%q): %s", e.Path, e.Label, e.Reason)
	}
	return fmt.Sprintf("invalid item %s: %s", e.Path, e.Reason)
}

// Build converts nested items into a fresh tree. Every item needs a label;
// leaves also need a value unless useLabelAsValue is set. On error no tree
// is returned.
func Build(items []Item, useLabelAsValue bool) ([]*Node, error) {
	return buildTier(items, nil, "items", useLabelAsValue)
}

func buildTier(items []Item, parent *Node, at string, useLabelAsValue bool) ([]*Node, error) {
	if len(items) == 0 {
		return nil, nil
	}
	nodes := make([]*Node, 0, len(items))
	for i, item := range items {
		pos := at + "[" + strconv.Itoa(i) + "]"

		label := strings.TrimSpace(item.Label)
		if label == "" {
			return nil, &ValidationError{Path: pos, Reason: "missing label"}
		}

		value := item.Value
		if useLabelAsValue {
			value = item.Label
		} else if len(item.Items) == 0 && value == "" {
			return nil, &ValidationError{Path: pos, Label: item.Label, Reason: "missing value"}
		}

		n := &Node{
			ID:     Slugify(item.Label) + "-" + strconv.Itoa(i),
			Label:  item.Label,
			Value:  value,
			parent: parent,
		}

		children, err := buildTier(item.Items, n, pos+".items", useLabelAsValue)
		if err != nil {
			return nil, err
		}
		n.Children = children
		nodes = append(nodes, n)
	}
	return nodes, nil
}

var (
	slugSpaceRe   = regexp.MustCompile(`[\s\p{Z}]+`)
	slugNonWordRe = regexp.MustCompile(`[^\w-]+`)
	slugDashesRe  = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases text, turns whitespace into hyphens and drops every
// character outside [A-Za-z0-9_-].
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugNonWordRe.ReplaceAllString(s, "")
	s = slugDashesRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

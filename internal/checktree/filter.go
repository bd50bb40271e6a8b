package checktree

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/cases"
)

// Matcher decides whether a label matches a filter query.
type Matcher func(label string) bool

// NewMatcher returns a case-insensitive pattern matcher for query. The
// query is treated as a regular expression; if it does not compile it is
// matched as a plain substring instead. An empty query matches everything.
func NewMatcher(query string) Matcher {
	if query == "" {
		return func(string) bool { return true }
	}
	if re, err := regexp.Compile("(?i)" + query); err == nil {
		return re.MatchString
	}
	return substringMatcher(query)
}

// FuzzyMatcher matches labels containing query, or with at least one word
// whose Jaro-Winkler similarity to query reaches threshold.
func FuzzyMatcher(query string, threshold float64) Matcher {
	if query == "" {
		return func(string) bool { return true }
	}
	contains := substringMatcher(query)
	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false
	return func(label string) bool {
		if contains(label) {
			return true
		}
		for _, word := range strings.Fields(label) {
			if strutil.Similarity(query, word, jw) >= threshold {
				return true
			}
		}
		return false
	}
}

func substringMatcher(query string) Matcher {
	fold := cases.Fold()
	q := fold.String(query)
	return func(label string) bool {
		return strings.Contains(fold.String(label), q)
	}
}

// Filter hides every node whose label, and every descendant's label, fails
// match. Ancestors of a match stay visible. It returns the number of
// visible nodes. Checked state is not touched.
func Filter(roots []*Node, match Matcher) int {
	visible := 0
	var visit func(n *Node) bool
	visit = func(n *Node) bool {
		show := match(n.Label)
		for _, c := range n.Children {
			if visit(c) {
				show = true
			}
		}
		n.Hidden = !show
		if show {
			visible++
		}
		return show
	}
	for _, r := range roots {
		visit(r)
	}
	return visible
}

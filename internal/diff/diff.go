// Package diff compares two directive lists and renders the change as a
// unified diff, one directive per line.
package diff

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged directives shown around a change.
const DefaultContext = 3

// Options controls patch generation.
type Options struct {
	// FromName and ToName label the two sides in the --- and +++ headers.
	FromName string
	ToName   string
	// Context is the number of context lines; 0 means DefaultContext.
	Context int
}

// Directives returns a unified diff turning a into b, or "" when they match.
func Directives(a, b []string, opt Options) (string, error) {
	if Equal(a, b) {
		return "", nil
	}
	ctx := opt.Context
	if ctx <= 0 {
		ctx = DefaultContext
	}
	from := opt.FromName
	if from == "" {
		from = "previous"
	}
	to := opt.ToName
	if to == "" {
		to = "current"
	}

	u := difflib.UnifiedDiff{
		A:        lines(a),
		B:        lines(b),
		FromFile: from,
		ToFile:   to,
		Context:  ctx,
	}
	return difflib.GetUnifiedDiffString(u)
}

// Equal reports whether both lists hold the same directives in the same order.
func Equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Summary counts the directives only present on one side.
type Summary struct {
	Added   []string
	Removed []string
}

// Summarize lists added and removed directives, ignoring reordering.
func Summarize(a, b []string) Summary {
	seen := make(map[string]int, len(a))
	for _, d := range a {
		seen[d]++
	}
	var s Summary
	for _, d := range b {
		if seen[d] > 0 {
			seen[d]--
			continue
		}
		s.Added = append(s.Added, d)
	}
	for _, d := range a {
		if seen[d] > 0 {
			seen[d]--
			s.Removed = append(s.Removed, d)
		}
	}
	return s
}

func lines(ds []string) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = strings.TrimRight(d, "\n") + "\n"
	}
	return out
}

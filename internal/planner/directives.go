package planner

import "strings"

// Directives is the ordered argument list handed to the packaging tool.
type Directives []string

// Flag returns the logical flag of a directive: "--name=x" yields "--name",
// a positional argument yields itself.
func Flag(d string) string {
	if !strings.HasPrefix(d, "--") {
		return d
	}
	if i := strings.IndexByte(d, '='); i >= 0 {
		return d[:i]
	}
	return d
}

// Has reports whether any directive carries the given logical flag.
func (ds Directives) Has(flag string) bool {
	return ds.Index(flag) >= 0
}

// Index returns the position of the first directive with the given flag, or -1.
func (ds Directives) Index(flag string) int {
	for i, d := range ds {
		if Flag(d) == flag {
			return i
		}
	}
	return -1
}

// Value returns the value of the first "--flag=value" directive.
func (ds Directives) Value(flag string) (string, bool) {
	for _, d := range ds {
		if Flag(d) == flag {
			v, ok := strings.CutPrefix(d, flag+"=")
			return v, ok
		}
	}
	return "", false
}

// EntryPoint returns the trailing positional argument.
func (ds Directives) EntryPoint() string {
	if len(ds) == 0 {
		return ""
	}
	return ds[len(ds)-1]
}

// Strings returns a copy of the directives as a plain slice.
func (ds Directives) Strings() []string {
	out := make([]string, len(ds))
	copy(out, ds)
	return out
}

// String joins the directives the way a shell would display them.
func (ds Directives) String() string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		if strings.ContainsAny(d, " \t\"'") {
			d = "'" + strings.ReplaceAll(d, "'", `'\''`) + "'"
		}
		parts[i] = d
	}
	return strings.Join(parts, " ")
}

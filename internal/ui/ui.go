package ui

// ANSI prefixes for the per-package log lines. Everything else renders
// through the lipgloss styles.
const (
	Reset     = "\033[0m"
	FgCyan    = "\033[36m"
	FgGreen   = "\033[32m"
	FgMagenta = "\033[35m"
	FgYellow  = "\033[33m"
)

// Color wraps s in code and a trailing reset.
func Color(s string, code string) string {
	return code + s + Reset
}

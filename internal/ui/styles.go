package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
)

// Palette.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSecondary = lipgloss.Color("#06B6D4")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorError     = lipgloss.Color("#EF4444")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorHighlight = lipgloss.Color("#f048ff")
	ColorText      = lipgloss.Color("#F9FAFB")
	ColorTextDim   = lipgloss.Color("#9CA3AF")
)

// style is a lipgloss style the report and progress views render through.
type style struct {
	s lipgloss.Style
}

// Render applies the style to str.
func (st style) Render(str string) string { return st.s.Render(str) }

func fg(c color.Color) style { return style{lipgloss.NewStyle().Foreground(c)} }

func panel(border color.Color) style {
	return style{lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)}
}

// Inline text.
var (
	Bold      = style{lipgloss.NewStyle().Bold(true)}
	Dim       = fg(ColorTextDim)
	Muted     = fg(ColorMuted)
	Success   = fg(ColorSuccess)
	Warning   = fg(ColorWarning)
	Error     = fg(ColorError)
	Primary   = fg(ColorPrimary)
	Secondary = fg(ColorSecondary)
	Highlight = style{lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)}
	Title     = style{lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)}
	Section   = style{lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)}
)

// Panels. Box frames the directive list, HighlightBox the analysis summary
// and ErrorBox a failed run.
var (
	Box          = panel(ColorMuted)
	HighlightBox = panel(ColorPrimary)
	ErrorBox     = panel(ColorError)
)

// Task line colours, indexed by state in the progress and workflow views.
var (
	StepPending  = Muted
	StepRunning  = Secondary
	StepComplete = Success
	StepFailed   = Error
	StepSkipped  = Warning
)

// GetCheckMark returns a green check mark.
func GetCheckMark() string { return Success.Render("✓") }

// GetCrossMark returns a red cross.
func GetCrossMark() string { return Error.Render("✗") }

// FormatKeyValue renders "key: value" with a dimmed key.
func FormatKeyValue(key, value string) string {
	return Dim.Render(key+": ") + value
}

// FormatBool renders a boolean as a coloured yes/no.
func FormatBool(v bool) string {
	if v {
		return Success.Render("yes")
	}
	return Muted.Render("no")
}

// FormatStatus prefixes message with the icon for status
// ("success", "error", "warning" or "info"); anything else gets a bullet.
func FormatStatus(status, message string) string {
	icon := Muted.Render("•")
	switch status {
	case "success":
		icon = GetCheckMark()
	case "error":
		icon = GetCrossMark()
	case "warning":
		icon = Warning.Render("⚠")
	case "info":
		icon = Secondary.Render("ℹ")
	}
	return icon + " " + message
}

// FangColorScheme maps the palette onto fang's help and error output.
func FangColorScheme(c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           ColorText,
		Title:          ColorPrimary,
		Description:    ColorTextDim,
		Codeblock:      c(lipgloss.Color("#1F2937"), lipgloss.Color("#2F2E36")),
		Program:        ColorSecondary,
		DimmedArgument: ColorMuted,
		Comment:        ColorMuted,
		Flag:           ColorSuccess,
		FlagDefault:    ColorTextDim,
		Command:        ColorHighlight,
		QuotedString:   ColorSecondary,
		Argument:       ColorText,
		Help:           ColorTextDim,
		Dash:           ColorMuted,
		ErrorHeader:    [2]color.Color{ColorText, ColorError},
		ErrorDetails:   ColorError,
	}
}

// BannerASCII is the banner shown above the root help text.
const BannerASCII = `
 _     _             _  ____
| |__ | |_ _ __ ___ | ||___ \ _____  _____
| '_ \| __| '_ ` + "`" + ` _ \| |  __) / _ \ \/ / _ \
| | | | |_| | | | | | | / __/  __/>  <  __/
|_| |_|\__|_| |_| |_|_||_____\___/_/\_\___|
`

// RenderBanner renders the banner in the secondary colour.
func RenderBanner(banner string) string {
	return Secondary.Render(banner)
}

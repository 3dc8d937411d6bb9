package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// RecommendationView mirrors analyzer.Recommendation
// to avoid circular imports (analyzer logs through this package).
type RecommendationView struct {
	Profile        string
	SingleFile     bool
	ShowConsole    bool
	DebugMode      bool
	Compress       bool
	StripDebugInfo bool
	OfflineMode    bool
}

// AnalysisView mirrors analyzer.Report.
type AnalysisView struct {
	SourceKind     string
	SourceLocation string
	Exists         bool
	FileCount      int
	TotalSize      int64
	HTMLFiles      []string
	DevArtifacts   []string
	ExternalRefs   []string
	Recommendation RecommendationView
}

func (r RecommendationView) pairs() [][2]string {
	return [][2]string{
		{"optimizationProfile", r.Profile},
		{"singleFile", fmt.Sprint(r.SingleFile)},
		{"showConsole", fmt.Sprint(r.ShowConsole)},
		{"debugMode", fmt.Sprint(r.DebugMode)},
		{"compress", fmt.Sprint(r.Compress)},
		{"stripDebugInfo", fmt.Sprint(r.StripDebugInfo)},
		{"offlineMode", fmt.Sprint(r.OfflineMode)},
	}
}

// ReportUI prints analysis and plan results.
type ReportUI struct {
	writer io.Writer
	quiet  bool
}

// NewReportUI creates a new report renderer.
func NewReportUI(w io.Writer, quiet bool) *ReportUI {
	return &ReportUI{writer: w, quiet: quiet}
}

// PrintPlainAnalysis writes one key=value line per field, for scripts.
// It ignores quiet.
func (r *ReportUI) PrintPlainAnalysis(v AnalysisView) {
	fmt.Fprintf(r.writer, "source.kind=%s\n", v.SourceKind)
	fmt.Fprintf(r.writer, "source.location=%s\n", v.SourceLocation)
	if v.SourceKind == "folder" {
		fmt.Fprintf(r.writer, "stats.exists=%t\n", v.Exists)
		fmt.Fprintf(r.writer, "stats.fileCount=%d\n", v.FileCount)
		fmt.Fprintf(r.writer, "stats.totalSize=%d\n", v.TotalSize)
	}
	for _, kv := range v.Recommendation.pairs() {
		fmt.Fprintf(r.writer, "%s=%s\n", kv[0], kv[1])
	}
}

// PrintAnalysis renders the analysis in a box.
func (r *ReportUI) PrintAnalysis(v AnalysisView) {
	if r.quiet {
		return
	}

	var sb strings.Builder
	sb.WriteString(Title.Render("Source Analysis"))
	sb.WriteString("\n\n")
	sb.WriteString(FormatKeyValue("Source", Highlight.Render(v.SourceLocation)+" "+Dim.Render("("+v.SourceKind+")")))

	if v.SourceKind == "folder" {
		sb.WriteString("\n")
		if !v.Exists {
			sb.WriteString(FormatStatus("warning", "folder missing or unreadable, defaults used"))
		} else {
			sb.WriteString(FormatKeyValue("Files", fmt.Sprintf("%d", v.FileCount)))
			sb.WriteString("\n")
			sb.WriteString(FormatKeyValue("Size", HumanBytes(v.TotalSize)))
			if len(v.HTMLFiles) > 0 {
				sb.WriteString("\n")
				sb.WriteString(FormatKeyValue("HTML", strings.Join(v.HTMLFiles, ", ")))
			}
			if len(v.DevArtifacts) > 0 {
				sb.WriteString("\n")
				sb.WriteString(FormatStatus("info", "development artifacts: "+strings.Join(v.DevArtifacts, ", ")))
			}
			if len(v.ExternalRefs) > 0 {
				sb.WriteString("\n")
				sb.WriteString(FormatStatus("info", "external references in: "+strings.Join(v.ExternalRefs, ", ")))
			}
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(renderRecommendation(v.Recommendation))

	fmt.Fprintln(r.writer, HighlightBox.Render(sb.String()))
}

func renderRecommendation(rec RecommendationView) string {
	var sb strings.Builder
	sb.WriteString(Section.Render("Recommendation"))
	sb.WriteString("\n")
	sb.WriteString(FormatKeyValue("Profile", Primary.Render(rec.Profile)))
	rows := []struct {
		name string
		v    bool
	}{
		{"Single file", rec.SingleFile},
		{"Console", rec.ShowConsole},
		{"Debug", rec.DebugMode},
		{"Compress", rec.Compress},
		{"Strip symbols", rec.StripDebugInfo},
		{"Offline", rec.OfflineMode},
	}
	for _, row := range rows {
		sb.WriteString("\n")
		sb.WriteString(FormatKeyValue(row.name, FormatBool(row.v)))
	}
	return sb.String()
}

// PrintDirectives lists the packager arguments, one per line.
// In plain mode only the raw arguments are written.
func (r *ReportUI) PrintDirectives(directives []string, plain bool) {
	if plain {
		for _, d := range directives {
			fmt.Fprintln(r.writer, d)
		}
		return
	}
	if r.quiet {
		return
	}

	var sb strings.Builder
	sb.WriteString(Title.Render("Build Directives"))
	sb.WriteString("\n")
	for i, d := range directives {
		sb.WriteString("\n")
		sb.WriteString(Muted.Render(fmt.Sprintf("%2d ", i+1)))
		flag, value, hasValue := strings.Cut(d, "=")
		if strings.HasPrefix(d, "--") {
			sb.WriteString(Success.Render(flag))
			if hasValue {
				sb.WriteString(Dim.Render("=") + value)
			}
		} else {
			sb.WriteString(Highlight.Render(d))
		}
	}
	fmt.Fprintln(r.writer, Box.Render(sb.String()))
}

// PrintDiff shows a unified diff with +/- lines coloured.
func (r *ReportUI) PrintDiff(patch string) {
	if r.quiet {
		return
	}
	if patch == "" {
		fmt.Fprintln(r.writer, FormatStatus("success", "directives unchanged"))
		return
	}
	for _, line := range strings.Split(strings.TrimRight(patch, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprintln(r.writer, Bold.Render(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprintln(r.writer, Secondary.Render(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(r.writer, Success.Render(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(r.writer, Error.Render(line))
		default:
			fmt.Fprintln(r.writer, Dim.Render(line))
		}
	}
}

// PrintWritten reports an output file.
func (r *ReportUI) PrintWritten(kind, path string) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.writer, FormatStatus("success", kind+" written to "+Secondary.Render(path)))
}

// HumanBytes formats n using binary units.
func HumanBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

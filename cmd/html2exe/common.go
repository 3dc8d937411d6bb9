package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/html2exe/html2exe-cli/internal/analyzer"
	"github.com/html2exe/html2exe-cli/internal/doctor"
	"github.com/html2exe/html2exe-cli/internal/planio"
	"github.com/html2exe/html2exe-cli/internal/planner"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

// binding ties a viper key to a command flag.
type binding struct {
	key  string
	flag string
}

// bindFlags binds flags at run time. Several commands share keys such as
// build.source, and viper keeps only the last flag bound to a key.
func bindFlags(cmd *cobra.Command, bs ...binding) error {
	for _, b := range bs {
		f := cmd.Flags().Lookup(b.flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q for %s", b.flag, cmd.Name())
		}
		if err := viper.BindPFlag(b.key, f); err != nil {
			return err
		}
	}
	return nil
}

// sourceFlags registers the flags that select and describe the source.
func sourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("source", "s", "", "HTML folder or http(s) URL to package")
	cmd.Flags().String("kind", "", "Force the source kind: folder|url (detected when empty)")
}

var sourceBindings = []binding{
	{"build.source", "source"},
	{"build.kind", "kind"},
}

// resolveLogLevel reads <cmd>.log-level and validates it.
func resolveLogLevel(key string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString(key)))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	default:
		return "", fmt.Errorf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
}

// wireLoggers routes internal package logs to w in debug mode and disables
// them otherwise.
func wireLoggers(level string, w io.Writer) {
	if level != "debug" {
		w = nil
	}
	analyzer.SetLogger(w)
	planner.SetLogger(w)
	planio.SetLogger(w)
	doctor.SetLogger(w)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func recommendationView(r analyzer.Recommendation) ui.RecommendationView {
	return ui.RecommendationView{
		Profile:        string(r.Profile),
		SingleFile:     r.SingleFile,
		ShowConsole:    r.ShowConsole,
		DebugMode:      r.DebugMode,
		Compress:       r.Compress,
		StripDebugInfo: r.StripDebugInfo,
		OfflineMode:    r.OfflineMode,
	}
}

func analysisView(rep analyzer.Report) ui.AnalysisView {
	return ui.AnalysisView{
		SourceKind:     string(rep.Source.Kind()),
		SourceLocation: rep.Source.Location(),
		Exists:         rep.Stats.Exists,
		FileCount:      rep.Stats.FileCount,
		TotalSize:      rep.Stats.TotalSize,
		HTMLFiles:      rep.Stats.HTMLFiles,
		DevArtifacts:   rep.Stats.DevArtifacts,
		ExternalRefs:   rep.Stats.ExternalRefs,
		Recommendation: recommendationView(rep.Recommendation),
	}
}

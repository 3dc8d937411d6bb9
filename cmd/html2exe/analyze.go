package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/html2exe/html2exe-cli/internal/analyzer"
	"github.com/html2exe/html2exe-cli/internal/config"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Recommend packaging options for a source",
	Long:  "Inspects an HTML folder (file count, total size, development artifacts, external script references) or a URL and prints the recommended packaging options.",
	Example: `  html2exe analyze --source ./site
  html2exe analyze -s https://example.com --plain`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, append(sourceBindings,
			binding{"analyze.plain", "plain"},
			binding{"analyze.log-level", "log-level"},
		)...)
	},
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("analyze.log-level")
	if err != nil {
		return err
	}
	wireLoggers(level, cmd.ErrOrStderr())

	cfg := config.FromViper(viper.GetViper())
	d, err := cfg.Source()
	if err != nil {
		return err
	}

	rep := analyzer.New(nil).Inspect(d)

	out := ui.NewReportUI(cmd.OutOrStdout(), level == "quiet")
	if viper.GetBool("analyze.plain") {
		out.PrintPlainAnalysis(analysisView(rep))
		return nil
	}
	out.PrintAnalysis(analysisView(rep))
	return nil
}

func init() {
	sourceFlags(analyzeCmd)
	analyzeCmd.Flags().Bool("plain", false, "Print key=value lines without styling")
	analyzeCmd.Flags().String("log-level", "", "Log level: quiet|standard|debug")
}

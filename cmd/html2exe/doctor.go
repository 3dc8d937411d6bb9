package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/html2exe/html2exe-cli/internal/doctor"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the packaging toolchain is installed",
	Long:  "Looks up the packaging tool, a Python interpreter and the optional UPX compressor on PATH and reports their versions.",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, binding{"doctor.log-level", "log-level"})
	},
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("doctor.log-level")
	if err != nil {
		return err
	}
	wireLoggers(level, cmd.ErrOrStderr())

	tools := doctor.DefaultTools
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = strings.Join(t.Names, " / ")
	}

	var tracker *ui.ProgressTracker
	if level != "quiet" {
		out := cmd.OutOrStdout()
		tracker = ui.NewProgressTracker(out, "Toolchain", names, isTerminal(out))
		tracker.Start()
	}

	rep := doctor.New().Run(cmd.Context(), tools, func(i int, r doctor.Result) {
		if tracker == nil {
			return
		}
		switch {
		case r.Found():
			msg := r.Path
			if r.Version != "" {
				msg = fmt.Sprintf("%s (%s)", r.Version, r.Path)
			}
			tracker.UpdateStep(i, ui.StatusComplete, msg)
		case r.Tool.Required:
			tracker.UpdateStep(i, ui.StatusFailed, "not found")
		default:
			tracker.UpdateStep(i, ui.StatusSkipped, "not found (optional)")
		}
	})

	err = rep.Err()
	if tracker != nil {
		tracker.Complete(err)
	}
	return err
}

func init() {
	doctorCmd.Flags().String("log-level", "", "Log level: quiet|standard|debug")
}

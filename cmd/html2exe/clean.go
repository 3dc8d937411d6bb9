package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/html2exe/html2exe-cli/internal/apperr"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build and dist directories",
	Long:  "Deletes <output>/build and <output>/dist left behind by previous builds.",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd,
			binding{"build.output", "output"},
			binding{"clean.yes", "yes"},
		)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := viper.GetString("build.output")
		if out == "" {
			return apperr.User("no output directory (use --output or build.output)")
		}

		if !viper.GetBool("clean.yes") {
			confirm := false
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Remove build artifacts?").
						Description(fmt.Sprintf("This deletes %s and %s.", filepath.Join(out, "build"), filepath.Join(out, "dist"))).
						Value(&confirm).
						Affirmative("Yes").
						Negative("No"),
				),
			)
			if err := form.Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return apperr.ErrCancelled
				}
				return err
			}
			if !confirm {
				return apperr.ErrCancelled
			}
		}

		removed, err := cleanOutput(afero.NewOsFs(), out)
		w := cmd.OutOrStdout()
		for _, p := range removed {
			fmt.Fprintln(w, ui.FormatStatus("success", "removed "+ui.Secondary.Render(p)))
		}
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			fmt.Fprintln(w, ui.FormatStatus("info", "nothing to clean"))
		}
		return nil
	},
}

// cleanOutput removes the build and dist directories under out and returns
// the ones that existed.
func cleanOutput(fs afero.Fs, out string) ([]string, error) {
	var removed []string
	for _, dir := range []string{filepath.Join(out, "build"), filepath.Join(out, "dist")} {
		ok, err := afero.Exists(fs, dir)
		if err != nil {
			return removed, err
		}
		if !ok {
			continue
		}
		if err := fs.RemoveAll(dir); err != nil {
			return removed, fmt.Errorf("remove %s: %w", dir, err)
		}
		removed = append(removed, dir)
	}
	return removed, nil
}

func init() {
	cleanCmd.Flags().StringP("output", "o", "", "Output directory (default dist)")
	cleanCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

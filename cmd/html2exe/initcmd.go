package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/html2exe/html2exe-cli/internal/apperr"
	"github.com/html2exe/html2exe-cli/internal/config"
	"github.com/html2exe/html2exe-cli/internal/source"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a project config file",
	Long:  "Asks for the application name, source, output directory and window settings and writes them to a YAML config that later commands pick up with --config.",
	Example: `  html2exe init
  html2exe init --yes --path html2exe.yaml`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd,
			binding{"init.path", "path"},
			binding{"init.yes", "yes"},
			binding{"init.force", "force"},
		)
	},
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := viper.GetString("init.path")
	if path == "" {
		path = "html2exe.yaml"
	}
	if _, err := os.Stat(path); err == nil && !viper.GetBool("init.force") {
		return apperr.Userf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.FromViper(viper.GetViper())
	if !viper.GetBool("init.yes") {
		if err := runInitForm(&cfg); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return apperr.ErrCancelled
			}
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus("success", "config written to "+ui.Secondary.Render(path)))
	return nil
}

// runInitForm edits cfg in place through an interactive form.
func runInitForm(cfg *config.AppConfig) error {
	width := strconv.Itoa(cfg.Window.Width)
	height := strconv.Itoa(cfg.Window.Height)

	intIn := func(lo, hi int) func(string) error {
		return func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("enter a number")
			}
			if n < lo || n > hi {
				return fmt.Errorf("must be between %d and %d", lo, hi)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("html2exe project").
				Description("Describe the application to package.\nValues can be changed later in the config file."),
			huh.NewInput().
				Title("Application name").
				Value(&cfg.Metadata.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("this field is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Version").
				Placeholder("1.0.0").
				Value(&cfg.Metadata.Version),
			huh.NewInput().
				Title("Company").
				Value(&cfg.Metadata.Company),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Source").
				Description("HTML folder or http(s) URL").
				Value(&cfg.Build.SourcePath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("this field is required")
					}
					_, err := source.Detect(s)
					return err
				}),
			huh.NewInput().
				Title("Output directory").
				Value(&cfg.Build.OutputDir),
			huh.NewInput().
				Title("Icon").
				Description("Optional .ico file").
				Value(&cfg.Build.IconPath),
			huh.NewConfirm().
				Title("Show console window?").
				Value(&cfg.Build.Console).
				Affirmative("Yes").
				Negative("No"),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Window width").
				Value(&width).
				Validate(intIn(config.MinWidth, config.MaxWidth)),
			huh.NewInput().
				Title("Window height").
				Value(&height).
				Validate(intIn(config.MinHeight, config.MaxHeight)),
			huh.NewConfirm().
				Title("Resizable?").
				Value(&cfg.Window.Resizable),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Window.Width, _ = strconv.Atoi(strings.TrimSpace(width))
	cfg.Window.Height, _ = strconv.Atoi(strings.TrimSpace(height))
	return nil
}

func init() {
	initCmd.Flags().String("path", "", "Config file to write (default html2exe.yaml)")
	initCmd.Flags().BoolP("yes", "y", false, "Write defaults without prompting")
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/html2exe/html2exe-cli/internal/config"
	"github.com/html2exe/html2exe-cli/internal/sbom"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "html2exe",
	Short: "Plan desktop executable builds for HTML applications",
	Long:  longDescription,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initBanner(cmd)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		initBanner(cmd)
		return cmd.Help()
	},
}

var cfgFile string
var version string

// SetVersion sets the version for the CLI and the SBOM tool entry.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
	if v != "" && v != "dev" {
		sbom.Version = v
	}
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.html2exe.yaml or ./config/defaults.yaml)")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(analyzeCmd, planCmd, doctorCmd, initCmd, cleanCmd)
}

func initConfig() {
	// .env values land in the process environment before viper reads it.
	if err := config.LoadEnvFiles(".env"); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatStatus("warning", "ignoring .env: "+err.Error()))
	}

	config.SetDefaults(viper.GetViper())

	// HTML2EXE_BUILD_SOURCE overrides build.source, and so on.
	viper.SetEnvPrefix("HTML2EXE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	notFound := &viper.ConfigFileNotFoundError{}

	var err error
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		err = viper.ReadInConfig()
	} else {
		home, herr := os.UserHomeDir()
		cobra.CheckErr(herr)

		viper.SetConfigType("yaml")
		viper.AddConfigPath(home)
		viper.AddConfigPath("./config")

		viper.SetConfigName(".html2exe")
		err = viper.ReadInConfig()
		if err != nil && errors.As(err, notFound) {
			viper.SetConfigName("defaults")
			err = viper.ReadInConfig()
		}
	}

	switch {
	case err != nil && errors.As(err, notFound):
		// The config file is optional.
	case err != nil:
		cobra.CheckErr(err)
	default:
		configMsg := ui.Dim.Render("Using config file: ") + ui.Secondary.Render(viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, configMsg)
	}
}

const longDescription = "Inspects a web application (a local folder or a remote URL), recommends packaging options and produces the ordered option list for building a desktop executable."

func initBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderBanner(ui.BannerASCII) + "\n" + longDescription
}

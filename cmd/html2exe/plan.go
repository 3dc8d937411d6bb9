package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/html2exe/html2exe-cli/internal/analyzer"
	"github.com/html2exe/html2exe-cli/internal/apperr"
	"github.com/html2exe/html2exe-cli/internal/config"
	"github.com/html2exe/html2exe-cli/internal/diff"
	"github.com/html2exe/html2exe-cli/internal/planio"
	"github.com/html2exe/html2exe-cli/internal/planner"
	"github.com/html2exe/html2exe-cli/internal/sbom"
	"github.com/html2exe/html2exe-cli/internal/source"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Produce the ordered build directives for a source",
	Long:  "Analyzes the source, applies any overrides, prepares the output tree and prints the packaging tool options in the order they must be passed. Optionally writes a plan report and a CycloneDX SBOM of the bundle, or compares against an earlier report.",
	Example: `  html2exe plan -s ./site -n MyApp -o out
  html2exe plan -s ./site --profile portable --single-file --offline
  html2exe plan -s ./site --write out/build_plan.yaml --sbom out/sbom.json
  html2exe plan -s ./site --against out/build_plan.yaml`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, append(sourceBindings,
			binding{"metadata.name", "name"},
			binding{"metadata.version", "app-version"},
			binding{"build.output", "output"},
			binding{"build.icon", "icon"},
			binding{"build.console", "console"},
			binding{"build.debug", "debug"},
			binding{"build.offline", "offline"},
			binding{"plan.profile", "profile"},
			binding{"plan.single-file", "single-file"},
			binding{"plan.compress", "compress"},
			binding{"plan.strip", "strip"},
			binding{"plan.entry", "entry"},
			binding{"plan.goos", "goos"},
			binding{"plan.write", "write"},
			binding{"plan.format", "format"},
			binding{"plan.sbom", "sbom"},
			binding{"plan.spec", "spec"},
			binding{"plan.against", "against"},
			binding{"plan.plain", "plain"},
			binding{"plan.log-level", "log-level"},
		)...)
	},
	RunE: runPlan,
}

// optBool returns a pointer to the value of key when it was set anywhere.
func optBool(key string) *bool {
	if !viper.IsSet(key) {
		return nil
	}
	v := viper.GetBool(key)
	return &v
}

func planOverrides() (analyzer.Overrides, error) {
	o := analyzer.Overrides{
		SingleFile:     optBool("plan.single-file"),
		Compress:       optBool("plan.compress"),
		StripDebugInfo: optBool("plan.strip"),
		DebugMode:      optBool("build.debug"),
		OfflineMode:    optBool("build.offline"),
	}
	if s := viper.GetString("plan.profile"); s != "" {
		p, err := analyzer.ParseProfile(s)
		if err != nil {
			return o, apperr.User(err.Error())
		}
		o.Profile = &p
	}
	return o, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("plan.log-level")
	if err != nil {
		return err
	}
	stderr := cmd.ErrOrStderr()
	wireLoggers(level, stderr)

	plain := viper.GetBool("plan.plain")
	quiet := level == "quiet"

	cfg := config.FromViper(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return err
	}
	d, err := cfg.Source()
	if err != nil {
		return err
	}
	overrides, err := planOverrides()
	if err != nil {
		return err
	}

	var wf *ui.Workflow
	step := func(name string) int { return -1 }
	if !quiet && !plain {
		wf = ui.NewWorkflow(stderr, isTerminal(stderr))
		step = wf.AddTask
	}
	analyzeIdx := step("Analyze source")
	planIdx := step("Plan directives")
	reportIdx := step("Write plan report")
	sbomIdx := step("Write SBOM")
	diffIdx := step("Compare with previous plan")
	if wf != nil {
		wf.Start()
	}
	fail := func(idx int, err error) error {
		if wf != nil {
			wf.FailTask(idx, err.Error())
			wf.Stop()
		}
		return err
	}
	skip := func(idx int, reason string) {
		if wf != nil {
			wf.SkipTask(idx, reason)
		}
	}

	fs := afero.NewOsFs()

	if wf != nil {
		wf.StartTask(analyzeIdx, ui.Dim.Render(d.Location()))
	}
	rep := analyzer.New(fs).Inspect(d)
	rec, err := rep.Recommendation.Apply(overrides)
	if err != nil {
		return fail(analyzeIdx, err)
	}
	if wf != nil {
		wf.CompleteTask(analyzeIdx, string(rec.Profile))
		wf.StartTask(planIdx, "")
	}

	var opts []planner.Option
	if s := viper.GetString("plan.goos"); s != "" {
		goos, err := planner.ParseGOOS(s)
		if err != nil {
			return fail(planIdx, err)
		}
		opts = append(opts, planner.WithGOOS(goos))
	}
	req := planner.Request{
		Name:        cfg.Metadata.Name,
		OutputDir:   cfg.Build.OutputDir,
		Source:      d,
		IconPath:    cfg.Build.IconPath,
		ShowConsole: optBool("build.console"),
		EntryPoint:  viper.GetString("plan.entry"),
	}
	ds, err := planner.New(fs, opts...).Plan(req, rec)
	if err != nil {
		return fail(planIdx, err)
	}
	if wf != nil {
		wf.CompleteTask(planIdx, fmt.Sprintf("%d directive(s)", len(ds)))
	}

	var written [][2]string

	if path := viper.GetString("plan.write"); path != "" {
		r := planio.NewReport(toolName(), cfg.Metadata.Name, rep, rec, planner.LayoutFor(cfg.Build.OutputDir), ds)
		if err := planio.WriteReport(r, path, viper.GetString("plan.format")); err != nil {
			return fail(reportIdx, err)
		}
		if wf != nil {
			wf.CompleteTask(reportIdx, r.ID)
		}
		written = append(written, [2]string{"Plan report", path})
	} else {
		skip(reportIdx, "no --write")
	}

	if path := viper.GetString("plan.sbom"); path != "" {
		bom := sbom.Build(sbomInput(fs, cfg, rep, rec, ds))
		if err := planio.WriteSBOM(bom, path, "auto", viper.GetString("plan.spec")); err != nil {
			return fail(sbomIdx, err)
		}
		if wf != nil {
			n := 0
			if bom.Components != nil {
				n = len(*bom.Components)
			}
			wf.CompleteTask(sbomIdx, fmt.Sprintf("%d component(s)", n))
		}
		written = append(written, [2]string{"SBOM", path})
	} else {
		skip(sbomIdx, "no --sbom")
	}

	var patch string
	against := viper.GetString("plan.against")
	if against != "" {
		prev, err := planio.ReadReport(against, "auto")
		if err != nil {
			return fail(diffIdx, err)
		}
		patch, err = diff.Directives(prev.Directives, ds.Strings(), diff.Options{FromName: against, ToName: "current"})
		if err != nil {
			return fail(diffIdx, err)
		}
		if wf != nil {
			s := diff.Summarize(prev.Directives, ds.Strings())
			wf.CompleteTask(diffIdx, fmt.Sprintf("+%d -%d", len(s.Added), len(s.Removed)))
		}
	} else {
		skip(diffIdx, "no --against")
	}

	if wf != nil {
		wf.Stop()
	}

	out := ui.NewReportUI(cmd.OutOrStdout(), quiet)
	if against != "" {
		if plain {
			fmt.Fprint(cmd.OutOrStdout(), patch)
		} else {
			out.PrintDiff(patch)
		}
		return nil
	}

	out.PrintDirectives(ds.Strings(), plain)
	if !plain {
		for _, w := range written {
			out.PrintWritten(w[0], w[1])
		}
	}
	return nil
}

func toolName() string {
	return sbom.DefaultToolName + " " + sbom.ToolVersion()
}

func sbomInput(fs afero.Fs, cfg config.AppConfig, rep analyzer.Report, rec analyzer.Recommendation, ds planner.Directives) sbom.Input {
	in := sbom.Input{
		App: sbom.Application{
			Name:           cfg.Metadata.Name,
			Version:        cfg.Metadata.Version,
			Company:        cfg.Metadata.Company,
			Description:    cfg.Metadata.Description,
			Copyright:      cfg.Metadata.Copyright,
			SourceKind:     string(rep.Source.Kind()),
			SourceLocation: rep.Source.Location(),
		},
		Recommendation: rec,
		HiddenImports:  planner.HiddenImports,
		Directives:     ds.Strings(),
	}
	if rep.Source.Kind() == source.Folder && rep.Stats.Exists {
		root, err := filepath.Abs(rep.Source.Location())
		if err != nil {
			root = rep.Source.Location()
		}
		in.Assets = sbom.CollectAssets(fs, root, rep.Stats.Files)
	}
	return in
}

func init() {
	sourceFlags(planCmd)
	f := planCmd.Flags()
	f.StringP("name", "n", "", "Application name (default MyHTMLApp)")
	f.String("app-version", "", "Application version recorded in the SBOM")
	f.StringP("output", "o", "", "Output directory (default dist)")
	f.String("icon", "", "Icon file; ignored when it does not exist")
	f.Bool("console", false, "Show a console window")
	f.Bool("debug", false, "Enable debug mode")
	f.Bool("offline", false, "Bundle for offline use")
	f.String("profile", "", "Optimization profile: balanced|size|production|portable")
	f.Bool("single-file", false, "Build a single executable instead of a directory")
	f.Bool("compress", false, "Compress the executable with UPX")
	f.Bool("strip", false, "Strip debug symbols")
	f.String("entry", "", "Launcher script (default <output>/build/main.py)")
	f.String("goos", "", "Target OS for path separators (default: host OS)")
	f.String("write", "", "Write a plan report to this path (.yaml or .json)")
	f.String("format", "", "Plan report format: yaml|json|auto")
	f.String("sbom", "", "Write a CycloneDX SBOM of the bundle to this path (.json or .xml)")
	f.String("spec", "", "CycloneDX spec version for the SBOM (e.g., 1.4, 1.5, 1.6)")
	f.String("against", "", "Compare with the directives of an earlier plan report")
	f.Bool("plain", false, "Print raw directives without styling")
	f.String("log-level", "", "Log level: quiet|standard|debug")
}

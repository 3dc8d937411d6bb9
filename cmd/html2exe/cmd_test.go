package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/html2exe/html2exe-cli/internal/apperr"
	"github.com/html2exe/html2exe-cli/internal/planio"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveLogLevel(t *testing.T) {
	t.Cleanup(viper.Reset)

	tcs := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "standard", false},
		{" DEBUG ", "debug", false},
		{"quiet", "quiet", false},
		{"loud", "", true},
	}
	for _, tc := range tcs {
		viper.Set("x.log-level", tc.in)
		got, err := resolveLogLevel("x.log-level")
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("resolveLogLevel(%q) = (%q, %v)", tc.in, got, err)
		}
	}
}

func TestOptBool(t *testing.T) {
	t.Cleanup(viper.Reset)

	if optBool("plan.compress") != nil {
		t.Fatalf("unset key should give nil")
	}
	viper.Set("plan.compress", false)
	if p := optBool("plan.compress"); p == nil || *p {
		t.Fatalf("expected pointer to false, got %v", p)
	}
}

func TestPlanOverrides_InvalidProfile(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("plan.profile", "tiny")
	_, err := planOverrides()
	if !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %v", err)
	}

	viper.Set("plan.profile", "Portable")
	viper.Set("plan.single-file", true)
	o, err := planOverrides()
	if err != nil {
		t.Fatalf("planOverrides: %v", err)
	}
	if o.Profile == nil || *o.Profile != "portable" || o.SingleFile == nil || !*o.SingleFile {
		t.Fatalf("unexpected overrides: %+v", o)
	}
}

func TestBindFlags_UnknownFlag(t *testing.T) {
	c := &cobra.Command{Use: "x"}
	if err := bindFlags(c, binding{"x.y", "missing"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestCleanOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("out/build/work", 0o755)
	_ = afero.WriteFile(fs, "out/build/work/x", []byte("x"), 0o644)
	_ = afero.WriteFile(fs, "out/keep.txt", []byte("k"), 0o644)

	removed, err := cleanOutput(fs, "out")
	if err != nil {
		t.Fatalf("cleanOutput: %v", err)
	}
	if len(removed) != 1 || removed[0] != filepath.Join("out", "build") {
		t.Fatalf("unexpected removed: %v", removed)
	}
	if ok, _ := afero.Exists(fs, "out/keep.txt"); !ok {
		t.Fatalf("unrelated files must survive")
	}

	removed, err = cleanOutput(fs, "out")
	if err != nil || len(removed) != 0 {
		t.Fatalf("second clean should be a no-op, got %v, %v", removed, err)
	}
}

func TestCleanOutput_ReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	_ = base.MkdirAll("out/dist", 0o755)
	_, err := cleanOutput(afero.NewReadOnlyFs(base), "out")
	if err == nil {
		t.Fatalf("expected error on read-only fs")
	}
}

func TestAnalyzeCommand_PlainURL(t *testing.T) {
	t.Cleanup(viper.Reset)

	out, err := executeRoot(t, "analyze", "--source", "https://example.com/app", "--plain")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"source.kind=url\n", "singleFile=true\n", "optimizationProfile=balanced\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlanCommand_PlainWithReportAndSBOM(t *testing.T) {
	t.Cleanup(viper.Reset)

	site := t.TempDir()
	if err := os.WriteFile(filepath.Join(site, "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	outDir := filepath.Join(t.TempDir(), "out")
	reportPath := filepath.Join(outDir, "build_plan.yaml")
	sbomPath := filepath.Join(outDir, "sbom.json")

	out, err := executeRoot(t, "plan",
		"--source", site,
		"--name", "Demo",
		"--output", outDir,
		"--goos", "linux",
		"--plain",
		"--write", reportPath,
		"--sbom", sbomPath,
	)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "--noconfirm" || lines[2] != "--name=Demo" {
		t.Fatalf("unexpected head of directives:\n%s", out)
	}
	if last := lines[len(lines)-1]; last != filepath.Join(outDir, "build", "main.py") {
		t.Fatalf("entry point must be last, got %q", last)
	}
	if !strings.Contains(out, "--add-data="+filepath.Join(outDir, "build", "html_assets")+":html_assets\n") {
		t.Fatalf("expected folder assets directive:\n%s", out)
	}

	if _, err := os.Stat(filepath.Join(outDir, "dist")); err != nil {
		t.Fatalf("expected dist dir to be prepared: %v", err)
	}
	rep, err := planio.ReadReport(reportPath, "auto")
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if rep.Application != "Demo" || len(rep.Directives) != len(lines) {
		t.Fatalf("unexpected report: %+v", rep)
	}
	bom, err := planio.ReadSBOM(sbomPath, "auto")
	if err != nil {
		t.Fatalf("ReadSBOM: %v", err)
	}
	if bom.Metadata == nil || bom.Metadata.Component == nil || bom.Metadata.Component.Name != "Demo" {
		t.Fatalf("unexpected sbom metadata: %+v", bom.Metadata)
	}
}

func TestPlanCommand_RejectsUnknownGOOS(t *testing.T) {
	t.Cleanup(viper.Reset)

	site := t.TempDir()
	if err := os.WriteFile(filepath.Join(site, "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	outDir := filepath.Join(t.TempDir(), "out")

	_, err := executeRoot(t, "plan",
		"--source", site,
		"--name", "Demo",
		"--output", outDir,
		"--goos", "beos",
		"--plain",
		"--write", "",
		"--sbom", "",
	)
	if err == nil {
		t.Fatal("expected error for unknown --goos")
	}
	if !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %v", err)
	}
	if !strings.Contains(err.Error(), "beos") {
		t.Fatalf("error should name the rejected value: %v", err)
	}
}

// Package planner turns a recommendation and the user's build settings into
// the ordered option list for the packaging tool.
package planner

import (
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/html2exe/html2exe-cli/internal/analyzer"
	"github.com/html2exe/html2exe-cli/internal/apperr"
	"github.com/html2exe/html2exe-cli/internal/source"
)

// AssetsName is the logical directory the folder source is bundled under.
const AssetsName = "html_assets"

// HiddenImports are the runtime modules the packaged launcher needs but the
// packaging tool cannot discover on its own.
var HiddenImports = []string{
	"flask", "webview", "threading", "json", "os", "sys", "time",
	"urllib.parse", "base64", "hashlib", "datetime", "tempfile",
}

// Request is the explicit configuration supplied by the caller.
type Request struct {
	Name      string
	OutputDir string
	Source    source.Descriptor

	// IconPath is used only when it resolves to an existing file.
	IconPath string

	// ShowConsole overrides the recommendation when non-nil.
	ShowConsole *bool

	// EntryPoint defaults to <OutputDir>/build/main.py.
	EntryPoint string
}

// Layout is the output tree the planner prepares.
type Layout struct {
	OutputDir string `json:"outputDir" yaml:"outputDir"`
	DistDir   string `json:"distDir" yaml:"distDir"`
	WorkDir   string `json:"workDir" yaml:"workDir"`
	AssetsDir string `json:"assetsDir" yaml:"assetsDir"`
}

// LayoutFor returns the output tree rooted at outputDir.
func LayoutFor(outputDir string) Layout {
	return Layout{
		OutputDir: outputDir,
		DistDir:   filepath.Join(outputDir, "dist"),
		WorkDir:   filepath.Join(outputDir, "build", "work"),
		AssetsDir: filepath.Join(outputDir, "build", AssetsName),
	}
}

// Planner builds directive lists. It keeps no state between calls.
type Planner struct {
	fs   afero.Fs
	goos string
}

// Option configures a Planner.
type Option func(*Planner)

// KnownGOOS lists the operating systems accepted by ParseGOOS.
var KnownGOOS = []string{
	"aix", "android", "darwin", "dragonfly", "freebsd", "illumos", "ios",
	"js", "linux", "netbsd", "openbsd", "plan9", "solaris", "wasip1", "windows",
}

// ParseGOOS normalises s to a lower-case GOOS name and rejects unknown ones.
func ParseGOOS(s string) (string, error) {
	goos := strings.ToLower(strings.TrimSpace(s))
	if slices.Contains(KnownGOOS, goos) {
		return goos, nil
	}
	return "", apperr.Userf("unknown target OS %q (expected one of %s)", s, strings.Join(KnownGOOS, "|"))
}

// WithGOOS selects the operating system the packaging tool runs on.
// It defaults to runtime.GOOS.
func WithGOOS(goos string) Option {
	return func(p *Planner) {
		p.goos = strings.ToLower(strings.TrimSpace(goos))
	}
}

// New returns a Planner writing through fs. A nil fs means the OS filesystem.
func New(fs afero.Fs, opts ...Option) *Planner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	p := &Planner{fs: fs, goos: runtime.GOOS}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DataSeparator returns the source/destination separator --add-data expects
// on goos.
func DataSeparator(goos string) string {
	if strings.EqualFold(strings.TrimSpace(goos), "windows") {
		return ";"
	}
	return ":"
}

// Plan prepares the output tree and returns the directives for req and rec.
func (p *Planner) Plan(req Request, rec analyzer.Recommendation) (Directives, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: application name is empty", apperr.ErrInvalidConfiguration)
	}
	if strings.TrimSpace(req.OutputDir) == "" {
		return nil, fmt.Errorf("%w: output directory is empty", apperr.ErrInvalidConfiguration)
	}
	switch req.Source.Kind() {
	case source.Folder, source.URL:
	default:
		return nil, apperr.Contractf("request has no valid source")
	}

	layout := LayoutFor(req.OutputDir)
	if err := p.prepare(layout); err != nil {
		return nil, err
	}

	console := rec.ShowConsole
	if req.ShowConsole != nil {
		console = *req.ShowConsole
	}

	ds := Directives{
		"--noconfirm",
		"--clean",
		"--name=" + name,
		"--distpath=" + layout.DistDir,
		"--workpath=" + layout.WorkDir,
	}
	if rec.SingleFile {
		ds = append(ds, "--onefile")
	} else {
		ds = append(ds, "--onedir")
	}
	if !console {
		ds = append(ds, "--windowed")
	}
	if rec.Compress {
		ds = append(ds, "--upx-dir=upx")
	}
	if rec.StripDebugInfo {
		ds = append(ds, "--strip")
	}
	if req.Source.IsFolder() {
		ds = append(ds, "--add-data="+layout.AssetsDir+DataSeparator(p.goos)+AssetsName)
	}
	for _, imp := range HiddenImports {
		ds = append(ds, "--hidden-import="+imp)
	}
	if icon := strings.TrimSpace(req.IconPath); icon != "" {
		if _, err := p.fs.Stat(icon); err == nil {
			ds = append(ds, "--icon="+icon)
		} else {
			logf(req.Source.Location(), "icon %s not usable: %v", icon, err)
		}
	}

	entry := req.EntryPoint
	if entry == "" {
		entry = filepath.Join(req.OutputDir, "build", "main.py")
	}
	ds = append(ds, entry)

	logf(req.Source.Location(), "%d directives for %s", len(ds), name)
	return ds, nil
}

// prepare creates the output tree; existing directories are left as they are.
func (p *Planner) prepare(l Layout) error {
	for _, dir := range []string{l.OutputDir, l.DistDir, l.WorkDir} {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return apperr.Config("mkdir", dir, err)
		}
	}
	return nil
}

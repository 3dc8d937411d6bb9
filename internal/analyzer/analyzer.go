// Package analyzer inspects a content source and recommends packaging settings.
//
// The policy is applied as a fixed sequence of checks over the top level of a
// folder; later checks may overwrite what earlier ones decided. I/O problems
// never reach the caller: a failing step contributes no signal and the
// recommendation accumulated so far is returned.
package analyzer

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/html2exe/html2exe-cli/internal/source"
)

const (
	// LargeSourceBytes is the aggregate top-level size above which a folder
	// is packaged as a directory instead of a single file.
	LargeSourceBytes int64 = 50 * 1024 * 1024

	// ProbeBytes bounds how much of each script is read for external references.
	ProbeBytes = 1000
)

var devArtifactExtensions = []string{".map", ".ts", ".scss", ".less"}

// Stats is the signal gathered from a folder's top level.
type Stats struct {
	FileCount    int      `json:"fileCount" yaml:"fileCount"`
	TotalSize    int64    `json:"totalSize" yaml:"totalSize"`
	Files        []string `json:"files,omitempty" yaml:"files,omitempty"`
	DevArtifacts []string `json:"devArtifacts,omitempty" yaml:"devArtifacts,omitempty"`
	HTMLFiles    []string `json:"htmlFiles,omitempty" yaml:"htmlFiles,omitempty"`
	ExternalRefs []string `json:"externalRefs,omitempty" yaml:"externalRefs,omitempty"`
	// Exists is false when the folder was missing or could not be listed.
	Exists bool `json:"exists" yaml:"exists"`
}

// Report couples a recommendation with the evidence it was derived from.
type Report struct {
	Source         source.Descriptor `json:"-" yaml:"-"`
	Recommendation Recommendation    `json:"recommendation" yaml:"recommendation"`
	Stats          Stats             `json:"stats" yaml:"stats"`
}

// Analyzer applies the recommendation policy. It holds no mutable state and
// may be shared between goroutines.
type Analyzer struct {
	fs afero.Fs
}

// New returns an Analyzer reading through fs. A nil fs means the OS filesystem.
func New(fs afero.Fs) *Analyzer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Analyzer{fs: fs}
}

// Analyze returns the recommendation for d.
func (a *Analyzer) Analyze(d source.Descriptor) Recommendation {
	return a.Inspect(d).Recommendation
}

// Inspect runs the policy and returns the recommendation with its evidence.
func (a *Analyzer) Inspect(d source.Descriptor) Report {
	rep := Report{Source: d, Recommendation: Defaults()}
	rec := &rep.Recommendation

	switch d.Kind() {
	case source.URL:
		rec.SingleFile = true
		rec.OfflineMode = true
		rec.Profile = Portable
		logf(d.Location(), "url source, portable profile")
		return rep
	case source.Folder:
	default:
		return rep
	}

	root := d.Location()
	entries, err := afero.ReadDir(a.fs, root)
	if err != nil {
		if os.IsNotExist(err) {
			logf(root, "folder missing, using defaults")
		} else {
			logf(root, "cannot list folder: %v", err)
		}
		return rep
	}
	rep.Stats.Exists = true

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
		info := e
		if e.Mode()&os.ModeSymlink != 0 {
			// Links count as the file they point to.
			target, err := a.fs.Stat(filepath.Join(root, e.Name()))
			if err != nil {
				logf(filepath.Join(root, e.Name()), "skip dangling link: %v", err)
				continue
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			continue
		}
		rep.Stats.FileCount++
		rep.Stats.TotalSize += info.Size()
		rep.Stats.Files = append(rep.Stats.Files, e.Name())
	}

	if rep.Stats.TotalSize > LargeSourceBytes {
		rec.SingleFile = false
		rec.Profile = Size
		logf(root, "top-level size %d bytes over threshold, directory mode", rep.Stats.TotalSize)
	}

	for _, name := range names {
		if hasDevArtifactExt(name) {
			rep.Stats.DevArtifacts = append(rep.Stats.DevArtifacts, name)
		}
	}
	if len(rep.Stats.DevArtifacts) > 0 {
		// Overrides the size profile when both apply.
		rec.StripDebugInfo = true
		rec.Profile = Production
		logf(root, "development artifacts found: %s", strings.Join(rep.Stats.DevArtifacts, ", "))
	}

	for _, name := range names {
		if strings.HasSuffix(name, ".html") {
			rep.Stats.HTMLFiles = append(rep.Stats.HTMLFiles, name)
		}
	}
	if len(rep.Stats.HTMLFiles) > 0 {
		for _, name := range names {
			if !strings.HasSuffix(name, ".js") {
				continue
			}
			if a.referencesExternal(filepath.Join(root, name)) {
				rep.Stats.ExternalRefs = append(rep.Stats.ExternalRefs, name)
			}
		}
		if len(rep.Stats.ExternalRefs) > 0 {
			rec.OfflineMode = true
			logf(root, "external references in %s", strings.Join(rep.Stats.ExternalRefs, ", "))
		}
	}

	return rep
}

func hasDevArtifactExt(name string) bool {
	for _, ext := range devArtifactExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// referencesExternal looks for "http" in the first ProbeBytes of path.
// Unreadable files count as no reference.
func (a *Analyzer) referencesExternal(path string) bool {
	f, err := a.fs.Open(path)
	if err != nil {
		logf(path, "skip unreadable file: %v", err)
		return false
	}
	defer f.Close()

	buf := make([]byte, ProbeBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		logf(path, "skip unreadable file: %v", err)
		return false
	}
	return bytes.Contains(buf[:n], []byte("http"))
}

// Package doctor checks that the external tools a build needs are installed.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Tool is one external program, resolved by the first name found on PATH.
type Tool struct {
	Label    string
	Names    []string
	Required bool
	// VersionArgs, when set, are passed to the program to read its version.
	VersionArgs []string
}

// DefaultTools lists what a packaged build depends on.
var DefaultTools = []Tool{
	{Label: "packager", Names: []string{"pyinstaller"}, Required: true, VersionArgs: []string{"--version"}},
	{Label: "python", Names: []string{"python3", "python"}, Required: true, VersionArgs: []string{"--version"}},
	{Label: "compressor", Names: []string{"upx"}, Required: false, VersionArgs: []string{"--version"}},
}

// Result is the outcome of checking one Tool.
type Result struct {
	Tool    Tool
	Path    string
	Version string
	Err     error
}

// Found reports whether the tool resolved to an executable.
func (r Result) Found() bool { return r.Err == nil && r.Path != "" }

// ErrMissingRequired is returned by Report.Err when a required tool is absent.
var ErrMissingRequired = errors.New("required tool missing")

// Report aggregates all results in check order.
type Report struct {
	Results []Result
}

// Err returns nil when every required tool was found.
func (r Report) Err() error {
	var missing []string
	for _, res := range r.Results {
		if res.Tool.Required && !res.Found() {
			missing = append(missing, strings.Join(res.Tool.Names, "/"))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
}

// Checker resolves tools. Zero value uses exec.LookPath and runs version probes.
type Checker struct {
	LookPath func(string) (string, error)
	// Version returns the first output line of path args; nil disables probing.
	Version func(ctx context.Context, path string, args ...string) (string, error)
	Timeout time.Duration
}

// New returns a Checker backed by the real PATH.
func New() *Checker {
	return &Checker{LookPath: exec.LookPath, Version: runVersion, Timeout: 5 * time.Second}
}

// Check resolves a single tool.
func (c *Checker) Check(ctx context.Context, t Tool) Result {
	look := c.LookPath
	if look == nil {
		look = exec.LookPath
	}
	res := Result{Tool: t}
	var lastErr error
	for _, name := range t.Names {
		p, err := look(name)
		if err != nil {
			lastErr = err
			continue
		}
		res.Path = p
		break
	}
	if res.Path == "" {
		if lastErr == nil {
			lastErr = exec.ErrNotFound
		}
		res.Err = fmt.Errorf("%s not found on PATH: %w", strings.Join(t.Names, "/"), lastErr)
		logf(t.Label, "missing: %v", res.Err)
		return res
	}

	if c.Version != nil && len(t.VersionArgs) > 0 {
		vctx := ctx
		if c.Timeout > 0 {
			var cancel context.CancelFunc
			vctx, cancel = context.WithTimeout(ctx, c.Timeout)
			defer cancel()
		}
		v, err := c.Version(vctx, res.Path, t.VersionArgs...)
		if err != nil {
			logf(t.Label, "version probe failed: %v", err)
		} else {
			res.Version = v
		}
	}
	logf(t.Label, "found %s %s", res.Path, res.Version)
	return res
}

// Run checks every tool in order, invoking onResult after each one.
func (c *Checker) Run(ctx context.Context, tools []Tool, onResult func(i int, r Result)) Report {
	rep := Report{Results: make([]Result, 0, len(tools))}
	for i, t := range tools {
		if err := ctx.Err(); err != nil {
			res := Result{Tool: t, Err: err}
			rep.Results = append(rep.Results, res)
			if onResult != nil {
				onResult(i, res)
			}
			continue
		}
		res := c.Check(ctx, t)
		rep.Results = append(rep.Results, res)
		if onResult != nil {
			onResult(i, res)
		}
	}
	return rep
}

func runVersion(ctx context.Context, path string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}

// Package planio reads and writes the files a plan produces: the plan report
// (YAML or JSON) and the bundle SBOM (CycloneDX JSON or XML).
package planio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/html2exe/html2exe-cli/internal/analyzer"
	"github.com/html2exe/html2exe-cli/internal/planner"
)

// ReportFileName is the default name of the report written next to the dist dir.
const ReportFileName = "build_plan.yaml"

// SourceInfo is the serialised form of a source descriptor.
type SourceInfo struct {
	Kind     string `json:"kind" yaml:"kind"`
	Location string `json:"location" yaml:"location"`
}

// Report records one planning run.
type Report struct {
	ID             string                  `json:"id" yaml:"id"`
	CreatedAt      time.Time               `json:"createdAt" yaml:"createdAt"`
	Tool           string                  `json:"tool" yaml:"tool"`
	Application    string                  `json:"application" yaml:"application"`
	Source         SourceInfo              `json:"source" yaml:"source"`
	Recommendation analyzer.Recommendation `json:"recommendation" yaml:"recommendation"`
	Stats          *analyzer.Stats         `json:"stats,omitempty" yaml:"stats,omitempty"`
	Layout         planner.Layout          `json:"layout" yaml:"layout"`
	Directives     []string                `json:"directives" yaml:"directives"`
}

// NewReport assembles a report with a fresh ID.
func NewReport(tool, app string, rep analyzer.Report, rec analyzer.Recommendation, layout planner.Layout, ds planner.Directives) Report {
	r := Report{
		ID:             uuid.New().String(),
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
		Tool:           tool,
		Application:    app,
		Source:         SourceInfo{Kind: string(rep.Source.Kind()), Location: rep.Source.Location()},
		Recommendation: rec,
		Layout:         layout,
		Directives:     ds.Strings(),
	}
	if rep.Stats.Exists {
		stats := rep.Stats
		r.Stats = &stats
	}
	return r
}

// formatFor resolves "auto" (or "") from the file extension.
func formatFor(path, format string) (string, error) {
	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			return "json", nil
		default:
			return "yaml", nil
		}
	case "yaml", "yml":
		return "yaml", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported report format: %q", format)
	}
}

// WriteReport writes r to path as YAML or JSON.
func WriteReport(r Report, path, format string) error {
	actual, err := formatFor(path, format)
	if err != nil {
		return err
	}

	var data []byte
	if actual == "json" {
		data, err = json.MarshalIndent(r, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	} else {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(r)
		if err == nil {
			err = enc.Close()
		}
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logf(path, "report %s written as %s", r.ID, actual)
	return nil
}

// ReadReport reads a report written by WriteReport.
func ReadReport(path, format string) (Report, error) {
	actual, err := formatFor(path, format)
	if err != nil {
		return Report{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	var r Report
	if actual == "json" {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}
	return r, nil
}

package planio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/html2exe/html2exe-cli/internal/analyzer"
	"github.com/html2exe/html2exe-cli/internal/planner"
	"github.com/html2exe/html2exe-cli/internal/source"
)

func sampleReport(t *testing.T) Report {
	t.Helper()
	d, err := source.New(source.Folder, "/srv/site")
	if err != nil {
		t.Fatalf("source.New: %v", err)
	}
	rep := analyzer.Report{
		Source:         d,
		Recommendation: analyzer.Defaults(),
		Stats:          analyzer.Stats{FileCount: 2, TotalSize: 42, Files: []string{"index.html", "app.js"}, HTMLFiles: []string{"index.html"}, Exists: true},
	}
	ds := planner.Directives{"--noconfirm", "--clean", "--name=Demo", "/out/build/main.py"}
	return NewReport("html2exe test", "Demo", rep, rep.Recommendation, planner.LayoutFor("/out"), ds)
}

func minimalBOM() *cdx.BOM {
	bom := cdx.NewBOM()
	bom.SpecVersion = cdx.SpecVersion1_6
	bom.Metadata = &cdx.Metadata{
		Component: &cdx.Component{
			Name: "demo-app",
		},
	}
	return bom
}

func TestNewReport_Fields(t *testing.T) {
	r := sampleReport(t)
	if r.ID == "" {
		t.Fatalf("expected id")
	}
	if r.Source.Kind != "folder" || r.Source.Location != "/srv/site" {
		t.Fatalf("unexpected source: %+v", r.Source)
	}
	if r.Stats == nil || r.Stats.FileCount != 2 {
		t.Fatalf("expected stats to be carried, got %+v", r.Stats)
	}
	if r.Layout.DistDir != filepath.Join("/out", "dist") {
		t.Fatalf("unexpected layout: %+v", r.Layout)
	}
	if len(r.Directives) != 4 || r.Directives[3] != "/out/build/main.py" {
		t.Fatalf("unexpected directives: %v", r.Directives)
	}
}

func TestNewReport_URLHasNoStats(t *testing.T) {
	d, err := source.New(source.URL, "https://example.com")
	if err != nil {
		t.Fatalf("source.New: %v", err)
	}
	rep := analyzer.Report{Source: d, Recommendation: analyzer.Defaults()}
	r := NewReport("t", "App", rep, rep.Recommendation, planner.LayoutFor("out"), nil)
	if r.Stats != nil {
		t.Fatalf("expected no stats for url source")
	}
}

func TestNewReport_UniqueIDs(t *testing.T) {
	a := sampleReport(t)
	b := sampleReport(t)
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %s twice", a.ID)
	}
}

func TestWriteReadReport_YAML(t *testing.T) {
	r := sampleReport(t)
	out := filepath.Join(t.TempDir(), "nested", ReportFileName)
	if err := WriteReport(r, out, "auto"); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "optimizationProfile: balanced") {
		t.Fatalf("expected yaml output, got:\n%s", data)
	}

	got, err := ReadReport(out, "")
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if got.ID != r.ID || got.Recommendation != r.Recommendation {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", got, r)
	}
	if !got.CreatedAt.Equal(r.CreatedAt) {
		t.Fatalf("createdAt mismatch: %v vs %v", got.CreatedAt, r.CreatedAt)
	}
	if strings.Join(got.Directives, " ") != strings.Join(r.Directives, " ") {
		t.Fatalf("directives mismatch: %v", got.Directives)
	}
}

func TestWriteReadReport_JSONByExtension(t *testing.T) {
	r := sampleReport(t)
	out := filepath.Join(t.TempDir(), "plan.json")
	if err := WriteReport(r, out, ""); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	data, _ := os.ReadFile(out)
	if !bytes.HasPrefix(data, []byte("{")) {
		t.Fatalf("expected json output, got:\n%s", data)
	}
	got, err := ReadReport(out, "json")
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if got.Application != "Demo" || got.Layout != r.Layout {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestWriteReport_UnsupportedFormat(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plan.txt")
	if err := WriteReport(sampleReport(t), out, "toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := os.Stat(out); err == nil {
		t.Fatalf("expected no file to be written")
	}
}

func TestReadReport_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadReport(filepath.Join(dir, "missing.yaml"), "auto"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	p := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(p, []byte(`{`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadReport(p, "auto"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestWriteReport_LogsWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	t.Cleanup(func() { SetLogger(nil) })

	out := filepath.Join(t.TempDir(), "plan.yaml")
	if err := WriteReport(sampleReport(t), out, "yaml"); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if !strings.Contains(buf.String(), "source="+out) {
		t.Fatalf("expected log line with path, got %q", buf.String())
	}
}

func TestParseSpecVersion_AllCases(t *testing.T) {
	tcs := []struct {
		in   string
		want cdx.SpecVersion
		ok   bool
	}{
		{"1.4", cdx.SpecVersion1_4, true},
		{"1.5", cdx.SpecVersion1_5, true},
		{"1.6", cdx.SpecVersion1_6, true},
		{" 1.5 ", cdx.SpecVersion1_5, true},
		{"1.3", cdx.SpecVersion1_6, false},
		{"", cdx.SpecVersion1_6, false},
		{"nope", cdx.SpecVersion1_6, false},
	}

	for _, tc := range tcs {
		got, ok := ParseSpecVersion(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseSpecVersion(%q) = (%v,%v), want (%v,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestWriteSBOM_JSON_RoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sbom.json")
	if err := WriteSBOM(minimalBOM(), out, "auto", "1.6"); err != nil {
		t.Fatalf("WriteSBOM: %v", err)
	}
	got, err := ReadSBOM(out, "")
	if err != nil {
		t.Fatalf("ReadSBOM: %v", err)
	}
	if got.Metadata == nil || got.Metadata.Component == nil || got.Metadata.Component.Name != "demo-app" {
		t.Fatalf("roundtrip BOM missing expected metadata.component.name")
	}
}

func TestWriteSBOM_XML_RoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sbom.xml")
	if err := WriteSBOM(minimalBOM(), out, "xml", ""); err != nil {
		t.Fatalf("WriteSBOM: %v", err)
	}
	got, err := ReadSBOM(out, "auto")
	if err != nil {
		t.Fatalf("ReadSBOM: %v", err)
	}
	if got.Metadata == nil || got.Metadata.Component == nil || got.Metadata.Component.Name != "demo-app" {
		t.Fatalf("roundtrip BOM missing expected metadata.component.name")
	}
}

func TestWriteSBOM_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := WriteSBOM(minimalBOM(), filepath.Join(dir, "sbom.json"), "xml", ""); err == nil {
		t.Fatalf("expected extension mismatch error")
	}
	if err := WriteSBOM(minimalBOM(), filepath.Join(dir, "sbom.json"), "yaml", ""); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	if err := WriteSBOM(minimalBOM(), filepath.Join(dir, "sbom.json"), "json", "9.9"); err == nil {
		t.Fatalf("expected unsupported spec version error")
	}
	if _, err := ReadSBOM(filepath.Join(dir, "sbom.json"), "yaml"); err == nil {
		t.Fatalf("expected unsupported read format error")
	}
}

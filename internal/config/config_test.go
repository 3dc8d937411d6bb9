package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/html2exe/html2exe-cli/internal/apperr"
	"github.com/html2exe/html2exe-cli/internal/source"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.Metadata.Name != "MyHTMLApp" || c.Window.Width != 1200 || c.Window.Height != 800 || c.Build.OutputDir != "dist" {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		want   string
	}{
		{"empty name", func(c *AppConfig) { c.Metadata.Name = " " }, "metadata.name"},
		{"narrow window", func(c *AppConfig) { c.Window.Width = 399 }, "window.width"},
		{"wide window", func(c *AppConfig) { c.Window.Width = 4097 }, "window.width"},
		{"short window", func(c *AppConfig) { c.Window.Height = 299 }, "window.height"},
		{"tall window", func(c *AppConfig) { c.Window.Height = 2161 }, "window.height"},
		{"min width", func(c *AppConfig) { c.Window.MinWidth = 100 }, "window.minWidth"},
		{"min height", func(c *AppConfig) { c.Window.MinHeight = 100 }, "window.minHeight"},
		{"bad kind", func(c *AppConfig) { c.Build.SourceKind = "zip" }, "unrecognized source kind"},
		{"empty output", func(c *AppConfig) { c.Build.OutputDir = "" }, "build.output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidate_JoinsAllErrors(t *testing.T) {
	c := Default()
	c.Window.Width = 10
	c.Window.Height = 10
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "window.width") || !strings.Contains(err.Error(), "window.height") {
		t.Fatalf("expected both errors, got %v", err)
	}
	if !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %v", err)
	}
}

func TestSource(t *testing.T) {
	c := Default()
	if _, err := c.Source(); !apperr.IsUser(err) {
		t.Fatalf("missing source should be a user error, got %v", err)
	}

	c.Build.SourcePath = "https://example.com"
	d, err := c.Source()
	if err != nil || d.Kind() != source.URL {
		t.Fatalf("Source() = %v, %v", d, err)
	}

	c.Build.SourceKind = "folder"
	d, err = c.Source()
	if err != nil || d.Kind() != source.Folder {
		t.Fatalf("explicit kind should win, got %v, %v", d, err)
	}

	c.Build.SourceKind = "ftp"
	if _, err := c.Source(); !errors.Is(err, apperr.ErrContractViolation) {
		t.Fatalf("expected contract violation, got %v", err)
	}
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("metadata.name", "Shop")
	v.Set("window.width", 1600)
	v.Set("build.source", "./site")
	v.Set("build.console", true)

	c := FromViper(v)
	if c.Metadata.Name != "Shop" || c.Window.Width != 1600 || c.Build.SourcePath != "./site" || !c.Build.Console {
		t.Fatalf("FromViper() = %+v", c)
	}
	if c.Window.Height != 800 || c.Build.OutputDir != "dist" {
		t.Fatalf("defaults not applied: %+v", c)
	}
}

func TestFromViper_ReadsYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	cfg := "metadata:\n  name: FromFile\nwindow:\n  height: 900\nbuild:\n  kind: url\n  source: https://example.com\n"
	if err := v.ReadConfig(strings.NewReader(cfg)); err != nil {
		t.Fatal(err)
	}
	c := FromViper(v)
	if c.Metadata.Name != "FromFile" || c.Window.Height != 900 || c.Build.SourceKind != "url" {
		t.Fatalf("FromViper() = %+v", c)
	}
}

func TestSaveAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.yaml")
	c := Default()
	c.Metadata.Name = "Saved"
	c.Build.SourcePath = "./site"
	c.Window.Kiosk = true

	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != c {
		t.Fatalf("ReadFile() = %+v, want %+v", got, c)
	}
}

func TestReadFile_Errors(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("metadata: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(p); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	if err := os.WriteFile(p, []byte("HTML2EXE_TEST_KEY=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTML2EXE_TEST_KEY", "")
	os.Unsetenv("HTML2EXE_TEST_KEY")

	if err := LoadEnvFiles(filepath.Join(dir, "missing.env"), p); err != nil {
		t.Fatalf("LoadEnvFiles: %v", err)
	}
	if got := os.Getenv("HTML2EXE_TEST_KEY"); got != "from-dotenv" {
		t.Fatalf("env = %q", got)
	}
}

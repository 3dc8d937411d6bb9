// Package config holds the application settings a build is described by.
//
// Settings come from (lowest to highest precedence) built-in defaults, a YAML
// config file, HTML2EXE_* environment variables and command-line flags, all
// merged by viper. AppConfig itself is a plain value object: Validate is the
// only place constraints are enforced.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/html2exe/html2exe-cli/internal/apperr"
	"github.com/html2exe/html2exe-cli/internal/source"
)

// Window size limits.
const (
	MinWidth     = 400
	MaxWidth     = 4096
	MinHeight    = 300
	MaxHeight    = 2160
	MinWindowDim = 200
)

type Metadata struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Company     string `yaml:"company"`
	Copyright   string `yaml:"copyright"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
}

type Window struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	MinWidth    int  `yaml:"minWidth"`
	MinHeight   int  `yaml:"minHeight"`
	Resizable   bool `yaml:"resizable"`
	Fullscreen  bool `yaml:"fullscreen"`
	Kiosk       bool `yaml:"kiosk"`
	Frameless   bool `yaml:"frameless"`
	AlwaysOnTop bool `yaml:"alwaysOnTop"`
	Center      bool `yaml:"center"`
	Maximized   bool `yaml:"maximized"`
}

type Build struct {
	// SourceKind is folder, url or empty to detect it from SourcePath.
	SourceKind string `yaml:"kind"`
	SourcePath string `yaml:"source"`
	OutputDir  string `yaml:"output"`
	IconPath   string `yaml:"icon"`
	Console    bool   `yaml:"console"`
	Debug      bool   `yaml:"debug"`
	Offline    bool   `yaml:"offline"`
}

// AppConfig is the complete description of an application to package.
type AppConfig struct {
	Metadata Metadata `yaml:"metadata"`
	Window   Window   `yaml:"window"`
	Build    Build    `yaml:"build"`
}

// Default returns the settings used when nothing else is configured.
func Default() AppConfig {
	return AppConfig{
		Metadata: Metadata{
			Name:        "MyHTMLApp",
			Version:     "1.0.0",
			Company:     "My Company",
			Copyright:   fmt.Sprintf("© %d My Company", time.Now().Year()),
			Description: "HTML Desktop Application",
			Author:      "Developer",
		},
		Window: Window{
			Width:     1200,
			Height:    800,
			MinWidth:  400,
			MinHeight: 300,
			Resizable: true,
			Center:    true,
		},
		Build: Build{
			OutputDir: "dist",
		},
	}
}

// Validate reports every constraint the config breaks, joined into one error.
func (c AppConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Metadata.Name) == "" {
		errs = append(errs, apperr.User("metadata.name must not be empty"))
	}
	if c.Window.Width < MinWidth || c.Window.Width > MaxWidth {
		errs = append(errs, apperr.Userf("window.width %d out of range [%d, %d]", c.Window.Width, MinWidth, MaxWidth))
	}
	if c.Window.Height < MinHeight || c.Window.Height > MaxHeight {
		errs = append(errs, apperr.Userf("window.height %d out of range [%d, %d]", c.Window.Height, MinHeight, MaxHeight))
	}
	if c.Window.MinWidth < MinWindowDim {
		errs = append(errs, apperr.Userf("window.minWidth %d below %d", c.Window.MinWidth, MinWindowDim))
	}
	if c.Window.MinHeight < MinWindowDim {
		errs = append(errs, apperr.Userf("window.minHeight %d below %d", c.Window.MinHeight, MinWindowDim))
	}
	if c.Build.SourceKind != "" {
		if _, err := source.ParseKind(c.Build.SourceKind); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(c.Build.OutputDir) == "" {
		errs = append(errs, apperr.User("build.output must not be empty"))
	}
	return errors.Join(errs...)
}

// Source returns the descriptor for the configured content source.
func (c AppConfig) Source() (source.Descriptor, error) {
	if strings.TrimSpace(c.Build.SourcePath) == "" {
		return source.Descriptor{}, apperr.User("no source given (use --source or build.source)")
	}
	if c.Build.SourceKind == "" {
		return source.Detect(c.Build.SourcePath)
	}
	kind, err := source.ParseKind(c.Build.SourceKind)
	if err != nil {
		return source.Descriptor{}, err
	}
	return source.New(kind, c.Build.SourcePath)
}

// SetDefaults registers Default() with v so unset keys resolve to it.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("metadata.name", d.Metadata.Name)
	v.SetDefault("metadata.version", d.Metadata.Version)
	v.SetDefault("metadata.company", d.Metadata.Company)
	v.SetDefault("metadata.copyright", d.Metadata.Copyright)
	v.SetDefault("metadata.description", d.Metadata.Description)
	v.SetDefault("metadata.author", d.Metadata.Author)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.minWidth", d.Window.MinWidth)
	v.SetDefault("window.minHeight", d.Window.MinHeight)
	v.SetDefault("window.resizable", d.Window.Resizable)
	v.SetDefault("window.center", d.Window.Center)
	v.SetDefault("build.output", d.Build.OutputDir)
}

// FromViper reads an AppConfig from v. Keys without a value fall back to
// Default().
func FromViper(v *viper.Viper) AppConfig {
	c := Default()
	str := func(dst *string, key string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	num := func(dst *int, key string) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	flag := func(dst *bool, key string) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}

	str(&c.Metadata.Name, "metadata.name")
	str(&c.Metadata.Version, "metadata.version")
	str(&c.Metadata.Company, "metadata.company")
	str(&c.Metadata.Copyright, "metadata.copyright")
	str(&c.Metadata.Description, "metadata.description")
	str(&c.Metadata.Author, "metadata.author")

	num(&c.Window.Width, "window.width")
	num(&c.Window.Height, "window.height")
	num(&c.Window.MinWidth, "window.minWidth")
	num(&c.Window.MinHeight, "window.minHeight")
	flag(&c.Window.Resizable, "window.resizable")
	flag(&c.Window.Fullscreen, "window.fullscreen")
	flag(&c.Window.Kiosk, "window.kiosk")
	flag(&c.Window.Frameless, "window.frameless")
	flag(&c.Window.AlwaysOnTop, "window.alwaysOnTop")
	flag(&c.Window.Center, "window.center")
	flag(&c.Window.Maximized, "window.maximized")

	str(&c.Build.SourceKind, "build.kind")
	str(&c.Build.SourcePath, "build.source")
	str(&c.Build.OutputDir, "build.output")
	str(&c.Build.IconPath, "build.icon")
	flag(&c.Build.Console, "build.console")
	flag(&c.Build.Debug, "build.debug")
	flag(&c.Build.Offline, "build.offline")
	return c
}

// ReadFile decodes a YAML config file on top of Default().
func ReadFile(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return AppConfig{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}

// Save writes c as YAML, creating the parent directory if needed.
func (c AppConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

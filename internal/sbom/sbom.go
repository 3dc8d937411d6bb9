// Package sbom describes a planned bundle as a CycloneDX bill of materials:
// the application itself, the web assets it embeds and the runtime packages
// the launcher depends on.
package sbom

import (
	"strconv"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/html2exe/html2exe-cli/internal/analyzer"
)

const (
	DefaultToolVendor = "html2exe"
	DefaultToolName   = "html2exe"
)

// runtimePackages maps launcher imports to their PyPI distribution. Modules
// missing here ship with the interpreter and are not listed.
var runtimePackages = map[string]string{
	"flask":   "flask",
	"webview": "pywebview",
}

// Application identifies the packaged program.
type Application struct {
	Name        string
	Version     string
	Company     string
	Description string
	Copyright   string
	// SourceKind and SourceLocation are recorded as BOM properties.
	SourceKind     string
	SourceLocation string
}

// Input is everything Build needs.
type Input struct {
	App            Application
	Recommendation analyzer.Recommendation
	Assets         []Asset
	HiddenImports  []string
	Directives     []string
}

// Build returns a new BOM for in.
func Build(in Input) *cdx.BOM {
	bom := cdx.NewBOM()
	bom.SerialNumber = "urn:uuid:" + uuid.New().String()
	bom.Metadata = &cdx.Metadata{
		Timestamp: time.Now().Format(time.RFC3339),
		Component: applicationComponent(in.App),
	}
	addTool(bom)

	props := []cdx.Property{
		{Name: "html2exe:source:kind", Value: in.App.SourceKind},
		{Name: "html2exe:source:location", Value: in.App.SourceLocation},
		{Name: "html2exe:profile", Value: string(in.Recommendation.Profile)},
		{Name: "html2exe:singleFile", Value: strconv.FormatBool(in.Recommendation.SingleFile)},
		{Name: "html2exe:offline", Value: strconv.FormatBool(in.Recommendation.OfflineMode)},
	}
	if len(in.Directives) > 0 {
		props = append(props, cdx.Property{Name: "html2exe:directives", Value: strings.Join(in.Directives, " ")})
	}
	bom.Metadata.Properties = &props

	var comps []cdx.Component
	for _, a := range in.Assets {
		comps = append(comps, assetComponent(a))
	}
	for _, imp := range in.HiddenImports {
		if pkg, ok := runtimePackages[imp]; ok {
			comps = append(comps, cdx.Component{
				BOMRef:     "pkg:pypi/" + pkg,
				Type:       cdx.ComponentTypeLibrary,
				Name:       pkg,
				PackageURL: "pkg:pypi/" + pkg,
				Scope:      cdx.ScopeRequired,
			})
		}
	}
	if len(comps) > 0 {
		bom.Components = &comps
	}
	return bom
}

func applicationComponent(app Application) *cdx.Component {
	c := &cdx.Component{
		BOMRef:      "app:" + app.Name,
		Type:        cdx.ComponentTypeApplication,
		Name:        app.Name,
		Version:     app.Version,
		Description: app.Description,
		Copyright:   app.Copyright,
	}
	if app.Company != "" {
		c.Supplier = &cdx.OrganizationalEntity{Name: app.Company}
	}
	return c
}

func assetComponent(a Asset) cdx.Component {
	c := cdx.Component{
		BOMRef: "asset:" + a.Name,
		Type:   cdx.ComponentTypeFile,
		Name:   a.Name,
		Properties: &[]cdx.Property{
			{Name: "html2exe:size", Value: strconv.FormatInt(a.Size, 10)},
		},
	}
	if a.SHA256 != "" {
		c.Hashes = &[]cdx.Hash{{Algorithm: cdx.HashAlgoSHA256, Value: a.SHA256}}
	}
	return c
}

func addTool(bom *cdx.BOM) {
	bom.Metadata.Tools = &cdx.ToolsChoice{
		Components: &[]cdx.Component{{
			Type:         cdx.ComponentTypeApplication,
			Manufacturer: &cdx.OrganizationalEntity{Name: DefaultToolVendor},
			Name:         DefaultToolName,
			Version:      ToolVersion(),
		}},
	}
}

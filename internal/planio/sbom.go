package planio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// ReadSBOM reads a BOM from a file (JSON or XML).
// The format parameter can be "json", "xml", or "auto" (default).
// If "auto", the format is determined from the file extension.
func ReadSBOM(path string, format string) (*cdx.BOM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		if strings.EqualFold(filepath.Ext(path), ".xml") {
			actual = "xml"
		} else {
			actual = "json"
		}
	case "json", "xml":
		// ok
	default:
		return nil, fmt.Errorf("unsupported SBOM format: %q", format)
	}

	fileFmt := cdx.BOMFileFormatJSON
	if actual == "xml" {
		fileFmt = cdx.BOMFileFormatXML
	}

	bom := new(cdx.BOM)
	if err := cdx.NewBOMDecoder(f, fileFmt).Decode(bom); err != nil {
		return nil, err
	}
	return bom, nil
}

// WriteSBOM writes a BOM to a file in the specified format.
// The format parameter can be "json", "xml", or "auto" (default).
// If spec is provided, it encodes with that specific CycloneDX version.
func WriteSBOM(bom *cdx.BOM, outputPath string, format string, spec string) error {
	ext := filepath.Ext(outputPath)

	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		if strings.EqualFold(ext, ".xml") {
			actual = "xml"
		} else {
			actual = "json"
		}
	case "json", "xml":
		// ok
	default:
		return fmt.Errorf("unsupported SBOM format: %q", format)
	}

	if !strings.EqualFold(ext, "."+actual) {
		return fmt.Errorf("output path extension %q does not match format %q", ext, actual)
	}

	fileFmt := cdx.BOMFileFormatJSON
	if actual == "xml" {
		fileFmt = cdx.BOMFileFormatXML
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := cdx.NewBOMEncoder(f, fileFmt)
	encoder.SetPretty(true)

	if spec == "" {
		err = encoder.Encode(bom)
	} else {
		sv, ok := ParseSpecVersion(spec)
		if !ok {
			return fmt.Errorf("unsupported CycloneDX spec version: %q", spec)
		}
		err = encoder.EncodeVersion(bom, sv)
	}
	if err != nil {
		return err
	}
	logf(outputPath, "sbom written as %s", actual)
	return nil
}

// ParseSpecVersion parses a spec version string to a CycloneDX SpecVersion.
func ParseSpecVersion(s string) (cdx.SpecVersion, bool) {
	switch strings.TrimSpace(s) {
	case "1.4":
		return cdx.SpecVersion1_4, true
	case "1.5":
		return cdx.SpecVersion1_5, true
	case "1.6":
		return cdx.SpecVersion1_6, true
	default:
		return cdx.SpecVersion1_6, false
	}
}

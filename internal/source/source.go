// Package source describes where the HTML content to package comes from.
package source

import (
	"net/url"
	"strings"

	"github.com/html2exe/html2exe-cli/internal/apperr"
)

// Kind tells whether a source is a local folder or a remote URL.
type Kind string

const (
	Folder Kind = "folder"
	URL    Kind = "url"
)

// ParseKind maps a user-supplied kind string onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Folder:
		return Folder, nil
	case URL:
		return URL, nil
	default:
		return "", apperr.Contractf("unrecognized source kind %q (expected folder|url)", s)
	}
}

// Descriptor is an immutable description of a content source.
// Construct it with New or Detect; the zero value is not valid.
type Descriptor struct {
	kind     Kind
	location string
}

// New validates kind and location and returns a Descriptor.
// Folder locations are not checked for existence; analysis degrades when they are missing.
func New(kind Kind, location string) (Descriptor, error) {
	location = strings.TrimSpace(location)
	switch kind {
	case Folder:
		if location == "" {
			return Descriptor{}, apperr.Contractf("folder source needs a path")
		}
	case URL:
		u, err := url.Parse(location)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return Descriptor{}, apperr.Contractf("url source %q is not an absolute URL", location)
		}
	default:
		return Descriptor{}, apperr.Contractf("unrecognized source kind %q", string(kind))
	}
	return Descriptor{kind: kind, location: location}, nil
}

// Detect classifies s the way the CLI does: http(s) prefixes are URLs,
// everything else is a folder path.
func Detect(s string) (Descriptor, error) {
	s = strings.TrimSpace(s)
	if IsURL(s) {
		return New(URL, s)
	}
	return New(Folder, s)
}

// IsURL reports whether s carries an http:// or https:// prefix.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Kind returns the source kind.
func (d Descriptor) Kind() Kind { return d.kind }

// Location returns the folder path or URL as given to New.
func (d Descriptor) Location() string { return d.location }

// IsFolder reports whether d names a local directory.
func (d Descriptor) IsFolder() bool { return d.kind == Folder }

// IsURL reports whether d names a remote page.
func (d Descriptor) IsURL() bool { return d.kind == URL }

// String renders d as "kind:location".
func (d Descriptor) String() string {
	return string(d.kind) + ":" + d.location
}

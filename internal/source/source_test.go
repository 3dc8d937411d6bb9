package source

import (
	"errors"
	"testing"

	"github.com/html2exe/html2exe-cli/internal/apperr"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{"https://example.com", URL},
		{"http://localhost:8080/app", URL},
		{"HTTPS://EXAMPLE.COM", URL},
		{"./site", Folder},
		{"/var/www/html", Folder},
		{`C:\sites\demo`, Folder},
	}
	for _, tt := range tests {
		d, err := Detect(tt.in)
		if err != nil {
			t.Fatalf("Detect(%q) error: %v", tt.in, err)
		}
		if d.Kind() != tt.kind {
			t.Errorf("Detect(%q).Kind() = %q, want %q", tt.in, d.Kind(), tt.kind)
		}
		if d.Location() != tt.in {
			t.Errorf("Detect(%q).Location() = %q", tt.in, d.Location())
		}
	}
}

func TestNew_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		location string
	}{
		{"unknown kind", Kind("ftp"), "ftp://x"},
		{"empty kind", Kind(""), "./site"},
		{"relative url", URL, "example.com/page"},
		{"url without host", URL, "https://"},
		{"empty folder", Folder, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.kind, tt.location)
			if !errors.Is(err, apperr.ErrContractViolation) {
				t.Fatalf("expected contract violation, got %v", err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" Folder "); err != nil || k != Folder {
		t.Fatalf("ParseKind(folder) = %q, %v", k, err)
	}
	if k, err := ParseKind("url"); err != nil || k != URL {
		t.Fatalf("ParseKind(url) = %q, %v", k, err)
	}
	if _, err := ParseKind("zip"); !errors.Is(err, apperr.ErrContractViolation) {
		t.Fatalf("expected contract violation, got %v", err)
	}
}

func TestDescriptorString(t *testing.T) {
	d, err := New(Folder, "./site")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "folder:./site" || !d.IsFolder() || d.IsURL() {
		t.Fatalf("unexpected descriptor %v", d)
	}
}

func TestDescriptorAccessors(t *testing.T) {
	d, err := New(URL, "https://example.com/app")
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind() != URL || d.Location() != "https://example.com/app" {
		t.Fatalf("Kind/Location = %v/%q", d.Kind(), d.Location())
	}
	if !d.IsURL() || d.IsFolder() {
		t.Fatalf("IsURL/IsFolder wrong for %v", d)
	}
	if d.String() != "url:https://example.com/app" {
		t.Fatalf("String() = %q", d.String())
	}
}

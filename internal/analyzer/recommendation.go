package analyzer

import (
	"strings"

	"github.com/html2exe/html2exe-cli/internal/apperr"
)

// Profile names the packaging strategy a recommendation follows.
type Profile string

const (
	Balanced   Profile = "balanced"
	Size       Profile = "size"
	Production Profile = "production"
	Portable   Profile = "portable"
)

// ParseProfile accepts a profile name in any case.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", apperr.Contractf("unknown optimization profile %q (expected balanced|size|production|portable)", s)
	}
	return p, nil
}

func (p Profile) Valid() bool {
	switch p {
	case Balanced, Size, Production, Portable:
		return true
	}
	return false
}

// Recommendation holds the packaging settings inferred for a source.
type Recommendation struct {
	SingleFile     bool    `json:"singleFile" yaml:"singleFile"`
	ShowConsole    bool    `json:"showConsole" yaml:"showConsole"`
	DebugMode      bool    `json:"debugMode" yaml:"debugMode"`
	Compress       bool    `json:"compress" yaml:"compress"`
	StripDebugInfo bool    `json:"stripDebugInfo" yaml:"stripDebugInfo"`
	OfflineMode    bool    `json:"offlineMode" yaml:"offlineMode"`
	Profile        Profile `json:"optimizationProfile" yaml:"optimizationProfile"`
}

// Defaults returns the recommendation used before any signal is gathered.
func Defaults() Recommendation {
	return Recommendation{
		SingleFile:     true,
		StripDebugInfo: true,
		Profile:        Balanced,
	}
}

// Validate rejects recommendations whose profile contradicts their flags.
func (r Recommendation) Validate() error {
	if !r.Profile.Valid() {
		return apperr.Contractf("unknown optimization profile %q", string(r.Profile))
	}
	switch r.Profile {
	case Portable:
		if !r.SingleFile || !r.OfflineMode {
			return apperr.Contractf("portable profile requires single-file and offline mode")
		}
	case Size:
		if r.SingleFile {
			return apperr.Contractf("size profile requires directory mode")
		}
	}
	return nil
}

// Overrides carries caller-supplied values; nil fields keep the inferred value.
type Overrides struct {
	SingleFile     *bool
	ShowConsole    *bool
	DebugMode      *bool
	Compress       *bool
	StripDebugInfo *bool
	OfflineMode    *bool
	Profile        *Profile
}

// Apply returns a copy of r with every non-nil override set, then validates it.
func (r Recommendation) Apply(o Overrides) (Recommendation, error) {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&r.SingleFile, o.SingleFile)
	set(&r.ShowConsole, o.ShowConsole)
	set(&r.DebugMode, o.DebugMode)
	set(&r.Compress, o.Compress)
	set(&r.StripDebugInfo, o.StripDebugInfo)
	set(&r.OfflineMode, o.OfflineMode)
	if o.Profile != nil {
		r.Profile = *o.Profile
	}
	if err := r.Validate(); err != nil {
		return Recommendation{}, err
	}
	return r, nil
}

package sbom

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// Asset is a file that ends up inside the bundle.
type Asset struct {
	Name   string
	Size   int64
	SHA256 string
}

// CollectAssets hashes the named files under dir. Files that cannot be read
// are left out.
func CollectAssets(fs afero.Fs, dir string, names []string) []Asset {
	var out []Asset
	for _, name := range names {
		a, err := hashFile(fs, filepath.Join(dir, name))
		if err != nil {
			continue
		}
		a.Name = name
		out = append(out, a)
	}
	return out
}

func hashFile(fs afero.Fs, path string) (Asset, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Asset{}, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Asset{}, err
	}
	return Asset{Size: n, SHA256: hex.EncodeToString(h.Sum(nil))}, nil
}

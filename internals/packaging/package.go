// Package packaging turns an instance's mod/config tree into a named,
// versioned bundle: the resolved profile plus a checksummed file manifest.
package packaging

import (
	"encoding/json"

	"github.com/spf13/afero"

	"github.com/supdate/supdate/internals/profile"
)

// PackageFile is one selected file of a package. Path is unique within
// a package and slash separated.
type PackageFile struct {
	Size int64  `json:"size"`
	Sha1 string `json:"sha1"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Package is a profile extended with a name, a distribution version and
// the list of files the launcher has to sync
type Package struct {
	profile.Profile
	Name    string        `json:"name,omitempty"`
	Version string        `json:"version,omitempty"`
	Files   []PackageFile `json:"files,omitempty"`
}

// FromProfile copies a resolved profile into a fresh package. The
// profile is deep-copied through its serialized form, later package
// mutations never touch the source profile.
func FromProfile(p *profile.Profile) (*Package, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	pkg := &Package{}
	if err := json.Unmarshal(raw, &pkg.Profile); err != nil {
		return nil, err
	}
	return pkg, nil
}

// ReadFile reads a package manifest (modpack.json)
func ReadFile(fs afero.Fs, path string) (*Package, error) {
	pkg := &Package{}
	if err := profile.ReadDocument(fs, path, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// WriteFile serializes the package manifest
func (p *Package) WriteFile(fs afero.Fs, path string) error {
	return profile.WriteDocument(fs, path, p)
}

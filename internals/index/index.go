// Package index aggregates built package manifests into the top level
// distribution index a launcher polls for updates.
package index

import (
	"github.com/spf13/afero"

	"github.com/supdate/supdate/internals/profile"
)

// Package is the summary record of one published package manifest
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Time    string `json:"time"`
	URL     string `json:"url"`
	Path    string `json:"path"`
	Sha1    string `json:"sha1"`
	Size    int64  `json:"size"`
}

// Launcher names the launcher build distributed alongside the packages
type Launcher struct {
	Version string `json:"version"`
	URL     string `json:"url"`
}

// Manifest is the top level index document
type Manifest struct {
	Version  string             `json:"version"`
	Time     string             `json:"time"`
	Launcher Launcher           `json:"launcher"`
	Packages map[string]Package `json:"packages"`
}

// ReadManifest reads an index.json
func ReadManifest(fs afero.Fs, path string) (*Manifest, error) {
	m := &Manifest{}
	if err := profile.ReadDocument(fs, path, m); err != nil {
		return nil, err
	}
	if m.Packages == nil {
		m.Packages = make(map[string]Package)
	}
	return m, nil
}

// WriteFile serializes the manifest
func (m *Manifest) WriteFile(fs afero.Fs, path string) error {
	return profile.WriteDocument(fs, path, m)
}

package index

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/supdate/supdate/internals/cmdlog"
	"github.com/supdate/supdate/internals/packaging"
)

// ManifestName is the package manifest file expected in every package
// directory
const ManifestName = "modpack.json"

// Builder assembles a new index manifest from the package directories
// under PackagesDir
type Builder struct {
	Fs          afero.Fs
	PackagesDir string
	PackagesURL string
	Logger      *cmdlog.Logger
	// Now stamps the built index and any rewritten packages
	Now time.Time
}

// Build produces the next index manifest. Packages whose manifest hash
// matches the previous index entry are carried forward unchanged, so an
// unchanged tree never bumps a package version. Changed packages are
// restamped with the next version, rewritten and re-summarized. A
// package directory without a manifest is skipped with a warning.
func (b *Builder) Build(prev *Manifest) (*Manifest, error) {
	nextVersion := NextVersion(prev.Version, b.Now)
	nextTime := Timestamp(b.Now)

	manifest := &Manifest{
		Version:  nextVersion,
		Time:     nextTime,
		Launcher: prev.Launcher,
		Packages: make(map[string]Package),
	}

	entries, err := afero.ReadDir(b.Fs, b.PackagesDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		manifestPath := filepath.Join(b.PackagesDir, entry.Name(), ManifestName)
		if ok, _ := afero.Exists(b.Fs, manifestPath); !ok {
			if b.Logger != nil {
				b.Logger.Warn(entry.Name() + " is missing " + ManifestName)
			}
			continue
		}

		pkg, err := packaging.ReadFile(b.Fs, manifestPath)
		if err != nil {
			return nil, err
		}
		id := pkg.ID
		if id == "" {
			id = entry.Name()
		}

		sum, err := sha1File(b.Fs, manifestPath)
		if err != nil {
			return nil, err
		}

		if prevEntry, ok := prev.Packages[id]; ok && prevEntry.Sha1 == sum {
			// content unchanged, no version bump for this package
			manifest.Packages[id] = prevEntry
			continue
		}

		pkg.Version = nextVersion
		pkg.Time = nextTime
		if err := pkg.WriteFile(b.Fs, manifestPath); err != nil {
			return nil, err
		}

		summary, err := b.summarize(pkg, entry.Name(), manifestPath)
		if err != nil {
			return nil, err
		}
		manifest.Packages[id] = summary
	}

	return manifest, nil
}

func (b *Builder) summarize(pkg *packaging.Package, dir string, manifestPath string) (Package, error) {
	sum, err := sha1File(b.Fs, manifestPath)
	if err != nil {
		return Package{}, err
	}
	info, err := b.Fs.Stat(manifestPath)
	if err != nil {
		return Package{}, err
	}

	return Package{
		Name:    pkg.Name,
		Version: pkg.Version,
		Time:    pkg.Time,
		URL:     strings.TrimRight(b.PackagesURL, "/") + "/" + dir + "/",
		Path:    ManifestName,
		Sha1:    sum,
		Size:    info.Size(),
	}, nil
}

// Timestamp renders the fixed timestamp format of all index/package
// documents
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05+0000")
}

func sha1File(fs afero.Fs, file string) (string, error) {
	f, err := fs.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

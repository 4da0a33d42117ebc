// Package release ties the loader providers, the package builder and
// the index builder together into the two top level operations:
// packaging one instance and refreshing the published index.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/supdate/supdate/internals/cmdlog"
	"github.com/supdate/supdate/internals/index"
	"github.com/supdate/supdate/internals/packaging"
	"github.com/supdate/supdate/internals/provider"
)

const (
	exclusionsFile = "exclude.json"
	// some mods keep per-player state in their config directory, that
	// never belongs into a distributed pack
	builtinExclusion = "config/Chikachi/**/*"
)

// the instance subtrees that make up a server pack
var defaultIncludes = []string{"mods/**/*", "config/**/*", "scripts/**/*"}

// Exclusions is the schema of an instance's exclude.json
type Exclusions struct {
	Exclude []string `json:"exclude"`
}

// Builder runs release builds against one directory layout: instances
// are read from InstancesDir, packages and the index are published
// under PackagesDir.
type Builder struct {
	Fs           afero.Fs
	InstancesDir string
	PackagesDir  string
	PackagesURL  string
	Provider     provider.Provider
	Logger       *cmdlog.Logger
	// Now stamps everything built in one run with the same time
	Now time.Time
}

func NewBuilder(instancesDir string, packagesDir string, packagesURL string, prov provider.Provider) *Builder {
	return &Builder{
		Fs:           afero.NewOsFs(),
		InstancesDir: instancesDir,
		PackagesDir:  packagesDir,
		PackagesURL:  strings.TrimRight(packagesURL, "/"),
		Provider:     prov,
		Logger:       cmdlog.New(),
		Now:          time.Now(),
	}
}

func (b *Builder) IndexPath() string {
	return filepath.Join(b.PackagesDir, "index.json")
}

// BuildPackage packages one instance and refreshes the index. It
// returns the path of the written package manifest.
func (b *Builder) BuildPackage(ctx context.Context, name string, version string, forceBuild bool) (string, error) {
	instanceDir := filepath.Join(b.InstancesDir, name)
	if ok, _ := afero.DirExists(b.Fs, instanceDir); !ok {
		return "", &ErrMissingInstance{Name: name, Path: instanceDir}
	}

	clientDir := filepath.Join(instanceDir, "client")
	if err := b.Fs.MkdirAll(clientDir, 0755); err != nil {
		return "", err
	}

	packageDir := filepath.Join(b.PackagesDir, name)
	manifestPath := filepath.Join(packageDir, index.ManifestName)

	prevManifest, err := b.latestManifest()
	if err != nil {
		return "", err
	}

	var prevPackage *packaging.Package
	if ok, _ := afero.Exists(b.Fs, manifestPath); ok {
		prevPackage, err = packaging.ReadFile(b.Fs, manifestPath)
		if err != nil {
			return "", err
		}
	}

	b.Logger.Headline("packaging " + name)

	_, launchProfile, err := b.Provider.AutoProfile(ctx, instanceDir, version, forceBuild)
	if err != nil {
		return "", err
	}

	pkg, err := packaging.FromProfile(launchProfile)
	if err != nil {
		return "", err
	}
	pkg.ID = name
	pkg.Name = name
	if prevPackage != nil && prevPackage.Name != "" {
		pkg.Name = prevPackage.Name
	}
	pkg.Version = index.NextVersion(prevManifest.Version, b.Now)
	pkg.Time = index.Timestamp(b.Now)

	packageURL := b.PackagesURL + "/" + name + "/"

	serverBuilder := packaging.NewBuilder(pkg, b.Fs, instanceDir, packageDir, packageURL)
	for _, pattern := range defaultIncludes {
		if err := serverBuilder.Include(pattern); err != nil {
			return "", err
		}
	}
	if err := serverBuilder.Exclude(builtinExclusion); err != nil {
		return "", err
	}

	exclusions, err := b.readExclusions(instanceDir)
	if err != nil {
		return "", err
	}
	for _, pattern := range exclusions {
		if err := serverBuilder.Exclude(pattern); err != nil {
			return "", err
		}
	}

	if err := serverBuilder.Build(); err != nil {
		return "", err
	}

	// the client tree is shipped as-is
	clientBuilder := packaging.NewBuilder(pkg, b.Fs, clientDir, packageDir, packageURL)
	if err := clientBuilder.Include("**/*"); err != nil {
		return "", err
	}
	if err := clientBuilder.Build(); err != nil {
		return "", err
	}

	if err := b.Fs.MkdirAll(packageDir, 0755); err != nil {
		return "", err
	}
	if err := pkg.WriteFile(b.Fs, manifestPath); err != nil {
		return "", err
	}

	var total int64
	for _, file := range pkg.Files {
		total += file.Size
	}
	b.Logger.Info(fmt.Sprintf("%s %s: %d files, %s", name, pkg.Version, len(pkg.Files), humanize.Bytes(uint64(total))))

	if _, err := b.UpdateIndex(); err != nil {
		return "", err
	}

	return manifestPath, nil
}

// UpdateIndex rebuilds index.json from the package directories and
// returns its path
func (b *Builder) UpdateIndex() (string, error) {
	prev, err := b.latestManifest()
	if err != nil {
		return "", err
	}

	indexBuilder := &index.Builder{
		Fs:          b.Fs,
		PackagesDir: b.PackagesDir,
		PackagesURL: b.PackagesURL,
		Logger:      b.Logger,
		Now:         b.Now,
	}
	manifest, err := indexBuilder.Build(prev)
	if err != nil {
		return "", err
	}

	path := b.IndexPath()
	if err := manifest.WriteFile(b.Fs, path); err != nil {
		return "", err
	}
	return path, nil
}

// latestManifest reads the published index, or bootstraps an empty one
// with a placeholder launcher for a fresh tree
func (b *Builder) latestManifest() (*index.Manifest, error) {
	path := b.IndexPath()
	if ok, _ := afero.Exists(b.Fs, path); ok {
		return index.ReadManifest(b.Fs, path)
	}

	return &index.Manifest{
		Time: index.Timestamp(b.Now),
		Launcher: index.Launcher{
			Version: "0.0.0",
			URL:     "https://example.com/",
		},
		Packages: map[string]index.Package{},
	}, nil
}

// readExclusions loads an instance's exclude.json, writing the default
// one first if the instance has none yet
func (b *Builder) readExclusions(instanceDir string) ([]string, error) {
	path := filepath.Join(instanceDir, exclusionsFile)

	if ok, _ := afero.Exists(b.Fs, path); !ok {
		defaults := &Exclusions{Exclude: []string{builtinExclusion}}
		raw, err := json.MarshalIndent(defaults, "", "    ")
		if err != nil {
			return nil, err
		}
		if err := afero.WriteFile(b.Fs, path, raw, 0644); err != nil {
			return nil, err
		}
		return defaults.Exclude, nil
	}

	raw, err := afero.ReadFile(b.Fs, path)
	if err != nil {
		return nil, err
	}

	exclusions := &Exclusions{}
	if err := json.Unmarshal(raw, exclusions); err != nil {
		return nil, &ErrMalformedExclusions{Path: path, Err: err}
	}
	return exclusions.Exclude, nil
}

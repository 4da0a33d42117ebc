package packaging

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Builder selects files under a source tree with ordered include/exclude
// glob rules and copies the selection into a publish tree while recording
// manifest entries on the package.
//
// Rules apply strictly in call order: a later Include can re-admit a path
// a prior Exclude removed, and the other way around.
type Builder struct {
	Package   *Package
	Fs        afero.Fs
	SourceDir string
	TargetDir string
	// BaseURL is the public root of the published package tree
	BaseURL string

	selection map[string]string
}

// NewBuilder returns a builder with an empty selection
func NewBuilder(pkg *Package, fs afero.Fs, sourceDir string, targetDir string, baseURL string) *Builder {
	return &Builder{
		Package:   pkg,
		Fs:        fs,
		SourceDir: sourceDir,
		TargetDir: targetDir,
		BaseURL:   baseURL,
		selection: make(map[string]string),
	}
}

// Include adds every file matching the glob pattern to the selection,
// overwriting prior mappings for the same relative path
func (b *Builder) Include(pattern string) error {
	return afero.Walk(b.Fs, b.SourceDir, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(b.SourceDir, file)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		match, err := doublestar.Match(pattern, rel)
		if err != nil {
			return err
		}
		if match {
			b.selection[rel] = file
		}
		return nil
	})
}

// Exclude removes every matching relative path from the selection.
// Paths not currently selected are unaffected.
func (b *Builder) Exclude(pattern string) error {
	for rel := range b.selection {
		match, err := doublestar.Match(pattern, rel)
		if err != nil {
			return err
		}
		if match {
			delete(b.selection, rel)
		}
	}
	return nil
}

// Build copies every selected file into the target tree and appends a
// manifest entry for it. The copy is content-gated: a destination whose
// hash already matches the source is left alone. Manifest entries are
// recorded either way.
func (b *Builder) Build() error {
	paths := make([]string, 0, len(b.selection))
	for rel := range b.selection {
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	for _, rel := range paths {
		file := b.selection[rel]

		sum, err := sha1File(b.Fs, file)
		if err != nil {
			return err
		}
		info, err := b.Fs.Stat(file)
		if err != nil {
			return err
		}

		target := filepath.Join(b.TargetDir, filepath.FromSlash(rel))
		if err := b.copyIfChanged(file, target, sum); err != nil {
			return err
		}

		b.Package.Files = append(b.Package.Files, PackageFile{
			Size: info.Size(),
			Sha1: sum,
			Path: rel,
			URL:  joinURL(b.BaseURL, rel),
		})
	}

	return nil
}

func (b *Builder) copyIfChanged(file string, target string, sourceSha string) error {
	if ok, _ := afero.Exists(b.Fs, target); ok {
		targetSha, err := sha1File(b.Fs, target)
		if err == nil && targetSha == sourceSha {
			return nil
		}
	}

	if err := b.Fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := b.Fs.Open(file)
	if err != nil {
		return err
	}
	defer src.Close()

	dest, err := b.Fs.Create(target)
	if err != nil {
		return err
	}
	defer dest.Close()

	_, err = io.Copy(dest, src)
	return err
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

func joinURL(base string, relPath string) string {
	return strings.TrimRight(base, "/") + "/" + path.Clean(relPath)
}

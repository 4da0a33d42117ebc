// Package forge builds launch profiles for forge based instances. It
// downloads and runs the official installer, reads the version metadata
// out of the produced jars and resolves the library tree the launcher
// will need.
package forge

import (
	"archive/zip"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/supdate/supdate/internals/maven"
)

const forgeMaven = "https://maven.minecraftforge.net/net/minecraftforge/forge"

const (
	versionJSON = "version.json"
	installJSON = "install_profile.json"
)

// Build identifies one forge build and the directory its installer
// output lives in. File names follow the naming form of the minecraft
// version, forge changed its scheme a few times over the years.
type Build struct {
	// Game is the minecraft version, Version the forge version
	Game    string
	Version string
	// Dir is the working directory holding the jars and the libraries
	// tree the installer produces
	Dir  string
	Form maven.Form
	Fs   afero.Fs
}

func NewBuild(game string, version string, dir string) *Build {
	return &Build{
		Game:    game,
		Version: version,
		Dir:     dir,
		Form:    maven.FormFor(game),
		Fs:      afero.NewOsFs(),
	}
}

// StandardName is the plain build name, also used as the version
// segment of the forge maven repository path
func (b *Build) StandardName() string {
	return b.Form.Render(b.Game, b.Version)
}

// JarName is the file name of the given distribution jar (installer,
// universal, …)
func (b *Build) JarName(buildType string) string {
	return b.Form.RenderFull(b.Game, b.Version, buildType) + ".jar"
}

func (b *Build) InstallerJar() string {
	return filepath.Join(b.Dir, b.JarName("installer"))
}

func (b *Build) InstallerURL() string {
	return forgeMaven + "/" + b.StandardName() + "/" + b.JarName("installer")
}

// GameVersion implements libraries.Source
func (b *Build) GameVersion() string {
	return b.Game
}

// UniversalJar implements libraries.Source. It prefers the plain jar
// the installer drops for modern builds and falls back to the
// -universal variant older installers produce.
func (b *Build) UniversalJar() (string, error) {
	standard := filepath.Join(b.Dir, b.StandardName()+".jar")
	if ok, _ := afero.Exists(b.Fs, standard); ok {
		return standard, nil
	}

	universal := filepath.Join(b.Dir, b.JarName("universal"))
	if ok, _ := afero.Exists(b.Fs, universal); ok {
		return universal, nil
	}

	return "", &ErrNoUniversalJar{Dir: b.Dir}
}

func (b *Build) readFileFromJar(jar string, name string) ([]byte, error) {
	file, err := b.Fs.Open(jar)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", jar)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := zip.NewReader(file, info.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", jar)
	}

	for _, zipped := range reader.File {
		if zipped.Name != name {
			continue
		}

		entry, err := zipped.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s in %s", name, jar)
		}
		defer entry.Close()

		data, err := io.ReadAll(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s from %s", name, jar)
		}
		return data, nil
	}

	return nil, &ErrNoJarEntry{Jar: jar, Name: name}
}

// Package libraries resolves a profile's library list against the
// on-disk artifacts a loader build produced: it validates every entry,
// attaches download records, synthesizes the split-build and
// installer-metadata entries and optionally mirrors the files into a
// publishable library tree.
package libraries

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/supdate/supdate/internals/cmdlog"
	"github.com/supdate/supdate/internals/maven"
	"github.com/supdate/supdate/internals/profile"
)

// loader universal placeholder coordinate (group, artifact)
const (
	universalGroup    = "net.minecraftforge"
	universalArtifact = "forge"
)

// split builds carry these two variants as additional library entries
var splitTags = [2]string{"universal", "client"}

// mcpTags are the classifier tags of the shared client dependency
// synthesized from installer metadata
var mcpTags = [3]string{"extra", "slim", "srg"}

// Source describes the loader build that produced the profile being
// resolved. UniversalJar is the combined jar fallback for non-split
// builds, GameVersion feeds installer-metadata synthesis.
type Source interface {
	GameVersion() string
	UniversalJar() (string, error)
}

// Builder resolves the libraries of a single profile. It is a one-shot
// object: Build mutates the profile's library list in place (entries are
// only added or completed, never removed).
type Builder struct {
	Profile *profile.Profile
	Fs      afero.Fs
	// Dir is the loader working directory containing a libraries/ tree
	Dir    string
	Source Source
	Logger *cmdlog.Logger
}

// IsLoaderUniversal reports whether the coordinate is the special loader
// placeholder library awaiting resolution
func IsLoaderUniversal(coord maven.Coordinate) bool {
	return coord.Group == universalGroup && coord.Artifact == universalArtifact
}

// CheckSource asserts every library is in exactly one valid state:
// required and backed by a physical file, already resolved, or the
// loader universal placeholder. Anything else is fatal.
func (b *Builder) CheckSource() error {
	for _, library := range b.Profile.Libraries {
		coord, err := library.Coordinate()
		if err != nil {
			return err
		}

		switch {
		case library.Required():
			file := filepath.Join(b.Dir, "libraries", filepath.FromSlash(coord.Path()))
			if ok, _ := afero.Exists(b.Fs, file); !ok {
				return &ErrMissingFile{Path: file}
			}
		case library.Downloads != nil:
			if library.Downloads.Artifact == nil && len(library.Downloads.Classifiers) == 0 {
				return &ErrInconsistentLibrary{Name: library.Name}
			}
		case IsLoaderUniversal(coord):
			// placeholder, resolved by Build
		default:
			return &ErrInconsistentLibrary{Name: library.Name}
		}
	}
	return nil
}

// Build runs validate, resolve-required and resolve-special over the
// library list. baseURL is the public root the resolved artifacts will
// be served from. When copy is set, every resolved file is mirrored
// into targetDir at its storage path unless it already exists there.
func (b *Builder) Build(baseURL string, targetDir string, copy bool) error {
	if err := b.CheckSource(); err != nil {
		return err
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ErrUnsupportedScheme{Scheme: parsed.Scheme}
	}

	// synthesized entries are spliced into a fresh list, the list being
	// walked is never mutated
	resolved := make([]*profile.Library, 0, len(b.Profile.Libraries))

	for _, library := range b.Profile.Libraries {
		resolved = append(resolved, library)

		coord, err := library.Coordinate()
		if err != nil {
			return err
		}
		relPath := coord.Path()
		file := filepath.Join(b.Dir, "libraries", filepath.FromSlash(relPath))

		switch {
		case library.Required():
			// physical presence was asserted by CheckSource

		case library.Downloads == nil && IsLoaderUniversal(coord):
			split, err := b.checkSplitBuild(file)
			if err != nil {
				return err
			}
			if split {
				variants, err := b.resolveSplitVariants(library, coord, baseURL, targetDir, copy)
				if err != nil {
					return err
				}
				resolved = append(resolved, variants...)

				// the variant entries carry the artifacts, a combined
				// jar is optional in split builds and only resolved
				// when the installer dropped one
				if ok, _ := afero.Exists(b.Fs, file); !ok {
					continue
				}
			} else {
				// fall back to the single combined universal jar
				file, err = b.Source.UniversalJar()
				if err != nil {
					return err
				}
			}

		default:
			// already resolved
			continue
		}

		if ok, _ := afero.Exists(b.Fs, file); !ok {
			return &ErrMissingFile{Path: file}
		}

		download, err := b.buildArtifactDownload(file, relPath, baseURL)
		if err != nil {
			return err
		}
		library.Downloads = &profile.Downloads{Artifact: download}

		if copy {
			if err := b.copyLibraryFile(file, relPath, targetDir); err != nil {
				return err
			}
		}
	}

	b.Profile.Libraries = resolved
	return nil
}

// checkSplitBuild reports whether the loader build was split into
// universal/server/client variant jars. Universal and server variants
// without the client jar are a fatal inconsistency.
func (b *Builder) checkSplitBuild(file string) (bool, error) {
	universalJar := variantFile(file, "universal")
	serverJar := variantFile(file, "server")
	clientJar := variantFile(file, "client")

	universalExists, _ := afero.Exists(b.Fs, universalJar)
	serverExists, _ := afero.Exists(b.Fs, serverJar)
	if !universalExists || !serverExists {
		return false, nil
	}

	if ok, _ := afero.Exists(b.Fs, clientJar); !ok {
		return false, &ErrInconsistentSplitBuild{ClientJar: clientJar}
	}
	return true, nil
}

// resolveSplitVariants synthesizes the universal and client entries of a
// split build, in declaration order right after the original library
func (b *Builder) resolveSplitVariants(
	library *profile.Library,
	coord maven.Coordinate,
	baseURL string,
	targetDir string,
	copy bool,
) ([]*profile.Library, error) {
	variants := make([]*profile.Library, 0, len(splitTags))

	for _, tag := range splitTags {
		tagged := coord.WithTag(tag)
		relPath := tagged.Path()
		file := filepath.Join(b.Dir, "libraries", filepath.FromSlash(relPath))

		if ok, _ := afero.Exists(b.Fs, file); !ok {
			return nil, &ErrMissingFile{Path: file}
		}

		download, err := b.buildArtifactDownload(file, relPath, baseURL)
		if err != nil {
			return nil, err
		}
		if copy {
			if err := b.copyLibraryFile(file, relPath, targetDir); err != nil {
				return nil, err
			}
		}

		variants = append(variants, &profile.Library{
			Name:      library.Name + "-" + tag,
			Downloads: &profile.Downloads{Artifact: download},
		})
	}

	return variants, nil
}

// UpdateFromInstallProfile appends the build-environment libraries named
// by installer metadata: the extra/slim/srg variants of the shared
// client dependency. A profile missing any of those files would be
// unusable, so absence is fatal. No-op without an MCP_VERSION entry.
func (b *Builder) UpdateFromInstallProfile(
	install *profile.InstallProfile,
	baseURL string,
	targetDir string,
	copy bool,
) error {
	if install == nil || install.Data == nil {
		return nil
	}
	mcp, ok := install.Data["MCP_VERSION"]
	if !ok {
		return nil
	}

	version := b.Source.GameVersion() + "-" + strings.Trim(mcp.Client, "'\"")

	for _, tag := range mcpTags {
		coord := maven.Coordinate{
			Group:    "net.minecraft",
			Artifact: "client",
			Version:  version,
			Tag:      tag,
		}
		relPath := coord.Path()
		file := filepath.Join(b.Dir, "libraries", filepath.FromSlash(relPath))

		if ok, _ := afero.Exists(b.Fs, file); !ok {
			return &ErrMissingFile{Path: file}
		}

		download, err := b.buildArtifactDownload(file, relPath, baseURL)
		if err != nil {
			return err
		}
		if copy {
			if err := b.copyLibraryFile(file, relPath, targetDir); err != nil {
				return err
			}
		}

		b.Profile.Libraries = append(b.Profile.Libraries, &profile.Library{
			Name:      coord.String(),
			ClientReq: true,
			Downloads: &profile.Downloads{Artifact: download},
		})
	}

	return nil
}

// CheckTarget is an advisory health check: it reports whether every
// required library is already present under the target tree. Missing
// paths are logged, never raised. Used to decide if a cached profile can
// be reused without rebuilding.
func (b *Builder) CheckTarget(targetDir string) bool {
	success := true

	for _, library := range b.Profile.Libraries {
		if !library.Required() {
			continue
		}
		relPath, err := library.Path()
		if err != nil {
			success = false
			continue
		}
		file := filepath.Join(targetDir, filepath.FromSlash(relPath))
		if ok, _ := afero.Exists(b.Fs, file); !ok {
			success = false
			if b.Logger != nil {
				b.Logger.Warn("missing library: " + file)
			}
		}
	}

	return success
}

func (b *Builder) buildArtifactDownload(file string, relPath string, baseURL string) (*profile.ArtifactDownload, error) {
	info, err := b.Fs.Stat(file)
	if err != nil {
		return nil, err
	}
	sum, err := sha1File(b.Fs, file)
	if err != nil {
		return nil, err
	}

	return &profile.ArtifactDownload{
		Size: info.Size(),
		Sha1: sum,
		Path: relPath,
		URL:  joinURL(baseURL, relPath),
	}, nil
}

// copyLibraryFile mirrors a resolved artifact into the target tree.
// The copy is gated on existence only, not on content.
func (b *Builder) copyLibraryFile(file string, relPath string, targetDir string) error {
	target := filepath.Join(targetDir, filepath.FromSlash(relPath))
	if ok, _ := afero.Exists(b.Fs, target); ok {
		return nil
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

// variantFile inserts a `-tag` suffix before the file extension
func variantFile(file string, tag string) string {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + "-" + tag + ext
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

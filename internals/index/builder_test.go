package index

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supdate/supdate/internals/packaging"
	"github.com/supdate/supdate/internals/profile"
)

func writePackage(t *testing.T, fs afero.Fs, dir string, id string) {
	t.Helper()
	pkg := &packaging.Package{
		Profile: profile.Profile{ID: id, MainClass: "net.minecraft.client.main.Main"},
		Name:    id,
		Version: "20230401.0",
		Files: []packaging.PackageFile{
			{Size: 3, Sha1: "abc", Path: "mods/a.jar", URL: "https://packages.example.com/" + id + "/mods/a.jar"},
		},
	}
	require.NoError(t, pkg.WriteFile(fs, dir+"/modpack.json"))
}

func emptyManifest() *Manifest {
	return &Manifest{
		Version:  "",
		Launcher: Launcher{Version: "0.0.0", URL: "https://example.com/"},
		Packages: make(map[string]Package),
	}
}

func newTestBuilder(fs afero.Fs, now time.Time) *Builder {
	return &Builder{
		Fs:          fs,
		PackagesDir: "/web/packages",
		PackagesURL: "https://packages.example.com",
		Now:         now,
	}
}

func TestBuildIndex(t *testing.T) {
	now := time.Date(2023, 4, 2, 15, 0, 0, 0, time.UTC)

	t.Run("summarizes new packages", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writePackage(t, fs, "/web/packages/alpha", "alpha")
		writePackage(t, fs, "/web/packages/beta", "beta")

		b := newTestBuilder(fs, now)
		manifest, err := b.Build(emptyManifest())
		require.NoError(t, err)

		assert.Equal(t, "20230402.0", manifest.Version)
		assert.Equal(t, Launcher{Version: "0.0.0", URL: "https://example.com/"}, manifest.Launcher)
		require.Len(t, manifest.Packages, 2)

		alpha := manifest.Packages["alpha"]
		assert.Equal(t, "alpha", alpha.Name)
		assert.Equal(t, "20230402.0", alpha.Version)
		assert.Equal(t, "https://packages.example.com/alpha/", alpha.URL)
		assert.Equal(t, "modpack.json", alpha.Path)
		assert.NotEmpty(t, alpha.Sha1)
		assert.NotZero(t, alpha.Size)

		// the package manifest itself was restamped
		pkg, err := packaging.ReadFile(fs, "/web/packages/alpha/modpack.json")
		require.NoError(t, err)
		assert.Equal(t, "20230402.0", pkg.Version)
		assert.Equal(t, Timestamp(now), pkg.Time)
	})

	t.Run("unchanged packages are carried forward", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writePackage(t, fs, "/web/packages/alpha", "alpha")

		b := newTestBuilder(fs, now)
		first, err := b.Build(emptyManifest())
		require.NoError(t, err)

		// nothing changed in between, so the entry survives verbatim
		later := newTestBuilder(fs, now.Add(2*time.Hour))
		second, err := later.Build(first)
		require.NoError(t, err)

		assert.Equal(t, first.Packages["alpha"], second.Packages["alpha"])
		assert.Equal(t, "20230402.1", second.Version)
	})

	t.Run("changed package gets the next version", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writePackage(t, fs, "/web/packages/alpha", "alpha")

		b := newTestBuilder(fs, now)
		first, err := b.Build(emptyManifest())
		require.NoError(t, err)

		pkg, err := packaging.ReadFile(fs, "/web/packages/alpha/modpack.json")
		require.NoError(t, err)
		pkg.Files = append(pkg.Files, packaging.PackageFile{Size: 1, Sha1: "def", Path: "mods/b.jar", URL: "u"})
		require.NoError(t, pkg.WriteFile(fs, "/web/packages/alpha/modpack.json"))

		second, err := newTestBuilder(fs, now).Build(first)
		require.NoError(t, err)

		assert.Equal(t, "20230402.1", second.Packages["alpha"].Version)
		assert.NotEqual(t, first.Packages["alpha"].Sha1, second.Packages["alpha"].Sha1)
	})

	t.Run("directory without a manifest is skipped", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writePackage(t, fs, "/web/packages/alpha", "alpha")
		require.NoError(t, fs.MkdirAll("/web/packages/broken", 0755))

		manifest, err := newTestBuilder(fs, now).Build(emptyManifest())
		require.NoError(t, err)

		assert.Len(t, manifest.Packages, 1)
		assert.Contains(t, manifest.Packages, "alpha")
	})
}

func TestBuildIndexIsIdempotent(t *testing.T) {
	now := time.Date(2023, 4, 2, 15, 0, 0, 0, time.UTC)
	fs := afero.NewMemMapFs()
	writePackage(t, fs, "/web/packages/alpha", "alpha")

	b := newTestBuilder(fs, now)
	first, err := b.Build(emptyManifest())
	require.NoError(t, err)
	require.NoError(t, first.WriteFile(fs, "/web/packages/index.json"))

	prev, err := ReadManifest(fs, "/web/packages/index.json")
	require.NoError(t, err)

	second, err := newTestBuilder(fs, now).Build(prev)
	require.NoError(t, err)

	// identical aside from the index version advancing
	assert.Equal(t, first.Packages, second.Packages)
	assert.Equal(t, first.Launcher, second.Launcher)
	assert.Equal(t, first.Time, second.Time)
}

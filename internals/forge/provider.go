package forge

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/supdate/supdate/internals/cmdlog"
	"github.com/supdate/supdate/internals/libraries"
	"github.com/supdate/supdate/internals/profile"
	"github.com/supdate/supdate/internals/vanilla"
)

// Provider builds and caches forge launch profiles. Each build gets its
// own subdirectory under Dir with the installer output, the resolved
// profile document sits next to it.
type Provider struct {
	Fs           afero.Fs
	Dir          string
	LibrariesDir string
	LibrariesURL string
	Vanilla      *vanilla.Client
	Client       *http.Client
	Logger       *cmdlog.Logger
}

func NewProvider(dir string, librariesDir string, librariesURL string) *Provider {
	return &Provider{
		Fs:           afero.NewOsFs(),
		Dir:          dir,
		LibrariesDir: librariesDir,
		LibrariesURL: strings.TrimRight(librariesURL, "/"),
		Vanilla:      vanilla.New(),
		Client:       http.DefaultClient,
		Logger:       cmdlog.New(),
	}
}

func (p *Provider) Name() string { return "forge" }

func (p *Provider) buildDir(version string) string {
	return filepath.Join(p.Dir, version)
}

// ProfilePath is where the resolved profile for a build is cached
func (p *Provider) ProfilePath(version string) string {
	return filepath.Join(p.buildDir(version), "forge-"+version+".json")
}

func (p *Provider) AutoProfile(ctx context.Context, instanceDir string, version string, forceBuild bool) (string, *profile.Profile, error) {
	if version == "" {
		detected, err := FindVersion(p.Fs, instanceDir)
		if err != nil {
			return "", nil, err
		}
		version = detected
	}

	game, forgeVersion, err := SplitVersion(version)
	if err != nil {
		return "", nil, err
	}

	path := p.ProfilePath(version)
	if !forceBuild {
		if ok, _ := afero.Exists(p.Fs, path); ok {
			cached, err := p.cachedProfile(path, version)
			if err == nil {
				return path, cached, nil
			}
			p.Logger.Warn("cached forge profile unusable, rebuilding: " + err.Error())
		}
	}

	built, err := p.buildProfile(ctx, game, forgeVersion)
	if err != nil {
		return "", nil, err
	}
	if err := built.WriteFile(p.Fs, path); err != nil {
		return "", nil, err
	}
	return path, built, nil
}

// cachedProfile reads a previously built profile and verifies its
// library files still exist in the published tree
func (p *Provider) cachedProfile(path string, version string) (*profile.Profile, error) {
	cached, err := profile.ReadFile(p.Fs, path)
	if err != nil {
		return nil, err
	}

	check := &libraries.Builder{
		Profile: cached,
		Fs:      p.Fs,
		Dir:     p.buildDir(version),
		Logger:  p.Logger,
	}
	if !check.CheckTarget(p.LibrariesDir) {
		return nil, errors.Errorf("library files for %s are missing", version)
	}

	return cached, nil
}

func (p *Provider) buildProfile(ctx context.Context, game string, forgeVersion string) (*profile.Profile, error) {
	version := game + "-" + forgeVersion
	dir := p.buildDir(version)
	if err := p.Fs.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	p.Logger.Headline("building forge " + version)

	installer := NewInstaller(game, forgeVersion, dir)
	installer.Fs = p.Fs
	installer.Client = p.Client
	installer.Logger = p.Logger

	if err := installer.Install(ctx, true); err != nil {
		return nil, err
	}

	full, err := installer.FullProfile(ctx, p.Vanilla)
	if err != nil {
		return nil, err
	}
	install, err := installer.InstallProfile()
	if err != nil {
		return nil, err
	}

	builder := &libraries.Builder{
		Profile: full,
		Fs:      p.Fs,
		Dir:     dir,
		Source:  installer,
		Logger:  p.Logger,
	}
	if err := builder.Build(p.LibrariesURL, p.LibrariesDir, true); err != nil {
		return nil, err
	}
	if err := builder.UpdateFromInstallProfile(install, p.LibrariesURL, p.LibrariesDir, true); err != nil {
		return nil, err
	}

	return full, nil
}

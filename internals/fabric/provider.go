package fabric

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/supdate/supdate/internals/cmdlog"
	"github.com/supdate/supdate/internals/profile"
	"github.com/supdate/supdate/internals/vanilla"
)

// ErrVersionRequired is returned when AutoProfile is called without a
// version, fabric instances carry no detectable version marker
var ErrVersionRequired = errors.New("fabric needs an explicit minecraft or minecraft-loader version")

// ErrNoStableLoader is returned when the meta service lists no loader
// marked stable for a minecraft version
type ErrNoStableLoader struct {
	GameVersion string
}

func (e *ErrNoStableLoader) Error() string {
	return fmt.Sprintf("no stable fabric loader for %s", e.GameVersion)
}

// Provider builds and caches fabric launch profiles. The resolved
// profile document is cached in the instance directory.
type Provider struct {
	Fs      afero.Fs
	Meta    *MetaClient
	Vanilla *vanilla.Client
	Client  *http.Client
	Logger  *cmdlog.Logger
}

func NewProvider() *Provider {
	return &Provider{
		Fs:      afero.NewOsFs(),
		Meta:    NewMetaClient(),
		Vanilla: vanilla.New(),
		Client:  http.DefaultClient,
		Logger:  cmdlog.New(),
	}
}

func (p *Provider) Name() string { return "fabric" }

// FindVersion resolves a version argument to a game/loader pair. A
// combined "game-loader" pair is split as is, a bare minecraft version
// gets the newest loader both sides mark stable.
func (p *Provider) FindVersion(ctx context.Context, version string) (string, string, error) {
	if game, loader, ok := strings.Cut(version, "-"); ok {
		return game, loader, nil
	}

	loaders, err := p.Meta.CompatibleLoaders(ctx, version)
	if err != nil {
		return "", "", err
	}
	for _, candidate := range loaders {
		if candidate.Loader.Stable && candidate.Intermediary.Stable {
			return candidate.Intermediary.Version, candidate.Loader.Version, nil
		}
	}

	return "", "", &ErrNoStableLoader{GameVersion: version}
}

func (p *Provider) profilePath(instanceDir string, game string, loader string) string {
	return filepath.Join(instanceDir, fmt.Sprintf("fabric-%s-%s.json", game, loader))
}

func (p *Provider) AutoProfile(ctx context.Context, instanceDir string, version string, forceBuild bool) (string, *profile.Profile, error) {
	if version == "" {
		return "", nil, ErrVersionRequired
	}

	game, loader, err := p.FindVersion(ctx, version)
	if err != nil {
		return "", nil, err
	}

	path := p.profilePath(instanceDir, game, loader)
	if !forceBuild {
		if ok, _ := afero.Exists(p.Fs, path); ok {
			cached, err := profile.ReadFile(p.Fs, path)
			if err == nil {
				return path, cached, nil
			}
			p.Logger.Warn("cached fabric profile unusable, rebuilding: " + err.Error())
		}
	}

	built, err := p.buildProfile(ctx, game, loader)
	if err != nil {
		return "", nil, err
	}
	if err := built.WriteFile(p.Fs, path); err != nil {
		return "", nil, err
	}
	return path, built, nil
}

func (p *Provider) buildProfile(ctx context.Context, game string, loader string) (*profile.Profile, error) {
	p.Logger.Headline(fmt.Sprintf("building fabric %s for minecraft %s", loader, game))

	raw, err := p.Meta.LoaderProfileJSON(ctx, game, loader)
	if err != nil {
		return nil, err
	}

	fabricProfile, err := profile.FromJSON(raw)
	if err != nil {
		return nil, err
	}

	resolver := &Resolver{HTTP: p.Client}
	if err := resolver.Resolve(ctx, fabricProfile); err != nil {
		return nil, err
	}

	if fabricProfile.InheritsFrom != game {
		return nil, fmt.Errorf("fabric profile inherits from %q, want %q", fabricProfile.InheritsFrom, game)
	}

	vanillaProfile, err := p.Vanilla.Profile(ctx, game)
	if err != nil {
		return nil, err
	}

	return profile.Merge(vanillaProfile, fabricProfile), nil
}

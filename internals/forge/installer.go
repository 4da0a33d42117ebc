package forge

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/supdate/supdate/internals/cmdlog"
	"github.com/supdate/supdate/internals/downloadmgr"
	"github.com/supdate/supdate/internals/maven"
	"github.com/supdate/supdate/internals/profile"
	"github.com/supdate/supdate/internals/vanilla"
)

// legacy builds keep version.json in the universal jar, from 1.13 on it
// moved into the installer jar
var legacyVersions = maven.MustParseRange("[, 1.13)")

// Installer wraps one forge installer jar. It can fetch the jar from
// the forge maven, run it and read the profile documents it carries.
type Installer struct {
	*Build
	Client *http.Client
	Logger *cmdlog.Logger
}

func NewInstaller(game string, version string, dir string) *Installer {
	return &Installer{
		Build:  NewBuild(game, version, dir),
		Client: http.DefaultClient,
	}
}

func (i *Installer) Download(ctx context.Context) error {
	item := downloadmgr.NewHTTPItem(i.InstallerURL(), i.InstallerJar())
	item.Client = i.Client
	return item.Download(ctx)
}

// Install runs "java -jar <installer> --installServer" in the build
// directory. With autoDownload the installer jar is fetched first if it
// is not already there.
func (i *Installer) Install(ctx context.Context, autoDownload bool) error {
	jar := i.InstallerJar()
	if ok, _ := afero.Exists(i.Fs, jar); autoDownload && !ok {
		if i.Logger != nil {
			i.Logger.Log("downloading " + i.InstallerURL())
		}
		if err := i.Download(ctx); err != nil {
			return err
		}
	}

	abs, err := filepath.Abs(jar)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "java", "-jar", abs, "--installServer")
	cmd.Dir = i.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return &ErrInstallerFailed{Jar: jar, ExitCode: exit.ExitCode()}
		}
		return errors.Wrap(err, "running forge installer")
	}
	return nil
}

// Profile reads the forge version document from the jar that carries
// it for this build's minecraft version.
func (i *Installer) Profile() (*profile.Profile, error) {
	jar := i.InstallerJar()
	if legacyVersions.ContainsString(i.Game) {
		universal, err := i.UniversalJar()
		if err != nil {
			return nil, err
		}
		jar = universal
	}

	data, err := i.readFileFromJar(jar, versionJSON)
	if err != nil {
		return nil, err
	}
	return profile.FromJSON(data)
}

// InstallProfile reads the installer metadata document. Older
// installers do not carry one, that is not an error.
func (i *Installer) InstallProfile() (*profile.InstallProfile, error) {
	data, err := i.readFileFromJar(i.InstallerJar(), installJSON)
	if err != nil {
		var noEntry *ErrNoJarEntry
		if errors.As(err, &noEntry) {
			return nil, nil
		}
		return nil, err
	}

	install := &profile.InstallProfile{}
	if err := json.Unmarshal(data, install); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", installJSON)
	}
	return install, nil
}

// FullProfile merges the forge version document over the vanilla
// profile it inherits from.
func (i *Installer) FullProfile(ctx context.Context, client *vanilla.Client) (*profile.Profile, error) {
	forgeProfile, err := i.Profile()
	if err != nil {
		return nil, err
	}
	if forgeProfile.InheritsFrom != i.Game {
		return nil, &ErrInheritanceMismatch{
			InheritsFrom: forgeProfile.InheritsFrom,
			GameVersion:  i.Game,
		}
	}

	vanillaProfile, err := client.Profile(ctx, i.Game)
	if err != nil {
		return nil, err
	}

	return profile.Merge(vanillaProfile, forgeProfile), nil
}

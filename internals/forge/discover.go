package forge

import (
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"
)

const settingsFile = "settings.cfg"

// FindVersion detects the forge build an instance was made for. FTB
// style server packs carry a settings.cfg with MCVER and FORGEVER,
// otherwise a forge-*.jar lying in the instance root gives it away.
func FindVersion(fs afero.Fs, instanceDir string) (string, error) {
	if version, ok := versionFromSettings(fs, instanceDir); ok {
		if _, _, err := SplitVersion(version); err != nil {
			return "", err
		}
		return version, nil
	}

	if version, ok := versionFromJars(fs, instanceDir); ok {
		if _, _, err := SplitVersion(version); err != nil {
			return "", err
		}
		return version, nil
	}

	return "", &ErrVersionNotDetected{Dir: instanceDir}
}

// SplitVersion splits a combined "minecraft-forge" version pair
func SplitVersion(version string) (string, string, error) {
	game, forgeVersion, ok := strings.Cut(version, "-")
	if !ok || game == "" || forgeVersion == "" || strings.Contains(forgeVersion, "-") {
		return "", "", &ErrMalformedVersion{Version: version}
	}
	return game, forgeVersion, nil
}

func versionFromSettings(fs afero.Fs, dir string) (string, bool) {
	data, err := afero.ReadFile(fs, filepath.Join(dir, settingsFile))
	if err != nil {
		return "", false
	}

	props, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return "", false
	}

	// settings.cfg lines end with a semicolon
	game := strings.TrimRight(strings.TrimSpace(props.GetString("MCVER", "")), ";")
	forgeVersion := strings.TrimRight(strings.TrimSpace(props.GetString("FORGEVER", "")), ";")
	if game == "" || forgeVersion == "" {
		return "", false
	}

	return game + "-" + forgeVersion, true
}

func versionFromJars(fs afero.Fs, dir string) (string, bool) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", false
	}

	found := map[string]struct{}{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "forge-") || !strings.HasSuffix(name, ".jar") {
			continue
		}

		version := strings.TrimSuffix(strings.TrimPrefix(name, "forge-"), ".jar")
		version = strings.TrimSuffix(version, "-installer")
		version = strings.TrimSuffix(version, "-universal")
		found[version] = struct{}{}
	}

	// only a single candidate is trustworthy
	if len(found) != 1 {
		return "", false
	}
	for version := range found {
		return version, true
	}
	return "", false
}

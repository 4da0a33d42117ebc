package profile

import "encoding/json"

// Merge combines a base (vanilla) profile with an overlay (loader)
// profile into a new self-contained profile. Neither input is mutated.
//
// On every collision the overlay wins: scalar fields are replaced when
// the overlay value is set, map fields are shallow-merged with overlay
// keys winning, and the library union keeps the overlay's entry. The
// merged library order is the overlay's own order followed by the
// base-only entries. Game arguments concatenate base first, overlay
// second. InheritsFrom is always cleared, the result no longer refers
// to a parent profile.
func Merge(base *Profile, overlay *Profile) *Profile {
	merged := *base

	// scalars
	if overlay.ID != "" {
		merged.ID = overlay.ID
	}
	if overlay.Time != "" {
		merged.Time = overlay.Time
	}
	if overlay.ReleaseTime != "" {
		merged.ReleaseTime = overlay.ReleaseTime
	}
	if overlay.Type != "" {
		merged.Type = overlay.Type
	}
	if overlay.MainClass != "" {
		merged.MainClass = overlay.MainClass
	}
	if overlay.Jar != "" {
		merged.Jar = overlay.Jar
	}
	if overlay.Assets != "" {
		merged.Assets = overlay.Assets
	}
	if overlay.MinimumLauncherVersion != 0 {
		merged.MinimumLauncherVersion = overlay.MinimumLauncherVersion
	}
	if overlay.AssetIndex != nil {
		index := *overlay.AssetIndex
		merged.AssetIndex = &index
	}

	merged.Logging = mergeRawMaps(base.Logging, overlay.Logging)
	merged.Downloads = mergeJarMaps(base.Downloads, overlay.Downloads)
	merged.Libraries = mergeLibraries(base.Libraries, overlay.Libraries)

	merged.Arguments = base.Arguments.clone()
	if overlay.Arguments != nil {
		if merged.Arguments == nil {
			merged.Arguments = &Arguments{}
		}
		merged.Arguments.Game = append(merged.Arguments.Game, overlay.Arguments.Game...)
		merged.Arguments.JVM = append(merged.Arguments.JVM, overlay.Arguments.JVM...)
	}

	if merged.Arguments != nil {
		// the argument list is authoritative, ignore raw string values
		merged.MinecraftArguments = merged.Arguments.JoinGame()
	} else if overlay.MinecraftArguments != "" {
		if base.MinecraftArguments != "" {
			merged.MinecraftArguments = base.MinecraftArguments + " " + overlay.MinecraftArguments
		} else {
			merged.MinecraftArguments = overlay.MinecraftArguments
		}
	}

	// a merged profile is self-contained
	merged.InheritsFrom = ""

	return &merged
}

// mergeLibraries unions by coordinate name. Overlay entries win on
// collision and keep their own order, base-only entries follow.
func mergeLibraries(base []*Library, overlay []*Library) []*Library {
	merged := make([]*Library, 0, len(base)+len(overlay))
	inOverlay := make(map[string]struct{}, len(overlay))

	for _, library := range overlay {
		merged = append(merged, library.clone())
		inOverlay[library.Name] = struct{}{}
	}
	for _, library := range base {
		if _, ok := inOverlay[library.Name]; ok {
			continue
		}
		merged = append(merged, library.clone())
	}

	return merged
}

func mergeRawMaps(base map[string]json.RawMessage, overlay map[string]json.RawMessage) map[string]json.RawMessage {
	if base == nil && overlay == nil {
		return nil
	}
	merged := make(map[string]json.RawMessage, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overlay {
		merged[key] = value
	}
	return merged
}

func mergeJarMaps(base map[string]JarDownload, overlay map[string]JarDownload) map[string]JarDownload {
	if base == nil && overlay == nil {
		return nil
	}
	merged := make(map[string]JarDownload, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overlay {
		merged[key] = value
	}
	return merged
}

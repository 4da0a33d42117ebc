// Package profile models the version descriptors ("profiles") of vanilla
// and loader builds, and implements the merge used to combine them.
package profile

import (
	"encoding/json"
	"fmt"

	"github.com/supdate/supdate/internals/maven"
)

// Profile is a versioned descriptor of a runnable game build. Optional
// fields are omitted on write when they hold their zero value and read
// back as that zero value when absent.
type Profile struct {
	ID                     string                     `json:"id"`
	Time                   string                     `json:"time,omitempty"`
	ReleaseTime            string                     `json:"releaseTime,omitempty"`
	Type                   string                     `json:"type,omitempty"`
	MainClass              string                     `json:"mainClass,omitempty"`
	Logging                map[string]json.RawMessage `json:"logging,omitempty"`
	Arguments              *Arguments                 `json:"arguments,omitempty"`
	MinecraftArguments     string                     `json:"minecraftArguments,omitempty"`
	MinimumLauncherVersion float64                    `json:"minimumLauncherVersion,omitempty"`
	Libraries              []*Library                 `json:"libraries,omitempty"`
	Jar                    string                     `json:"jar,omitempty"`
	InheritsFrom           string                     `json:"inheritsFrom,omitempty"`
	AssetIndex             *AssetIndex                `json:"assetIndex,omitempty"`
	Downloads              map[string]JarDownload     `json:"downloads,omitempty"`
	Assets                 string                     `json:"assets,omitempty"`
}

// AssetIndex points to the asset index of a build
type AssetIndex struct {
	ID        string `json:"id"`
	Sha1      string `json:"sha1,omitempty"`
	Size      int64  `json:"size,omitempty"`
	TotalSize int64  `json:"totalSize,omitempty"`
	URL       string `json:"url,omitempty"`
}

// JarDownload is a client/server jar pointer in a vanilla profile
type JarDownload struct {
	Sha1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url"`
}

// Library is one entry of a profile's library list
type Library struct {
	Name      string     `json:"name"`
	URL       string     `json:"url,omitempty"`
	Checksums []string   `json:"checksums,omitempty"`
	ServerReq bool       `json:"serverreq,omitempty"`
	ClientReq bool       `json:"clientreq,omitempty"`
	Downloads *Downloads `json:"downloads,omitempty"`
}

// Downloads holds the resolved artifacts of a library
type Downloads struct {
	Artifact    *ArtifactDownload            `json:"artifact,omitempty"`
	Classifiers map[string]*ArtifactDownload `json:"classifiers,omitempty"`
}

// ArtifactDownload is a fully resolved pointer to a fetchable file
type ArtifactDownload struct {
	Size int64  `json:"size"`
	Sha1 string `json:"sha1"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// InstallProfile is the optional metadata an installer emits next to the
// version profile. Data carries build-environment version strings.
type InstallProfile struct {
	Version string                `json:"version,omitempty"`
	Data    map[string]SidedValue `json:"data,omitempty"`
}

// SidedValue is a client/server pair inside installer metadata
type SidedValue struct {
	Client string `json:"client,omitempty"`
	Server string `json:"server,omitempty"`
}

// Required reports whether the library is flagged as a required
// physical file (client or server side)
func (l *Library) Required() bool {
	return l.ClientReq || l.ServerReq
}

// Coordinate parses the library name
func (l *Library) Coordinate() (maven.Coordinate, error) {
	return maven.Parse(l.Name)
}

// Path returns the storage path derived from the library name
func (l *Library) Path() (string, error) {
	coord, err := l.Coordinate()
	if err != nil {
		return "", err
	}
	return coord.Path(), nil
}

func (l *Library) clone() *Library {
	dup := *l
	if l.Checksums != nil {
		dup.Checksums = append([]string(nil), l.Checksums...)
	}
	if l.Downloads != nil {
		downloads := *l.Downloads
		if l.Downloads.Artifact != nil {
			artifact := *l.Downloads.Artifact
			downloads.Artifact = &artifact
		}
		if l.Downloads.Classifiers != nil {
			downloads.Classifiers = make(map[string]*ArtifactDownload, len(l.Downloads.Classifiers))
			for key, value := range l.Downloads.Classifiers {
				artifact := *value
				downloads.Classifiers[key] = &artifact
			}
		}
		dup.Downloads = &downloads
	}
	return &dup
}

// Validate checks every library name parses as a coordinate and that no
// coordinate name appears twice. Deduplication is a merge concern, a
// plain document carrying duplicates is broken input.
func (p *Profile) Validate() error {
	seen := make(map[string]struct{}, len(p.Libraries))
	for _, library := range p.Libraries {
		if _, err := library.Coordinate(); err != nil {
			return err
		}
		if _, ok := seen[library.Name]; ok {
			return fmt.Errorf("profile %q: duplicate library %q", p.ID, library.Name)
		}
		seen[library.Name] = struct{}{}
	}
	return nil
}

// SyncArguments recomputes MinecraftArguments from the argument list.
// Profiles with an argument list always keep both representations in sync.
func (p *Profile) SyncArguments() {
	if p.Arguments != nil {
		p.MinecraftArguments = p.Arguments.JoinGame()
	}
}

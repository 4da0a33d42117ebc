// Package vanilla is a client for the vanilla version-manifest service.
// It is a plain fetch-by-id lookup: give it a game version, get back the
// profile document of that build.
package vanilla

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/supdate/supdate/internals/profile"
)

// DefaultManifestURL is the version manifest of the official launcher
const DefaultManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

// ErrVersionNotFound is returned when the manifest has no entry for the
// requested game version
type ErrVersionNotFound struct {
	Version string
}

func (e *ErrVersionNotFound) Error() string {
	return fmt.Sprintf("vanilla version %q not found in the version manifest", e.Version)
}

// Version is one entry of the version manifest
type Version struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

// Manifest is the top level version listing
type Manifest struct {
	Latest   map[string]string `json:"latest"`
	Versions []Version         `json:"versions"`
}

// Get finds a version by id
func (m *Manifest) Get(id string) (*Version, bool) {
	for i := range m.Versions {
		if m.Versions[i].ID == id {
			return &m.Versions[i], true
		}
	}
	return nil, false
}

// Client fetches version profiles
type Client struct {
	// HTTP is the internal http client
	HTTP *http.Client
	// ManifestURL defaults to DefaultManifestURL
	ManifestURL string
}

// New returns a new Client using the default http client
func New() *Client {
	return &Client{
		HTTP:        http.DefaultClient,
		ManifestURL: DefaultManifestURL,
	}
}

// Manifest fetches the full version listing
func (c *Client) Manifest(ctx context.Context) (*Manifest, error) {
	manifest := &Manifest{}
	if err := c.getJSON(ctx, c.ManifestURL, manifest); err != nil {
		return nil, errors.Wrap(err, "fetching vanilla version manifest")
	}
	return manifest, nil
}

// Profile fetches the profile of a single game version
func (c *Client) Profile(ctx context.Context, version string) (*profile.Profile, error) {
	manifest, err := c.Manifest(ctx)
	if err != nil {
		return nil, err
	}

	entry, ok := manifest.Get(version)
	if !ok {
		return nil, &ErrVersionNotFound{Version: version}
	}

	raw, err := c.get(ctx, entry.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching vanilla profile %s", version)
	}

	p, err := profile.FromJSON(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid vanilla profile %s", version)
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %s", url, res.Status)
	}

	return io.ReadAll(res.Body)
}

func (c *Client) getJSON(ctx context.Context, url string, v interface{}) error {
	raw, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

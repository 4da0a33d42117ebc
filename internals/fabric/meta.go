// Package fabric builds launch profiles for fabric based instances
// using the fabric meta service. Unlike forge there is nothing to
// install, the loader profile comes straight from the API and its
// libraries are resolved against the fabric maven.
package fabric

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/supdate/supdate/internals/ownhttp"
)

const DefaultMetaURL = "https://meta.fabricmc.net"

type Game struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

type Intermediary struct {
	Maven   string `json:"maven"`
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

type Loader struct {
	Separator string `json:"separator"`
	Build     int    `json:"build"`
	Maven     string `json:"maven"`
	Version   string `json:"version"`
	Stable    bool   `json:"stable"`
}

// CompatibleLoader is one loader/intermediary pair usable with a given
// minecraft version
type CompatibleLoader struct {
	Loader       Loader       `json:"loader"`
	Intermediary Intermediary `json:"intermediary"`
}

// MetaClient talks to the fabric meta service
type MetaClient struct {
	HTTP *http.Client
	URL  string
}

func NewMetaClient() *MetaClient {
	return &MetaClient{
		HTTP: ownhttp.NewThrottled(10),
		URL:  DefaultMetaURL,
	}
}

func (c *MetaClient) GameVersions(ctx context.Context) ([]Game, error) {
	var games []Game
	if err := c.getJSON(ctx, "/v2/versions/game", &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *MetaClient) LoaderVersions(ctx context.Context) ([]Loader, error) {
	var loaders []Loader
	if err := c.getJSON(ctx, "/v2/versions/loader", &loaders); err != nil {
		return nil, err
	}
	return loaders, nil
}

// CompatibleLoaders lists the loaders usable with a minecraft version,
// newest first
func (c *MetaClient) CompatibleLoaders(ctx context.Context, gameVersion string) ([]CompatibleLoader, error) {
	var loaders []CompatibleLoader
	if err := c.getJSON(ctx, "/v2/versions/loader/"+gameVersion, &loaders); err != nil {
		return nil, err
	}
	return loaders, nil
}

// LoaderProfileJSON fetches the raw launcher profile document for a
// game/loader pair
func (c *MetaClient) LoaderProfileJSON(ctx context.Context, gameVersion string, loaderVersion string) ([]byte, error) {
	path := fmt.Sprintf("/v2/versions/loader/%s/%s/profile/json", gameVersion, loaderVersion)
	return c.get(ctx, path)
}

func (c *MetaClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+path, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fabric meta returned %s for %s", res.Status, path)
	}

	return io.ReadAll(res.Body)
}

func (c *MetaClient) getJSON(ctx context.Context, path string, v interface{}) error {
	data, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "parsing fabric meta response for %s", path)
	}
	return nil
}

package provider

import (
	"context"

	"github.com/supdate/supdate/internals/profile"
)

// Provider resolves the launch profile for a modpack instance.
type Provider interface {
	Name() string

	// AutoProfile returns the profile for the given loader version,
	// reusing a cached build when its files are still intact. version
	// may be empty, in which case the provider detects it from the
	// instance directory. forceBuild skips the cache entirely. The
	// returned path points at the profile document on disk.
	AutoProfile(ctx context.Context, instanceDir string, version string, forceBuild bool) (string, *profile.Profile, error)
}

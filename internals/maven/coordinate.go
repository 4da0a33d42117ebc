// Package maven models the maven-style dependency coordinates used by
// launcher profiles, plus the historical naming schemes of loader builds.
package maven

import (
	"fmt"
	"path"
	"strings"
)

// ErrMalformedCoordinate is returned when a library name can not be parsed
// as a `group:artifact:version[:tag]` coordinate
type ErrMalformedCoordinate struct {
	Name   string
	Reason string
}

func (e *ErrMalformedCoordinate) Error() string {
	return fmt.Sprintf("malformed coordinate %q: %s", e.Name, e.Reason)
}

// Coordinate identifies a single library artifact.
// It is a value object: methods never mutate, they return new coordinates.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
	Tag      string
}

// Parse splits a `group:artifact:version[:tag]` string into a Coordinate
func Parse(name string) (Coordinate, error) {
	parts := strings.Split(name, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return Coordinate{}, &ErrMalformedCoordinate{name, "expected 3 or 4 colon separated parts"}
	}

	c := Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}
	if len(parts) == 4 {
		c.Tag = parts[3]
	}
	if c.Group == "" || c.Artifact == "" {
		return Coordinate{}, &ErrMalformedCoordinate{name, "group and artifact must not be empty"}
	}

	return c, nil
}

// String renders the canonical colon form
func (c Coordinate) String() string {
	if c.Tag != "" {
		return strings.Join([]string{c.Group, c.Artifact, c.Version, c.Tag}, ":")
	}
	return strings.Join([]string{c.Group, c.Artifact, c.Version}, ":")
}

// Path returns the slash separated storage path of the artifact relative
// to a libraries root, eg. `com/example/lib/1.0/lib-1.0-sources.jar`
func (c Coordinate) Path() string {
	base := c.Artifact + "-" + c.Version
	if c.Tag != "" {
		base += "-" + c.Tag
	}

	return path.Join(
		strings.ReplaceAll(c.Group, ".", "/"),
		c.Artifact,
		c.Version,
		base+".jar",
	)
}

// WithTag returns a copy of this coordinate with the tag replaced
func (c Coordinate) WithTag(tag string) Coordinate {
	c.Tag = tag
	return c
}

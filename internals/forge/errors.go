package forge

import "fmt"

// ErrInstallerFailed is returned when the forge installer process exits
// with a non-zero status
type ErrInstallerFailed struct {
	Jar      string
	ExitCode int
}

func (e *ErrInstallerFailed) Error() string {
	return fmt.Sprintf("forge installer %s exited with status %d", e.Jar, e.ExitCode)
}

// ErrNoUniversalJar is returned when neither the standard nor the
// -universal jar of a build can be found in its directory
type ErrNoUniversalJar struct {
	Dir string
}

func (e *ErrNoUniversalJar) Error() string {
	return fmt.Sprintf("no forge universal jar in %s", e.Dir)
}

// ErrNoJarEntry is returned when a jar does not contain the wanted file
type ErrNoJarEntry struct {
	Jar  string
	Name string
}

func (e *ErrNoJarEntry) Error() string {
	return fmt.Sprintf("%s not found in %s", e.Name, e.Jar)
}

// ErrVersionNotDetected is returned when an instance directory carries
// no usable hint about the forge build it was made for
type ErrVersionNotDetected struct {
	Dir string
}

func (e *ErrVersionNotDetected) Error() string {
	return fmt.Sprintf("can not detect forge version in %s", e.Dir)
}

// ErrMalformedVersion is returned for version strings that are not a
// single "minecraft-forge" pair
type ErrMalformedVersion struct {
	Version string
}

func (e *ErrMalformedVersion) Error() string {
	return fmt.Sprintf("%q is not a valid forge version pair", e.Version)
}

// ErrInheritanceMismatch is returned when the version document inside a
// forge jar inherits from a different minecraft version than expected
type ErrInheritanceMismatch struct {
	InheritsFrom string
	GameVersion  string
}

func (e *ErrInheritanceMismatch) Error() string {
	return fmt.Sprintf("forge profile inherits from %q, want %q", e.InheritsFrom, e.GameVersion)
}

package libraries

import "fmt"

// ErrInconsistentLibrary is returned when a profile library is in none of
// the valid resolution states (required file, resolved downloads, or the
// loader universal placeholder)
type ErrInconsistentLibrary struct {
	Name string
}

func (e *ErrInconsistentLibrary) Error() string {
	return fmt.Sprintf("library %q is in an inconsistent state: not required, not resolved and not the loader universal", e.Name)
}

// ErrMissingFile is returned when a library's physical file is absent
type ErrMissingFile struct {
	Path string
}

func (e *ErrMissingFile) Error() string {
	return fmt.Sprintf("library file is missing: %s", e.Path)
}

// ErrInconsistentSplitBuild is returned when a split loader build is
// missing its client variant. Universal and server variants without a
// client jar are never a valid combination.
type ErrInconsistentSplitBuild struct {
	ClientJar string
}

func (e *ErrInconsistentSplitBuild) Error() string {
	return fmt.Sprintf("split build is missing its client jar: %s", e.ClientJar)
}

// ErrUnsupportedScheme is returned for base URLs that are not http(s)
type ErrUnsupportedScheme struct {
	Scheme string
}

func (e *ErrUnsupportedScheme) Error() string {
	return fmt.Sprintf("url scheme %q is not supported", e.Scheme)
}

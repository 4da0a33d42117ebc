package release

import "fmt"

// ErrMissingInstance is returned when the named instance directory does
// not exist
type ErrMissingInstance struct {
	Name string
	Path string
}

func (e *ErrMissingInstance) Error() string {
	return fmt.Sprintf("instance %q not found at %s", e.Name, e.Path)
}

// ErrMalformedExclusions is returned when an instance's exclude.json
// can not be parsed
type ErrMalformedExclusions struct {
	Path string
	Err  error
}

func (e *ErrMalformedExclusions) Error() string {
	return fmt.Sprintf("malformed exclusion file %s: %v", e.Path, e.Err)
}

func (e *ErrMalformedExclusions) Unwrap() error {
	return e.Err
}

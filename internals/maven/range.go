package maven

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Bound is one side of a version range. A nil Version means unbounded.
type Bound struct {
	Version *semver.Version
	Open    bool
}

// Range is a mathematical interval over dotted version strings,
// eg. `[1.7, 1.7.10]` or `(1.12, *]`
type Range struct {
	Left  Bound
	Right Bound
}

// ParseRange parses interval notation. Brackets pick closed bounds,
// parens open ones. A `*` or empty bound is unbounded on that side.
func ParseRange(s string) (Range, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("%q is not a valid version range", s)
	}

	left := strings.TrimSpace(parts[0])
	right := strings.TrimSpace(parts[1])
	if len(left) == 0 || len(right) == 0 {
		return Range{}, fmt.Errorf("%q is not a valid version range", s)
	}
	if (left[0] != '[' && left[0] != '(') || (right[len(right)-1] != ']' && right[len(right)-1] != ')') {
		return Range{}, fmt.Errorf("version range %q must use interval notation", s)
	}

	r := Range{
		Left:  Bound{Open: left[0] == '('},
		Right: Bound{Open: right[len(right)-1] == ')'},
	}

	if v := strings.TrimSpace(left[1:]); v != "" && v != "*" {
		parsed, err := semver.NewVersion(v)
		if err != nil {
			return Range{}, fmt.Errorf("invalid lower bound in %q: %w", s, err)
		}
		r.Left.Version = parsed
	}
	if v := strings.TrimSpace(right[:len(right)-1]); v != "" && v != "*" {
		parsed, err := semver.NewVersion(v)
		if err != nil {
			return Range{}, fmt.Errorf("invalid upper bound in %q: %w", s, err)
		}
		r.Right.Version = parsed
	}

	return r, nil
}

// MustParseRange is ParseRange for static tables
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// IsEmpty reports whether the range can not match anything: both sides
// unbounded while at least one of them is open
func (r Range) IsEmpty() bool {
	return r.Left.Version == nil && r.Right.Version == nil && (r.Left.Open || r.Right.Open)
}

// Contains reports whether the version lies inside the interval
func (r Range) Contains(v *semver.Version) bool {
	if r.IsEmpty() {
		return false
	}
	if l := r.Left.Version; l != nil {
		if v.LessThan(l) || (r.Left.Open && v.Equal(l)) {
			return false
		}
	}
	if u := r.Right.Version; u != nil {
		if v.GreaterThan(u) || (r.Right.Open && v.Equal(u)) {
			return false
		}
	}
	return true
}

// ContainsString is Contains over a raw version string. Versions that do
// not parse are treated as outside of every range.
func (r Range) ContainsString(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return r.Contains(v)
}

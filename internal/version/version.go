package version

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Prefix is the literal that starts every textual version.
const Prefix = "v"

// ErrOverflow is returned when a bump would push a component past its width.
var ErrOverflow = errors.New("version component overflow")

// FormatError describes why a version string was rejected.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Version represents a semantic version with major, minor, and patch components.
// Values are immutable; bumps return a new Version.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// New returns the version major.minor.patch.
func New(major, minor, patch uint32) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Zero returns the zero version (v0.0.0).
func Zero() Version {
	return Version{Major: 0, Minor: 0, Patch: 0}
}

// Parse parses a version string in the format "vX.Y.Z".
// The "v" prefix is required and each component must fit in 32 bits.
func Parse(s string) (Version, error) {
	if !strings.HasPrefix(s, Prefix) {
		return Version{}, &FormatError{Input: s, Reason: "version must start with 'v'"}
	}

	parts := strings.Split(s[len(Prefix):], ".")
	if len(parts) != 3 {
		return Version{}, &FormatError{Input: s, Reason: "version must have format v1.2.3"}
	}

	major, err := parseComponent(s, "major", parts[0])
	if err != nil {
		return Version{}, err
	}
	minor, err := parseComponent(s, "minor", parts[1])
	if err != nil {
		return Version{}, err
	}
	patch, err := parseComponent(s, "patch", parts[2])
	if err != nil {
		return Version{}, err
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// parseComponent parses one base-10 component of input. Leading zeros are
// accepted, so "v01.002.3" parses as v1.2.3.
func parseComponent(input, name, s string) (uint32, error) {
	if s == "" {
		return 0, &FormatError{Input: input, Reason: fmt.Sprintf("empty %s version", name)}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &FormatError{Input: input, Reason: fmt.Sprintf("%s version %q out of range", name, s)}
		}
		return 0, &FormatError{Input: input, Reason: fmt.Sprintf("invalid %s version %q", name, s)}
	}
	return uint32(n), nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as a string in "vX.Y.Z" format.
func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// BumpPatch increments patch.
func (v Version) BumpPatch() (Version, error) {
	if v.Patch == math.MaxUint32 {
		return v, fmt.Errorf("bump patch of %s: %w", v, ErrOverflow)
	}
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
}

// BumpMinor increments minor and resets patch.
func (v Version) BumpMinor() (Version, error) {
	if v.Minor == math.MaxUint32 {
		return v, fmt.Errorf("bump minor of %s: %w", v, ErrOverflow)
	}
	return Version{Major: v.Major, Minor: v.Minor + 1, Patch: 0}, nil
}

// BumpMajor increments major and resets minor and patch.
func (v Version) BumpMajor() (Version, error) {
	if v.Major == math.MaxUint32 {
		return v, fmt.Errorf("bump major of %s: %w", v, ErrOverflow)
	}
	return Version{Major: v.Major + 1, Minor: 0, Patch: 0}, nil
}

// Compare returns -1, 0 or +1 ordering v against o by major, minor, patch.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmpUint(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmpUint(v.Minor, o.Minor)
	default:
		return cmpUint(v.Patch, o.Patch)
	}
}

// Less reports whether v orders before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func cmpUint(a, b uint32) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

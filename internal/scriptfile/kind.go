package scriptfile

import "github.com/taskline-dev/taskline/internal/version"

// Kind selects which version component a bump increments.
type Kind int

const (
	Patch Kind = iota
	Minor
	Major
)

// ParseKind accepts patch, minor and major, and the short forms
// "..x", ".x." and "x..". Matching is case sensitive.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "patch", "..x":
		return Patch, nil
	case "minor", ".x.":
		return Minor, nil
	case "major", "x..":
		return Major, nil
	default:
		return 0, &KindError{Input: s}
	}
}

func (k Kind) String() string {
	switch k {
	case Patch:
		return "patch"
	case Minor:
		return "minor"
	case Major:
		return "major"
	default:
		return "unknown"
	}
}

// Apply returns v bumped by k.
func (k Kind) Apply(v version.Version) (version.Version, error) {
	switch k {
	case Patch:
		return v.BumpPatch()
	case Minor:
		return v.BumpMinor()
	case Major:
		return v.BumpMajor()
	default:
		return v, &KindError{Input: k.String()}
	}
}

package scriptfile

import (
	"path/filepath"
	"strings"

	"github.com/taskline-dev/taskline/internal/version"
)

// DefaultExtension is the extension given to new scripts.
const DefaultExtension = "tskln"

// InitName returns the file name for a new script: "<name>.<ext>" or
// "<name>.v1.2.3.<ext>" when a version is given.
func InitName(name string, v *version.Version, ext string) string {
	if v == nil {
		return name + "." + ext
	}
	return name + "." + v.String() + "." + ext
}

// SplitExt splits a base name into stem and extension (without the dot).
// A leading dot does not start an extension, so ".profile" has no extension.
func SplitExt(base string) (stem, ext string) {
	e := filepath.Ext(base)
	if e == "" || e == base {
		return base, ""
	}
	return strings.TrimSuffix(base, e), e[1:]
}

// BumpedPath returns the path a script moves to after a bump to v:
// "<stem>_v1.2.3.<ext>" in the same directory, or "<stem>_v1.2.3" when the
// file has no extension.
func BumpedPath(path string, v version.Version) string {
	dir, base := filepath.Split(path)
	stem, ext := SplitExt(base)

	name := stem + "_" + v.String()
	if ext != "" {
		name += "." + ext
	}
	return filepath.Join(dir, name)
}

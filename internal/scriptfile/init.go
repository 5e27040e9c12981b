package scriptfile

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/taskline-dev/taskline/internal/atomicfile"
	"github.com/taskline-dev/taskline/internal/header"
	"github.com/taskline-dev/taskline/internal/version"
)

// ErrInvalidName is returned for an empty codename or one spanning lines.
var ErrInvalidName = errors.New("invalid script name")

// Initialize creates a new script in dir for codename name, optionally
// versioned, and returns its path. The file holds only the header.
// An existing file at the target path is never overwritten.
func Initialize(dir, name string, v *version.Version, ext string) (string, error) {
	if !header.ValidCodename(name) {
		return "", ErrInvalidName
	}
	if ext == "" {
		ext = DefaultExtension
	}

	path := filepath.Join(dir, InitName(name, v, ext))
	content := header.New(name, v).Render()

	if err := atomicfile.Create(path, []byte(content), 0644); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", &FileError{Op: "create", Path: path, Err: ErrAlreadyExists}
		}
		return "", &FileError{Op: "create", Path: path, Err: err}
	}
	return path, nil
}

// InitializeVersion is Initialize with the version given as text.
// An empty text means no version. The text is validated before any I/O.
func InitializeVersion(dir, name, versionText, ext string) (string, error) {
	if versionText == "" {
		return Initialize(dir, name, nil, ext)
	}
	v, err := version.Parse(versionText)
	if err != nil {
		return "", err
	}
	return Initialize(dir, name, &v, ext)
}

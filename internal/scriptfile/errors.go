package scriptfile

import (
	"errors"
	"fmt"
)

// ErrAlreadyExists is returned when a target path is already taken.
var ErrAlreadyExists = errors.New("already exists")

// ErrInvalidKind is returned for an unrecognised bump kind.
var ErrInvalidKind = errors.New("invalid bump kind")

// FileError reports a failed filesystem step on a script.
type FileError struct {
	Op   string // "read", "write", "rename", "create", "stat"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// KindError reports a bump kind that is not one of patch, minor or major.
type KindError struct {
	Input string
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s %q: use patch (..x), minor (.x.) or major (x..)", ErrInvalidKind, e.Input)
}

func (e *KindError) Is(target error) bool { return target == ErrInvalidKind }

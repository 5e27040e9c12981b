package scriptfile

import (
	"os"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/taskline-dev/taskline/internal/atomicfile"
	"github.com/taskline-dev/taskline/internal/header"
	"github.com/taskline-dev/taskline/internal/version"
)

// BumpResult describes a completed bump.
type BumpResult struct {
	OldPath    string
	NewPath    string
	OldVersion *version.Version // nil when the file carried no version line
	NewVersion version.Version
	Kind       Kind
}

// rename moves the rewritten script to its versioned name.
var rename = os.Rename

// Engine bumps script versions. Bumps on one Engine run one at a time.
type Engine struct {
	mu  sync.Mutex
	log *zap.Logger
}

// NewEngine returns an Engine logging to log. A nil log discards output.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Bump bumps the script at path by the kind named in kind ("patch", "minor",
// "major" or their short forms). An unknown kind fails before any I/O.
func (e *Engine) Bump(path, kind string) (BumpResult, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return BumpResult{}, err
	}
	return e.BumpKind(path, k)
}

// BumpKind rewrites the version line of the script at path and renames the
// file to carry the new version.
//
// The first well-formed version line is replaced in place. When there is
// none the working version is v0.0.0 and the new line goes right after the
// first line, or at the end of a file with fewer than two lines.
//
// The rewrite is atomic. If the rename then fails the rewritten content stays
// at path and the returned result carries NewPath == OldPath.
//
// A target taken before the rewrite fails with ErrAlreadyExists. A target
// created by another process between that check and the rename is
// overwritten on Unix.
func (e *Engine) BumpKind(path string, k Kind) (BumpResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := BumpResult{OldPath: path, NewPath: path, Kind: k}

	info, err := os.Stat(path)
	if err != nil {
		return res, &FileError{Op: "stat", Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return res, &FileError{Op: "read", Path: path, Err: err}
	}

	lines, oldVersion, newVersion, err := rewrite(string(data), k)
	if err != nil {
		return res, err
	}
	res.OldVersion = oldVersion
	res.NewVersion = newVersion

	log := e.log.With(zap.String("path", path), zap.String("kind", k.String()))
	if oldVersion != nil {
		log.Debug("version line located", zap.String("version", oldVersion.String()))
	} else {
		log.Debug("no version line, starting from zero")
	}

	target := BumpedPath(path, newVersion)
	if err := checkTarget(target); err != nil {
		return res, err
	}

	if err := atomicfile.WriteFile(path, []byte(header.JoinLines(lines)), info.Mode().Perm()); err != nil {
		return res, &FileError{Op: "write", Path: path, Err: err}
	}
	log.Debug("content rewritten", zap.String("version", newVersion.String()))

	if err := rename(path, target); err != nil {
		return res, &FileError{Op: "rename", Path: path, Err: err}
	}
	res.NewPath = target
	log.Info("bumped", zap.String("version", newVersion.String()), zap.String("new_path", target))

	return res, nil
}

// rewrite applies a bump of kind k to content, returning the new line set,
// the version found (nil if absent) and the new version.
func rewrite(content string, k Kind) ([]string, *version.Version, version.Version, error) {
	lines := header.SplitLines(content)

	idx, current, found := header.FindVersionLine(lines)
	if !found {
		current = version.Zero()
	}

	next, err := k.Apply(current)
	if err != nil {
		return nil, nil, version.Version{}, err
	}
	line := header.VersionLine(next)

	var old *version.Version
	switch {
	case found:
		old = &current
		lines[idx] = line
	case len(lines) >= 2:
		lines = slices.Insert(lines, 1, line)
	default:
		lines = append(lines, line)
	}

	return lines, old, next, nil
}

// Preview reports what a bump of path by k would produce without touching the
// filesystem beyond reading path. A taken target fails as it would in BumpKind.
func Preview(path string, k Kind) (BumpResult, string, error) {
	res := BumpResult{OldPath: path, NewPath: path, Kind: k}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, "", &FileError{Op: "read", Path: path, Err: err}
	}
	lines, oldVersion, newVersion, err := rewrite(string(data), k)
	if err != nil {
		return res, "", err
	}
	res.OldVersion = oldVersion
	res.NewVersion = newVersion
	target := BumpedPath(path, newVersion)
	if err := checkTarget(target); err != nil {
		return res, "", err
	}
	res.NewPath = target
	return res, header.JoinLines(lines), nil
}

// checkTarget fails with ErrAlreadyExists when target is taken, or with the
// stat error when target cannot be inspected.
func checkTarget(target string) error {
	taken, err := atomicfile.Exists(target)
	if err != nil {
		return &FileError{Op: "stat", Path: target, Err: err}
	}
	if taken {
		return &FileError{Op: "rename", Path: target, Err: ErrAlreadyExists}
	}
	return nil
}

package matcher

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// Matcher selects script files by glob pattern.
type Matcher struct {
	patterns []string
	globs    []glob.Glob // Compiled once, matched against slash-separated relative paths
}

// NewMatcher creates a new Matcher for the given patterns.
// An empty pattern list matches every file.
func NewMatcher(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		patterns = []string{"**"}
	}

	m := &Matcher{patterns: patterns}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}

	return m, nil
}

// Match reports whether rel, a slash-separated path relative to the search
// root, matches any pattern (union logic).
func (m *Matcher) Match(rel string) bool {
	for _, g := range m.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Find walks root and returns the matching regular files as paths joined to
// root, sorted. Hidden directories are skipped.
func (m *Matcher) Find(root string) ([]string, error) {
	var found []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if m.Match(filepath.ToSlash(rel)) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

// Patterns returns the patterns the matcher was built from.
func (m *Matcher) Patterns() []string {
	return m.patterns
}

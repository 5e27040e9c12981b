// Package catalog discovers scripts under a directory and reports their headers.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/mod/semver"

	"github.com/taskline-dev/taskline/internal/header"
	"github.com/taskline-dev/taskline/internal/matcher"
)

// Entry is one discovered script.
type Entry struct {
	Path     string `json:"path"`
	Codename string `json:"codename"`
	Version  string `json:"version,omitempty"` // Empty when the script carries no valid version
}

// Scan finds the scripts under root selected by m and parses their headers.
// Entries are ordered by codename, then by version (unversioned first), then
// by path.
func Scan(root string, m *matcher.Matcher) ([]Entry, error) {
	paths, err := m.Find(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		e, err := Read(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	Sort(entries)
	return entries, nil
}

// Read parses the header of the script at path.
func Read(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	h := header.Parse(string(data))
	e := Entry{Path: path, Codename: h.Codename}
	if h.Version != nil {
		e.Version = h.Version.String()
	}
	return e, nil
}

// Sort orders entries in place. Invalid or empty versions sort before valid ones.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Codename != b.Codename {
			return a.Codename < b.Codename
		}
		if c := semver.Compare(a.Version, b.Version); c != 0 {
			return c < 0
		}
		return a.Path < b.Path
	})
}

// Latest returns, per codename, the entry with the highest version.
func Latest(entries []Entry) []Entry {
	byName := make(map[string]Entry)
	for _, e := range entries {
		cur, ok := byName[e.Codename]
		if !ok || semver.Compare(e.Version, cur.Version) > 0 {
			byName[e.Codename] = e
		}
	}

	result := make([]Entry, 0, len(byName))
	for _, e := range byName {
		result = append(result, e)
	}
	Sort(result)
	return result
}

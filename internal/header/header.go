// Package header reads and writes the metadata lines at the top of a script.
//
// A script starts with
//
//	@Taskline codename <codename>
//	@Taskline version v<major>.<minor>.<patch>   (optional)
//	<blank line>
//
// followed by a body this package never touches.
package header

import (
	"strings"

	"github.com/taskline-dev/taskline/internal/version"
)

// Line markers. Both include the separating space.
const (
	CodenamePrefix = "@Taskline codename "
	VersionPrefix  = "@Taskline version "
)

// Header holds the codename and, when known, the version of a script.
type Header struct {
	Codename string
	Version  *version.Version
}

// New returns a header with the given codename and optional version.
// Only a codename accepted by ValidCodename survives Render then Parse.
func New(codename string, v *version.Version) Header {
	return Header{Codename: codename, Version: v}
}

// ValidCodename reports whether codename is non-empty and fits on one line.
func ValidCodename(codename string) bool {
	return codename != "" && !strings.ContainsAny(codename, "\r\n")
}

// Parse extracts the header fields from content.
// Every line is scanned and the first line carrying each marker wins.
// A version line that does not parse leaves Version nil.
func Parse(content string) Header {
	var h Header
	codenameSeen, versionSeen := false, false

	for _, line := range SplitLines(content) {
		switch {
		case !codenameSeen && strings.HasPrefix(line, CodenamePrefix):
			h.Codename = line[len(CodenamePrefix):]
			codenameSeen = true
		case !versionSeen && strings.HasPrefix(line, VersionPrefix):
			if v, err := version.Parse(line[len(VersionPrefix):]); err == nil {
				h.Version = &v
			}
			versionSeen = true
		}
		if codenameSeen && versionSeen {
			break
		}
	}

	return h
}

// Render produces the header text, including the trailing blank line.
func (h Header) Render() string {
	var b strings.Builder
	b.WriteString(CodenameLine(h.Codename))
	b.WriteByte('\n')
	if h.Version != nil {
		b.WriteString(VersionLine(*h.Version))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// CodenameLine renders a codename line without a terminator.
func CodenameLine(codename string) string {
	return CodenamePrefix + codename
}

// VersionLine renders a version line without a terminator.
func VersionLine(v version.Version) string {
	return VersionPrefix + v.String()
}

// ParseVersionLine reports the version carried by line, if line is a
// well-formed version line.
func ParseVersionLine(line string) (version.Version, bool) {
	if !strings.HasPrefix(line, VersionPrefix) {
		return version.Version{}, false
	}
	v, err := version.Parse(line[len(VersionPrefix):])
	if err != nil {
		return version.Version{}, false
	}
	return v, true
}

// FindVersionLine returns the index and value of the first well-formed
// version line. The scan stops at the first match.
func FindVersionLine(lines []string) (int, version.Version, bool) {
	for i, line := range lines {
		if v, ok := ParseVersionLine(line); ok {
			return i, v, true
		}
	}
	return -1, version.Version{}, false
}

// SplitLines splits content into lines without terminators.
// A final newline does not produce a trailing empty line and a "\r"
// before "\n" is dropped.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// JoinLines joins lines with a single "\n" between them.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

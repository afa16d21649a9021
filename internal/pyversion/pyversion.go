// Package pyversion decides which interpreter version an invocation
// wants.
package pyversion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pyrun/internal/interp"
)

// Default is the version used when nothing else selects one.
var Default = interp.Version{Major: 3, Minor: 10}

var (
	selectorRe = regexp.MustCompile(`^-([0-9])\.([0-9]+)$`)
	versionRe  = regexp.MustCompile(`^([0-9])\.([0-9]+)$`)
	requiresRe = regexp.MustCompile(`3\.([0-9]+)`)
)

// Parse reads a "major.minor" string such as "3.12".
func Parse(s string) (interp.Version, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return interp.Version{}, fmt.Errorf("invalid python version %q, expected major.minor", s)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	return interp.Version{Major: major, Minor: minor}, nil
}

// StripSelector removes a py-launcher style version selector ("-3.12")
// from an argument vector and returns the version it named. This runs
// on the raw argument vector before any flag parsing: a flag library
// would reject the selector as an unknown shorthand flag. The scan
// covers only the launcher's own region of the vector; everything from
// the first positional (or a "--") onward belongs to the script and is
// never touched.
func StripSelector(args []string) ([]string, *interp.Version) {
	for i, arg := range args {
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			break
		}
		m := selectorRe.FindStringSubmatch(arg)
		if m == nil {
			continue
		}
		major, _ := strconv.Atoi(m[1])
		minor, _ := strconv.Atoi(m[2])
		rest := make([]string, 0, len(args)-1)
		rest = append(rest, args[:i]...)
		rest = append(rest, args[i+1:]...)
		return rest, &interp.Version{Major: major, Minor: minor}
	}
	return args, nil
}

// Choose resolves the version from the hints at hand. An explicit flag
// wins over a command-line selector, which wins over fallback. fixed
// reports whether the user chose the version, so weaker hints (a
// script's requires-python pin) know to stand down.
func Choose(explicit, selector *interp.Version, fallback interp.Version) (v interp.Version, fixed bool) {
	switch {
	case explicit != nil:
		return *explicit, true
	case selector != nil:
		return *selector, true
	default:
		return fallback, false
	}
}

// FromRequires extracts a usable (3, minor) pair from a PEP 440
// requires-python constraint like ">=3.11" or "~=3.12.0". Only the first
// 3.x occurrence is consulted; richer constraint solving is the
// provisioner's problem, not ours.
func FromRequires(constraint string) (interp.Version, bool) {
	m := requiresRe.FindStringSubmatch(constraint)
	if m == nil {
		return interp.Version{}, false
	}
	minor, _ := strconv.Atoi(m[1])
	return interp.Version{Major: 3, Minor: minor}, true
}

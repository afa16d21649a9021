// Package pyargs extracts the user script from a CPython command line
// without implementing the interpreter's full option grammar.
package pyargs

import (
	"fmt"
	"strings"
)

// ParseError reports an argument tail this parser cannot interpret.
type ParseError struct {
	Arg    string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("can't parse python command line: %s (%s)", e.Arg, e.Detail)
}

// Options whose value arrives as a separate argument.
var valueOptions = map[string]bool{
	"--check-hash-based-pycs": true,
	"-W":                      true,
	"-X":                      true,
}

// clusterRunsCommand reports whether a combined short-option cluster
// contains -c or -m as an option letter, so -vc is still a command
// invocation. W and X take an attached value ("-Wignore"), and every
// rune after one belongs to that value, not to the cluster.
func clusterRunsCommand(cluster string) bool {
	for _, r := range cluster {
		switch r {
		case 'c', 'm':
			return true
		case 'W', 'X':
			return false
		}
	}
	return false
}

// ScriptPath walks a CPython argument tail and returns the path of the
// user script, or "" when the invocation carries none (-c and -m forms
// run a command or module instead, and swallow everything after them).
func ScriptPath(args []string) (string, error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case valueOptions[arg]:
			i++
			if i == len(args) {
				return "", &ParseError{Arg: arg, Detail: "missing value"}
			}
		case strings.HasPrefix(arg, "--"):
			return "", &ParseError{Arg: arg, Detail: "unknown long option"}
		case strings.HasPrefix(arg, "-"):
			if clusterRunsCommand(arg[1:]) {
				return "", nil
			}
		default:
			return arg, nil
		}
	}
	return "", nil
}

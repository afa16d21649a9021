// Package rewrite normalizes python source before execution.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"
)

// Options controls the transform.
type Options struct {
	// KeepLineEndings disables CRLF normalization.
	KeepLineEndings bool
}

// InvalidSourceError wraps a syntax error from the validating parse.
type InvalidSourceError struct {
	Err error
}

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("invalid python code: %v", e.Err)
}

func (e *InvalidSourceError) Unwrap() error { return e.Err }

// Rewrite validates src as python and returns a normalized copy: line
// endings unified, trailing whitespace stripped, exactly one final
// newline. Validation runs first so nothing is ever written out for a
// script the interpreter would reject anyway.
func Rewrite(src string, opts Options) (string, error) {
	if _, err := parser.ParseString(src, py.ExecMode); err != nil {
		return "", &InvalidSourceError{Err: err}
	}

	out := src
	if !opts.KeepLineEndings {
		out = strings.ReplaceAll(out, "\r\n", "\n")
	}

	lines := strings.Split(out, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	out = strings.Join(lines, "\n")
	return strings.TrimRight(out, "\n") + "\n", nil
}

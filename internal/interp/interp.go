// Package interp defines the boundary between the launcher and a concrete
// interpreter implementation.
package interp

import (
	"context"
	"fmt"
)

// Version is a (major, minor) interpreter version pair.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// RunOptions configures a single interpreter invocation.
type RunOptions struct {
	// Home is the interpreter's installation root, where its standard
	// library and support files live.
	Home string

	// Version of the interpreter found at Home.
	Version Version

	// Launcher is the path the interpreter reports as the running
	// program (sys.executable). Must exist on disk.
	Launcher string

	// Argv is the full argument vector. Argv[0] is the program name,
	// the rest are the interpreter's own CLI arguments.
	Argv []string
}

// Interpreter runs one interpreter invocation and reports its exit code.
//
// Implementations may not return at all: an interpreter that handles an
// explicit stop signal from the hosted program is allowed to terminate
// the process directly.
type Interpreter interface {
	Run(ctx context.Context, opts RunOptions) (int, error)
}

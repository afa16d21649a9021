// Package cpython runs python scripts by loading a standalone CPython's
// libpython into the current process and driving its C embedding API:
// pre-initialization, home and program-name registration, initialization,
// then Py_Main with a marshalled argument vector.
package cpython

import (
	"context"
	"os"
	"runtime"

	"github.com/chainguard-dev/clog"

	"pyrun/internal/interp"
)

// loaded is the process-lifetime library handle. Extension modules loaded
// by the interpreter bind symbols against it, so it is never released.
var loaded *libpython

// Runtime implements interp.Interpreter by injecting libpython.
type Runtime struct{}

// New creates a new Runtime.
func New() *Runtime {
	return &Runtime{}
}

// Run implements interp.Interpreter.
func (r *Runtime) Run(ctx context.Context, opts interp.RunOptions) (int, error) {
	log := clog.FromContext(ctx)

	// Checked here so a bad launcher path fails with a clear error
	// instead of a cryptic failure inside the interpreter.
	if _, err := os.Stat(opts.Launcher); err != nil {
		return 0, &NoSuchExecutableError{Path: opts.Launcher}
	}

	// Keep the hosted interpreter away from the host's per-user
	// site-packages. Must happen before the first foreign call.
	os.Setenv("PYTHONNOUSERSITE", "1")

	path := libraryPath(runtime.GOOS, opts.Home, opts.Version)
	log.Debug("loading libpython", "path", path, "version", opts.Version)

	lib, err := open(path)
	if err != nil {
		return 0, err
	}
	loaded = lib

	if err := lib.preInit(ctx); err != nil {
		return 0, err
	}

	log.Debug("Py_SetPythonHome", "home", opts.Home)
	if err := lib.setHome(opts.Home); err != nil {
		return 0, err
	}

	log.Debug("Py_SetProgramName", "program", opts.Launcher)
	if err := lib.setProgramName(opts.Launcher); err != nil {
		return 0, err
	}

	return lib.invoke(ctx, opts.Argv)
}

// String returns the runtime name.
func (r *Runtime) String() string {
	return "cpython"
}

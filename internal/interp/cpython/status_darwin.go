package cpython

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// On darwin the register shim can move small structs by value in both
// directions, so Py_PreInitialize and Py_ExitStatusException bind with
// their native signatures.
func (l *libpython) preInitialize(ctx context.Context, cfg *preConfig) error {
	var preInitialize func(*preConfig) pyStatus
	if err := l.bind(&preInitialize, "Py_PreInitialize"); err != nil {
		return err
	}
	var exitStatusException func(pyStatus)
	if err := l.bind(&exitStatusException, "Py_ExitStatusException"); err != nil {
		return err
	}

	status := preInitialize(cfg)
	// A non-ok status means pre-initialization failed or requested exit;
	// hand the status back so the runtime produces its own diagnostic and
	// exit code. Py_ExitStatusException does not return.
	if status.Type != statusOK {
		clog.FromContext(ctx).Debug("Py_PreInitialize failed", "type", status.Type, "exitcode", status.ExitCode)
		exitStatusException(status)
		panic("Py_ExitStatusException returned")
	}
	return nil
}

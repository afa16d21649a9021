package cpython

import (
	"context"
	"runtime"
	"unsafe"

	"github.com/chainguard-dev/clog"
)

// invoke initializes the interpreter and runs its command-line entry
// point with argv. By CPython's convention the result is 0 when the
// hosted program exits normally, 1 when it dies to an unhandled
// exception and 2 when argv is not a valid python command line.
//
// If the hosted program raises an unhandled SystemExit, Py_Main exits
// the process itself and this call never returns; nothing that must run
// for correctness may be placed after it.
//
// https://docs.python.org/3/c-api/veryhigh.html#c.Py_Main
func (l *libpython) invoke(ctx context.Context, argv []string) (int, error) {
	log := clog.FromContext(ctx)

	var initialize func()
	if err := l.bind(&initialize, "Py_Initialize"); err != nil {
		return 0, err
	}
	log.Debug("Py_Initialize")
	initialize()

	var pyMain func(argc int32, argv *uintptr) int32
	if err := l.bind(&pyMain, "Py_Main"); err != nil {
		return 0, err
	}

	// Py_Main receives raw pointers, not owned copies; every buffer has
	// to outlive the call.
	bufs := make([][]wchar, len(argv))
	ptrs := make([]uintptr, len(argv))
	for i, arg := range argv {
		bufs[i] = encodeWide(arg)
		ptrs[i] = uintptr(unsafe.Pointer(&bufs[i][0]))
	}

	log.Debug("running Py_Main", "argv", argv)
	code := pyMain(int32(len(ptrs)), &ptrs[0])
	runtime.KeepAlive(bufs)
	runtime.KeepAlive(ptrs)
	return int(code), nil
}

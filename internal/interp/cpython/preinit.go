package cpython

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// pyStatus mirrors CPython's PyStatus struct: a tri-state discriminant
// (_PyStatus_TYPE), the name of the function that failed, an error
// message and an exit code. Field order and sizes must bit-match the
// native definition; the two string fields are kept as uintptr so the
// collector never treats foreign memory as Go pointers.
//
// https://docs.python.org/3/c-api/init_config.html#pystatus
type pyStatus struct {
	Type     int32
	Func     uintptr
	ErrMsg   uintptr
	ExitCode int32
}

// _PyStatus_TYPE discriminants.
const (
	statusOK int32 = iota
	statusError
	statusExit
)

// preInit forces UTF-8 mode before any other initialization call, the
// equivalent of PYTHONUTF8=1. Locale coercion inherited from an
// arbitrary host shell is the usual source of "can't decode filesystem
// path" failures in embedded interpreters.
//
// The Py_PreInitialize call itself moves a PyStatus by value across the
// boundary, which needs per-ABI handling; see the preInitialize
// implementations.
//
// https://docs.python.org/3/c-api/init_config.html#preinitialize-python-with-pypreconfig
func (l *libpython) preInit(ctx context.Context) error {
	log := clog.FromContext(ctx)
	log.Debug("libpython pre-init")

	var initConfig func(*preConfig)
	if err := l.bind(&initConfig, "PyPreConfig_InitPythonConfig"); err != nil {
		return err
	}
	var cfg preConfig
	initConfig(&cfg)
	cfg.UTF8Mode = 1

	return l.preInitialize(ctx, &cfg)
}

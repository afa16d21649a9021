//go:build !darwin && !amd64

package cpython

import (
	"context"
	"os"

	"github.com/chainguard-dev/clog"
)

// AAPCS64 returns a 32-byte struct through the indirect result register
// (x8), which no call shim here can populate, so Py_PreInitialize cannot
// be called on these hosts. UTF-8 mode is forced through the environment
// instead; the interpreter honors PYTHONUTF8 during Py_Initialize with
// the same effect as the pre-config field.
func (l *libpython) preInitialize(ctx context.Context, cfg *preConfig) error {
	clog.FromContext(ctx).Debug("forcing UTF-8 via PYTHONUTF8, host ABI cannot carry PyStatus")
	return os.Setenv("PYTHONUTF8", "1")
}

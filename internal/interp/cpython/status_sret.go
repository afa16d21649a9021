//go:build (linux || freebsd || windows) && amd64

package cpython

import (
	"context"
	"fmt"
	"os"
	"unsafe"

	"github.com/chainguard-dev/clog"
)

// The register shim only moves structs by value on darwin, so off-darwin
// the 32-byte PyStatus return must not appear in a bound signature. On
// x86-64 both the System V and the Windows conventions return a struct
// of that size through a caller-provided slot whose address travels as
// an implicit leading argument, so the hidden pointer is made explicit
// in the Go signature instead.
func (l *libpython) preInitialize(ctx context.Context, cfg *preConfig) error {
	var preInitialize func(ret *pyStatus, cfg *preConfig)
	if err := l.bind(&preInitialize, "Py_PreInitialize"); err != nil {
		return err
	}

	var status pyStatus
	preInitialize(&status, cfg)
	// A non-ok status means pre-initialization failed or requested exit.
	// Py_ExitStatusException takes the status by value, which cannot
	// cross here either, so its documented behavior is reproduced on the
	// Go side: exit statuses propagate their code, error statuses print
	// the fatal diagnostic.
	if status.Type != statusOK {
		clog.FromContext(ctx).Debug("Py_PreInitialize failed", "type", status.Type, "exitcode", status.ExitCode)
		if status.Type == statusExit {
			os.Exit(int(status.ExitCode))
		}
		fmt.Fprintf(os.Stderr, "Fatal Python error: %s: %s\n", cstring(status.Func), cstring(status.ErrMsg))
		os.Exit(1)
	}
	return nil
}

// cstring copies a NUL-terminated C string out of foreign memory.
func cstring(p uintptr) string {
	if p == 0 {
		return ""
	}
	var b []byte
	for {
		c := *(*byte)(unsafe.Pointer(p))
		if c == 0 {
			return string(b)
		}
		b = append(b, c)
		p++
	}
}

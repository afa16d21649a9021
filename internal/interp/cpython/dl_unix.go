//go:build darwin || linux || freebsd

package cpython

import "github.com/ebitengine/purego"

// dlopen and dlsym are variables so tests can stub the loader without a
// real libpython present.
//
// RTLD_GLOBAL matters: extension modules the interpreter loads later
// must be able to resolve their Py* symbols against this library.
var dlopen = func(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
}

var dlsym = purego.Dlsym

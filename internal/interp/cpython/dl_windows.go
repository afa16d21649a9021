//go:build windows

package cpython

import "golang.org/x/sys/windows"

// dlopen and dlsym are variables so tests can stub the loader without a
// real libpython present.
//
// Default load flags; this path is untested.
var dlopen = func(path string) (uintptr, error) {
	h, err := windows.LoadLibrary(path)
	return uintptr(h), err
}

var dlsym = func(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

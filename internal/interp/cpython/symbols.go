package cpython

import "github.com/ebitengine/purego"

// libpython owns the loaded library handle and every wide buffer whose
// raw pointer has been handed across the boundary. CPython retains those
// pointers, so the buffers must stay reachable for the life of the
// process; so must the handle, since unloading after extension modules
// have bound against it is unsound.
type libpython struct {
	handle   uintptr
	retained [][]wchar
}

func open(path string) (*libpython, error) {
	h, err := dlopen(path)
	if err != nil {
		return nil, &LibraryError{Path: path, Err: err}
	}
	return &libpython{handle: h}, nil
}

// bind resolves name into the typed function value pointed to by fptr.
// The caller's signature must match the C calling convention exactly; a
// wrong signature is a silent correctness hazard this layer cannot
// detect.
func (l *libpython) bind(fptr interface{}, name string) error {
	addr, err := dlsym(l.handle, name)
	if err != nil || addr == 0 {
		return &MissingSymbolError{Symbol: name, Err: err}
	}
	purego.RegisterFunc(fptr, addr)
	return nil
}

// retain parks a wide buffer for the life of the process and returns a
// pointer to its first code unit.
func (l *libpython) retain(buf []wchar) *wchar {
	l.retained = append(l.retained, buf)
	return &buf[0]
}

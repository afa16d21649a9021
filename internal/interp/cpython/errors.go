package cpython

import "fmt"

// LibraryError reports that libpython could not be opened.
type LibraryError struct {
	Path string
	Err  error
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("loading libpython from %s: %v", e.Path, e.Err)
}

func (e *LibraryError) Unwrap() error { return e.Err }

// MissingSymbolError reports an embedding-API symbol absent from an
// otherwise loadable libpython, which means the library does not speak
// the expected embedding ABI (wrong version, or a stripped build).
type MissingSymbolError struct {
	Symbol string
	Err    error
}

func (e *MissingSymbolError) Error() string {
	return fmt.Sprintf("libpython is missing embedding API symbol %s: %v", e.Symbol, e.Err)
}

func (e *MissingSymbolError) Unwrap() error { return e.Err }

// NoSuchExecutableError reports that the path to be registered as the
// running program does not exist on disk.
type NoSuchExecutableError struct {
	Path string
}

func (e *NoSuchExecutableError) Error() string {
	return fmt.Sprintf("can't launch python, %s does not exist even though it should have been just created", e.Path)
}

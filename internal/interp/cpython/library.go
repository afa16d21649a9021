package cpython

import (
	"fmt"
	"path/filepath"

	"pyrun/internal/interp"
)

// libraryPath resolves the shared-library filename for a standalone
// CPython rooted at home. No existence check: a missing file surfaces as
// a load error.
//
// Windows wants the versioned DLL; python3.dll only exports the limited
// ABI, which lacks the entry points Py_Main needs. Linux and friends get
// the version-generic soname, relying on the 3.x ABI stream staying
// stable.
func libraryPath(goos, home string, v interp.Version) string {
	switch goos {
	case "windows":
		return filepath.Join(home, fmt.Sprintf("python3%d.dll", v.Minor))
	case "darwin":
		return filepath.Join(home, "lib", fmt.Sprintf("libpython%d.%d.dylib", v.Major, v.Minor))
	default:
		return filepath.Join(home, "lib", "libpython3.so")
	}
}

//go:build windows

package cpython

// preConfig mirrors CPython's PyPreConfig field-for-field on Windows,
// where legacy_windows_fs_encoding sits between coerce_c_locale_warn and
// utf8_mode. Field order, sizes and presence must bit-match the native
// definition for the interpreter version in use; a mismatch is undefined
// behavior, not a catchable error.
//
// https://docs.python.org/3/c-api/init_config.html#c.PyPreConfig
type preConfig struct {
	ConfigInit              int32
	ParseArgv               int32
	Isolated                int32
	UseEnvironment          int32
	ConfigureLocale         int32
	CoerceCLocale           int32
	CoerceCLocaleWarn       int32
	LegacyWindowsFSEncoding int32
	UTF8Mode                int32
	DevMode                 int32
	Allocator               int32
}

// Native sizeof(PyPreConfig) for this layout.
const preConfigSize = 44

//go:build windows

package cpython

import "unicode/utf16"

// wchar mirrors the platform wchar_t: 2-byte UTF-16 code units on
// Windows.
type wchar = uint16

// encodeWide converts s to a NUL-terminated wide-character buffer.
func encodeWide(s string) []wchar {
	return append(utf16.Encode([]rune(s)), 0)
}

//go:build !windows

package cpython

// wchar mirrors the platform wchar_t: 4-byte UTF-32 code units off
// Windows.
type wchar = uint32

// encodeWide converts s to a NUL-terminated wide-character buffer.
func encodeWide(s string) []wchar {
	runes := []rune(s)
	buf := make([]wchar, 0, len(runes)+1)
	for _, r := range runes {
		buf = append(buf, wchar(r))
	}
	return append(buf, 0)
}

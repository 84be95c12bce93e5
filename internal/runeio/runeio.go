// Package runeio adapts byte streams for reading and writing text.
package runeio

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Reader is an io.Reader that also supports reading runes.
type Reader interface {
	io.Reader
	io.RuneReader
}

// NewReader returns r if it already reads runes, otherwise a bufio.Reader
// around it.
func NewReader(r io.Reader) Reader {
	if impl, ok := r.(Reader); ok {
		return impl
	}
	return bufio.NewReader(r)
}

// WriteText writes s to w in a single write, as text fit for a terminal:
// invalid UTF-8 bytes become U+FFFD, NEL becomes "\r\n", and all other C1
// controls are written in their 7-bit form, e.g. "\x1b[" for CSI.
func WriteText(w io.Writer, s string) (n int, err error) {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			buf = utf8.AppendRune(buf, utf8.RuneError)
		case r == 0x85:
			buf = append(buf, '\r', '\n')
		case r >= 0x80 && r <= 0x9f:
			buf = append(buf, 0x1b, byte(r^0xc0))
		default:
			buf = append(buf, s[i:i+size]...)
		}
		i += size
	}
	return w.Write(buf)
}

package logio

import (
	"bytes"
	"sync"
)

// Writer turns written text into log lines: each complete line is passed to
// Logf, and any final partial line is held until Flush.
type Writer struct {
	Logf func(mess string, args ...interface{})

	mu      sync.Mutex
	partial []byte
}

// Write logs any lines completed by p; it never fails.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			lw.partial = append(lw.partial, p...)
			break
		}
		lw.emit(p[:i])
		p = p[i+1:]
	}
	return n, nil
}

// Flush logs any partial line.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.emit(nil)
	}
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error { return lw.Flush() }

func (lw *Writer) emit(tail []byte) {
	line := tail
	if len(lw.partial) > 0 {
		line = append(lw.partial, tail...)
		lw.partial = lw.partial[:0]
	}
	lw.Logf("%s", line)
}

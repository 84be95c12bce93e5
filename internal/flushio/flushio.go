// Package flushio provides writers that may hold output until flushed.
package flushio

import (
	"bufio"
	"io"
	"io/ioutil"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w itself if it already flushes, w with a no-op
// Flush if it needs none, or else a bufio.Writer around w.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	// in memory buffers, like bytes.Buffer or strings.Builder
	type buffer interface {
		io.Writer
		Len() int
		Reset()
	}

	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case buffer:
		return nopFlusher{w}
	}
	if w == ioutil.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// Tee combines WriteFlushers into one that writes to, and flushes, each in
// turn; nils are skipped and nested tees are flattened.
//
// Every writer sees every write, even after an earlier one fails; the first
// error is returned.
func Tee(wfs ...WriteFlusher) WriteFlusher {
	var all tee
	for _, wf := range wfs {
		if many, ok := wf.(tee); ok {
			all = append(all, many...)
		} else if wf != nil {
			all = append(all, wf)
		}
	}
	switch len(all) {
	case 0:
		return nopFlusher{ioutil.Discard}
	case 1:
		return all[0]
	}
	return all
}

type tee []WriteFlusher

func (t tee) Write(p []byte) (int, error) {
	var err error
	for _, wf := range t {
		n, werr := wf.Write(p)
		if werr == nil && n != len(p) {
			werr = io.ErrShortWrite
		}
		if err == nil {
			err = werr
		}
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (t tee) Flush() (err error) {
	for _, wf := range t {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

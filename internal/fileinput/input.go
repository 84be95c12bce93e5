// Package fileinput reads runes in sequence from a queue of named streams,
// tracking which line of which stream each came from.
package fileinput

import (
	"fmt"
	"io"

	"github.com/jcorbin/phrase/internal/runeio"
)

// Location names a line in an input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Input reads runes through a Queue of one or more streams, as if they were
// one. A stream with a Name() string method is known by that name, otherwise
// as "<input>".
type Input struct {
	Queue []io.Reader

	rr  runeio.Reader
	loc Location
}

// ReadRune reads the next rune from the current stream, moving on to the
// next queued stream at EOF. Returns io.EOF only once the queue is exhausted;
// other errors are annotated with the current location.
func (in *Input) ReadRune() (rune, int, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}
		r, n, err := in.rr.ReadRune()
		if err == nil {
			if r == '\n' {
				in.loc.Line++
			}
			return r, n, nil
		}
		if err != io.EOF {
			return 0, 0, fmt.Errorf("%v: %w", in.loc, err)
		}
		in.rr = nil
	}
}

// Location returns where the most recently read rune came from; after a line
// feed, that is the start of the next line.
func (in *Input) Location() Location { return in.loc }

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.rr = runeio.NewReader(r)
	in.loc = Location{Name: nameOf(r), Line: 1}
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return "<input>"
}

package phrase

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes a human readable description of the session state to w: the
// token buffer with cached phrase lengths, user functions, and the depth of
// each runtime stack.
func (sess *Session) Dump(w io.Writer) error {
	dump := sessionDumper{sess: sess, out: w}
	dump.dump()
	return dump.err
}

type sessionDumper struct {
	sess *Session
	out  io.Writer
	err  error

	indexWidth int
}

func (dump *sessionDumper) dump() {
	dump.printf("# Session Dump\n")
	dump.printf("  words: %v\n", len(dump.sess.words))
	dump.printf("  calls: %v\n", len(dump.sess.calls))
	dump.printf("  counts: %v\n", dump.sess.counts)
	dump.printf("  iters: %v\n", len(dump.sess.iters))
	if dump.sess.halted != nil {
		dump.printf("  halted: %v\n", dump.sess.halted)
	}
	dump.dumpFunctions()
	dump.dumpWords()
}

func (dump *sessionDumper) dumpFunctions() {
	names := dump.sess.ns.functionNames()
	if len(names) == 0 {
		return
	}
	dump.printf("# Functions\n")
	for _, name := range names {
		sym := dump.sess.ns.functions[name]
		if sym.body < 0 {
			dump.printf("  %v%v%v declared\n", name, signatureMark, sym.Arity)
		} else {
			dump.printf("  %v%v%v @%v\n", name, signatureMark, sym.Arity, sym.body)
		}
	}
}

func (dump *sessionDumper) dumpWords() {
	if dump.indexWidth == 0 {
		dump.indexWidth = len(strconv.Itoa(len(dump.sess.words)))
	}
	var buf lineBuffer
	seg := 0
	for i, tok := range dump.sess.words {
		// section headers
		if end := dump.sess.ends[i]; end != seg {
			fmt.Fprintf(&buf, "# Words @%v", i)
			if name := tok.loc.Name; name != "" {
				fmt.Fprintf(&buf, " %v", name)
			}
			dump.flush(&buf)
			seg = end
		}

		fmt.Fprintf(&buf, "  @%*v ", dump.indexWidth, i)
		if n := dump.sess.lengths[i]; n > 0 {
			fmt.Fprintf(&buf, "%*v ", dump.indexWidth, n)
		} else {
			buf.WriteString(strings.Repeat(" ", dump.indexWidth))
			buf.WriteByte(' ')
		}
		buf.WriteString(tok.word)
		if sym, ok := dump.sess.ns.lookup(tok.word); ok && sym.Kind != LiteralSymbol {
			fmt.Fprintf(&buf, " %v", sym.Kind)
			if sym.Fixity != Prefix {
				fmt.Fprintf(&buf, " %v", sym.Fixity)
			}
			if sym.Arity > 0 {
				fmt.Fprintf(&buf, "/%v", sym.Arity)
			}
		}
		dump.flush(&buf)
	}
}

func (dump *sessionDumper) flush(buf *lineBuffer) {
	if dump.err == nil {
		_, dump.err = buf.WriteTo(dump.out)
	} else {
		buf.Reset()
	}
}

func (dump *sessionDumper) printf(format string, args ...interface{}) {
	if dump.err == nil {
		_, dump.err = fmt.Fprintf(dump.out, format, args...)
	}
}

// lineBuffer accumulates one line of output, newline terminating it on
// write.
type lineBuffer struct {
	bytes.Buffer
}

func (buf *lineBuffer) WriteTo(w io.Writer) (int64, error) {
	if b := buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Buffer.WriteTo(w)
}

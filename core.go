package phrase

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/phrase/internal/flushio"
	"github.com/jcorbin/phrase/internal/panicerr"
	"github.com/jcorbin/phrase/internal/runeio"
)

// Session is one independent interpreter: its token buffer, phrase length
// cache, namespace and runtime stacks persist across Execute calls, so that
// words defined by one submission remain usable by the next.
//
// A Session is not safe for concurrent use; run separate sessions instead.
type Session struct {
	logging
	out flushio.WriteFlusher

	// The token buffer only ever grows, so indices into it are stable;
	// ends and lengths run parallel to it.
	words   []token
	ends    []int
	lengths []int

	ns namespace
	stacks

	diags       []Diagnostic
	depth       int
	maxDepth    int
	submissions int
	halted      error
}

// Result is the outcome of one Execute call.
type Result struct {
	// Value is the value of the last top-level phrase; null if that phrase
	// was aborted.
	Value Value

	// Diagnostics raised during this call, in order.
	Diagnostics []Diagnostic
}

// Execute tokenizes src, appends it to the token buffer, and evaluates each
// new top-level phrase in turn.
//
// The returned error is nil unless some phrase was aborted, in which case it
// joins every aborting Diagnostic, or unless the session halted, in which
// case it is a HaltError and every later call returns the same.
func (sess *Session) Execute(src string) (Result, error) {
	return sess.ExecuteReader(namedReader{
		strings.NewReader(src),
		fmt.Sprintf("<exec %d>", sess.submissions+1),
	})
}

// ExecuteReader is like Execute, reading source from r until EOF. If r has a
// Name() string method, diagnostics use it for their Location.
func (sess *Session) ExecuteReader(r io.Reader) (res Result, err error) {
	if sess.halted != nil {
		return res, sess.halted
	}
	sess.submissions++

	mark := len(sess.diags)
	defer func() {
		res.Diagnostics = append([]Diagnostic(nil), sess.diags[mark:]...)
		if ferr := sess.out.Flush(); err == nil && ferr != nil {
			err = ferr
		}
	}()

	err = panicerr.Recover("phrase", func() error {
		var execErr error
		res.Value, execErr = sess.execute(r)
		return execErr
	})

	var he haltError
	if errors.As(err, &he) {
		sess.halted = HaltError{he.error}
	} else if panicerr.IsPanic(err) || panicerr.IsExit(err) {
		sess.halted = HaltError{err}
	}
	if sess.halted != nil {
		sess.stacks.restore(stackMark{})
		sess.depth = 0
		return res, sess.halted
	}
	return res, err
}

// Diagnostics returns every diagnostic raised over the session's lifetime.
func (sess *Session) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), sess.diags...)
}

// Len returns the number of words in the token buffer.
func (sess *Session) Len() int { return len(sess.words) }

// Word returns the word at index i, or "" if out of bounds.
func (sess *Session) Word(i int) string {
	if i < 0 || i >= len(sess.words) {
		return ""
	}
	return sess.words[i].word
}

func (sess *Session) execute(r io.Reader) (Value, error) {
	start, end, err := sess.load(r)
	if err != nil {
		return Value{}, err
	}
	sess.resolve(start, end)

	var (
		val  Value
		errs []error
	)
	for i := start; i < end; {
		v, err := sess.statement(i)
		if err != nil {
			errs = append(errs, err)
		}
		val = v
		n := sess.phraseLength(i, false)
		if n <= 0 {
			break
		}
		i += n
	}
	return val, errors.Join(errs...)
}

// load tokenizes r onto the end of the token buffer, and declares any
// function signatures within, returning the bounds of the new segment.
func (sess *Session) load(r io.Reader) (start, end int, err error) {
	toks, diags, err := tokenize(r)
	if err != nil {
		return 0, 0, err
	}

	start = len(sess.words)
	end = start + len(toks)
	sess.words = append(sess.words, toks...)
	for range toks {
		sess.ends = append(sess.ends, end)
		sess.lengths = append(sess.lengths, 0)
	}
	for _, d := range diags {
		d.Index += start
		sess.report(d)
	}

	sess.prescan(start, end)
	return start, end, nil
}

// prescan registers every "name#N" signature in [start, end) before any
// phrase length is computed, since phrases before a definition, or within
// it for recursion, depend on the arity it declares.
func (sess *Session) prescan(start, end int) {
	for i := start; i < end; i++ {
		word := sess.words[i].word
		name, arity, ok, err := parseSignature(word)
		if !ok {
			continue
		}
		if err != nil || name == "" {
			sess.diagnose(MalformedLiteral, i, "function signature must be name%sarity", signatureMark)
			continue
		}
		body := -1
		if i > start && i+1 < end && sess.words[i-1].word == "def" {
			body = i + 1
		} else if prev, had := sess.ns.functions[name]; had {
			body = prev.body
		}
		sess.ns.defineFunction(name, arity, body)
		sess.logf("+", "@%d declare %v/%d body @%d", i, name, arity, body)
	}
}

// statement evaluates one top-level phrase, converting a statement abort
// into an error after restoring the runtime stacks.
func (sess *Session) statement(at int) (val Value, err error) {
	mark := sess.stacks.mark()
	depth := sess.depth
	defer func() {
		if e := recover(); e != nil {
			ae, ok := e.(abortError)
			if !ok {
				panic(e)
			}
			sess.stacks.restore(mark)
			sess.depth = depth
			val, err = Value{}, ae.Diagnostic
		}
	}()
	return sess.eval(at, false), nil
}

func (sess *Session) enter(at int) {
	sess.depth++
	if sess.maxDepth > 0 && sess.depth > sess.maxDepth {
		sess.halt(sess.diagnose(StackOverflow, at, "evaluation nested deeper than %d", sess.maxDepth))
	}
}

func (sess *Session) leave() { sess.depth-- }

func (sess *Session) report(d Diagnostic) {
	sess.diags = append(sess.diags, d)
	sess.logf("!", "%v", d)
}

// diagnose records a diagnostic about the word at index at; evaluation then
// continues.
func (sess *Session) diagnose(kind Kind, at int, mess string, args ...interface{}) Diagnostic {
	d := Diagnostic{Kind: kind, Index: at, Message: fmt.Sprintf(mess, args...)}
	if at >= 0 && at < len(sess.words) {
		d.Word = sess.words[at].word
		d.Location = sess.words[at].loc
	}
	sess.report(d)
	return d
}

// abort records a diagnostic, and abandons the current top-level statement.
func (sess *Session) abort(kind Kind, at int, mess string, args ...interface{}) {
	panic(abortError{sess.diagnose(kind, at, mess, args...)})
}

func (sess *Session) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if sess.out != nil {
			if ferr := sess.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		sess.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

func (sess *Session) writeString(s string) {
	if _, err := runeio.WriteText(sess.out, s); err != nil {
		sess.halt(err)
	}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

package phrase

import "io"

// New creates a session with a fresh token buffer, a namespace holding only
// the built-in words, and empty runtime stacks.
func New(opts ...Option) *Session {
	var sess Session
	sess.ns.init()
	sess.apply(opts...)
	return &sess
}

// WithOutput directs the output of print, write and writeln to w; by default
// it is discarded. Output is flushed at the end of every Execute.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithTee copies output to w, in addition to any prior output.
func WithTee(w io.Writer) Option { return withTee(w) }

// WithMaxDepth bounds how deeply evaluation may nest, user function recursion
// included; exceeding it halts the session with a StackOverflow diagnostic.
// A limit of 0 disables the check, leaving only the Go runtime's own limit,
// which crashes the process.
func WithMaxDepth(n int) Option { return withMaxDepth(n) }

// WithLogf enables trace logging of resolution and evaluation, and is where
// the log word writes.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// Names returns every word the namespace currently resolves, built-ins and
// user functions alike, in sorted order.
func (sess *Session) Names() []string {
	return sess.ns.names()
}

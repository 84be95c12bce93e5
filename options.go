package phrase

import (
	"io"
	"io/ioutil"

	"github.com/jcorbin/phrase/internal/flushio"
)

// Option configures a Session created by New.
type Option interface{ apply(sess *Session) }

// DefaultMaxDepth bounds evaluation nesting unless WithMaxDepth says
// otherwise.
const DefaultMaxDepth = 10000

var defaults = []Option{
	withOutput(ioutil.Discard),
	withMaxDepth(DefaultMaxDepth),
}

func (sess *Session) apply(opts ...Option) {
	for _, opt := range defaults {
		if opt != nil {
			opt.apply(sess)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(sess)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(sess *Session) {
	sess.logfn = logfn
}

type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type maxDepthOption int

func withOutput(w io.Writer) outputOption { return outputOption{w} }
func withTee(w io.Writer) teeOption       { return teeOption{w} }
func withMaxDepth(n int) maxDepthOption   { return maxDepthOption(n) }

func (o outputOption) apply(sess *Session) {
	if sess.out != nil {
		sess.out.Flush()
	}
	sess.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(sess *Session) {
	sess.out = flushio.Tee(sess.out, flushio.NewWriteFlusher(o.Writer))
}

func (n maxDepthOption) apply(sess *Session) {
	sess.maxDepth = int(n)
}

// Command phrase runs phrase programs from files, -e expressions, standard
// input, or an interactive prompt.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/jcorbin/phrase"
	"github.com/jcorbin/phrase/internal/logio"
)

func main() {
	var cfg config
	cfg.log.SetOutput(os.Stderr)
	cfg.bind(flag.CommandLine)
	flag.Parse()

	ctx := context.Background()
	if cfg.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	cfg.log.ErrorIf(cfg.run(ctx, flag.Args()))
	os.Exit(cfg.log.ExitCode())
}

type config struct {
	log logio.Logger

	exprs    exprList
	timeout  time.Duration
	trace    bool
	dump     bool
	parallel bool
	maxDepth int
	history  string
}

type exprList []string

func (el *exprList) String() string     { return strings.Join(*el, " ") }
func (el *exprList) Set(s string) error { *el = append(*el, s); return nil }

func (cfg *config) bind(fs *flag.FlagSet) {
	fs.Var(&cfg.exprs, "e", "execute the given source; may be repeated, runs before any files")
	fs.DurationVar(&cfg.timeout, "timeout", 0, "specify a time limit")
	fs.BoolVar(&cfg.trace, "trace", false, "enable trace logging")
	fs.BoolVar(&cfg.dump, "dump", false, "dump session state to stderr when done")
	fs.BoolVar(&cfg.parallel, "parallel", false, "run each file in its own session, concurrently")
	fs.IntVar(&cfg.maxDepth, "max-depth", phrase.DefaultMaxDepth, "limit evaluation nesting; 0 disables")
	fs.StringVar(&cfg.history, "history", defaultHistory(), "interactive history file")
}

func defaultHistory() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "phrase_history")
}

func (cfg *config) options(out io.Writer) []phrase.Option {
	opts := []phrase.Option{
		phrase.WithOutput(out),
		phrase.WithMaxDepth(cfg.maxDepth),
	}
	if cfg.trace {
		opts = append(opts,
			phrase.WithLogf(cfg.log.Leveledf("TRACE")),
			phrase.WithTee(&logio.Writer{Logf: cfg.log.Leveledf("OUT")}),
		)
	}
	return opts
}

func (cfg *config) run(ctx context.Context, names []string) error {
	switch {
	case cfg.parallel && len(cfg.exprs) == 0 && len(names) > 1:
		return cfg.runParallel(ctx, names)
	case len(cfg.exprs) > 0 || len(names) > 0:
		return cfg.runSequential(ctx, names)
	case term.IsTerminal(int(os.Stdin.Fd())):
		return cfg.runInteractive(ctx)
	}
	sess := phrase.New(cfg.options(os.Stdout)...)
	res, err := execute(ctx, sess, os.Stdin)
	cfg.report(res, err)
	return cfg.dumpSession(ctx, sess, os.Stderr)
}

// runSequential runs every expression then every file through one session,
// so that later sources may use functions defined by earlier ones.
func (cfg *config) runSequential(ctx context.Context, names []string) error {
	sess := phrase.New(cfg.options(os.Stdout)...)
	defer func() { cfg.log.ErrorIf(cfg.dumpSession(ctx, sess, os.Stderr)) }()

	for _, expr := range cfg.exprs {
		if !cfg.report(execute(ctx, sess, namedReader{strings.NewReader(expr), "-e"})) {
			return nil
		}
	}
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		ok := cfg.report(execute(ctx, sess, f))
		f.Close()
		if !ok {
			return nil
		}
	}
	return nil
}

// runParallel runs each file in its own session; output is buffered per file,
// and written in argument order once all are done.
func (cfg *config) runParallel(ctx context.Context, names []string) error {
	outs := make([]bytes.Buffer, len(names))
	dumps := make([]bytes.Buffer, len(names))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			defer f.Close()
			sess := phrase.New(cfg.options(&outs[i])...)
			cfg.report(execute(ctx, sess, f))
			return cfg.dumpSession(ctx, sess, &dumps[i])
		})
	}
	err := eg.Wait()

	for i := range names {
		if _, werr := outs[i].WriteTo(os.Stdout); err == nil {
			err = werr
		}
		if _, werr := dumps[i].WriteTo(os.Stderr); err == nil {
			err = werr
		}
	}
	return err
}

func (cfg *config) runInteractive(ctx context.Context) error {
	sess := phrase.New(cfg.options(os.Stdout)...)
	defer func() { cfg.log.ErrorIf(cfg.dumpSession(ctx, sess, os.Stderr)) }()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "phrase> ",
		HistoryFile:     cfg.history,
		AutoComplete:    readline.NewPrefixCompleter(readline.PcItemDynamic(func(string) []string { return sess.Names() })),
		InterruptPrompt: "^C",
		EOFPrompt:       "bye",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if line == "" {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		res, err := execute(ctx, sess, namedReader{strings.NewReader(line), "<stdin>"})
		if !cfg.report(res, err) {
			return nil
		}
		if err == nil && !res.Value.IsNull() {
			if b, jerr := json.Marshal(res.Value); jerr == nil {
				fmt.Fprintf(rl.Stdout(), "=> %s\n", b)
			} else {
				fmt.Fprintf(rl.Stdout(), "=> %v\n", res.Value)
			}
		}
	}
}

// report logs every diagnostic raised by one execution, and any error that
// is not already among them; it returns false if the session can no longer
// run, or ran out of time.
func (cfg *config) report(res phrase.Result, err error) bool {
	for _, d := range res.Diagnostics {
		if d.Kind.Aborts() || d.Kind.Fatal() {
			cfg.log.Errorf("%v", d)
		} else {
			cfg.log.Warnf("%v", d)
		}
	}
	var d phrase.Diagnostic
	switch {
	case err == nil:
		return true
	case errors.Is(err, phrase.ErrHalted):
		if !errors.As(err, &d) {
			cfg.log.Errorf("%v", err)
		}
		return false
	case errors.As(err, &d):
		return true
	default:
		cfg.log.Errorf("%v", err)
		return !isDone(err)
	}
}

func isDone(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// dumpSession dumps sess if asked to, unless it may still be running after
// ctx ended.
func (cfg *config) dumpSession(ctx context.Context, sess *phrase.Session, w io.Writer) error {
	if !cfg.dump || ctx.Err() != nil {
		return nil
	}
	return sess.Dump(w)
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

// execute runs r through sess, giving up once ctx is done; the session is
// then abandoned to its still running goroutine, and must not be used again.
func execute(ctx context.Context, sess *phrase.Session, r io.Reader) (phrase.Result, error) {
	type outcome struct {
		res phrase.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := sess.ExecuteReader(r)
		done <- outcome{res, err}
	}()
	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return phrase.Result{}, ctx.Err()
	}
}

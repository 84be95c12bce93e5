// Package logio provides leveled line logging for command line tools.
package logio

import (
	"fmt"
	"io"
	"sync"
)

// Logger writes "LEVEL: message" lines to an output stream, remembering
// whether any error was logged. It is safe for concurrent use.
type Logger struct {
	mu   sync.Mutex
	out  io.Writer
	line []byte
	code int
}

// SetOutput sets where log lines are written; a nil output drops them.
func (log *Logger) SetOutput(out io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.out = out
}

// ExitCode returns 0 if nothing has gone wrong, 1 if any error was logged,
// or 2 if writing a log line failed.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.code
}

// Leveledf returns a printf-style function logging at the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.emit(level, 0, mess, args) }
}

// Printf logs a line at the given level; an empty level logs the bare message.
func (log *Logger) Printf(level, mess string, args ...interface{}) { log.emit(level, 0, mess, args) }

// Warnf logs at WARN level.
func (log *Logger) Warnf(mess string, args ...interface{}) { log.emit("WARN", 0, mess, args) }

// Errorf logs at ERROR level, and makes ExitCode non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) { log.emit("ERROR", 1, mess, args) }

// ErrorIf logs err, if not nil, with Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

func (log *Logger) emit(level string, code int, mess string, args []interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()

	if code > log.code {
		log.code = code
	}

	line := log.line[:0]
	if level != "" {
		line = append(line, level...)
		line = append(line, ": "...)
	}
	if len(args) > 0 {
		line = fmt.Appendf(line, mess, args...)
	} else {
		line = append(line, mess...)
	}
	if n := len(line); n == 0 || line[n-1] != '\n' {
		line = append(line, '\n')
	}
	log.line = line

	if log.out == nil {
		return
	}
	if _, err := log.out.Write(line); err != nil {
		log.code = 2
		fmt.Fprintf(log.out, "ERROR: logging failed: %v\n", err)
	}
}

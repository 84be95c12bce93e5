package logio

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var (
		out bytes.Buffer
		log Logger
	)
	log.SetOutput(&out)

	log.Printf("INFO", "hello %v", "world")
	log.Warnf("careful")
	assert.Equal(t, 0, log.ExitCode(), "expected no exit code before any error")

	log.ErrorIf(nil)
	log.ErrorIf(errors.New("bang"))
	log.Leveledf("TRACE")("@%d %q", 3, "print")

	assert.Equal(t, 1, log.ExitCode(), "expected exit code after error")
	assert.Equal(t, ""+
		"INFO: hello world\n"+
		"WARN: careful\n"+
		"ERROR: bang\n"+
		"TRACE: @3 \"print\"\n",
		out.String())
}

func TestWriter(t *testing.T) {
	var lines []string
	lw := Writer{Logf: func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	}}

	lw.Write([]byte("one\ntw"))
	assert.Equal(t, []string{"one"}, lines, "expected only complete lines")

	lw.Write([]byte("o\nthree"))
	assert.Equal(t, []string{"one", "two"}, lines)

	assert.NoError(t, lw.Close())
	assert.Equal(t, []string{"one", "two", "three"}, lines, "expected close to flush the partial line")
}

package fileinput

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func TestInput_locations(t *testing.T) {
	var in Input
	in.Queue = append(in.Queue,
		namedReader{strings.NewReader("ab\nc"), "one"},
		namedReader{strings.NewReader("d\n"), "two"},
	)

	type read struct {
		r   rune
		loc string
	}
	var reads []read
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		reads = append(reads, read{r, in.Location().String()})
	}

	assert.Equal(t, []read{
		{'a', "one:1"},
		{'b', "one:1"},
		{'\n', "one:2"},
		{'c', "one:2"},
		{'d', "two:1"},
		{'\n', "two:2"},
	}, reads)
}

type failReader struct{ err error }

func (fr failReader) Read(p []byte) (int, error) { return 0, fr.err }

func TestInput_errors(t *testing.T) {
	boom := errors.New("boom")
	var in Input
	in.Queue = append(in.Queue, strings.NewReader("x\n"), failReader{boom})

	r, _, err := in.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'x', r)
	assert.Equal(t, "<input>:1", in.Location().String())

	in.ReadRune()
	_, _, err = in.ReadRune()
	assert.True(t, errors.Is(err, boom), "expected the stream error, got %v", err)
	assert.EqualError(t, err, "<input>:1: boom")
}

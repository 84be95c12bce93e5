package phrase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loaded returns a session holding src, declared but not yet resolved or
// evaluated.
func loaded(t *testing.T, src string) *Session {
	sess := New()
	_, _, err := sess.load(strings.NewReader(src))
	require.NoError(t, err)
	return sess
}

func TestPhraseLength(t *testing.T) {
	for _, tc := range []struct {
		name    string
		src     string
		lengths map[int]int // index -> expected phrase length
	}{
		{
			name:    "literal",
			src:     `1 "two"`,
			lengths: map[int]int{0: 1, 1: 1},
		},
		{
			name:    "prefix arity",
			src:     "print 1 print 2",
			lengths: map[int]int{0: 2, 2: 2},
		},
		{
			name:    "infix chain is right nested",
			src:     "2 + 3 * 4",
			lengths: map[int]int{0: 5, 2: 4, 3: 3},
		},
		{
			name:    "postfix",
			src:     "print 5 squared",
			lengths: map[int]int{0: 3, 1: 2},
		},
		{
			name:    "postfix then infix",
			src:     "5 squared + 1",
			lengths: map[int]int{0: 4},
		},
		{
			name:    "brackets",
			src:     `( 1 2 ) [ 3 ] { "a" 1 }`,
			lengths: map[int]int{0: 4, 3: 1, 4: 3, 7: 4},
		},
		{
			name:    "nested brackets",
			src:     "[ [ 1 ] ( 2 ) ]",
			lengths: map[int]int{0: 8, 1: 3, 4: 3},
		},
		{
			name:    "unclosed bracket runs to end",
			src:     "( 1 2",
			lengths: map[int]int{0: 3},
		},
		{
			name:    "group with trailing operator",
			src:     "( 1 ) * 2",
			lengths: map[int]int{0: 5},
		},
		{
			name:    "definition",
			src:     "def double#1 ( arg 1 ) * 2 print double 21",
			lengths: map[int]int{0: 8, 1: 1, 2: 6, 8: 3},
		},
		{
			name:    "unresolved word",
			src:     "bogus 1",
			lengths: map[int]int{0: 1, 1: 1},
		},
		{
			name:    "when",
			src:     `print "fizz" when 1 == 1 "buzz"`,
			lengths: map[int]int{0: 7, 1: 6, 2: 5},
		},
		{
			name:    "when at end has no else",
			src:     `"fizz" when true`,
			lengths: map[int]int{0: 3},
		},
		{
			name:    "arity past end is truncated",
			src:     "if true",
			lengths: map[int]int{0: 2},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sess := loaded(t, tc.src)
			for i, n := range tc.lengths {
				assert.Equal(t, n, sess.PhraseLength(i), "expected phrase length @%v %q", i, sess.Word(i))
			}
		})
	}
}

func TestPhraseLength_bounds(t *testing.T) {
	sess := loaded(t, "print 1")
	assert.Equal(t, 0, sess.PhraseLength(-1))
	assert.Equal(t, 0, sess.PhraseLength(2))
	assert.Equal(t, 0, New().PhraseLength(0))
}

func TestPhraseLength_idempotent(t *testing.T) {
	const src = "def fact#1 if ( arg 1 ) == 0 1 ( arg 1 ) * fact ( arg 1 ) - 1 print fact 5"

	// uncached lengths, from a fresh session per index
	n := loaded(t, src).Len()
	want := make([]int, 0, n)
	for i := 0; i < n; i++ {
		want = append(want, loaded(t, src).PhraseLength(i))
	}

	sess := loaded(t, src)
	for round := 0; round < 2; round++ {
		for i := range want {
			assert.Equal(t, want[i], sess.PhraseLength(i), "round %v @%v %q", round, i, sess.Word(i))
		}
	}

	// appending more words must not change cached lengths
	_, _, err := sess.load(strings.NewReader("+ 1 squared"))
	require.NoError(t, err)
	for i := range want {
		assert.Equal(t, want[i], sess.PhraseLength(i), "after append @%v %q", i, sess.Word(i))
	}
}

func TestPhraseLength_skipOperator(t *testing.T) {
	sess := loaded(t, "7 + 1 9 squared ( 1 ) - 2 3")
	for _, i := range []int{0, 3, 5} {
		skip := sess.phraseLength(i, true)
		full := sess.phraseLength(i, false)
		assert.True(t, skip < full, "expected skip length %v < %v @%v %q", skip, full, i, sess.Word(i))
	}
	assert.Equal(t, sess.phraseLength(10, true), sess.phraseLength(10, false), "expected no difference without an operator")
}

func TestPhraseLength_closersCached(t *testing.T) {
	sess := loaded(t, "( [ 1 ] { } )")
	sess.resolve(0, sess.Len())
	assert.Equal(t, 7, sess.lengths[0])
	for _, i := range []int{3, 5, 6} {
		assert.Equal(t, 1, sess.lengths[i], "expected closer @%v %q to be cached", i, sess.Word(i))
	}
}

func TestPhraseLength_closerAlone(t *testing.T) {
	sess := loaded(t, "( arg 1 ) == 0")
	assert.Equal(t, 1, sess.PhraseLength(3), "expected a closer measured first to stand alone")
	assert.Equal(t, 1, sess.phraseLength(3, true))
	assert.Equal(t, 6, sess.PhraseLength(0))
	assert.Equal(t, 1, sess.PhraseLength(3), "expected the closer length to be unchanged")
}

func TestPhraseLength_operandsStopAtCloser(t *testing.T) {
	sess := loaded(t, "( print ) print 5")
	assert.Equal(t, 1, sess.PhraseLength(1), "expected print to take no operand past the closer")
	assert.Equal(t, 3, sess.PhraseLength(0))
	assert.Equal(t, 2, sess.PhraseLength(3))
}

func TestPhraseLength_segmentBound(t *testing.T) {
	sess := New()
	_, err := sess.Execute("print")
	require.Error(t, err, "expected print to lack an operand")
	_, err = sess.Execute("1")
	require.NoError(t, err)
	assert.Equal(t, 1, sess.PhraseLength(0), "expected a phrase to stop at its submission's end")
}

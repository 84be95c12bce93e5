package phrase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	for _, tc := range []struct {
		name  string
		in    string
		words []string
		diags []Kind
	}{
		{
			name:  "words",
			in:    "print 2 + 3",
			words: []string{"print", "2", "+", "3"},
		},
		{
			name:  "last bare word",
			in:    `print "a" 1`,
			words: []string{"print", `"a"`, "1"},
		},
		{
			name:  "single word",
			in:    "pass",
			words: []string{"pass"},
		},
		{
			name:  "whitespace",
			in:    "\tprint\n\n  2  \r\n",
			words: []string{"print", "2"},
		},
		{
			name:  "line comment",
			in:    "# nothing here\nprint 1",
			words: []string{"print", "1"},
		},
		{
			name:  "indented comment",
			in:    "print 1\n   # still nothing\nprint 2",
			words: []string{"print", "1", "print", "2"},
		},
		{
			name:  "mid line hash is a word",
			in:    "print 1 # two",
			words: []string{"print", "1", "#", "two"},
		},
		{
			name:  "quoted span",
			in:    `print "two words" 3`,
			words: []string{"print", `"two words"`, "3"},
		},
		{
			name:  "plus decodes to space",
			in:    `print "hello+world"`,
			words: []string{"print", `"hello world"`},
		},
		{
			name:  "escaped plus",
			in:    `print "1(+)1+is+2"`,
			words: []string{"print", `"1+1 is 2"`},
		},
		{
			name:  "escaped quote",
			in:    `print "say \"hi\"" done`,
			words: []string{"print", `"say \"hi\""`, "done"},
		},
		{
			name:  "quote adjacent to word",
			in:    `a"b c"`,
			words: []string{"a", `"b c"`},
		},
		{
			name:  "unterminated quote",
			in:    `print "oops`,
			words: []string{"print", `"oops"`},
			diags: []Kind{MalformedLiteral},
		},
		{
			name:  "unterminated after escape",
			in:    `print "oops\`,
			words: []string{"print", `"oops"`},
			diags: []Kind{MalformedLiteral},
		},
		{
			name: "empty",
			in:   "",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			toks, diags, err := tokenize(strings.NewReader(tc.in))
			require.NoError(t, err)
			var words []string
			for _, tok := range toks {
				words = append(words, tok.word)
			}
			assert.Equal(t, tc.words, words, "expected words")
			var kinds []Kind
			for _, d := range diags {
				kinds = append(kinds, d.Kind)
			}
			assert.Equal(t, tc.diags, kinds, "expected diagnostics")
		})
	}
}

func TestTokenize_locations(t *testing.T) {
	toks, _, err := tokenize(namedReader{strings.NewReader("print 1\n\nprint \"a+b\""), "test"})
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, Location{"test", 1}, toks[0].loc)
	assert.Equal(t, Location{"test", 1}, toks[1].loc)
	assert.Equal(t, Location{"test", 3}, toks[2].loc)
	assert.Equal(t, Location{"test", 3}, toks[3].loc)
}

package phrase

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_String(t *testing.T) {
	for _, tc := range []struct {
		val  Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Number(14), "14"},
		{Number(-0.25), "-0.25"},
		{Number(1e21), "1e+21"},
		{Number(123456789), "123456789"},
		{String("raw text"), "raw text"},
		{Array(Number(1), String("a"), Null()), `[1,"a",null]`},
		{Array(), "[]"},
		{ObjectOf("z", Number(1), "a", Array(Bool(false))), `{"z":1,"a":[false]}`},
		{ObjectOf(), "{}"},
	} {
		assert.Equal(t, tc.want, tc.val.String())
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Array(String("q\"uote"), ObjectOf("k", Number(2))))
	require.NoError(t, err)
	assert.Equal(t, `["q\"uote",{"k":2}]`, string(b))

	_, err = json.Marshal(Number(math.Inf(1)))
	assert.Error(t, err, "expected infinity to be unrepresentable")
}

func TestValue_Truthy(t *testing.T) {
	for _, tc := range []struct {
		val  Value
		want bool
	}{
		{Null(), false},
		{Bool(false), false},
		{Bool(true), true},
		{Number(0), false},
		{Number(-1), true},
		{String(""), false},
		{String("0"), true},
		{Array(), false},
		{Array(Null()), true},
		{ObjectOf(), false},
		{ObjectOf("", Null()), true},
	} {
		assert.Equal(t, tc.want, tc.val.Truthy(), "truthiness of %v", tc.val)
	}
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Null().Equal(Value{}))
	assert.True(t, Array(Number(1), Array(String("x"))).Equal(Array(Number(1), Array(String("x")))))
	assert.False(t, Array(Number(1)).Equal(Array(Number(1), Number(2))))
	assert.False(t, Number(1).Equal(String("1")), "expected kinds to differ")
	assert.False(t, Number(0).Equal(Bool(false)), "expected kinds to differ")
	assert.True(t,
		ObjectOf("a", Number(1), "b", Number(2)).Equal(ObjectOf("b", Number(2), "a", Number(1))),
		"expected object key order not to matter")
	assert.False(t, ObjectOf("a", Number(1)).Equal(ObjectOf("a", Number(2))))
}

func TestObject_Set(t *testing.T) {
	var obj Object
	obj.Set("b", Number(1))
	obj.Set("a", Number(2))
	obj.Set("b", Number(3))
	assert.Equal(t, []string{"b", "a"}, obj.Keys(), "expected insertion order")
	val, ok := obj.Get("b")
	assert.True(t, ok)
	assert.True(t, Number(3).Equal(val), "expected replaced value")
	_, ok = obj.Get("c")
	assert.False(t, ok)

	var nilObj *Object
	assert.Equal(t, 0, nilObj.Len())
}

func TestParseLiteral(t *testing.T) {
	for _, tc := range []struct {
		word  string
		isLit bool
		want  Value
		err   bool
	}{
		{word: "0", isLit: true, want: Number(0)},
		{word: "-12.5e1", isLit: true, want: Number(-125)},
		{word: `"a b"`, isLit: true, want: String("a b")},
		{word: `"tab\t"`, isLit: true, want: String("tab\t")},
		{word: `"\q"`, isLit: true, want: String(`\q`), err: true},
		{word: "1e999", isLit: true, want: Null(), err: true},
		{word: "01", isLit: false},
		{word: "+1", isLit: false},
		{word: "-", isLit: false},
		{word: "true", isLit: false},
		{word: "abc", isLit: false},
		{word: `"`, isLit: false},
	} {
		t.Run(tc.word, func(t *testing.T) {
			_, isLit := literalKind(tc.word)
			require.Equal(t, tc.isLit, isLit, "literal recognition")
			if !isLit {
				return
			}
			val, err := parseLiteral(tc.word)
			if tc.err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.True(t, tc.want.Equal(val), "expected %v, got %v", tc.want, val)
		})
	}
}

func TestParseSignature(t *testing.T) {
	for _, tc := range []struct {
		word  string
		name  string
		arity int
		ok    bool
		err   bool
	}{
		{word: "double#1", name: "double", arity: 1, ok: true},
		{word: "thunk#0", name: "thunk", arity: 0, ok: true},
		{word: "f#x", name: "f", ok: true, err: true},
		{word: "f#-1", name: "f", arity: -1, ok: true, err: true},
		{word: "plain"},
		{word: `"a#1"`},
	} {
		t.Run(tc.word, func(t *testing.T) {
			name, arity, ok, err := parseSignature(tc.word)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.name, name)
			if tc.err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.arity, arity)
			}
		})
	}
}

package phrase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValueKind enumerates the runtime value types; there are no others.
type ValueKind uint8

// Value kinds.
const (
	NullKind ValueKind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var valueKindNames = [...]string{
	NullKind:   "null",
	BoolKind:   "boolean",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

// Value is a runtime value. The zero Value is null.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *Object
}

// Object is an ordered mapping from string keys to values; iteration follows
// insertion order.
type Object struct {
	keys   []string
	values map[string]Value
}

func Null() Value             { return Value{} }
func Bool(b bool) Value       { return Value{kind: BoolKind, b: b} }
func Number(n float64) Value  { return Value{kind: NumberKind, n: n} }
func String(s string) Value   { return Value{kind: StringKind, s: s} }
func Array(vs ...Value) Value { return Value{kind: ArrayKind, arr: vs} }

// ObjectOf builds an object value from alternating key, value pairs.
func ObjectOf(pairs ...interface{}) Value {
	if len(pairs)%2 == 1 {
		panic("ObjectOf must be given key, value pairs")
	}
	var obj Object
	for i := 0; i < len(pairs); i += 2 {
		obj.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return Value{kind: ObjectKind, obj: &obj}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == NullKind }

// AsBool returns the boolean payload, and whether v is a boolean.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == BoolKind }

// AsNumber returns the numeric payload, and whether v is a number.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == NumberKind }

// AsString returns the string payload, and whether v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == StringKind }

// AsArray returns the array elements, and whether v is an array.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == ArrayKind }

// AsObject returns the object, and whether v is an object.
func (v Value) AsObject() (*Object, bool) { return v.obj, v.kind == ObjectKind }

// Truthy: null, false, 0, "" and empty arrays or objects are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case BoolKind:
		return v.b
	case NumberKind:
		return v.n != 0
	case StringKind:
		return v.s != ""
	case ArrayKind:
		return len(v.arr) > 0
	case ObjectKind:
		return v.obj.Len() > 0
	}
	return false
}

// Equal compares deeply; values of different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == other.b
	case NumberKind:
		return v.n == other.n
	case StringKind:
		return v.s == other.s
	case ArrayKind:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for _, key := range v.obj.keys {
			ov, ok := other.obj.Get(key)
			if !ok || !v.obj.values[key].Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// String formats v the way print shows it: strings raw, everything else in
// its literal form.
func (v Value) String() string {
	if v.kind == StringKind {
		return v.s
	}
	var buf bytes.Buffer
	v.writeTo(&buf)
	return buf.String()
}

// MarshalJSON encodes v as JSON, keeping object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == NumberKind && (math.IsNaN(v.n) || math.IsInf(v.n, 0)) {
		return nil, fmt.Errorf("unsupported number %v", v.n)
	}
	var buf bytes.Buffer
	v.writeTo(&buf)
	return buf.Bytes(), nil
}

func (v Value) writeTo(buf *bytes.Buffer) {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.b))
	case NumberKind:
		buf.WriteString(formatNumber(v.n))
	case StringKind:
		writeQuoted(buf, v.s)
	case ArrayKind:
		buf.WriteByte('[')
		for i, el := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			el.writeTo(buf)
		}
		buf.WriteByte(']')
	case ObjectKind:
		buf.WriteByte('{')
		for i, key := range v.obj.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeQuoted(buf, key)
			buf.WriteByte(':')
			v.obj.values[key].writeTo(buf)
		}
		buf.WriteByte('}')
	}
}

func writeQuoted(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Len returns the number of keys in obj; a nil Object is empty.
func (obj *Object) Len() int {
	if obj == nil {
		return 0
	}
	return len(obj.keys)
}

// Keys returns the keys in insertion order.
func (obj *Object) Keys() []string {
	if obj == nil {
		return nil
	}
	return obj.keys
}

func (obj *Object) Get(key string) (Value, bool) {
	if obj == nil {
		return Value{}, false
	}
	val, ok := obj.values[key]
	return val, ok
}

// Set replaces the value under an existing key in place, or appends a new one.
func (obj *Object) Set(key string, val Value) {
	if obj.values == nil {
		obj.values = make(map[string]Value)
	}
	if _, had := obj.values[key]; !had {
		obj.keys = append(obj.keys, key)
	}
	obj.values[key] = val
}

// objectKey turns an evaluated key phrase into an object key.
func objectKey(v Value) string {
	return v.String()
}

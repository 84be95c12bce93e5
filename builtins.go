package phrase

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

//// Operators
//
// Every built-in operator is infix with one right operand, except the postfix
// squared. Each has both a symbolic and a word spelling.

var builtinOperators = []Symbol{}

func init() {
	for _, def := range []struct {
		names []string
		op    func(a, b Value) (Value, error)
	}{
		{[]string{"+", "add"}, opAdd},
		{[]string{"-", "subtract"}, arith("subtract", func(a, b float64) (float64, error) { return a - b, nil })},
		{[]string{"*", "multiply"}, opMultiply},
		{[]string{"/", "divide"}, arith("divide", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, errDivideByZero
			}
			return a / b, nil
		})},
		{[]string{"%", "modulus"}, arith("take modulus of", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, errDivideByZero
			}
			// the result takes the sign of the divisor
			r := math.Mod(a, b)
			if r != 0 && (r < 0) != (b < 0) {
				r += b
			}
			return r, nil
		})},
		{[]string{"**", "exponent"}, arith("exponentiate", func(a, b float64) (float64, error) { return math.Pow(a, b), nil })},
		{[]string{"==", "equal"}, func(a, b Value) (Value, error) { return Bool(a.Equal(b)), nil }},
		{[]string{"!=", "notEqual"}, func(a, b Value) (Value, error) { return Bool(!a.Equal(b)), nil }},
		{[]string{"<", "lesser"}, compare(func(c int) bool { return c < 0 })},
		{[]string{"<=", "lesserOrEqual"}, compare(func(c int) bool { return c <= 0 })},
		{[]string{">", "greater"}, compare(func(c int) bool { return c > 0 })},
		{[]string{">=", "greaterOrEqual"}, compare(func(c int) bool { return c >= 0 })},
	} {
		op := def.op
		for _, name := range def.names {
			builtinOperators = append(builtinOperators, Symbol{
				Name:   name,
				Arity:  1,
				Fixity: Infix,
				Kind:   OperatorSymbol,
				op:     func(vals []Value) (Value, error) { return op(vals[0], vals[1]) },
			})
		}
	}

	builtinOperators = append(builtinOperators, Symbol{
		Name:   "squared",
		Fixity: Postfix,
		Kind:   OperatorSymbol,
		op: func(vals []Value) (Value, error) {
			n, ok := vals[0].AsNumber()
			if !ok {
				return Value{}, fmt.Errorf("cannot square %v", vals[0].Kind())
			}
			return Number(n * n), nil
		},
	})
}

var errDivideByZero = errors.New("division by zero")

func arith(verb string, f func(a, b float64) (float64, error)) func(a, b Value) (Value, error) {
	return func(a, b Value) (Value, error) {
		x, aok := a.AsNumber()
		y, bok := b.AsNumber()
		if !aok || !bok {
			return Value{}, fmt.Errorf("cannot %v %v and %v", verb, a.Kind(), b.Kind())
		}
		n, err := f(x, y)
		return Number(n), err
	}
}

// opAdd adds numbers, and concatenates strings or arrays.
func opAdd(a, b Value) (Value, error) {
	switch {
	case a.kind == NumberKind && b.kind == NumberKind:
		return Number(a.n + b.n), nil
	case a.kind == StringKind && b.kind == StringKind:
		return String(a.s + b.s), nil
	case a.kind == ArrayKind && b.kind == ArrayKind:
		vals := make([]Value, 0, len(a.arr)+len(b.arr))
		return Array(append(append(vals, a.arr...), b.arr...)...), nil
	}
	return Value{}, fmt.Errorf("cannot add %v and %v", a.Kind(), b.Kind())
}

// opMultiply multiplies numbers, and repeats a string by a number.
func opMultiply(a, b Value) (Value, error) {
	switch {
	case a.kind == NumberKind && b.kind == NumberKind:
		return Number(a.n * b.n), nil
	case a.kind == StringKind && b.kind == NumberKind:
		return String(repeat(a.s, b.n)), nil
	case a.kind == NumberKind && b.kind == StringKind:
		return String(repeat(b.s, a.n)), nil
	}
	return Value{}, fmt.Errorf("cannot multiply %v and %v", a.Kind(), b.Kind())
}

func repeat(s string, n float64) string {
	if n < 1 {
		return ""
	}
	return strings.Repeat(s, int(n))
}

// compare orders two numbers or two strings.
func compare(test func(c int) bool) func(a, b Value) (Value, error) {
	return func(a, b Value) (Value, error) {
		var c int
		switch {
		case a.kind == NumberKind && b.kind == NumberKind:
			switch {
			case a.n < b.n:
				c = -1
			case a.n > b.n:
				c = 1
			}
		case a.kind == StringKind && b.kind == StringKind:
			c = strings.Compare(a.s, b.s)
		default:
			return Value{}, fmt.Errorf("cannot compare %v and %v", a.Kind(), b.Kind())
		}
		return Bool(test(c)), nil
	}
}

//// Literals

var builtinLiterals = []Symbol{
	{Name: "true", Kind: LiteralSymbol, value: Bool(true)},
	{Name: "false", Kind: LiteralSymbol, value: Bool(false)},
	{Name: "null", Kind: LiteralSymbol},
}

//// Control words
//
// Control words receive their operands unevaluated. The arities here are part
// of the language, not user extensible.

var builtinControls = []Symbol{
	control("print", 1, ctlPrint),
	control("writeln", 1, ctlPrint),
	control("write", 1, ctlWrite),
	control("log", 1, ctlLog),
	control("if", 3, ctlIf),
	control("def", 2, ctlDef),
	control("arg", 1, ctlArg),
	control("dont", 1, ctlNothing),
	control("comment", 1, ctlNothing),
	control("pass", 0, ctlNothing),
	control("times_count", 1, ctlTimesCount),
	control("each_item", 0, ctlEachItem),
	control("each_item_at", 1, ctlEachItem),
	control("each_item_i", 1, ctlEachItem),
	control("each_key", 0, ctlEachKey),
	control("each_key_at", 1, ctlEachKey),
	control("each_key_i", 1, ctlEachKey),
	control("each_break", 0, ctlEachBreak),

	infixControl("times", 1, 0, ctlTimes),
	infixControl("each", 1, 0, ctlEach),
	infixControl("unless", 1, 0, ctlUnless),
	infixControl("when", 2, 1, ctlWhen),
}

func control(name string, arity int, ctl controlFunc) Symbol {
	return Symbol{Name: name, Arity: arity, Kind: ControlSymbol, ctl: ctl}
}

func infixControl(name string, arity, optional int, ctl controlFunc) Symbol {
	return Symbol{Name: name, Arity: arity, Fixity: Infix, Kind: ControlSymbol, optional: optional, ctl: ctl}
}

// Name     Function
// print    evaluate the operand, write it and a newline to output
// writeln  same as print
func ctlPrint(inv invocation) Value {
	val := inv.arg(0)
	inv.sess.writeString(val.String() + "\n")
	return val
}

// Name     Function
// write    evaluate the operand, write it to output
func ctlWrite(inv invocation) Value {
	val := inv.arg(0)
	inv.sess.writeString(val.String())
	return val
}

// Name     Function
// log      evaluate the operand, write it to the session log
func ctlLog(inv invocation) Value {
	val := inv.arg(0)
	inv.sess.logf("log", "%v", val)
	return val
}

// Name             Function
// dont, comment    ignore the operand, which is never evaluated
// pass             nothing
func ctlNothing(inv invocation) Value { return Value{} }

// Name     Function
// if       evaluate the first operand, then exactly one of the second (if truthy) or third
func ctlIf(inv invocation) Value {
	if inv.arg(0).Truthy() {
		return inv.arg(1)
	}
	return inv.arg(2)
}

// Name     Function
// def      register the "name#N" signature operand, with the unevaluated second operand as body
func ctlDef(inv invocation) Value {
	sess := inv.sess
	sigAt, body := inv.operands[0], inv.operands[1]
	name, arity, ok, err := parseSignature(sess.words[sigAt].word)
	if !ok || err != nil || name == "" {
		sess.diagnose(MalformedLiteral, sigAt, "function signature must be name%sarity", signatureMark)
		return Value{}
	}
	sess.ns.defineFunction(name, arity, body)
	sess.logf("+", "@%d define %v/%d body @%d", inv.at, name, arity, body)
	return Value{}
}

// Name     Function
// arg      the N-th (1 based) argument of the innermost function call
func ctlArg(inv invocation) Value {
	n := inv.intArg(0, "arg")
	val, ok := inv.sess.arg(n)
	if !ok {
		inv.sess.diagnose(OutOfRangeArgument, inv.at, "no argument %d in the current call", n)
	}
	return val
}

// Name          Function
// count times   evaluate the right operand count times
func ctlTimes(inv invocation) Value {
	sess := inv.sess
	left := inv.leftValue()
	count, ok := left.AsNumber()
	if !ok {
		sess.abort(TypeMismatch, inv.at, "times count must be a number, not %v", left.Kind())
	}
	n := int(count)
	if n <= 0 {
		return Value{}
	}

	var val Value
	sess.pushCount()
	defer sess.popCount()
	for k := 1; k <= n; k++ {
		sess.setCount(k)
		val = inv.arg(0)
	}
	return val
}

// Name          Function
// times_count   the 1 based iteration of the times loop at depth N, or 0 if none
func ctlTimesCount(inv invocation) Value {
	depth := inv.intArg(0, "times_count")
	n, ok := inv.sess.count(depth)
	if !ok {
		inv.sess.diagnose(OutOfRangeArgument, inv.at, "no times loop at depth %d", depth)
	}
	return Number(float64(n))
}

// Name          Function
// list each     evaluate the right operand once per array element or object key
func ctlEach(inv invocation) Value {
	sess := inv.sess
	iterable := inv.leftValue()

	sess.pushIter()
	defer sess.popIter()
	fi := len(sess.iters) - 1

	var val Value
	step := func(key, item Value) bool {
		if sess.iters[fi].stop {
			return false
		}
		sess.iters[fi].key = key
		sess.iters[fi].item = item
		val = inv.arg(0)
		return true
	}

	if items, ok := iterable.AsArray(); ok {
		for i, item := range items {
			if !step(Number(float64(i)), item) {
				break
			}
		}
	} else if obj, ok := iterable.AsObject(); ok {
		for _, key := range append([]string(nil), obj.Keys()...) {
			item, _ := obj.Get(key)
			if !step(String(key), item) {
				break
			}
		}
	}
	return val
}

// Name           Function
// each_item      the current element of the innermost each loop
// each_item_at   the current element of the each loop at depth N
func ctlEachItem(inv invocation) Value {
	if frame, ok := inv.iterFrame(); ok {
		return frame.item
	}
	return Value{}
}

// Name          Function
// each_key      the current index or key of the innermost each loop
// each_key_at   the current index or key of the each loop at depth N
func ctlEachKey(inv invocation) Value {
	if frame, ok := inv.iterFrame(); ok {
		return frame.key
	}
	return Value{}
}

// Name          Function
// each_break    stop the innermost each loop before its next element
func ctlEachBreak(inv invocation) Value {
	if frame, ok := inv.iterFrame(); ok {
		frame.stop = true
	}
	return Value{}
}

// Name             Function
// block unless c   evaluate the block only if c is falsy
func ctlUnless(inv invocation) Value {
	if inv.arg(0).Truthy() {
		return Value{}
	}
	return inv.leftValue()
}

// Name                 Function
// val when c [other]   val if c is truthy, otherwise other, or null without one
func ctlWhen(inv invocation) Value {
	if inv.arg(0).Truthy() {
		return inv.leftValue()
	}
	return inv.arg(1)
}

// intArg evaluates the k-th operand, which must be a number.
func (inv invocation) intArg(k int, what string) int {
	val := inv.arg(k)
	n, ok := val.AsNumber()
	if !ok {
		inv.sess.abort(TypeMismatch, inv.at, "%v operand must be a number, not %v", what, val.Kind())
	}
	return int(n)
}

// iterFrame resolves the each loop frame addressed by an each_* word: the
// innermost one when it takes no operand, else the one at the depth given.
func (inv invocation) iterFrame() (*iterFrame, bool) {
	depth := 1
	if len(inv.operands) > 0 {
		depth = inv.intArg(0, inv.sym.Name)
	}
	frame, ok := inv.sess.iter(depth)
	if !ok {
		inv.sess.diagnose(OutOfRangeArgument, inv.at, "no each loop at depth %d", depth)
	}
	return frame, ok
}

package phrase

// eval evaluates the phrase starting at index i. Unless skipOperator is set,
// any infix or postfix operators following the word's own span are applied,
// with the word as their left operand.
func (sess *Session) eval(i int, skipOperator bool) Value {
	end := sess.segmentEnd(i)
	if end == 0 {
		return Value{}
	}

	sess.enter(i)
	defer sess.leave()

	word := sess.words[i].word
	sess.logf(">", "@%d %q", i, word)

	if closers[word] {
		sess.diagnose(UnresolvedWord, i, "unbalanced closing bracket")
		return Value{}
	}

	if !skipOperator {
		if j := i + sess.phraseLength(i, true); j < end && sess.isTrailingOperator(j) {
			return sess.evalOperators(i, j, end)
		}
	}

	if _, isLit := literalKind(word); isLit {
		val, err := parseLiteral(word)
		if err != nil {
			sess.diagnose(MalformedLiteral, i, "%v", err)
		}
		return val
	}

	switch word {
	case "(":
		return sess.evalGroup(i, end)
	case "[":
		return sess.evalArray(i, end)
	case "{":
		return sess.evalObject(i, end)
	}
	sym, ok := sess.ns.lookup(word)
	if !ok {
		sess.diagnose(UnresolvedWord, i, "not a literal or defined word")
		return String(word)
	}
	if sym.Fixity != Prefix {
		sess.abort(ArityMismatch, i, "%v %v has no left operand", sym.Fixity, sym.Kind)
	}
	return sess.invoke(invocation{
		sess:     sess,
		sym:      sym,
		at:       i,
		left:     -1,
		operands: sess.operands(sym, i, i+1, end),
	})
}

// evalOperators applies the operator at index j, with the phrase at index i
// as its left operand. While the operator's span is followed by another
// infix or postfix operator, that is applied next, to the prior result.
func (sess *Session) evalOperators(i, j, end int) Value {
	inv := invocation{sess: sess, left: i}
	for {
		sym, _ := sess.ns.lookup(sess.words[j].word)
		inv.sym = sym
		inv.at = j
		inv.operands = sess.operands(sym, j, j+1, end)
		val := sess.invoke(inv)

		j += sess.phraseLength(j, true)
		if j >= end || !sess.isTrailingOperator(j) {
			return val
		}
		inv = invocation{sess: sess, left: i, leftVal: &val}
	}
}

// operands collects sym.Arity operand indices, starting at k; operands stop
// at the end of the segment, or at the closer of an enclosing bracket.
func (sess *Session) operands(sym Symbol, at, k, end int) []int {
	if sym.Arity == 0 {
		return nil
	}
	ops := make([]int, 0, sym.Arity)
	for len(ops) < sym.Arity {
		if k >= end || closers[sess.words[k].word] {
			if len(ops) >= sym.Arity-sym.optional {
				break
			}
			sess.abort(ArityMismatch, at, "expected %d operands, only %d remain", sym.Arity, len(ops))
		}
		ops = append(ops, k)
		k += sess.phraseLength(k, false)
	}
	return ops
}

// evalGroup evaluates each phrase up to the matching ")" in turn, returning
// the last value.
func (sess *Session) evalGroup(i, end int) (val Value) {
	for k := i + 1; k < end && sess.words[k].word != ")"; k += sess.phraseLength(k, false) {
		val = sess.eval(k, false)
	}
	return val
}

func (sess *Session) evalArray(i, end int) Value {
	var vals []Value
	for k := i + 1; k < end && sess.words[k].word != "]"; k += sess.phraseLength(k, false) {
		vals = append(vals, sess.eval(k, false))
	}
	return Array(vals...)
}

// evalObject evaluates phrases alternately as key and value.
func (sess *Session) evalObject(i, end int) Value {
	var (
		obj  Object
		key  string
		odd  bool
		last int
	)
	for k := i + 1; k < end && sess.words[k].word != "}"; k += sess.phraseLength(k, false) {
		val := sess.eval(k, false)
		if odd {
			obj.Set(key, val)
		} else {
			key = objectKey(val)
			last = k
		}
		odd = !odd
	}
	if odd {
		sess.abort(ArityMismatch, last, "object key has no value")
	}
	return Value{kind: ObjectKind, obj: &obj}
}

// invocation is one application of a symbol: the index of the word itself,
// its left operand if it is an operator, and its unevaluated operands.
type invocation struct {
	sess *Session
	sym  Symbol
	at   int

	left    int    // index of the left operand, -1 if none
	leftVal *Value // the left operand, if already evaluated

	operands []int
}

// leftValue evaluates the left operand; it never absorbs the operator being
// applied.
func (inv invocation) leftValue() Value {
	if inv.leftVal != nil {
		return *inv.leftVal
	}
	if inv.left < 0 {
		return Value{}
	}
	return inv.sess.eval(inv.left, true)
}

func (inv invocation) has(k int) bool { return k < len(inv.operands) }

// arg evaluates the k-th operand.
func (inv invocation) arg(k int) Value {
	if !inv.has(k) {
		return Value{}
	}
	return inv.sess.eval(inv.operands[k], false)
}

func (sess *Session) invoke(inv invocation) Value {
	switch sym := inv.sym; sym.Kind {
	case OperatorSymbol:
		var vals []Value
		if sym.Fixity != Prefix {
			vals = append(vals, inv.leftValue())
		}
		for k := range inv.operands {
			vals = append(vals, inv.arg(k))
		}
		val, err := sym.op(vals)
		if err != nil {
			sess.abort(TypeMismatch, inv.at, "%v", err)
		}
		return val

	case ControlSymbol:
		return sym.ctl(inv)

	case FunctionSymbol:
		return sess.call(inv)

	case LiteralSymbol:
		return sym.value

	case SignatureSymbol:
		return Value{}
	}
	return Value{}
}

// call invokes a user function: its arguments are evaluated, bound in a new
// call frame, and its body evaluated within that frame.
func (sess *Session) call(inv invocation) Value {
	sym := inv.sym
	if sym.body < 0 || sym.body >= len(sess.words) {
		sess.diagnose(UnresolvedWord, inv.at, "function %v is declared but not defined", sym.Name)
		return Value{}
	}
	args := make([]Value, len(inv.operands))
	for k := range inv.operands {
		args[k] = inv.arg(k)
	}
	sess.pushCall(inv.at, args)
	defer sess.popCall()
	sess.logf("+", "@%d call %v%v", inv.at, sym.Name, args)
	return sess.eval(sym.body, false)
}

package phrase

import (
	"sort"
	"strconv"
	"strings"
)

// Fixity says where a symbol's operands sit relative to it.
type Fixity uint8

// Fixities; Infix and Postfix symbols take their left operand from the
// phrase that precedes them, their Arity counts only right operands.
const (
	Prefix Fixity = iota
	Infix
	Postfix
)

func (f Fixity) String() string {
	switch f {
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	}
	return "prefix"
}

// SymbolKind says how a symbol is implemented.
type SymbolKind uint8

// Symbol kinds.
const (
	OperatorSymbol SymbolKind = iota
	ControlSymbol
	FunctionSymbol
	LiteralSymbol
	SignatureSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case OperatorSymbol:
		return "operator"
	case ControlSymbol:
		return "control"
	case FunctionSymbol:
		return "function"
	case LiteralSymbol:
		return "literal"
	case SignatureSymbol:
		return "signature"
	}
	return "SymbolKind(" + strconv.Itoa(int(k)) + ")"
}

// signatureMark separates a function name from its arity, as in "name#2".
const signatureMark = "#"

// Symbol describes a word in the namespace.
type Symbol struct {
	Name   string
	Arity  int
	Fixity Fixity
	Kind   SymbolKind

	// optional counts trailing operands that may be missing at the end of
	// the buffer.
	optional int

	op    operatorFunc // OperatorSymbol
	ctl   controlFunc  // ControlSymbol
	body  int          // FunctionSymbol, -1 if only declared
	value Value        // LiteralSymbol
}

// operatorFunc implements a built-in operator over already-evaluated
// operands, the left operand first for Infix and Postfix symbols.
type operatorFunc func(operands []Value) (Value, error)

// controlFunc implements a control word; its operands are left unevaluated,
// so that it can decide what, and how often, to evaluate.
type controlFunc func(inv invocation) Value

type namespace struct {
	functions map[string]Symbol
	operators map[string]Symbol
	controls  map[string]Symbol
	literals  map[string]Symbol
}

func (ns *namespace) init() {
	ns.functions = make(map[string]Symbol)
	ns.operators = make(map[string]Symbol, len(builtinOperators))
	ns.controls = make(map[string]Symbol, len(builtinControls))
	ns.literals = make(map[string]Symbol, len(builtinLiterals))
	for _, sym := range builtinOperators {
		ns.operators[sym.Name] = sym
	}
	for _, sym := range builtinControls {
		ns.controls[sym.Name] = sym
	}
	for _, sym := range builtinLiterals {
		ns.literals[sym.Name] = sym
	}
}

// lookup resolves word: user functions first, then operators, control words,
// literals, and finally the zero-arity pseudo-entry for a "name#N" signature.
func (ns *namespace) lookup(word string) (Symbol, bool) {
	if sym, ok := ns.functions[word]; ok {
		return sym, true
	}
	if sym, ok := ns.operators[word]; ok {
		return sym, true
	}
	if sym, ok := ns.controls[word]; ok {
		return sym, true
	}
	if sym, ok := ns.literals[word]; ok {
		return sym, true
	}
	if strings.Contains(word, signatureMark) && !isQuoted(word) {
		return Symbol{Name: word, Kind: SignatureSymbol}, true
	}
	return Symbol{}, false
}

func (ns *namespace) resolveArity(word string) (int, bool) {
	sym, ok := ns.lookup(word)
	return sym.Arity, ok
}

// defineFunction registers, or replaces, a user function.
func (ns *namespace) defineFunction(name string, arity, body int) {
	ns.functions[name] = Symbol{
		Name:  name,
		Arity: arity,
		Kind:  FunctionSymbol,
		body:  body,
	}
}

// functionNames returns user function names in sorted order.
func (ns *namespace) functionNames() []string {
	names := make([]string, 0, len(ns.functions))
	for name := range ns.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (ns *namespace) names() []string {
	names := make([]string, 0, len(ns.functions)+len(ns.operators)+len(ns.controls)+len(ns.literals))
	for _, m := range []map[string]Symbol{ns.functions, ns.operators, ns.controls, ns.literals} {
		for name := range m {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	// functions may shadow built-ins
	out := names[:0]
	for i, name := range names {
		if i == 0 || name != names[i-1] {
			out = append(out, name)
		}
	}
	return out
}

// parseSignature splits a "name#N" word; ok is false if word is not a
// signature, err is non-nil if it is one with a malformed arity.
func parseSignature(word string) (name string, arity int, ok bool, err error) {
	if isQuoted(word) {
		return "", 0, false, nil
	}
	i := strings.Index(word, signatureMark)
	if i < 0 {
		return "", 0, false, nil
	}
	name = word[:i]
	arity, err = strconv.Atoi(word[i+len(signatureMark):])
	if err == nil && arity < 0 {
		err = strconv.ErrRange
	}
	return name, arity, true, err
}

package phrase

import (
	"errors"
	"fmt"
)

// Kind classifies a Diagnostic.
type Kind uint8

// Diagnostic kinds, grouped by how evaluation proceeds after raising one.
const (
	// UnresolvedWord, OutOfRangeArgument, and MalformedLiteral are recovered
	// where they occur: evaluation substitutes a degenerate value and
	// continues.
	UnresolvedWord Kind = iota + 1
	OutOfRangeArgument
	MalformedLiteral

	// ArityMismatch and TypeMismatch abort the current top-level statement.
	ArityMismatch
	TypeMismatch

	// StackOverflow halts the session.
	StackOverflow
)

var kindNames = [...]string{
	UnresolvedWord:     "unresolved word",
	OutOfRangeArgument: "out of range argument",
	MalformedLiteral:   "malformed literal",
	ArityMismatch:      "arity mismatch",
	TypeMismatch:       "type mismatch",
	StackOverflow:      "stack overflow",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Aborts returns true if the kind aborts the statement that raised it.
func (k Kind) Aborts() bool { return k == ArityMismatch || k == TypeMismatch }

// Fatal returns true if the kind halts the session that raised it.
func (k Kind) Fatal() bool { return k == StackOverflow }

// Location names the source line that a token was read from.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string {
	if loc.Name == "" && loc.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
}

// Diagnostic describes one problem raised while tokenizing or evaluating.
// Index is the offending token's position in the session token buffer, or -1
// if no token applies.
type Diagnostic struct {
	Kind     Kind
	Index    int
	Word     string
	Location Location
	Message  string
}

func (d Diagnostic) Error() string {
	prefix := d.Location.String()
	if prefix == "" {
		prefix = fmt.Sprintf("@%d", d.Index)
	}
	if d.Word != "" {
		return fmt.Sprintf("%v: %v: %q: %v", prefix, d.Kind, d.Word, d.Message)
	}
	return fmt.Sprintf("%v: %v: %v", prefix, d.Kind, d.Message)
}

// Is allows errors.Is(err, Diagnostic{Kind: k}) to match any diagnostic of
// kind k.
func (d Diagnostic) Is(target error) bool {
	if td, ok := target.(Diagnostic); ok {
		return td.Kind == d.Kind && td.Index == 0 && td.Message == ""
	}
	return false
}

// HaltError is returned once a session can no longer execute; every later
// Execute returns the same error.
type HaltError struct {
	error
}

func (err HaltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err HaltError) Unwrap() error { return err.error }

// ErrHalted matches any HaltError under errors.Is.
var ErrHalted = errors.New("session halted")

// Is makes every HaltError match ErrHalted.
func (err HaltError) Is(target error) bool { return target == ErrHalted }

// abortError carries a statement-aborting diagnostic up to the statement
// boundary.
type abortError struct{ Diagnostic }

// haltError carries a fatal error up to the session boundary.
type haltError struct{ error }

func (err haltError) Unwrap() error { return err.error }

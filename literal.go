package phrase

import (
	"encoding/json"
	"strconv"
)

// literalKind recognizes number and quoted string words; true, false and null
// are literal symbols in the namespace instead.
func literalKind(word string) (ValueKind, bool) {
	if isQuoted(word) {
		return StringKind, true
	}
	if isNumber(word) {
		return NumberKind, true
	}
	return NullKind, false
}

// isNumber accepts exactly the JSON number grammar.
func isNumber(word string) bool {
	if word == "" {
		return false
	}
	if c := word[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(word))
}

// parseLiteral interprets a word recognized by literalKind.
func parseLiteral(word string) (Value, error) {
	kind, _ := literalKind(word)
	switch kind {
	case NumberKind:
		n, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return Value{}, err
		}
		return Number(n), nil
	case StringKind:
		var s string
		if err := json.Unmarshal([]byte(word), &s); err != nil {
			return String(word[1 : len(word)-1]), err
		}
		return String(s), nil
	}
	return Value{}, nil
}

// Package phrase implements an arity-driven word-stream language.
//
// A phrase program is a flat stream of whitespace-delimited words. There is
// no grammar and no syntax tree: every word knows how many operands it takes
// (its arity) and where they sit (its fixity), which is enough to work out,
// for any word, how many of the words that follow belong to the expression
// rooted at it. That count is the word's phrase length, and evaluation is a
// walk over the stream that skips from phrase to phrase.
//
// # Words
//
// A number or a double-quoted string is a literal. Inside a string, + stands
// for a space, and (+) for a literal plus; so "hello+world" is the two words
// hello world, as one string. A line starting with # is a comment.
//
// Brackets group: ( ... ) evaluates each phrase within it in turn, and takes
// the value of the last; [ ... ] collects the values of its phrases into an
// array; { ... } pairs them up, key then value, into an object. Operands
// never extend past the closer of an enclosing bracket.
//
// Every other word is looked up in the namespace: user functions first, then
// operators, control words, and the literals true, false and null.
//
// # Operators
//
// A prefix word takes its operands after it:
//
//	print 42
//
// An infix operator takes one operand before it and its arity's worth after
// it, a postfix operator only the one before it:
//
//	print 5 squared
//	print 2 + 3 * 4
//
// There is no precedence: an operator's right operand is itself a phrase,
// which absorbs any operators that follow it. The second line above prints 14.
//
// # Functions
//
//	def double#1 ( arg 1 ) * 2
//	print double 21
//
// def registers the name before the # with the arity after it; arg N is the
// N-th argument of the innermost call. Signatures are registered before
// anything in the same submission is measured or run, so a function may call
// itself, or be called before the def that defines it.
//
// # Control
//
//	if cond then else
//	count times body        times_count depth
//	list each body          each_item  each_key  each_break
//	value when cond other
//	body unless cond
//
// The operands of control words are evaluated only when, and as often as, the
// control word needs them.
//
// # Sessions
//
// A Session owns all interpreter state, which persists across Execute calls;
// see Session.Execute for how errors are reported.
package phrase

package phrase

// Phrase lengths
//
// Source is never parsed into a tree. Instead, the extent of the expression
// rooted at any word is computed on demand from the arity and fixity of the
// words involved: a literal spans itself, a bracket spans through its
// matching closer, and any other word spans itself plus one phrase per
// operand. A phrase followed by an infix or postfix operator is then
// extended to absorb that operator, and its right operands.
//
// That last extension is what skipOperator controls: the left operand of an
// operator is measured without it, otherwise measuring the operand would try
// to absorb the very operator being measured.

// segmentEnd returns the exclusive end of the submission that appended the
// word at index i; phrases never extend past it. Returns 0 if i is out of
// bounds.
func (sess *Session) segmentEnd(i int) int {
	if i < 0 || i >= len(sess.ends) {
		return 0
	}
	return sess.ends[i]
}

// PhraseLength returns how many words belong to the phrase starting at index
// i, including any trailing operator; it returns 0 if i is out of bounds.
func (sess *Session) PhraseLength(i int) int { return sess.phraseLength(i, false) }

func (sess *Session) phraseLength(i int, skipOperator bool) int {
	end := sess.segmentEnd(i)
	if end == 0 {
		return 0
	}
	if !skipOperator {
		if n := sess.lengths[i]; n > 0 {
			return n
		}
	}

	// a closer always stands alone, whether or not its opener was measured
	word := sess.words[i].word
	if closers[word] {
		sess.lengths[i] = 1
		return 1
	}

	sess.enter(i)
	defer sess.leave()

	n := 1
	if _, isLit := literalKind(word); isLit {
		// a literal spans itself
	} else if closer, isOpen := brackets[word]; isOpen {
		for i+n < end {
			if j := i + n; sess.words[j].word == closer {
				sess.lengths[j] = 1
				n++
				break
			}
			n += sess.phraseLength(i+n, false)
		}
	} else if arity, ok := sess.ns.resolveArity(word); ok {
		for k := 0; k < arity && i+n < end && !closers[sess.words[i+n].word]; k++ {
			n += sess.phraseLength(i+n, false)
		}
	} else {
		sess.logf("=", "@%d %q unresolved, length 1", i, word)
	}

	if !skipOperator {
		if j := i + n; j < end && sess.isTrailingOperator(j) {
			n += sess.phraseLength(j, false)
		}
		sess.lengths[i] = n
	}
	return n
}

// isTrailingOperator returns true if the word at index j attaches to the
// phrase before it.
func (sess *Session) isTrailingOperator(j int) bool {
	sym, ok := sess.ns.lookup(sess.words[j].word)
	return ok && (sym.Fixity == Infix || sym.Fixity == Postfix)
}

// resolve computes, and caches, the phrase lengths of every top-level phrase
// in [start, end).
func (sess *Session) resolve(start, end int) {
	for i := start; i < end; {
		n := sess.phraseLength(i, false)
		if n <= 0 {
			break
		}
		sess.logf("=", "@%d %q spans %d", i, sess.words[i].word, n)
		i += n
	}
}

var brackets = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
}

var closers = map[string]bool{
	")": true,
	"]": true,
	"}": true,
}

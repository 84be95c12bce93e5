package phrase

import (
	"io"
	"strings"
	"unicode"

	"github.com/jcorbin/phrase/internal/fileinput"
)

// commentMark starts a comment when it is the first non-blank rune on a line.
const commentMark = '#'

// Inside a quoted word, spaceMark decodes to a space, and plusMark decodes to
// a literal spaceMark.
const (
	spaceMark = "+"
	plusMark  = "(+)"
)

type token struct {
	word string
	loc  Location
}

// tokenizer splits source text into words. Words are whitespace delimited,
// except that a double quoted span is one word, quotes included.
type tokenizer struct {
	in    fileinput.Input
	toks  []token
	diags []Diagnostic

	sb      strings.Builder
	loc     Location
	quoted  bool
	escaped bool
}

// tokenize reads all of r, returning its words. Diagnostic indices are
// relative to the returned slice. Only errors from r itself are returned;
// malformed input is diagnosed, never fatal.
func tokenize(r io.Reader) ([]token, []Diagnostic, error) {
	var tz tokenizer
	tz.in.Queue = append(tz.in.Queue, r)
	err := tz.run()
	return tz.toks, tz.diags, err
}

func (tz *tokenizer) run() error {
	lineStart, comment := true, false
	for {
		r, _, err := tz.in.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		if comment {
			if r == '\n' {
				comment, lineStart = false, true
			}
			continue
		}

		if tz.quoted {
			tz.sb.WriteRune(r)
			switch {
			case tz.escaped:
				tz.escaped = false
			case r == '\\':
				tz.escaped = true
			case r == '"':
				tz.quoted = false
				tz.flush()
			}
			continue
		}

		switch {
		case r == '\n':
			tz.flush()
			lineStart = true
		case unicode.IsSpace(r):
			tz.flush()
		case r == commentMark && lineStart:
			comment = true
		case r == '"':
			tz.flush()
			tz.start()
			tz.sb.WriteRune(r)
			tz.quoted = true
			lineStart = false
		default:
			if tz.sb.Len() == 0 {
				tz.start()
			}
			tz.sb.WriteRune(r)
			lineStart = false
		}
	}

	if tz.quoted {
		if tz.escaped {
			s := tz.sb.String()
			tz.sb.Reset()
			tz.sb.WriteString(s[:len(s)-1])
		}
		tz.sb.WriteByte('"')
		tz.diags = append(tz.diags, Diagnostic{
			Kind:     MalformedLiteral,
			Index:    len(tz.toks),
			Word:     tz.sb.String(),
			Location: tz.loc,
			Message:  "unterminated string closed at end of input",
		})
		tz.quoted = false
	}
	tz.flush()
	return nil
}

func (tz *tokenizer) start() {
	loc := tz.in.Location()
	tz.loc = Location{Name: loc.Name, Line: loc.Line}
}

func (tz *tokenizer) flush() {
	if tz.sb.Len() == 0 {
		return
	}
	word := tz.sb.String()
	tz.sb.Reset()
	if isQuoted(word) {
		word = decodeQuoted(word)
	}
	tz.toks = append(tz.toks, token{word, tz.loc})
}

func isQuoted(word string) bool {
	return len(word) >= 2 && word[0] == '"' && word[len(word)-1] == '"'
}

// decodeQuoted applies the in-string space encoding to a quoted word.
func decodeQuoted(word string) string {
	parts := strings.Split(word[1:len(word)-1], plusMark)
	for i, part := range parts {
		parts[i] = strings.Replace(part, spaceMark, " ", -1)
	}
	return `"` + strings.Join(parts, spaceMark) + `"`
}

// Package attr implements the typed attribute value model (component B):
// one Go type per SVG attribute grammar, each able to parse a raw string
// and serialise back to the canonical shortest textual form.
//
// The per-grammar structure and its reliance on the CSS component-value
// tokeniser are grounded directly on the teacher's types.go, generalised
// from fixed struct fields into a Value interface so any attribute can be
// looked up, parsed, and rewritten uniformly by a dom.Attr bag.
package attr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Value is the contract every typed attribute grammar implements.
type Value interface {
	// Parse sets the value's fields from the attribute's raw text.
	Parse(raw string) error
	// WriteAtom appends the canonical shortest textual form to sb.
	WriteAtom(sb *strings.Builder)
}

// Category flags a parsed attribute's kind for the linter and for passes
// like remove_deprecated_attrs (§3 "category flags").
type Category int

const (
	CategoryNone Category = 0
	CategoryPresentation Category = 1 << iota
	CategoryDeprecated
	CategoryEvent
	CategoryXLink
)

// Token is a lexed CSS component value.
type Token struct {
	Type  css.TokenType
	Value string
}

func tokenize(raw string) ([]Token, error) {
	l := css.NewLexer(parse.NewInputString(raw))
	var out []Token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if l.Err() != nil && l.Err().Error() != "EOF" {
				return nil, l.Err()
			}
			break
		}
		if tt == css.WhitespaceToken {
			continue
		}
		out = append(out, Token{Type: tt, Value: string(data)})
	}
	return out, nil
}

func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.HasPrefix(s, "0.") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-0.") {
		s = "-" + s[2:]
	}
	return s
}

var errUnexpectedToken = errors.New("unexpected token")

func oneToken(raw string) (Token, error) {
	toks, err := tokenize(raw)
	if err != nil {
		return Token{}, err
	}
	if len(toks) != 1 {
		return Token{}, fmt.Errorf("%w: want exactly one token, got %d", errUnexpectedToken, len(toks))
	}
	return toks[0], nil
}

package pathdata

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError reports a malformed `d` attribute value.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("path data: %s (at byte %d)", e.Msg, e.Offset)
}

// Parse parses a `d` attribute value into a command sequence per the
// grammar in §3/§4.5. A leading MoveBy is rewritten to MoveTo per the
// invariant that the first command is never relative-without-a-cursor.
func Parse(d string) ([]Command, error) {
	r := &scanner{r: bufio.NewReader(strings.NewReader(d))}
	if err := r.skipWhitespace(); err != nil && err != io.EOF {
		return nil, err
	}

	var cmds []Command
	first := true
	for {
		letter, eof, err := r.readLetter()
		if err != nil {
			return nil, err
		}
		if eof {
			break
		}
		if letter == 'Z' || letter == 'z' {
			cmds = append(cmds, Command{Kind: KindClosePath})
			continue
		}

		if err := r.skipWhitespace(); err != nil && err != io.EOF {
			return nil, err
		}

		group, err := r.readGroup(letter)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, group...)
	}

	if first && len(cmds) > 0 && cmds[0].Kind == KindMoveTo && !cmds[0].Abs {
		cmds[0].Abs = true
	}
	return cmds, nil
}

type scanner struct {
	r   *bufio.Reader
	pos int
}

func (s *scanner) readByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err == nil {
		s.pos++
	}
	return b, err
}

func (s *scanner) unread() {
	_ = s.r.UnreadByte()
	s.pos--
}

func isWS(b byte) bool {
	switch b {
	case 0x09, 0x0a, 0x0c, 0x0d, 0x20:
		return true
	}
	return false
}

func (s *scanner) skipWhitespace() error {
	for {
		b, err := s.readByte()
		if err != nil {
			return err
		}
		if !isWS(b) {
			s.unread()
			return nil
		}
	}
}

func (s *scanner) readLetter() (byte, bool, error) {
	b, err := s.readByte()
	if err == io.EOF {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	return b, false, nil
}

func startsNumber(b byte) bool {
	return b == '-' || b == '+' || b == '.' || (b >= '0' && b <= '9')
}

func (s *scanner) optionalCommaWsp() error {
	sawWS := false
	for {
		b, err := s.readByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if isWS(b) {
			sawWS = true
			continue
		}
		if b == ',' {
			return s.skipWhitespace()
		}
		s.unread()
		_ = sawWS
		return nil
	}
}

func (s *scanner) readNumber() (float64, error) {
	var b strings.Builder
	c, err := s.readByte()
	if err != nil {
		return 0, err
	}
	if c == '+' || c == '-' {
		b.WriteByte(c)
		c, err = s.readByte()
		if err != nil {
			return 0, &ParseError{Offset: s.pos, Msg: "expected digits after sign"}
		}
	}
	sawDigit := false
	for c >= '0' && c <= '9' {
		b.WriteByte(c)
		sawDigit = true
		c, err = s.readByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if c == '.' {
		b.WriteByte(c)
		c, err = s.readByte()
		for err == nil && c >= '0' && c <= '9' {
			b.WriteByte(c)
			sawDigit = true
			c, err = s.readByte()
		}
	}
	// Exponent
	if c == 'e' || c == 'E' {
		exp := string(c)
		c, err = s.readByte()
		if err == nil && (c == '+' || c == '-') {
			exp += string(c)
			c, err = s.readByte()
		}
		digits := ""
		for err == nil && c >= '0' && c <= '9' {
			digits += string(c)
			c, err = s.readByte()
		}
		if digits != "" {
			b.WriteString(exp + digits)
		} else if err != io.EOF {
			s.unread()
		}
	}
	if err != io.EOF {
		s.unread()
	}
	if !sawDigit {
		return 0, &ParseError{Offset: s.pos, Msg: "expected a number"}
	}
	return strconv.ParseFloat(b.String(), 64)
}

func (s *scanner) readFlag() (float64, error) {
	c, err := s.readByte()
	if err != nil {
		return 0, err
	}
	if c != '0' && c != '1' {
		return 0, &ParseError{Offset: s.pos, Msg: "expected a flag (0 or 1)"}
	}
	return float64(c - '0'), nil
}

func (s *scanner) peekStartsNumber() bool {
	b, err := s.readByte()
	if err != nil {
		return false
	}
	s.unread()
	return startsNumber(b)
}

// readGroup reads every repetition of letter's argument group until the
// next token is no longer a number (§4.1 grammar: repeated groups without
// a letter are Implicit continuations).
func (s *scanner) readGroup(letter byte) ([]Command, error) {
	kind, abs := kindFor(letter)
	arity := kind.Arity()

	var out []Command
	first := true
	for {
		if !first {
			if err := s.skipWhitespace(); err != nil && err != io.EOF {
				return nil, err
			}
			if !s.peekStartsNumber() {
				break
			}
		}

		args := make([]float64, 0, arity)
		for i := 0; i < arity; i++ {
			if i > 0 {
				if err := s.optionalCommaWsp(); err != nil {
					return nil, err
				}
			}
			var v float64
			var err error
			if kind == KindArcTo && (i == 3 || i == 4) {
				v, err = s.readFlag()
			} else {
				v, err = s.readNumber()
			}
			if err != nil {
				return nil, err
			}
			args = append(args, v)
			if i < arity-1 {
				_ = s.optionalCommaWsp()
			}
		}

		implicit := !first
		useKind := kind
		if implicit {
			nk, ok := kind.NextImplicit()
			if ok {
				useKind = nk
			}
		}
		out = append(out, Command{Kind: useKind, Abs: abs, Args: args, Implicit: implicit})
		first = false

		if err := s.skipWhitespace(); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if !s.peekStartsNumber() {
			break
		}
	}
	return out, nil
}

func kindFor(letter byte) (Kind, bool) {
	abs := letter >= 'A' && letter <= 'Z'
	switch letter {
	case 'M', 'm':
		return KindMoveTo, abs
	case 'L', 'l':
		return KindLineTo, abs
	case 'H', 'h':
		return KindHLineTo, abs
	case 'V', 'v':
		return KindVLineTo, abs
	case 'C', 'c':
		return KindCubicTo, abs
	case 'S', 's':
		return KindSmoothTo, abs
	case 'Q', 'q':
		return KindQuadTo, abs
	case 'T', 't':
		return KindSmoothQuadTo, abs
	case 'A', 'a':
		return KindArcTo, abs
	}
	return KindClosePath, abs
}

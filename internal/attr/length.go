package attr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// lossless px→unitless units, per §4.4.
var unitlessEligible = map[string]bool{"px": true, "": true}

// Length represents a number, absolute length, or percentage (§4.4).
type Length struct {
	Value      float64
	Unit       string // "", "px", "pt", "pc", "mm", "cm", "in", "em", "ex"
	Percentage bool
}

func (l *Length) Parse(raw string) error {
	tok, err := oneToken(raw)
	if err != nil {
		return err
	}
	switch tok.Type {
	case css.NumberToken:
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return err
		}
		*l = Length{Value: v}
		return nil
	case css.PercentageToken:
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok.Value, "%"), 64)
		if err != nil {
			return err
		}
		*l = Length{Value: v, Percentage: true}
		return nil
	case css.DimensionToken:
		v, unit := splitDimension(tok.Value)
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		switch unit {
		case "px", "pt", "pc", "mm", "cm", "in", "em", "ex":
			*l = Length{Value: n, Unit: unit}
			return nil
		default:
			return fmt.Errorf("unrecognised length unit %q", unit)
		}
	default:
		return fmt.Errorf("expected a length, got token type %v", tok.Type)
	}
}

func splitDimension(v string) (number, unit string) {
	i := len(v)
	for i > 0 && !(v[i-1] >= '0' && v[i-1] <= '9') {
		i--
	}
	return v[:i], v[i:]
}

func (l *Length) WriteAtom(sb *strings.Builder) {
	unit := l.Unit
	if l.Percentage {
		sb.WriteString(formatNumber(l.Value))
		sb.WriteByte('%')
		return
	}
	// Canonicalise lossless px to unit-less (§4.4).
	if unit == "px" {
		unit = ""
	}
	sb.WriteString(formatNumber(l.Value))
	sb.WriteString(unit)
}

// NumberOptionalNumber is one number, or two separated by a comma (with
// optional whitespace) or whitespace (§4.4).
type NumberOptionalNumber struct {
	First  float64
	Second float64
	HasTwo bool
}

func (n *NumberOptionalNumber) Parse(raw string) error {
	toks, err := tokenize(raw)
	if err != nil {
		return err
	}
	toks = stripCommas(toks)
	switch len(toks) {
	case 1:
		v, err := requireNumber(toks[0])
		if err != nil {
			return err
		}
		*n = NumberOptionalNumber{First: v}
		return nil
	case 2:
		a, err := requireNumber(toks[0])
		if err != nil {
			return err
		}
		b, err := requireNumber(toks[1])
		if err != nil {
			return err
		}
		*n = NumberOptionalNumber{First: a, Second: b, HasTwo: true}
		return nil
	default:
		return fmt.Errorf("expected one or two numbers, got %d tokens", len(toks))
	}
}

func (n *NumberOptionalNumber) WriteAtom(sb *strings.Builder) {
	sb.WriteString(formatNumber(n.First))
	if n.HasTwo && n.Second != n.First {
		sb.WriteByte(' ')
		sb.WriteString(formatNumber(n.Second))
	}
}

func stripCommas(toks []Token) []Token {
	out := toks[:0:0]
	for _, t := range toks {
		if t.Type == css.CommaToken {
			continue
		}
		out = append(out, t)
	}
	return out
}

func requireNumber(t Token) (float64, error) {
	if t.Type != css.NumberToken {
		return 0, fmt.Errorf("expected a number, got token type %v", t.Type)
	}
	return strconv.ParseFloat(t.Value, 64)
}

// ViewBox represents a `viewBox` attribute: four numbers (§4.4).
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

func (v *ViewBox) Parse(raw string) error {
	toks, err := tokenize(raw)
	if err != nil {
		return err
	}
	toks = stripCommas(toks)
	if len(toks) != 4 {
		return fmt.Errorf("viewBox requires exactly four numbers, got %d", len(toks))
	}
	vals := make([]float64, 4)
	for i, t := range toks {
		n, err := requireNumber(t)
		if err != nil {
			return err
		}
		vals[i] = n
	}
	*v = ViewBox{MinX: vals[0], MinY: vals[1], Width: vals[2], Height: vals[3]}
	return nil
}

func (v *ViewBox) WriteAtom(sb *strings.Builder) {
	sb.WriteString(formatNumber(v.MinX))
	sb.WriteByte(' ')
	sb.WriteString(formatNumber(v.MinY))
	sb.WriteByte(' ')
	sb.WriteString(formatNumber(v.Width))
	sb.WriteByte(' ')
	sb.WriteString(formatNumber(v.Height))
}

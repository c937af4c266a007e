package attr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2/css"
)

// Color represents a `<color>` value. RGB/HSL conversion is delegated to
// go-colorful (domain stack §2) rather than the teacher's hand-rolled
// hslToRGB, since go-colorful already models the full sRGB/HSL/Lab space
// that convert_colors (§4.7) needs for its "lightning" minify mode.
type Color struct {
	colorful.Color
	HasAlpha bool
	Alpha    float64
	// Named is the CSS/SVG named-colour spelling this value was parsed
	// from, if any; convert_colors may prefer emitting the shorter of
	// Named and the hex form.
	Named string
}

func (c *Color) Parse(raw string) error {
	toks, err := tokenize(raw)
	if err != nil {
		return err
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty color value")
	}

	if toks[0].Type == css.FunctionToken {
		return c.parseFunction(toks)
	}
	if len(toks) != 1 {
		return fmt.Errorf("unexpected tokens after color value")
	}
	switch toks[0].Type {
	case css.HashToken:
		return c.parseHex(strings.TrimPrefix(toks[0].Value, "#"))
	case css.IdentToken:
		return c.parseNamed(toks[0].Value)
	default:
		return fmt.Errorf("expected a color, got token type %v", toks[0].Type)
	}
}

func (c *Color) parseHex(hex string) error {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return fmt.Errorf("invalid hex color #%s", hex)
	}
	col, err := colorful.Hex("#" + hex[:6])
	if err != nil {
		return err
	}
	c.Color = col
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:8], 16, 8)
		if err != nil {
			return err
		}
		c.HasAlpha, c.Alpha = true, float64(a)/255
	}
	return nil
}

func (c *Color) parseNamed(ident string) error {
	lower := strings.ToLower(ident)
	if lower == "currentcolor" || lower == "transparent" {
		c.Named = lower
		return nil
	}
	hex, ok := namedColors[lower]
	if !ok {
		return fmt.Errorf("unknown color name %q", ident)
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return err
	}
	c.Color, c.Named = col, lower
	return nil
}

func (c *Color) parseFunction(toks []Token) error {
	fn := strings.TrimSuffix(toks[0].Value, "(")
	args, err := numericArgs(toks[1:])
	if err != nil {
		return err
	}
	switch fn {
	case "rgb", "rgba":
		if len(args) != 3 && len(args) != 4 {
			return fmt.Errorf("%s() requires 3 or 4 arguments", fn)
		}
		c.Color = colorful.Color{R: args[0] / 255, G: args[1] / 255, B: args[2] / 255}
		if len(args) == 4 {
			c.HasAlpha, c.Alpha = true, args[3]
		}
		return nil
	case "hsl", "hsla":
		if len(args) != 3 && len(args) != 4 {
			return fmt.Errorf("%s() requires 3 or 4 arguments", fn)
		}
		c.Color = colorful.Hsl(args[0], args[1]/100, args[2]/100)
		if len(args) == 4 {
			c.HasAlpha, c.Alpha = true, args[3]
		}
		return nil
	default:
		return fmt.Errorf("unknown color function %s()", fn)
	}
}

func numericArgs(toks []Token) ([]float64, error) {
	var out []float64
	for _, t := range toks {
		switch t.Type {
		case css.CommaToken, css.RightParenthesisToken:
			continue
		case css.NumberToken:
			v, err := strconv.ParseFloat(t.Value, 64)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		case css.PercentageToken:
			v, err := strconv.ParseFloat(strings.TrimSuffix(t.Value, "%"), 64)
			if err != nil {
				return nil, err
			}
			out = append(out, v*2.55)
		default:
			return nil, fmt.Errorf("expected a number or percentage in color function, got %v", t.Type)
		}
	}
	return out, nil
}

func (c *Color) WriteAtom(sb *strings.Builder) {
	if c.Named == "currentcolor" || c.Named == "transparent" {
		sb.WriteString(c.Named)
		return
	}
	if c.HasAlpha {
		r, g, b := c.RGB255()
		fmt.Fprintf(sb, "rgba(%d,%d,%d,%s)", r, g, b, formatNumber(c.Alpha))
		return
	}
	sb.WriteString(c.Hex())
}

// RGB255 returns the colour's 8-bit channel values.
func (c *Color) RGB255() (r, g, b uint8) {
	return c.Color.RGB255()
}

// Paint represents the `fill`/`stroke` paint value (§4.4): a context
// keyword, a url() reference (optionally with a fallback color), or a
// plain color.
type Paint struct {
	Context string // "context-fill" | "context-stroke"
	URL     string
	None    bool
	Color   *Color
}

func (p *Paint) Parse(raw string) error {
	toks, err := tokenize(raw)
	if err != nil {
		return err
	}
	if len(toks) == 0 {
		p.Color = &Color{Color: colorful.Color{}}
		return nil
	}

	if toks[0].Type == css.URLToken {
		url := toks[0].Value
		p.URL = strings.TrimSuffix(strings.TrimPrefix(url, "url("), ")")
		toks = toks[1:]
		if len(toks) == 0 {
			return nil
		}
	}

	if len(toks) == 1 && toks[0].Type == css.IdentToken {
		switch toks[0].Value {
		case "context-fill", "context-stroke":
			p.Context = toks[0].Value
			return nil
		case "none":
			p.None = true
			return nil
		}
	}

	var c Color
	if err := c.parseTokens(toks); err != nil {
		return err
	}
	p.Color = &c
	return nil
}

// parseTokens is a small seam letting Paint reuse Color's token-level
// parsing without re-tokenising the raw string.
func (c *Color) parseTokens(toks []Token) error {
	if len(toks) == 0 {
		return fmt.Errorf("empty color value")
	}
	if toks[0].Type == css.FunctionToken {
		return c.parseFunction(toks)
	}
	if len(toks) != 1 {
		return fmt.Errorf("unexpected tokens after color value")
	}
	switch toks[0].Type {
	case css.HashToken:
		return c.parseHex(strings.TrimPrefix(toks[0].Value, "#"))
	case css.IdentToken:
		return c.parseNamed(toks[0].Value)
	default:
		return fmt.Errorf("expected a color, got token type %v", toks[0].Type)
	}
}

func (p *Paint) WriteAtom(sb *strings.Builder) {
	if p.URL != "" {
		fmt.Fprintf(sb, "url(%s)", p.URL)
		if p.Context == "" && p.Color == nil && !p.None {
			return
		}
		sb.WriteByte(' ')
	}
	switch {
	case p.Context != "":
		sb.WriteString(p.Context)
	case p.None:
		sb.WriteString("none")
	case p.Color != nil:
		p.Color.WriteAtom(sb)
	}
}

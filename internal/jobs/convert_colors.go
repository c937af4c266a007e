package jobs

import (
	"strings"

	"github.com/oxvg/oxvg-go/internal/attr"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// ConvertColorsConfig controls convert_colors's destructured sub-options
// (§9 open question: unset sub-options default to the "lightning" mode —
// always minify to the shortest equivalent form rather than leaving the
// author's original spelling).
type ConvertColorsConfig struct {
	// CurrentColor rewrites a color equal to this hex value to the
	// "currentColor" keyword when non-empty.
	CurrentColor string
	// Names, when true, prefers a shorter named-colour spelling over hex
	// when one exists and is not longer. It applies to stop-color,
	// flood-color, lighting-color and color; fill and stroke are written
	// through attr.Paint and do not consult it.
	Names bool
}

// colorAttrs lists the presentation attributes convert_colors rewrites.
var colorAttrs = map[string]bool{
	"fill": true, "stroke": true, "stop-color": true,
	"flood-color": true, "lighting-color": true, "color": true,
}

// convertColors minifies every color-valued attribute to its shortest
// equivalent textual form via attr.Color/attr.Paint's WriteAtom, and
// optionally folds a configured color to currentColor (§4.7
// "convert_colors").
type convertColors struct {
	visitor.BaseVisitor
	cfg ConvertColorsConfig
}

func NewConvertColors(cfg ConvertColorsConfig) Job { return &convertColors{cfg: cfg} }

func (*convertColors) Name() string               { return "convert_colors" }
func (*convertColors) Precondition() Precondition { return Precondition{} }

func (j *convertColors) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	for _, at := range a.Attrs(ref) {
		local := at.Name.Local.String()
		if !colorAttrs[local] {
			continue
		}
		rewritten, ok := j.rewrite(local, at.Value)
		if ok && rewritten != at.Value {
			a.SetAttr(ref, dom.Attr{Name: at.Name, Value: rewritten})
		}
	}
	return nil
}

func (j *convertColors) rewrite(local, raw string) (string, bool) {
	if local == "fill" || local == "stroke" {
		var p attr.Paint
		if err := p.Parse(raw); err != nil {
			return "", false
		}
		if p.Color == nil {
			return "", false
		}
		if j.cfg.CurrentColor != "" && strings.EqualFold(p.Color.Hex(), j.cfg.CurrentColor) {
			return "currentColor", true
		}
		return attr.WriteAtom(&p), true
	}

	var c attr.Color
	if err := c.Parse(raw); err != nil {
		return "", false
	}
	if j.cfg.CurrentColor != "" && strings.EqualFold(c.Hex(), j.cfg.CurrentColor) {
		return "currentColor", true
	}
	out := attr.WriteAtom(&c)
	if j.cfg.Names && len(c.Named) > 0 && len(c.Named) <= len(out) {
		out = c.Named
	}
	return out, true
}

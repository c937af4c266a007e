package jobs

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

var (
	linearGradientName = atom.Intern("linearGradient")
	radialGradientName = atom.Intern("radialGradient")
	stopName           = atom.Intern("stop")
	stopColorName      = atom.NewQName("", "", "stop-color")
	stopOpacityName    = atom.NewQName("", "", "stop-opacity")
)

// convertOneStopGradients replaces every fill/stroke url(#id) reference to
// a gradient with exactly one <stop> child with that stop's plain color,
// then deletes the now-unused gradient definitions (§4.7
// "convert_one_stop_gradients"). The gradient scan runs once up front in
// Document, since a reference may appear anywhere in the tree regardless
// of where its <defs> block sits.
type convertOneStopGradients struct {
	visitor.BaseVisitor
	colorByID map[string]string
}

func NewConvertOneStopGradients() Job { return &convertOneStopGradients{} }
func (*convertOneStopGradients) Name() string               { return "convert_one_stop_gradients" }
func (*convertOneStopGradients) Precondition() Precondition { return Precondition{} }

func (j *convertOneStopGradients) Document(ctx *visitor.Context, ref dom.Ref) error {
	j.colorByID = map[string]string{}
	var scan func(dom.Ref)
	a := ctx.Info.Arena
	scan = func(n dom.Ref) {
		if a.Kind(n) == dom.KindElement {
			name := a.Name(n).Local
			if name == linearGradientName || name == radialGradientName {
				if id, ok := a.Attr(n, idName); ok {
					if color, ok := oneStopColor(a, n); ok {
						j.colorByID[id.Value] = color
					}
				}
			}
		}
		for _, c := range a.Children(n) {
			scan(c)
		}
	}
	scan(ref)
	return nil
}

func oneStopColor(a *dom.Arena, gradient dom.Ref) (string, bool) {
	stops := 0
	var only dom.Ref
	for _, c := range a.Children(gradient) {
		if a.Kind(c) == dom.KindElement && a.Name(c).Local == stopName {
			stops++
			only = c
		}
	}
	if stops != 1 {
		return "", false
	}
	color, ok := a.Attr(only, stopColorName)
	if !ok {
		return "black", true
	}
	return color.Value, true
}

func (j *convertOneStopGradients) Element(ctx *visitor.Context, ref dom.Ref) error {
	if len(j.colorByID) == 0 {
		return nil
	}
	a := ctx.Info.Arena
	for _, local := range []string{"fill", "stroke"} {
		name := atom.NewQName("", "", local)
		at, ok := a.Attr(ref, name)
		if !ok {
			continue
		}
		id, ok := urlFragment(at.Value)
		if !ok {
			continue
		}
		if color, ok := j.colorByID[id]; ok {
			a.SetAttr(ref, dom.Attr{Name: name, Value: color})
		}
	}
	name := a.Name(ref).Local
	if name == linearGradientName || name == radialGradientName {
		if id, ok := a.Attr(ref, idName); ok {
			if _, collapsed := j.colorByID[id.Value]; collapsed {
				a.Detach(ref)
				ctx.Flags.SkipChildren = true
			}
		}
	}
	return nil
}

func urlFragment(v string) (string, bool) {
	if len(v) < 6 || v[:4] != "url(" || v[len(v)-1] != ')' {
		return "", false
	}
	inner := v[4 : len(v)-1]
	if len(inner) < 2 || inner[0] != '#' {
		return "", false
	}
	return inner[1:], true
}

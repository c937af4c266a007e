package jobs

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// convertEllipseToCircle rewrites an <ellipse> with rx == ry into the
// shorter equivalent <circle r="..."> (§4.7 "convert_ellipse_to_circle").
type convertEllipseToCircle struct{ visitor.BaseVisitor }

func NewConvertEllipseToCircle() Job                      { return &convertEllipseToCircle{} }
func (*convertEllipseToCircle) Name() string               { return "convert_ellipse_to_circle" }
func (*convertEllipseToCircle) Precondition() Precondition { return Precondition{} }

func (j *convertEllipseToCircle) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != ellipseName {
		return nil
	}
	rx, rxOK := a.Attr(ref, rxName)
	ry, ryOK := a.Attr(ref, ryName)
	if !rxOK || !ryOK || rx.Value != ry.Value {
		return nil
	}
	a.RemoveAttr(ref, ryName)
	a.SetAttr(ref, dom.Attr{Name: atom.NewQName("", "", "r"), Value: rx.Value})
	name := a.Name(ref)
	a.SetName(ref, atom.NewQName(name.Prefix.String(), name.NS.String(), "circle"))
	return nil
}

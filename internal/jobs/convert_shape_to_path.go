package jobs

import (
	"fmt"
	"strconv"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// convertShapeToPath rewrites <rect>/<line>/<polyline>/<polygon> elements
// (with no rx/ry rounding on rect) into an equivalent <path> (§4.7
// "convert_shape_to_path"). Rounded rects and circles/ellipses are left
// alone: a faithful path equivalent needs arc commands, which
// convert_ellipse_to_circle/convert_path_data handle instead.
type convertShapeToPath struct{ visitor.BaseVisitor }

func NewConvertShapeToPath() Job                      { return &convertShapeToPath{} }
func (*convertShapeToPath) Name() string               { return "convert_shape_to_path" }
func (*convertShapeToPath) Precondition() Precondition { return Precondition{} }

var (
	lineName     = atom.Intern("line")
	polylineName = atom.Intern("polyline")
	polygonName  = atom.Intern("polygon")
	pointsName   = atom.NewQName("", "", "points")
	x1Name       = atom.NewQName("", "", "x1")
	y1Name       = atom.NewQName("", "", "y1")
	x2Name       = atom.NewQName("", "", "x2")
	y2Name       = atom.NewQName("", "", "y2")
	rxName       = atom.NewQName("", "", "rx")
	ryName       = atom.NewQName("", "", "ry")
	xName        = atom.NewQName("", "", "x")
	yName        = atom.NewQName("", "", "y")
)

func (j *convertShapeToPath) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	name := a.Name(ref).Local

	var d string
	switch name {
	case rectName:
		if _, ok := a.Attr(ref, rxName); ok {
			return nil
		}
		if _, ok := a.Attr(ref, ryName); ok {
			return nil
		}
		x := numAttr(a, ref, xName)
		y := numAttr(a, ref, yName)
		w := numAttr(a, ref, widthName)
		h := numAttr(a, ref, heightName)
		if w <= 0 || h <= 0 {
			return nil
		}
		d = fmt.Sprintf("M%s,%s H%s V%s H%s Z", fnum(x), fnum(y), fnum(x+w), fnum(y+h), fnum(x))
		a.RemoveAttr(ref, xName)
		a.RemoveAttr(ref, yName)
		a.RemoveAttr(ref, widthName)
		a.RemoveAttr(ref, heightName)
	case lineName:
		x1 := numAttr(a, ref, x1Name)
		y1 := numAttr(a, ref, y1Name)
		x2 := numAttr(a, ref, x2Name)
		y2 := numAttr(a, ref, y2Name)
		d = fmt.Sprintf("M%s,%s %s,%s", fnum(x1), fnum(y1), fnum(x2), fnum(y2))
		a.RemoveAttr(ref, x1Name)
		a.RemoveAttr(ref, y1Name)
		a.RemoveAttr(ref, x2Name)
		a.RemoveAttr(ref, y2Name)
	case polylineName, polygonName:
		pts, ok := a.Attr(ref, pointsName)
		if !ok {
			return nil
		}
		d = "M" + pts.Value
		if name == polygonName {
			d += " Z"
		}
		a.RemoveAttr(ref, pointsName)
	default:
		return nil
	}

	a.SetAttr(ref, dom.Attr{Name: dAttrName, Value: d})

	qname := atom.NewQName(a.Name(ref).Prefix.String(), a.Name(ref).NS.String(), "path")
	a.SetName(ref, qname)
	return nil
}

func numAttr(a *dom.Arena, ref dom.Ref, name atom.QName) float64 {
	at, ok := a.Attr(ref, name)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(at.Value, 64)
	if err != nil {
		return 0
	}
	return v
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

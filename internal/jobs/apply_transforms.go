package jobs

import (
	"github.com/oxvg/oxvg-go/internal/attr"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/pathdata"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// ApplyTransformsConfig configures apply_transforms (§4.7
// "apply_transforms").
type ApplyTransformsConfig struct {
	// TransformPrecision rounds the matrix-applied path data; zero or less
	// means 3.
	TransformPrecision int
}

// applyTransforms bakes a <path>'s `transform` matrix directly into its
// "d" coordinates and removes the attribute (§4.7 "apply_transforms").
// Only translate/scale/matrix ops are composable through attr.Transform's
// ToMatrix today, so a rotate/skew op present in the list makes the
// element ineligible rather than silently producing a wrong shape.
type applyTransforms struct {
	visitor.BaseVisitor
	cfg ApplyTransformsConfig
}

func NewApplyTransforms(cfg ApplyTransformsConfig) Job { return &applyTransforms{cfg: cfg} }

func (*applyTransforms) Name() string               { return "apply_transforms" }
func (*applyTransforms) Precondition() Precondition { return Precondition{} }

func (j *applyTransforms) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != pathElemName {
		return nil
	}
	tAttr, ok := a.Attr(ref, transformAttrName)
	if !ok {
		return nil
	}
	var t attr.Transform
	if err := t.Parse(tAttr.Value); err != nil {
		return nil
	}
	for _, op := range t.Ops {
		if op.Kind != "translate" && op.Kind != "scale" && op.Kind != "matrix" {
			return nil
		}
	}

	dAttr, ok := a.Attr(ref, dAttrName)
	if !ok {
		return nil
	}
	cmds, err := pathdata.Parse(dAttr.Value)
	if err != nil {
		return nil
	}
	for _, c := range cmds {
		if c.Kind == pathdata.KindArcTo && c.Args[2] != 0 {
			return nil // a rotated-ellipse arc can't be re-expressed after an anisotropic matrix without recomputing rx/ry/rotation
		}
	}

	m := t.ToMatrix()
	abs := pathdata.Walk(cmds)
	transformed := make([]pathdata.Command, len(cmds))
	for i, c := range cmds {
		transformed[i] = transformCommand(c, abs[i], m)
	}

	precision := j.cfg.TransformPrecision
	if precision <= 0 {
		precision = 3
	}
	p := pathdata.Path{Commands: transformed}
	a.SetAttr(ref, dom.Attr{Name: dAttrName, Value: p.String(precision)})
	a.RemoveAttr(ref, transformAttrName)
	return nil
}

// transformCommand rewrites one command into its absolute, matrix-applied
// equivalent using pos's already-resolved start/end points rather than
// re-deriving relative deltas, since the matrix may not preserve the
// original command's H/V/implicit shorthand shape.
func transformCommand(c pathdata.Command, pos pathdata.Positioned, m [6]float64) pathdata.Command {
	nc := pathdata.Command{Kind: c.Kind, Abs: true}
	switch c.Kind {
	case pathdata.KindMoveTo, pathdata.KindLineTo, pathdata.KindSmoothQuadTo:
		x, y := transformPoint(pos.End.X, pos.End.Y, m)
		nc.Args = []float64{x, y}
	case pathdata.KindHLineTo, pathdata.KindVLineTo:
		x, y := transformPoint(pos.End.X, pos.End.Y, m)
		nc.Kind = pathdata.KindLineTo
		nc.Args = []float64{x, y}
	case pathdata.KindCubicTo:
		x1, y1 := transformPoint(pos.Ctrl[0].X, pos.Ctrl[0].Y, m)
		x2, y2 := transformPoint(pos.Ctrl[1].X, pos.Ctrl[1].Y, m)
		x, y := transformPoint(pos.End.X, pos.End.Y, m)
		nc.Args = []float64{x1, y1, x2, y2, x, y}
	case pathdata.KindSmoothTo:
		x2, y2 := transformPoint(pos.Ctrl[1].X, pos.Ctrl[1].Y, m)
		x, y := transformPoint(pos.End.X, pos.End.Y, m)
		nc.Args = []float64{x2, y2, x, y}
	case pathdata.KindQuadTo:
		x1, y1 := transformPoint(pos.Ctrl[0].X, pos.Ctrl[0].Y, m)
		x, y := transformPoint(pos.End.X, pos.End.Y, m)
		nc.Args = []float64{x1, y1, x, y}
	case pathdata.KindArcTo:
		x, y := transformPoint(pos.End.X, pos.End.Y, m)
		scale := matrixScale(m)
		nc.Args = []float64{c.Args[0] * scale, c.Args[1] * scale, c.Args[2], c.Args[3], c.Args[4], x, y}
	case pathdata.KindClosePath:
		nc.Args = nil
	}
	return nc
}

// matrixScale approximates the uniform scale factor implied by m, used to
// rescale an arc's radii under the translate, scale and matrix ops
// apply_transforms accepts.
func matrixScale(m [6]float64) float64 {
	sx := absf(m[0]) + absf(m[2])
	sy := absf(m[1]) + absf(m[3])
	if sx == 0 {
		return sy
	}
	if sy == 0 {
		return sx
	}
	return (sx + sy) / 2
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func transformPoint(x, y float64, m [6]float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

package jobs

import (
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/pathdata"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// ConvertPathDataConfig exposes the pathdata.Options the pass drives
// (§4.7 "convert_path_data", grounded on internal/pathdata/optimise.go).
type ConvertPathDataConfig struct {
	Precision       int
	ArcThreshold    float64
	ArcTolerance    float64
	ForceAbsolute   bool
	StraightCurves  bool
	CurveSmooth     bool
	LineShorthands  bool
	CollapseRepeats bool
	CurveToArc      bool
}

func (c ConvertPathDataConfig) toOptions() pathdata.Options {
	opts := pathdata.DefaultOptions()
	if c.Precision > 0 {
		opts.Precision = c.Precision
	}
	if c.ArcThreshold > 0 {
		opts.ArcThreshold = c.ArcThreshold
	}
	if c.ArcTolerance > 0 {
		opts.ArcTolerance = c.ArcTolerance
	}
	opts.ForceAbsolute = c.ForceAbsolute
	opts.StraightCurves = c.StraightCurves
	opts.CurveSmooth = c.CurveSmooth
	opts.LineShorthands = c.LineShorthands
	opts.CollapseRepeats = c.CollapseRepeats
	opts.CurveToArc = c.CurveToArc
	return opts
}

// convertPathData rewrites a <path>'s "d" attribute through the
// multi-stage pathdata optimiser (§4.7 "convert_path_data"). Other
// elements, including the "points" of <polygon>/<polyline>, are left as
// they are.
type convertPathData struct {
	visitor.BaseVisitor
	opts pathdata.Options
}

func NewConvertPathData(cfg ConvertPathDataConfig) Job {
	return &convertPathData{opts: cfg.toOptions()}
}

func (*convertPathData) Name() string               { return "convert_path_data" }
func (*convertPathData) Precondition() Precondition { return Precondition{} }

func (j *convertPathData) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != pathElemName {
		return nil
	}
	at, ok := a.Attr(ref, dAttrName)
	if !ok {
		return nil
	}
	p, err := pathdata.ParsePath(at.Value)
	if err != nil {
		return nil
	}
	optimised := p.Optimise(j.opts)
	a.SetAttr(ref, dom.Attr{Name: at.Name, Value: optimised.String(j.opts.Precision)})
	return nil
}

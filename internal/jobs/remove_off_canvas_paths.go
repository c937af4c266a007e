package jobs

import (
	"strconv"
	"strings"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/pathdata"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// removeOffCanvasPaths deletes <path> elements whose bounding box lies
// entirely outside the document's viewBox (§4.7 "remove_off_canvas_paths").
// Elements under a transform are left alone: computing the canvas-space
// bounding box of a transformed path needs matrix composition this pass
// does not attempt, so it only acts on paths with no transform on
// themselves or on any ancestor.
type removeOffCanvasPaths struct {
	visitor.BaseVisitor
	viewBox [4]float64
	hasBox  bool
}

func NewRemoveOffCanvasPaths() Job { return &removeOffCanvasPaths{} }

func (*removeOffCanvasPaths) Name() string               { return "remove_off_canvas_paths" }
func (*removeOffCanvasPaths) Precondition() Precondition { return Precondition{} }

var (
	svgName      = atom.Intern("svg")
	pathElemName = atom.Intern("path")
	dAttrName    = atom.NewQName("", "", "d")
	transformAttrName = atom.NewQName("", "", "transform")
)

func (j *removeOffCanvasPaths) Document(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	for _, c := range a.Children(ref) {
		if a.Kind(c) == dom.KindElement && a.Name(c).Local == svgName {
			if vb, ok := a.Attr(c, atom.NewQName("", "", "viewBox")); ok {
				fields := strings.Fields(strings.ReplaceAll(vb.Value, ",", " "))
				if len(fields) == 4 {
					var nums [4]float64
					ok := true
					for i, f := range fields {
						v, err := strconv.ParseFloat(f, 64)
						if err != nil {
							ok = false
							break
						}
						nums[i] = v
					}
					if ok {
						j.viewBox = nums
						j.hasBox = true
					}
				}
			}
		}
	}
	return nil
}

func (j *removeOffCanvasPaths) Element(ctx *visitor.Context, ref dom.Ref) error {
	if !j.hasBox {
		return nil
	}
	a := ctx.Info.Arena
	if a.Name(ref).Local != pathElemName {
		return nil
	}
	for p := ref; p != dom.NoRef; p = a.Parent(p) {
		if _, ok := a.Attr(p, transformAttrName); ok {
			return nil
		}
	}
	d, ok := a.Attr(ref, dAttrName)
	if !ok {
		return nil
	}
	cmds, err := pathdata.Parse(d.Value)
	if err != nil {
		return nil
	}
	minX, minY, maxX, maxY := boundsOf(pathdata.Walk(cmds))
	if maxX == minX && maxY == minY && len(cmds) == 0 {
		return nil
	}
	vx0, vy0 := j.viewBox[0], j.viewBox[1]
	vx1, vy1 := j.viewBox[0]+j.viewBox[2], j.viewBox[1]+j.viewBox[3]
	if maxX < vx0 || minX > vx1 || maxY < vy0 || minY > vy1 {
		a.Detach(ref)
		ctx.Flags.SkipChildren = true
	}
	return nil
}

func boundsOf(pts []pathdata.Positioned) (minX, minY, maxX, maxY float64) {
	first := true
	consider := func(p pathdata.Point) {
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			return
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	for _, p := range pts {
		consider(p.End)
	}
	return
}

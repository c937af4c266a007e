package jobs

import (
	"fmt"
	"strings"

	"github.com/oxvg/oxvg-go/internal/attr"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/pathdata"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// convertTransform collapses a multi-op `transform` list into a single
// matrix() when doing so serialises shorter, and always re-serialises
// through attr.Transform's shortest-number formatting (§4.7
// "convert_transform").
type convertTransform struct{ visitor.BaseVisitor }

func NewConvertTransform() Job                      { return &convertTransform{} }
func (*convertTransform) Name() string               { return "convert_transform" }
func (*convertTransform) Precondition() Precondition { return Precondition{} }

func (j *convertTransform) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	at, ok := a.Attr(ref, transformAttrName)
	if !ok {
		return nil
	}
	var t attr.Transform
	if err := t.Parse(at.Value); err != nil {
		return nil
	}

	plain := attr.WriteAtom(&t)

	var collapsed string
	if len(t.Ops) > 1 {
		composable := true
		for _, op := range t.Ops {
			if op.Kind != "translate" && op.Kind != "scale" && op.Kind != "matrix" {
				composable = false
			}
		}
		if composable {
			m := t.ToMatrix()
			collapsed = matrixString(m)
		}
	}

	out := plain
	if collapsed != "" && len(collapsed) < len(plain) {
		out = collapsed
	}
	if out != at.Value {
		a.SetAttr(ref, dom.Attr{Name: at.Name, Value: out})
	}
	return nil
}

func matrixString(m [6]float64) string {
	rounder := pathdata.Rounder{Precision: 5}
	parts := make([]string, 6)
	for i, v := range m {
		parts[i] = rounder.Round(v)
	}
	return fmt.Sprintf("matrix(%s)", strings.Join(parts, " "))
}

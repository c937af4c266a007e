package jobs

import (
	"sort"

	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// sortDefsChildren orders the children of a <defs> element by tag name so
// repeated gradient/clipPath/symbol groups diff cleanly across revisions
// (§4.7 "sort_defs_children"). Order among same-named children is kept
// stable, since one may reference another via href.
type sortDefsChildren struct{ visitor.BaseVisitor }

func NewSortDefsChildren() Job                      { return &sortDefsChildren{} }
func (*sortDefsChildren) Name() string               { return "sort_defs_children" }
func (*sortDefsChildren) Precondition() Precondition { return Precondition{} }

func (j *sortDefsChildren) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != defsName {
		return nil
	}
	children := append([]dom.Ref(nil), a.Children(ref)...)
	sort.SliceStable(children, func(i, k int) bool {
		return a.Name(children[i]).Local.String() < a.Name(children[k]).Local.String()
	})
	a.ReplaceChildren(ref, children)
	return nil
}

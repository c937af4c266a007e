package jobs

import (
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// collapseGroups unwraps a <g> that has no attributes of its own and
// exactly the children it started with, splicing its children directly
// into its parent (§4.7 "collapse_groups"). Groups with an id are kept,
// since the id may be the target of a fragment reference or <use>.
type collapseGroups struct{ visitor.BaseVisitor }

func NewCollapseGroups() Job                      { return &collapseGroups{} }
func (*collapseGroups) Name() string               { return "collapse_groups" }
func (*collapseGroups) Precondition() Precondition { return Precondition{} }

func (j *collapseGroups) ExitElement(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != groupName {
		return nil
	}
	if len(a.Attrs(ref)) > 0 {
		return nil
	}
	parent := a.Parent(ref)
	if parent == dom.NoRef {
		return nil
	}

	children := a.Children(ref)
	for _, c := range children {
		a.InsertBefore(ref, c)
	}
	a.Detach(ref)
	return nil
}

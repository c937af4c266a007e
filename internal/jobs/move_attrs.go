package jobs

import (
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// moveElemsAttrsToGroup hoists a presentation attribute shared by every
// element child of a <g> up onto the group itself, removing it from each
// child (§4.7 "move_elems_attrs_to_group"). Only attributes with no
// rendering meaning at the group level are skipped via
// nonInheritableOnGroups.
type moveElemsAttrsToGroup struct{ visitor.BaseVisitor }

func NewMoveElemsAttrsToGroup() Job                      { return &moveElemsAttrsToGroup{} }
func (*moveElemsAttrsToGroup) Name() string               { return "move_elems_attrs_to_group" }
func (*moveElemsAttrsToGroup) Precondition() Precondition { return Precondition{} }

func (j *moveElemsAttrsToGroup) ExitElement(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != groupName {
		return nil
	}
	children := elementChildren(a, ref)
	if len(children) < 2 {
		return nil
	}

	shared := map[dom.Attr]int{}
	for _, c := range children {
		for _, at := range a.Attrs(c) {
			if nonInheritableOnGroups[at.Name.Local.String()] {
				continue
			}
			shared[at]++
		}
	}
	for at, count := range shared {
		if count != len(children) {
			continue
		}
		if _, exists := a.Attr(ref, at.Name); exists {
			continue
		}
		a.SetAttr(ref, at)
		for _, c := range children {
			a.RemoveAttr(c, at.Name)
		}
	}
	return nil
}

func elementChildren(a *dom.Arena, ref dom.Ref) []dom.Ref {
	var out []dom.Ref
	for _, c := range a.Children(ref) {
		if a.Kind(c) == dom.KindElement {
			out = append(out, c)
		}
	}
	return out
}

// moveGroupAttrsToElems is the inverse: when a <g> has a single element
// child, push each group attribute the child does not already set (other
// than nonInheritableOnGroups) down onto the child (§4.7
// "move_group_attrs_to_elems"). This pass only pushes attributes down;
// unwrapping the group itself is collapse_groups's job.
type moveGroupAttrsToElems struct{ visitor.BaseVisitor }

func NewMoveGroupAttrsToElems() Job                      { return &moveGroupAttrsToElems{} }
func (*moveGroupAttrsToElems) Name() string               { return "move_group_attrs_to_elems" }
func (*moveGroupAttrsToElems) Precondition() Precondition { return Precondition{} }

func (j *moveGroupAttrsToElems) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != groupName {
		return nil
	}
	children := elementChildren(a, ref)
	if len(children) != 1 {
		return nil
	}
	child := children[0]
	for _, at := range a.Attrs(ref) {
		if nonInheritableOnGroups[at.Name.Local.String()] {
			continue
		}
		if _, exists := a.Attr(child, at.Name); exists {
			continue
		}
		a.SetAttr(child, at)
		a.RemoveAttr(ref, at.Name)
	}
	return nil
}

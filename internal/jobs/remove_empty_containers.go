package jobs

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// emptyableContainers lists elements that render nothing once they have
// no children left (§4.7 "remove_empty_containers").
var emptyableContainers = map[atom.Atom]bool{
	atom.Intern("g"):             true,
	atom.Intern("defs"):          true,
	atom.Intern("symbol"):        true,
	atom.Intern("marker"):        true,
	atom.Intern("mask"):          true,
	atom.Intern("pattern"):       true,
	atom.Intern("linearGradient"): true,
	atom.Intern("radialGradient"): true,
	atom.Intern("clipPath"):      true,
	atom.Intern("switch"):        true,
}

// removeEmptyContainers deletes elements from emptyableContainers that
// have no child nodes after the rest of the tree has been optimised. Runs
// on ExitElement (post-order) so a parent whose children were just emptied
// by a sibling pass is caught too.
type removeEmptyContainers struct{ visitor.BaseVisitor }

func NewRemoveEmptyContainers() Job                      { return &removeEmptyContainers{} }
func (*removeEmptyContainers) Name() string               { return "remove_empty_containers" }
func (*removeEmptyContainers) Precondition() Precondition { return Precondition{} }

func (j *removeEmptyContainers) ExitElement(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	name := a.Name(ref)
	if !emptyableContainers[name.Local] {
		return nil
	}
	if a.FirstChild(ref) != dom.NoRef {
		return nil
	}
	// An id-bearing container may still be the target of a <use>/url(#...)
	// reference elsewhere in the document even while empty of content.
	if _, ok := a.Attr(ref, idName); ok {
		return nil
	}
	a.Detach(ref)
	return nil
}

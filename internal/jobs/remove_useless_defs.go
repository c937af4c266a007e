package jobs

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

var (
	defsName = atom.Intern("defs")
	idName   = atom.NewQName("", "", "id")
)

// removeUselessDefs deletes <defs> elements whose subtree contains no
// id-bearing descendant — nothing outside the defs block can reference
// such content, and defs itself never renders (§4.7 "remove_useless_defs").
type removeUselessDefs struct{ visitor.BaseVisitor }

func NewRemoveUselessDefs() Job                      { return &removeUselessDefs{} }
func (*removeUselessDefs) Name() string               { return "remove_useless_defs" }
func (*removeUselessDefs) Precondition() Precondition { return Precondition{} }

func (j *removeUselessDefs) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != defsName {
		return nil
	}
	if hasIDDescendant(a, ref) {
		return nil
	}
	a.Detach(ref)
	ctx.Flags.SkipChildren = true
	return nil
}

func hasIDDescendant(a *dom.Arena, ref dom.Ref) bool {
	for _, c := range a.Children(ref) {
		if a.Kind(c) != dom.KindElement {
			continue
		}
		if _, ok := a.Attr(c, idName); ok {
			return true
		}
		if hasIDDescendant(a, c) {
			return true
		}
	}
	return false
}

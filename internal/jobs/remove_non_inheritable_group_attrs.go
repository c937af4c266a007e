package jobs

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

var groupName = atom.Intern("g")

// nonInheritableOnGroups lists presentation attributes that would only
// take effect on a leaf shape and do nothing set directly on a <g>
// container — §4.7 "remove_non_inheritable_group_attrs". opacity,
// clip-path, mask and filter apply to the group as a compositing unit so
// they are deliberately excluded from this list.
var nonInheritableOnGroups = map[string]bool{
	"marker-start": true, "marker-mid": true, "marker-end": true,
	"text-anchor": true, "dominant-baseline": true,
}

// removeNonInheritableGroupAttrs strips presentation attributes on <g>
// elements that have no rendering effect on the group node itself.
type removeNonInheritableGroupAttrs struct{ visitor.BaseVisitor }

func NewRemoveNonInheritableGroupAttrs() Job { return &removeNonInheritableGroupAttrs{} }
func (*removeNonInheritableGroupAttrs) Name() string { return "remove_non_inheritable_group_attrs" }
func (*removeNonInheritableGroupAttrs) Precondition() Precondition {
	return Precondition{}
}

func (j *removeNonInheritableGroupAttrs) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != groupName {
		return nil
	}
	var kept []dom.Attr
	for _, at := range a.Attrs(ref) {
		local := at.Name.Local.String()
		if nonInheritableOnGroups[local] {
			continue
		}
		kept = append(kept, at)
	}
	a.SetAttrs(ref, kept)
	return nil
}

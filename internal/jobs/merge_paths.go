package jobs

import (
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// mergePaths collapses runs of adjacent sibling <path> elements that carry
// identical attributes (other than "d") into a single path, concatenating
// their "d" data (§4.7 "merge_paths"). Paths separated by any other node
// are never merged, since doing so could change paint order.
type mergePaths struct{ visitor.BaseVisitor }

func NewMergePaths() Job                      { return &mergePaths{} }
func (*mergePaths) Name() string               { return "merge_paths" }
func (*mergePaths) Precondition() Precondition { return Precondition{} }

func (j *mergePaths) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	child := a.FirstChild(ref)
	for child != dom.NoRef {
		next := a.NextSibling(child)
		if a.Kind(child) == dom.KindElement && a.Name(child).Local == pathElemName {
			j.mergeRunFrom(a, child)
		}
		child = next
	}
	return nil
}

func (j *mergePaths) mergeRunFrom(a *dom.Arena, first dom.Ref) {
	firstAttrs := attrsWithoutD(a, first)
	cur := a.NextSibling(first)
	for cur != dom.NoRef && a.Kind(cur) == dom.KindElement && a.Name(cur).Local == pathElemName && sameAttrs(attrsWithoutD(a, cur), firstAttrs) {
		d1, _ := a.Attr(first, dAttrName)
		d2, _ := a.Attr(cur, dAttrName)
		a.SetAttr(first, dom.Attr{Name: dAttrName, Value: d1.Value + " " + d2.Value})
		toRemove := cur
		cur = a.NextSibling(cur)
		a.Detach(toRemove)
	}
}

func attrsWithoutD(a *dom.Arena, ref dom.Ref) []dom.Attr {
	var out []dom.Attr
	for _, at := range a.Attrs(ref) {
		if at.Name == dAttrName {
			continue
		}
		out = append(out, at)
	}
	return out
}

func sameAttrs(a, b []dom.Attr) bool {
	if len(a) != len(b) {
		return false
	}
	idx := make(map[dom.Attr]bool, len(a))
	for _, at := range a {
		idx[at] = true
	}
	for _, at := range b {
		if !idx[at] {
			return false
		}
	}
	return true
}

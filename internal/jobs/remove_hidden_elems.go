package jobs

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// removeHiddenElems deletes elements that never render: display:none,
// visibility:hidden (unless an inheriting descendant re-enables
// visibility), zero-radius circles/ellipses, and zero-opacity elements
// (§4.7 "remove_hidden_elems"). Requires computed style so display/
// visibility/opacity set via stylesheet or inheritance are honoured, not
// just the literal attribute.
type removeHiddenElems struct{ visitor.BaseVisitor }

func NewRemoveHiddenElems() Job                      { return &removeHiddenElems{} }
func (*removeHiddenElems) Name() string               { return "remove_hidden_elems" }
func (*removeHiddenElems) Precondition() Precondition { return Precondition{UseComputedStyle: true} }
func (*removeHiddenElems) Prepare(*visitor.Context) visitor.PrepareOutcome {
	return visitor.PrepareUseStyle
}

var (
	circleName  = atom.Intern("circle")
	ellipseName = atom.Intern("ellipse")
	rectName    = atom.Intern("rect")
)

func (j *removeHiddenElems) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	cs := ctx.Computed

	if d, ok := cs.Get("display"); ok && d.Value == "none" {
		a.Detach(ref)
		ctx.Flags.SkipChildren = true
		return nil
	}
	if v, ok := cs.Get("visibility"); ok && v.Value == "hidden" && !descendantReenablesVisibility(a, ref) {
		a.Detach(ref)
		ctx.Flags.SkipChildren = true
		return nil
	}
	if op, ok := cs.Get("opacity"); ok && op.Value == "0" {
		a.Detach(ref)
		ctx.Flags.SkipChildren = true
		return nil
	}

	name := a.Name(ref).Local
	if name == circleName || name == ellipseName {
		if isZero(a, ref, "r") || isZero(a, ref, "rx") || isZero(a, ref, "ry") {
			a.Detach(ref)
			ctx.Flags.SkipChildren = true
		}
	}
	if name == rectName {
		if isZero(a, ref, "width") || isZero(a, ref, "height") {
			a.Detach(ref)
			ctx.Flags.SkipChildren = true
		}
	}
	return nil
}

func isZero(a *dom.Arena, ref dom.Ref, local string) bool {
	at, ok := a.Attr(ref, atom.NewQName("", "", local))
	if !ok {
		return false
	}
	return at.Value == "0" || at.Value == "0px"
}

func descendantReenablesVisibility(a *dom.Arena, ref dom.Ref) bool {
	for _, c := range a.Children(ref) {
		if a.Kind(c) != dom.KindElement {
			continue
		}
		if v, ok := a.Attr(c, atom.NewQName("", "", "visibility")); ok && v.Value != "hidden" {
			return true
		}
		if descendantReenablesVisibility(a, c) {
			return true
		}
	}
	return false
}

package jobs

import (
	"strings"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// mergeStyles concatenates every <style> element's text content into the
// first <style> found in document order, deleting the rest (§4.7
// "merge_styles"). It does not attempt to dedupe or reorder rules —
// cascade order depends on source order, so merging must preserve it.
type mergeStyles struct {
	visitor.BaseVisitor
	first dom.Ref
	found bool
}

func NewMergeStyles() Job                      { return &mergeStyles{} }
func (*mergeStyles) Name() string               { return "merge_styles" }
func (*mergeStyles) Precondition() Precondition { return Precondition{} }

func (j *mergeStyles) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != styleElemNameMerge {
		return nil
	}
	if !j.found {
		j.first = ref
		j.found = true
		return nil
	}

	var text strings.Builder
	for _, c := range a.Children(ref) {
		if a.Kind(c) == dom.KindText || a.Kind(c) == dom.KindCDATA {
			text.WriteString(a.Data(c))
		}
	}
	if text.Len() > 0 {
		last := a.LastChild(j.first)
		if last != dom.NoRef && (a.Kind(last) == dom.KindText || a.Kind(last) == dom.KindCDATA) {
			a.SetData(last, a.Data(last)+"\n"+text.String())
		} else {
			node := a.NewText("\n"+text.String(), 0, 0)
			a.AppendChild(j.first, node)
		}
	}
	a.Detach(ref)
	ctx.Flags.SkipChildren = true
	return nil
}

var styleElemNameMerge = atom.Intern("style")

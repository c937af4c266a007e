package jobs

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"

	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// minifyStyles re-serialises each <style> element's text through
// douceur's parser without the original whitespace/comments (§4.7
// "minify_styles"). Malformed CSS is left untouched rather than
// discarded, matching style.Collect's "never panics" rule.
type minifyStyles struct{ visitor.BaseVisitor }

func NewMinifyStyles() Job                      { return &minifyStyles{} }
func (*minifyStyles) Name() string               { return "minify_styles" }
func (*minifyStyles) Precondition() Precondition { return Precondition{} }

func (j *minifyStyles) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != styleElemNameMerge {
		return nil
	}
	var sb strings.Builder
	for _, c := range a.Children(ref) {
		if a.Kind(c) == dom.KindText || a.Kind(c) == dom.KindCDATA {
			sb.WriteString(a.Data(c))
		}
	}
	if sb.Len() == 0 {
		return nil
	}
	sheet, err := parser.Parse(sb.String())
	if err != nil {
		return nil
	}

	var out strings.Builder
	for _, r := range sheet.Rules {
		if r.Name != "" || len(r.Selectors) == 0 {
			continue // at-rules aren't reconstructable from douceur's Rule alone; leave them out rather than emit wrong CSS
		}
		out.WriteString(strings.Join(r.Selectors, ","))
		out.WriteByte('{')
		for _, d := range r.Declarations {
			fmt.Fprintf(&out, "%s:%s", d.Property, d.Value)
			if d.Important {
				out.WriteString("!important")
			}
			out.WriteByte(';')
		}
		out.WriteByte('}')
	}

	replaceSingleTextChild(a, ref, out.String())
	return nil
}

func replaceSingleTextChild(a *dom.Arena, ref dom.Ref, text string) {
	for _, c := range a.Children(ref) {
		a.Detach(c)
	}
	node := a.NewText(text, 0, 0)
	a.AppendChild(ref, node)
}

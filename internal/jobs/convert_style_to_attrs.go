package jobs

import (
	"github.com/aymerick/douceur/parser"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/attr"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// convertStyleToAttrs moves declarations out of an inline `style`
// attribute into presentation attributes when doing so is unconditionally
// safe: the property has no "!important" flag and is a registered
// presentation attribute (§4.7 "convert_style_to_attrs"). Declarations
// that don't qualify are kept in a (possibly now-shorter) style attribute.
type convertStyleToAttrs struct{ visitor.BaseVisitor }

func NewConvertStyleToAttrs() Job                      { return &convertStyleToAttrs{} }
func (*convertStyleToAttrs) Name() string               { return "convert_style_to_attrs" }
func (*convertStyleToAttrs) Precondition() Precondition { return Precondition{} }

var styleAttrName = atom.NewQName("", "", "style")

func (j *convertStyleToAttrs) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	at, ok := a.Attr(ref, styleAttrName)
	if !ok {
		return nil
	}
	decls, err := parser.ParseDeclarations(ensureSemicolonJobs(at.Value))
	if err != nil {
		return nil
	}

	var remaining []string
	for _, d := range decls {
		if d.Important {
			remaining = append(remaining, d.Property+":"+d.Value+" !important")
			continue
		}
		if cat := attr.CategoryFor(d.Property, ""); cat&attr.CategoryPresentation == 0 {
			remaining = append(remaining, d.Property+":"+d.Value)
			continue
		}
		if _, exists := a.Attr(ref, atom.NewQName("", "", d.Property)); exists {
			remaining = append(remaining, d.Property+":"+d.Value)
			continue
		}
		a.SetAttr(ref, dom.Attr{Name: atom.NewQName("", "", d.Property), Value: d.Value})
	}

	if len(remaining) == 0 {
		a.RemoveAttr(ref, styleAttrName)
		return nil
	}
	joined := ""
	for i, r := range remaining {
		if i > 0 {
			joined += "; "
		}
		joined += r
	}
	a.SetAttr(ref, dom.Attr{Name: styleAttrName, Value: joined})
	return nil
}

func ensureSemicolonJobs(s string) string {
	if len(s) > 0 && s[len(s)-1] != ';' {
		return s + ";"
	}
	return s
}

package jobs

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// removeXLink rewrites deprecated xlink:* attributes to their SVG2
// unprefixed equivalent (xlink:href -> href), dropping the rest of the
// now-unused xlink namespace attributes (§4.7 "remove_xlink").
type removeXLink struct{ visitor.BaseVisitor }

func NewRemoveXLink() Job                      { return &removeXLink{} }
func (*removeXLink) Name() string               { return "remove_xlink" }
func (*removeXLink) Precondition() Precondition { return Precondition{} }

func (j *removeXLink) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	attrs := a.Attrs(ref)
	var kept []dom.Attr
	hasPlainHref := false
	for _, at := range attrs {
		if at.Name.NS.String() == atom.NSXLink && at.Name.Local.String() == "href" {
			continue
		}
		if at.Name.NS == 0 && at.Name.Local.String() == "href" {
			hasPlainHref = true
		}
	}
	for _, at := range attrs {
		if at.Name.NS.String() == atom.NSXLink {
			if at.Name.Local.String() == "href" && !hasPlainHref {
				kept = append(kept, dom.Attr{Name: atom.NewQName("", "", "href"), Value: at.Value})
			}
			continue
		}
		kept = append(kept, at)
	}
	a.SetAttrs(ref, kept)
	return nil
}

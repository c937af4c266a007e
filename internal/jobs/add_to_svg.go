package jobs

import (
	"strings"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// AddAttributesToSVGConfig names the attributes to add to the root <svg>
// element if it doesn't already carry them (§4.7
// "add_attributes_to_svg_element").
type AddAttributesToSVGConfig struct {
	Attrs map[string]string
}

type addAttributesToSVG struct {
	visitor.BaseVisitor
	cfg AddAttributesToSVGConfig
}

func NewAddAttributesToSVG(cfg AddAttributesToSVGConfig) Job { return &addAttributesToSVG{cfg: cfg} }

func (*addAttributesToSVG) Name() string               { return "add_attributes_to_svg_element" }
func (*addAttributesToSVG) Precondition() Precondition { return Precondition{} }

func (j *addAttributesToSVG) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != svgName || a.Parent(ref) != ctx.Root {
		return nil
	}
	for name, value := range j.cfg.Attrs {
		qname := atom.NewQName("", "", name)
		if _, exists := a.Attr(ref, qname); exists {
			continue
		}
		a.SetAttr(ref, dom.Attr{Name: qname, Value: value})
	}
	return nil
}

// AddClassesToSVGConfig names classes to add to the root <svg> element
// (§4.7 "add_classes_to_svg").
type AddClassesToSVGConfig struct {
	ClassNames []string
}

type addClassesToSVG struct {
	visitor.BaseVisitor
	cfg AddClassesToSVGConfig
}

func NewAddClassesToSVG(cfg AddClassesToSVGConfig) Job { return &addClassesToSVG{cfg: cfg} }

func (*addClassesToSVG) Name() string               { return "add_classes_to_svg" }
func (*addClassesToSVG) Precondition() Precondition { return Precondition{} }

func (j *addClassesToSVG) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local != svgName || a.Parent(ref) != ctx.Root {
		return nil
	}
	existing := map[string]bool{}
	var order []string
	if at, ok := a.Attr(ref, classAttrName); ok {
		for _, name := range splitClass(at.Value) {
			if !existing[name] {
				existing[name] = true
				order = append(order, name)
			}
		}
	}
	for _, name := range j.cfg.ClassNames {
		if !existing[name] {
			existing[name] = true
			order = append(order, name)
		}
	}
	a.SetAttr(ref, dom.Attr{Name: classAttrName, Value: strings.Join(order, " ")})
	return nil
}

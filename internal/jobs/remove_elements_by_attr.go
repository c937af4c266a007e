package jobs

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// RemoveElementsByAttrConfig names ids and/or classes whose elements the
// user wants deleted outright (§4.7 "remove_elements_by_attr").
type RemoveElementsByAttrConfig struct {
	ID    []string
	Class []string
}

type removeElementsByAttr struct {
	visitor.BaseVisitor
	ids     map[string]bool
	classes map[string]bool
}

func NewRemoveElementsByAttr(cfg RemoveElementsByAttrConfig) Job {
	j := &removeElementsByAttr{ids: map[string]bool{}, classes: map[string]bool{}}
	for _, id := range cfg.ID {
		j.ids[id] = true
	}
	for _, c := range cfg.Class {
		j.classes[c] = true
	}
	return j
}

func (*removeElementsByAttr) Name() string               { return "remove_elements_by_attr" }
func (*removeElementsByAttr) Precondition() Precondition { return Precondition{} }

var classAttrName = atom.NewQName("", "", "class")

func (j *removeElementsByAttr) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if id, ok := a.Attr(ref, idName); ok && j.ids[id.Value] {
		a.Detach(ref)
		ctx.Flags.SkipChildren = true
		return nil
	}
	if cls, ok := a.Attr(ref, classAttrName); ok {
		for _, name := range splitClass(cls.Value) {
			if j.classes[name] {
				a.Detach(ref)
				ctx.Flags.SkipChildren = true
				return nil
			}
		}
	}
	return nil
}

func splitClass(v string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(v); i++ {
		if i < len(v) && v[i] != ' ' && v[i] != '\t' && v[i] != '\n' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, v[start:i])
			start = -1
		}
	}
	return out
}

package jobs

import (
	"regexp"

	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// RemoveAttrsConfig holds user-supplied regular expressions; an attribute
// is stripped unconditionally when any of them matches its local name
// (§4.7 "remove_attrs"). A pattern is not split into an element:attr
// pair, and the element's own name is not consulted.
type RemoveAttrsConfig struct {
	Patterns []string
}

type removeAttrs struct {
	visitor.BaseVisitor
	patterns []*regexp.Regexp
}

func NewRemoveAttrs(cfg RemoveAttrsConfig) (Job, error) {
	j := &removeAttrs{}
	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		j.patterns = append(j.patterns, re)
	}
	return j, nil
}

func (*removeAttrs) Name() string               { return "remove_attrs" }
func (*removeAttrs) Precondition() Precondition { return Precondition{} }

func (j *removeAttrs) Element(ctx *visitor.Context, ref dom.Ref) error {
	if len(j.patterns) == 0 {
		return nil
	}
	a := ctx.Info.Arena
	var kept []dom.Attr
	for _, at := range a.Attrs(ref) {
		local := at.Name.Local.String()
		match := false
		for _, re := range j.patterns {
			if re.MatchString(local) {
				match = true
				break
			}
		}
		if !match {
			kept = append(kept, at)
		}
	}
	a.SetAttrs(ref, kept)
	return nil
}

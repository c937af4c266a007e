package jobs

import (
	"sort"

	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// SortAttrsConfig lists exact attribute local names to place first, in
// the given order, before the default alphabetical fallback (§4.7 "sort_attrs").
type SortAttrsConfig struct {
	Order []string
}

type sortAttrs struct {
	visitor.BaseVisitor
	order map[string]int
}

func NewSortAttrs(cfg SortAttrsConfig) Job {
	order := make(map[string]int, len(cfg.Order))
	for i, name := range cfg.Order {
		order[name] = i
	}
	return &sortAttrs{order: order}
}

func (*sortAttrs) Name() string               { return "sort_attrs" }
func (*sortAttrs) Precondition() Precondition { return Precondition{} }

func (j *sortAttrs) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	attrs := append([]dom.Attr(nil), a.Attrs(ref)...)
	sort.SliceStable(attrs, func(i, k int) bool {
		ni, nk := attrs[i].Name.Local.String(), attrs[k].Name.Local.String()
		pi, oki := j.order[ni]
		pk, okk := j.order[nk]
		switch {
		case oki && okk:
			return pi < pk
		case oki:
			return true
		case okk:
			return false
		default:
			return ni < nk
		}
	})
	a.SetAttrs(ref, attrs)
	return nil
}

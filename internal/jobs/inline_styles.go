package jobs

import (
	"fmt"
	"sort"

	"github.com/aymerick/douceur/css"

	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// InlineStylesConfig controls which rules are eligible for inlining
// (§4.7 "inline_styles").
type InlineStylesConfig struct {
	// OnlyMatchedOnce restricts inlining to selectors matching exactly one
	// element, so inlining can't blow up document size by duplicating a
	// widely-shared rule onto every match.
	OnlyMatchedOnce bool
}

// inlineStyles copies a matching stylesheet rule's declarations onto each
// matched element's `style` attribute (§4.7 "inline_styles"). It runs
// once per document via Document, since it needs the whole rule set and
// every match up front rather than one element at a time.
type inlineStyles struct {
	visitor.BaseVisitor
	cfg InlineStylesConfig
}

func NewInlineStyles(cfg InlineStylesConfig) Job { return &inlineStyles{cfg: cfg} }

func (*inlineStyles) Name() string { return "inline_styles" }
func (*inlineStyles) Precondition() Precondition {
	return Precondition{NeedsStylesheet: true, UseComputedStyle: true}
}
func (*inlineStyles) Prepare(*visitor.Context) visitor.PrepareOutcome {
	return visitor.PrepareUseStyle
}

func (j *inlineStyles) Document(ctx *visitor.Context, ref dom.Ref) error {
	if ctx.Style == nil {
		return nil
	}
	a := ctx.Info.Arena
	for _, r := range ctx.Style.Stylesheet().Rules {
		matches := ctx.Style.Select(r.Selector, ref)
		if j.cfg.OnlyMatchedOnce && len(matches) != 1 {
			continue
		}
		for _, m := range matches {
			inlineDeclarations(a, m, r.Declarations)
		}
	}
	return nil
}

func inlineDeclarations(a *dom.Arena, ref dom.Ref, decls []css.Declaration) {
	existing := ""
	if at, ok := a.Attr(ref, styleAttrName); ok {
		existing = at.Value
	}
	sorted := append([]css.Declaration(nil), decls...)
	sort.Slice(sorted, func(i, k int) bool { return sorted[i].Property < sorted[k].Property })
	for _, d := range sorted {
		important := ""
		if d.Important {
			important = " !important"
		}
		if existing != "" && existing[len(existing)-1] != ';' {
			existing += ";"
		}
		existing += fmt.Sprintf("%s:%s%s;", d.Property, d.Value, important)
	}
	a.SetAttr(ref, dom.Attr{Name: styleAttrName, Value: existing})
}

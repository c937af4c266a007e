// Package style implements the stylesheet cascade (G): collecting every
// <style> element's text into one document-wide stylesheet, and computing
// a per-element ComputedStyle by the cascade order §4.3/§9 specify.
//
// Stylesheet tokenising is delegated to github.com/aymerick/douceur (built
// on github.com/gorilla/css), the CSS parser the pack's cogentcore-core
// module depends on for exactly this purpose — collecting inline and
// <style>-block declarations into rule sets.
package style

import (
	"sort"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/attr"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/selector"
)

// Origin ranks where a declaration came from, in the cascade order §9
// names: "inherited < attribute < rule (specificity, then source order) <
// inline < important-rule < important-inline".
type Origin int

const (
	OriginInherited Origin = iota
	OriginAttribute
	OriginRule
	OriginInline
	OriginImportantRule
	OriginImportantInline
)

// Declaration is one winning-candidate style value before reduction.
type Declaration struct {
	Property    string
	Value       string
	Origin      Origin
	Specificity [3]int
	SourceIndex int
}

// Rule is one parsed stylesheet rule with its pre-computed specificity.
type Rule struct {
	Selector     *selector.Selector
	Declarations []css.Declaration
	SourceIndex  int
}

// Stylesheet is the document-wide collection of every <style> element's
// rules, gathered once per visit that requests it (§4.3 step 1).
type Stylesheet struct {
	Rules []Rule
}

var styleElemName = atom.Intern("style")

// Collect concatenates every <style> descendant of root's text and parses
// it as one stylesheet. Malformed CSS downgrades to an empty rule set
// rather than failing the visit (§4.3 "never panics on malformed CSS").
func Collect(a *dom.Arena, root dom.Ref) (*Stylesheet, error) {
	var sb strings.Builder
	collectStyleText(a, root, &sb)
	if sb.Len() == 0 {
		return &Stylesheet{}, nil
	}

	parsed, err := parser.Parse(sb.String())
	if err != nil {
		return &Stylesheet{}, nil
	}

	sheet := &Stylesheet{}
	idx := 0
	for _, r := range parsed.Rules {
		if r.Name != "" || len(r.Selectors) == 0 {
			continue // at-rules (media, supports, ...) are not cascaded per element here
		}
		sel, err := selector.Parse(strings.Join(r.Selectors, ","))
		if err != nil {
			continue
		}
		decls := make([]css.Declaration, 0, len(r.Declarations))
		for _, d := range r.Declarations {
			decls = append(decls, *d)
		}
		sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Declarations: decls, SourceIndex: idx})
		idx++
	}
	return sheet, nil
}

func collectStyleText(a *dom.Arena, ref dom.Ref, sb *strings.Builder) {
	if a.Kind(ref) == dom.KindElement && a.Name(ref).Local == styleElemName {
		for _, c := range a.Children(ref) {
			if a.Kind(c) == dom.KindText || a.Kind(c) == dom.KindCDATA {
				sb.WriteString(a.Data(c))
				sb.WriteByte('\n')
			}
		}
	}
	for _, c := range a.Children(ref) {
		collectStyleText(a, c, sb)
	}
}

// ComputedStyle is the per-element winning-value map (§3 "Computed
// style"). Lookup unifies CSS property names and SVG presentation
// attribute names sharing the same PropertyID.
type ComputedStyle struct {
	values map[string]Declaration
}

// Get returns the winning declaration for a property/presentation-attr
// name, and whether one was found.
func (c *ComputedStyle) Get(property string) (Declaration, bool) {
	if c == nil {
		return Declaration{}, false
	}
	d, ok := c.values[property]
	return d, ok
}

// inheritedProperties lists the presentation properties SVG/CSS inherit
// by default (§4.3 step 2 "inherited (from ancestors)").
var inheritedProperties = map[string]bool{
	"color": true, "fill": true, "stroke": true, "stroke-width": true,
	"stroke-dasharray": true, "stroke-dashoffset": true, "stroke-linecap": true,
	"stroke-linejoin": true, "font-family": true, "font-size": true,
	"font-weight": true, "font-style": true, "text-anchor": true,
	"visibility": true, "cursor": true, "clip-rule": true, "fill-rule": true,
	"pointer-events": true,
}

// Session scopes the matcher and computed-style cache to one document
// visit (§5 "Stylesheet/computed-style caches: scoped to one document
// visit; discarded at exit" — indices are only meaningful within the
// Arena they came from, so this must never be shared across documents).
type Session struct {
	arena    *dom.Arena
	sheet    *Stylesheet
	matcher  *selector.Matcher
	computed map[dom.Ref]*ComputedStyle
}

// NewSession collects root's stylesheet and prepares an empty computed
// cache for the visit.
func NewSession(a *dom.Arena, root dom.Ref) (*Session, error) {
	sheet, err := Collect(a, root)
	if err != nil {
		return nil, err
	}
	return &Session{
		arena:    a,
		sheet:    sheet,
		matcher:  selector.NewMatcher(a, root),
		computed: make(map[dom.Ref]*ComputedStyle),
	}, nil
}

func (s *Session) Stylesheet() *Stylesheet { return s.sheet }

// Select returns every element under the session's root matching sel,
// delegating to the underlying selector.Matcher (used by passes like
// inline_styles that need every match for a rule up front).
func (s *Session) Select(sel *selector.Selector, scope dom.Ref) []dom.Ref {
	return s.matcher.Select(sel, scope)
}

// Compute builds a ComputedStyle for ref by walking: inherited values from
// ancestors, the element's own presentation attributes, matching
// stylesheet rules ordered by specificity then source order, matching
// important rules, the inline style attribute, and inline !important
// declarations — exactly the six-step order §4.3/§9 specify.
func (s *Session) Compute(ref dom.Ref) *ComputedStyle {
	a := s.arena
	sheet := s.sheet
	cs := &ComputedStyle{values: make(map[string]Declaration)}

	if parent := a.Parent(ref); parent != dom.NoRef && a.Kind(parent) == dom.KindElement {
		if parentStyle, ok := s.computed[parent]; ok {
			for k, v := range parentStyle.values {
				if inheritedProperties[k] {
					v.Origin = OriginInherited
					cs.values[k] = v
				}
			}
		}
	}

	for _, at := range a.Attrs(ref) {
		local := at.Name.Local.String()
		if _, ok := attr.Lookup(local); !ok {
			continue
		}
		if cat := attr.CategoryFor(local, ""); cat&attr.CategoryPresentation == 0 {
			continue
		}
		apply(cs, Declaration{Property: local, Value: at.Value, Origin: OriginAttribute})
	}

	if sheet != nil {
		matching := s.matchingRules(ref)
		sort.SliceStable(matching, func(i, j int) bool {
			si, sj := matching[i].Selector.A, matching[j].Selector.A
			if si != sj {
				return si < sj
			}
			bi, bj := matching[i].Selector.B, matching[j].Selector.B
			if bi != bj {
				return bi < bj
			}
			ci, cj := matching[i].Selector.C, matching[j].Selector.C
			if ci != cj {
				return ci < cj
			}
			return matching[i].SourceIndex < matching[j].SourceIndex
		})
		for _, r := range matching {
			for _, d := range r.Declarations {
				origin := OriginRule
				if d.Important {
					origin = OriginImportantRule
				}
				apply(cs, Declaration{Property: d.Property, Value: d.Value, Origin: origin, SourceIndex: r.SourceIndex})
			}
		}
	}

	if styleAttr, ok := a.Attr(ref, atom.NewQName("", "", "style")); ok {
		decls, err := parser.ParseDeclarations(ensureSemicolon(styleAttr.Value))
		if err == nil {
			for _, d := range decls {
				origin := OriginInline
				if d.Important {
					origin = OriginImportantInline
				}
				apply(cs, Declaration{Property: d.Property, Value: d.Value, Origin: origin})
			}
		}
	}

	s.computed[ref] = cs
	return cs
}

func ensureSemicolon(str string) string {
	str = strings.TrimSpace(str)
	if str != "" && !strings.HasSuffix(str, ";") {
		str += ";"
	}
	return str
}

// apply reduces by property id, keeping the higher-origin declaration —
// origins are already ordered so a later call with >= origin wins, and
// within OriginRule the caller has already sorted by specificity/source.
func apply(cs *ComputedStyle, d Declaration) {
	existing, ok := cs.values[d.Property]
	if !ok || d.Origin >= existing.Origin {
		cs.values[d.Property] = d
	}
}

func (s *Session) matchingRules(ref dom.Ref) []Rule {
	var out []Rule
	for _, r := range s.sheet.Rules {
		if s.matcher.Match(r.Selector, ref) {
			out = append(out, r)
		}
	}
	return out
}

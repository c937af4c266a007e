// Package selector implements the CSS selector parser and matcher (F):
// parses a selector list and matches it against the arena DOM.
//
// github.com/ericchiang/css (the selector engine ericchiang-core wires in
// for HTML work) matches against golang.org/x/net/html nodes, not an
// arbitrary tree interface. Rather than hand-roll a second matcher, this
// package mirrors the arena into a throwaway *html.Node tree once per
// document visit and re-targets every match back to its dom.Ref through a
// side table — the adapter SPEC_FULL promises, paid for once per visit and
// cached like every other per-document structure here.
package selector

import (
	"strings"

	selcss "github.com/ericchiang/css"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/oxvg/oxvg-go/internal/dom"
)

// Selector wraps a parsed selector list plus its CSS3 (a,b,c) specificity.
type Selector struct {
	raw         string
	sel         *selcss.Selector
	A, B, C     int // id count, class/attr/pseudo-class count, type/pseudo-element count
}

// Parse parses a comma-separated selector list.
func Parse(raw string) (*Selector, error) {
	sel, err := selcss.Parse(raw)
	if err != nil {
		return nil, err
	}
	a, b, c := specificity(raw)
	return &Selector{raw: raw, sel: sel, A: a, B: b, C: c}, nil
}

func (s *Selector) String() string { return s.raw }

// Specificity returns the selector's CSS3 (a,b,c) triple.
func (s *Selector) Specificity() (a, b, c int) { return s.A, s.B, s.C }

// Less reports whether s sorts before o in cascade order (lower
// specificity first; §9 "ascending specificity, then source order").
func (s *Selector) Less(o *Selector) bool {
	if s.A != o.A {
		return s.A < o.A
	}
	if s.B != o.B {
		return s.B < o.B
	}
	return s.C < o.C
}

// specificity computes the standard CSS3 (a,b,c) counts directly from
// selector text: a = #id count, b = class/attribute/pseudo-class count,
// c = type-selector/pseudo-element count. Combinators and whitespace don't
// affect the count so a simple per-compound-selector scan suffices.
func specificity(raw string) (a, b, c int) {
	for _, group := range strings.Split(raw, ",") {
		ga, gb, gc := specificityOfCompound(group)
		if ga > a || (ga == a && gb > b) || (ga == a && gb == b && gc > c) {
			a, b, c = ga, gb, gc
		}
	}
	return
}

func specificityOfCompound(sel string) (a, b, c int) {
	i := 0
	n := len(sel)
	for i < n {
		ch := sel[i]
		switch {
		case ch == '#':
			a++
			i = skipIdentLike(sel, i+1)
		case ch == '.':
			b++
			i = skipIdentLike(sel, i+1)
		case ch == '[':
			b++
			j := strings.IndexByte(sel[i:], ']')
			if j < 0 {
				i = n
			} else {
				i += j + 1
			}
		case ch == ':':
			if i+1 < n && sel[i+1] == ':' {
				c++
				i = skipIdentLike(sel, i+2)
			} else {
				b++
				i = skipIdentLike(sel, i+1)
			}
		case isIdentStart(rune(ch)):
			c++
			i = skipIdentLike(sel, i)
		default:
			i++
		}
	}
	return
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func skipIdentLike(s string, i int) int {
	n := len(s)
	for i < n {
		c := rune(s[i])
		if c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			i++
			continue
		}
		break
	}
	return i
}

// Matcher mirrors one document's arena into an *html.Node tree once, then
// answers repeated Select/Match queries against it (§4.2 "selector cache
// keyed by the visit so repeated lookups within one pass are O(1)").
type Matcher struct {
	a        *dom.Arena
	toHTML   map[dom.Ref]*html.Node
	toRef    map[*html.Node]dom.Ref
	root     *html.Node
	cache    map[cacheKey][]dom.Ref
}

type cacheKey struct {
	selector string
	node     dom.Ref
}

// NewMatcher builds the mirror tree rooted at root.
func NewMatcher(a *dom.Arena, root dom.Ref) *Matcher {
	m := &Matcher{
		a:      a,
		toHTML: make(map[dom.Ref]*html.Node),
		toRef:  make(map[*html.Node]dom.Ref),
		cache:  make(map[cacheKey][]dom.Ref),
	}
	m.root = m.mirror(root)
	return m
}

func (m *Matcher) mirror(ref dom.Ref) *html.Node {
	var n *html.Node
	switch m.a.Kind(ref) {
	case dom.KindElement:
		qn := m.a.Name(ref)
		local := qn.Local.String()
		n = &html.Node{
			Type:     html.ElementNode,
			Data:     local,
			DataAtom: atom.Lookup([]byte(local)),
		}
		for _, at := range m.a.Attrs(ref) {
			n.Attr = append(n.Attr, html.Attribute{Key: at.Name.Local.String(), Val: at.Value})
		}
	case dom.KindText, dom.KindCDATA:
		n = &html.Node{Type: html.TextNode, Data: m.a.Data(ref)}
	case dom.KindComment:
		n = &html.Node{Type: html.CommentNode, Data: m.a.Data(ref)}
	case dom.KindDocument:
		n = &html.Node{Type: html.DocumentNode}
	default:
		n = &html.Node{Type: html.DocumentNode}
	}
	m.toHTML[ref] = n
	m.toRef[n] = ref

	var prev *html.Node
	for _, c := range m.a.Children(ref) {
		cn := m.mirror(c)
		cn.Parent = n
		if prev == nil {
			n.FirstChild = cn
		} else {
			prev.NextSibling = cn
			cn.PrevSibling = prev
		}
		prev = cn
	}
	n.LastChild = prev
	return n
}

// Select returns every dom.Ref matching s within the mirrored subtree,
// cached per (selector text, subtree root).
func (m *Matcher) Select(s *Selector, scope dom.Ref) []dom.Ref {
	key := cacheKey{selector: s.raw, node: scope}
	if cached, ok := m.cache[key]; ok {
		return cached
	}
	scopeNode, ok := m.toHTML[scope]
	if !ok {
		return nil
	}
	matches := s.sel.Select(scopeNode)
	out := make([]dom.Ref, 0, len(matches))
	for _, hn := range matches {
		if ref, ok := m.toRef[hn]; ok {
			out = append(out, ref)
		}
	}
	m.cache[key] = out
	return out
}

// Match reports whether ref satisfies s.
func (m *Matcher) Match(s *Selector, ref dom.Ref) bool {
	n, ok := m.toHTML[ref]
	if !ok {
		return false
	}
	return s.sel.Match(n)
}

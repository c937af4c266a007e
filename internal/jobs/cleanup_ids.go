package jobs

import (
	"fmt"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// CleanupIDsConfig controls cleanup_ids's two-phase rewrite (§4.7
// "cleanup_ids").
type CleanupIDsConfig struct {
	// Preserve names ids that must never be renamed or removed.
	Preserve []string
	// MinifyIDs enables renaming ids to short generated names.
	MinifyIDs bool
	// RemoveUnreferenced enables deleting ids no fill/stroke/href/url()
	// reference in the document points at.
	RemoveUnreferenced bool
}

// cleanupIDs renames every referenced id to a short "a","b",... form and
// strips unreferenced ones (§4.7 "cleanup_ids"). Like
// convert_one_stop_gradients, the reference scan runs once in Document
// since a <use href="#x"> may appear before or after the id it targets.
type cleanupIDs struct {
	visitor.BaseVisitor
	cfg       CleanupIDsConfig
	preserve  map[string]bool
	renamed   map[string]string
	nextIndex int
}

func NewCleanupIDs(cfg CleanupIDsConfig) Job {
	preserve := map[string]bool{}
	for _, p := range cfg.Preserve {
		preserve[p] = true
	}
	return &cleanupIDs{cfg: cfg, preserve: preserve}
}

func (*cleanupIDs) Name() string               { return "cleanup_ids" }
func (*cleanupIDs) Precondition() Precondition { return Precondition{} }

var hrefName = atom.NewQName("", "", "href")

func (j *cleanupIDs) Document(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	referenced := map[string]bool{}
	var scan func(dom.Ref)
	scan = func(n dom.Ref) {
		if a.Kind(n) == dom.KindElement {
			for _, at := range a.Attrs(n) {
				if id, ok := urlFragment(at.Value); ok {
					referenced[id] = true
				}
			}
			if href, ok := a.Attr(n, hrefName); ok && len(href.Value) > 1 && href.Value[0] == '#' {
				referenced[href.Value[1:]] = true
			}
			if href, ok := a.Attr(n, atom.NewQName("xlink", atom.NSXLink, "href")); ok && len(href.Value) > 1 && href.Value[0] == '#' {
				referenced[href.Value[1:]] = true
			}
		}
		for _, c := range a.Children(n) {
			scan(c)
		}
	}
	scan(ref)

	j.renamed = map[string]string{}
	var assign func(dom.Ref)
	assign = func(n dom.Ref) {
		if a.Kind(n) == dom.KindElement {
			if id, ok := a.Attr(n, idName); ok && !j.preserve[id.Value] && referenced[id.Value] {
				j.renamed[id.Value] = j.shortName()
			}
		}
		for _, c := range a.Children(n) {
			assign(c)
		}
	}
	if j.cfg.MinifyIDs {
		assign(ref)
	}

	if !j.cfg.RemoveUnreferenced {
		return nil
	}
	var strip func(dom.Ref)
	strip = func(n dom.Ref) {
		if a.Kind(n) == dom.KindElement {
			if id, ok := a.Attr(n, idName); ok && !j.preserve[id.Value] && !referenced[id.Value] {
				a.RemoveAttr(n, idName)
			}
		}
		for _, c := range a.Children(n) {
			strip(c)
		}
	}
	strip(ref)
	return nil
}

func (j *cleanupIDs) shortName() string {
	name := base36(j.nextIndex)
	j.nextIndex++
	return name
}

func base36(n int) string {
	const digits = "abcdefghijklmnopqrstuvwxyz0123456789"
	if n == 0 {
		return "a"
	}
	var out []byte
	for n > 0 {
		out = append([]byte{digits[n%36]}, out...)
		n /= 36
	}
	return string(out)
}

func (j *cleanupIDs) Element(ctx *visitor.Context, ref dom.Ref) error {
	if len(j.renamed) == 0 {
		return nil
	}
	a := ctx.Info.Arena
	if id, ok := a.Attr(ref, idName); ok {
		if short, ok := j.renamed[id.Value]; ok {
			a.SetAttr(ref, dom.Attr{Name: idName, Value: short})
		}
	}
	for _, at := range a.Attrs(ref) {
		if id, ok := urlFragment(at.Value); ok {
			if short, ok := j.renamed[id]; ok {
				a.SetAttr(ref, dom.Attr{Name: at.Name, Value: fmt.Sprintf("url(#%s)", short)})
			}
		}
	}
	if href, ok := a.Attr(ref, hrefName); ok && len(href.Value) > 1 && href.Value[0] == '#' {
		if short, ok := j.renamed[href.Value[1:]]; ok {
			a.SetAttr(ref, dom.Attr{Name: hrefName, Value: "#" + short})
		}
	}
	return nil
}

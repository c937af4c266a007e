package jobs

import (
	"github.com/oxvg/oxvg-go/internal/attr"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// RemoveUnknownsAndDefaultsConfig toggles the two independent behaviours
// the pass bundles (§4.7 "remove_unknowns_and_defaults").
type RemoveUnknownsAndDefaultsConfig struct {
	// KeepUnknownElements disables stripping of elements with no registry
	// entry at all (unknown tag names).
	KeepUnknownElements bool
	// KeepDefaultAttrs disables stripping attributes whose value matches
	// the SVG-spec initial value for that property.
	KeepDefaultAttrs bool
}

// defaultValues lists presentation attributes whose value, when equal to
// the SVG initial value, is redundant to serialise.
var defaultValues = map[string]string{
	"fill":               "black",
	"fill-opacity":       "1",
	"fill-rule":          "nonzero",
	"stroke":             "none",
	"stroke-width":       "1",
	"stroke-opacity":     "1",
	"stroke-linecap":     "butt",
	"stroke-linejoin":    "miter",
	"stroke-dasharray":   "none",
	"stroke-dashoffset":  "0",
	"opacity":            "1",
	"clip-rule":          "nonzero",
	"visibility":         "visible",
	"display":            "inline",
}

// removeUnknownsAndDefaults strips attributes with no registry entry on
// recognised elements and attributes whose value equals the property's
// spec-default, relying on attr.Lookup/defaultValues rather than a
// hardcoded element allowlist.
type removeUnknownsAndDefaults struct {
	visitor.BaseVisitor
	cfg RemoveUnknownsAndDefaultsConfig
}

func NewRemoveUnknownsAndDefaults(cfg RemoveUnknownsAndDefaultsConfig) Job {
	return &removeUnknownsAndDefaults{cfg: cfg}
}

func (*removeUnknownsAndDefaults) Name() string { return "remove_unknowns_and_defaults" }
func (*removeUnknownsAndDefaults) Precondition() Precondition {
	return Precondition{}
}

func (j *removeUnknownsAndDefaults) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	var kept []dom.Attr
	for _, at := range a.Attrs(ref) {
		local := at.Name.Local.String()
		if _, ok := attr.Lookup(local); !ok && !j.cfg.KeepUnknownElements {
			if local != "id" && local != "class" && local != "style" && at.Name.Prefix == 0 {
				continue
			}
		}
		if !j.cfg.KeepDefaultAttrs {
			if def, ok := defaultValues[local]; ok && at.Value == def {
				continue
			}
		}
		kept = append(kept, at)
	}
	a.SetAttrs(ref, kept)
	return nil
}

// Package lint implements the lint rule set (§7): visitor.Visitor
// implementations that report diagnostic.Diagnostic findings instead of
// mutating the tree, run by `oxvg lint check`/`lint serve`.
package lint

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/attr"
	"github.com/oxvg/oxvg-go/internal/diagnostic"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// Rule pairs a visitor.Visitor with its config-file name and the report
// it accumulates findings into.
type Rule interface {
	visitor.Visitor
	Name() string
}

// knownElements is the set of element local names the SVG2/SVG1.1
// grammar recognises; anything else trips noUnknownElements.
var knownElements = map[string]bool{
	"svg": true, "g": true, "defs": true, "symbol": true, "use": true,
	"path": true, "rect": true, "circle": true, "ellipse": true, "line": true,
	"polyline": true, "polygon": true, "text": true, "tspan": true, "textPath": true,
	"marker": true, "mask": true, "pattern": true, "clipPath": true,
	"linearGradient": true, "radialGradient": true, "stop": true,
	"filter": true, "feGaussianBlur": true, "feOffset": true, "feBlend": true,
	"feColorMatrix": true, "feComposite": true, "feFlood": true, "feMerge": true,
	"feMergeNode": true, "feMorphology": true, "feTile": true, "feTurbulence": true,
	"feImage": true, "feDropShadow": true, "feDiffuseLighting": true,
	"feSpecularLighting": true, "feDisplacementMap": true, "feConvolveMatrix": true,
	"feComponentTransfer": true, "feFuncR": true, "feFuncG": true, "feFuncB": true, "feFuncA": true,
	"style": true, "title": true, "desc": true, "metadata": true,
	"image": true, "switch": true, "foreignObject": true, "a": true, "view": true,
	"animate": true, "animateMotion": true, "animateTransform": true, "animateColor": true, "set": true,
	"script": true, "font-face-uri": true,
}

// noUnknownElements reports any element whose local name isn't in
// knownElements (§6 lint config "noUnknownElements").
type noUnknownElements struct {
	visitor.BaseVisitor
	report *diagnostic.Report
	sev    diagnostic.Severity
}

func NewNoUnknownElements(report *diagnostic.Report, sev diagnostic.Severity) Rule {
	return &noUnknownElements{report: report, sev: sev}
}
func (*noUnknownElements) Name() string { return "noUnknownElements" }

func (r *noUnknownElements) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	name := a.Name(ref)
	if name.Prefix != 0 {
		return nil
	}
	if !knownElements[name.Local.String()] {
		start, end := a.Range(ref)
		r.report.Add(diagnostic.Diagnostic{
			Kind:     "UnknownElement",
			Message:  "unknown element <" + name.Local.String() + ">",
			Severity: r.sev,
			Start:    start, End: end,
		})
	}
	return nil
}

// noUnknownAttributes reports an attribute with no internal/attr registry
// entry and no namespace prefix (§6 lint config "noUnknownAttributes").
// Unprefixed unregistered names are the risky case — a prefixed attribute
// belongs to a namespace this linter doesn't model, not necessarily to
// the author's typo.
type noUnknownAttributes struct {
	visitor.BaseVisitor
	report *diagnostic.Report
	known  func(local string) bool
	sev    diagnostic.Severity
}

func NewNoUnknownAttributes(report *diagnostic.Report, known func(local string) bool, sev diagnostic.Severity) Rule {
	return &noUnknownAttributes{report: report, known: known, sev: sev}
}
func (*noUnknownAttributes) Name() string { return "noUnknownAttributes" }

func (r *noUnknownAttributes) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	start, end := a.Range(ref)
	for _, at := range a.Attrs(ref) {
		if at.Name.Prefix != 0 {
			continue
		}
		local := at.Name.Local.String()
		if local == "id" || local == "class" || local == "style" || local == "xmlns" {
			continue
		}
		if !r.known(local) {
			r.report.Add(diagnostic.Diagnostic{
				Kind:     "UnknownAttribute",
				Message:  "unknown attribute \"" + local + "\"",
				Severity: r.sev,
				Start:    start, End: end,
			})
		}
	}
	return nil
}

// noDeprecated reports an attribute the registry flags CategoryDeprecated
// (§6 lint config "noDeprecated"). The registry lookup is passed in as the
// isDeprecated function value, built by NewRunner.
type noDeprecated struct {
	visitor.BaseVisitor
	report       *diagnostic.Report
	isDeprecated func(local string) bool
	sev          diagnostic.Severity
}

func NewNoDeprecated(report *diagnostic.Report, isDeprecated func(local string) bool, sev diagnostic.Severity) Rule {
	return &noDeprecated{report: report, isDeprecated: isDeprecated, sev: sev}
}
func (*noDeprecated) Name() string { return "noDeprecated" }

func (r *noDeprecated) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	start, end := a.Range(ref)
	for _, at := range a.Attrs(ref) {
		local := at.Name.String()
		if r.isDeprecated(local) {
			r.report.Add(diagnostic.Diagnostic{
				Kind:     "DeprecatedAttribute",
				Message:  "\"" + local + "\" is deprecated",
				Severity: r.sev,
				Start:    start, End: end,
			})
		}
	}
	return nil
}

// noDefaultAttrs reports an attribute whose value equals the SVG
// spec-initial value, the same redundancy remove_unknowns_and_defaults
// would silently strip at optimise time (§6 lint config
// "noDefaultAttributes").
type noDefaultAttrs struct {
	visitor.BaseVisitor
	report  *diagnostic.Report
	isEqual func(local, value string) bool
	sev     diagnostic.Severity
}

func NewNoDefaultAttrs(report *diagnostic.Report, isEqual func(local, value string) bool, sev diagnostic.Severity) Rule {
	return &noDefaultAttrs{report: report, isEqual: isEqual, sev: sev}
}
func (*noDefaultAttrs) Name() string { return "noDefaultAttributes" }

func (r *noDefaultAttrs) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	start, end := a.Range(ref)
	for _, at := range a.Attrs(ref) {
		local := at.Name.Local.String()
		if r.isEqual(local, at.Value) {
			r.report.Add(diagnostic.Diagnostic{
				Kind:     "RedundantDefaultAttribute",
				Message:  "\"" + local + "\" is set to its default value",
				Severity: r.sev,
				Start:    start, End: end,
			})
		}
	}
	return nil
}

// noXLink reports a deprecated xlink:* attribute (§6 lint config
// "noXLink", §4.7 "remove_xlink" is this rule's optimiser-side twin).
type noXLink struct {
	visitor.BaseVisitor
	report *diagnostic.Report
	sev    diagnostic.Severity
}

func NewNoXLink(report *diagnostic.Report, sev diagnostic.Severity) Rule {
	return &noXLink{report: report, sev: sev}
}
func (*noXLink) Name() string { return "noXLink" }

func (r *noXLink) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	start, end := a.Range(ref)
	for _, at := range a.Attrs(ref) {
		if at.Name.NS.String() == atom.NSXLink {
			r.report.Add(diagnostic.Diagnostic{
				Kind:     "DeprecatedXLink",
				Message:  "xlink:" + at.Name.Local.String() + " is deprecated; use an unprefixed attribute",
				Severity: r.sev,
				Start:    start, End: end,
			})
		}
	}
	return nil
}

// noInvalidAttrValue reports an attribute whose value fails to parse
// against its internal/attr grammar (§6 lint config "noInvalidAttrValue").
// Unregistered attributes and attributes with no typed grammar are left
// alone; only a registered grammar that actively rejects the raw text is
// a finding.
type noInvalidAttrValue struct {
	visitor.BaseVisitor
	report *diagnostic.Report
	sev    diagnostic.Severity
}

func NewNoInvalidAttrValue(report *diagnostic.Report, sev diagnostic.Severity) Rule {
	return &noInvalidAttrValue{report: report, sev: sev}
}
func (*noInvalidAttrValue) Name() string { return "noInvalidAttrValue" }

func (r *noInvalidAttrValue) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	start, end := a.Range(ref)
	for _, at := range a.Attrs(ref) {
		local := at.Name.Local.String()
		_, ok, err := attr.Parse(local, at.Value)
		if !ok || err == nil {
			continue
		}
		r.report.Add(diagnostic.Diagnostic{
			Kind:     "InvalidAttributeValue",
			Message:  "\"" + local + "\"=\"" + at.Value + "\": " + err.Error(),
			Severity: r.sev,
			Start:    start, End: end,
		})
	}
	return nil
}

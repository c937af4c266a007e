package jobs

import (
	"strings"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/attr"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// removeDoctype deletes the document's Doctype node, if any (§4.7
// "remove_doctype").
type removeDoctype struct{ visitor.BaseVisitor }

func NewRemoveDoctype() Job                        { return &removeDoctype{} }
func (*removeDoctype) Name() string                { return "remove_doctype" }
func (*removeDoctype) Precondition() Precondition  { return Precondition{} }
func (j *removeDoctype) Doctype(ctx *visitor.Context, ref dom.Ref) error {
	ctx.Info.Arena.Detach(ref)
	return nil
}

// removeXMLProcInst deletes `<?xml ... ?>` and other processing
// instructions (§4.7 "remove_xml_proc_inst").
type removeXMLProcInst struct{ visitor.BaseVisitor }

func NewRemoveXMLProcInst() Job                       { return &removeXMLProcInst{} }
func (*removeXMLProcInst) Name() string                { return "remove_xml_proc_inst" }
func (*removeXMLProcInst) Precondition() Precondition  { return Precondition{} }
func (j *removeXMLProcInst) ProcessingInstruction(ctx *visitor.Context, ref dom.Ref) error {
	ctx.Info.Arena.Detach(ref)
	return nil
}

// removeMetadata deletes <metadata> elements (§4.7 "remove_metadata").
type removeMetadata struct{ visitor.BaseVisitor }

var metadataName = atom.Intern("metadata")

func NewRemoveMetadata() Job                       { return &removeMetadata{} }
func (*removeMetadata) Name() string                { return "remove_metadata" }
func (*removeMetadata) Precondition() Precondition  { return Precondition{} }
func (j *removeMetadata) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local == metadataName {
		a.Detach(ref)
		ctx.Flags.SkipChildren = true
	}
	return nil
}

// removeEditorsNSData strips elements and attributes in editor namespaces
// (Inkscape/Sodipodi) that carry no rendering meaning (§4.7
// "remove_editors_ns_data").
type removeEditorsNSData struct{ visitor.BaseVisitor }

var editorNamespaces = map[string]bool{
	"http://www.inkscape.org/namespaces/inkscape": true,
	"http://sodipodi.sourceforge.net/DTD/sodipodi-0.0.dtd": true,
	"http://ns.adobe.com/AdobeIllustrator/10.0/": true,
	"http://ns.adobe.com/Graphs/1.0/":            true,
	"http://ns.adobe.com/AdobeSVGViewerExtensions/3.0/": true,
}

func NewRemoveEditorsNSData() Job                      { return &removeEditorsNSData{} }
func (*removeEditorsNSData) Name() string               { return "remove_editors_ns_data" }
func (*removeEditorsNSData) Precondition() Precondition { return Precondition{} }
func (j *removeEditorsNSData) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if editorNamespaces[a.Name(ref).NS.String()] {
		a.Detach(ref)
		ctx.Flags.SkipChildren = true
		return nil
	}
	var kept []dom.Attr
	for _, at := range a.Attrs(ref) {
		if !editorNamespaces[at.Name.NS.String()] {
			kept = append(kept, at)
		}
	}
	a.SetAttrs(ref, kept)
	return nil
}

// removeEmptyText deletes text nodes that contain only whitespace or are
// zero-length (§4.7 "remove_empty_text").
type removeEmptyText struct{ visitor.BaseVisitor }

func NewRemoveEmptyText() Job                       { return &removeEmptyText{} }
func (*removeEmptyText) Name() string                { return "remove_empty_text" }
func (*removeEmptyText) Precondition() Precondition  { return Precondition{} }
func (j *removeEmptyText) TextOrCDATA(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Kind(ref) == dom.KindText && strings.TrimSpace(a.Data(ref)) == "" {
		a.Detach(ref)
	}
	return nil
}

// removeScripts deletes <script> elements and any on* event attributes
// (§4.7 "remove_scripts").
type removeScripts struct{ visitor.BaseVisitor }

var scriptName = atom.Intern("script")

func NewRemoveScripts() Job                       { return &removeScripts{} }
func (*removeScripts) Name() string                { return "remove_scripts" }
func (*removeScripts) Precondition() Precondition  { return Precondition{NeedsScriptScan: true} }
func (j *removeScripts) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if a.Name(ref).Local == scriptName {
		a.Detach(ref)
		ctx.Flags.SkipChildren = true
		return nil
	}
	var kept []dom.Attr
	for _, at := range a.Attrs(ref) {
		if !strings.HasPrefix(at.Name.Local.String(), "on") {
			kept = append(kept, at)
		}
	}
	a.SetAttrs(ref, kept)
	return nil
}

// removeViewBox drops the `viewBox` attribute when width/height are also
// present and numerically equivalent (§4.7 "remove_view_box").
type removeViewBox struct{ visitor.BaseVisitor }

var (
	viewBoxName = atom.NewQName("", "", "viewBox")
	widthName   = atom.NewQName("", "", "width")
	heightName  = atom.NewQName("", "", "height")
)

func NewRemoveViewBox() Job                       { return &removeViewBox{} }
func (*removeViewBox) Name() string                { return "remove_view_box" }
func (*removeViewBox) Precondition() Precondition  { return Precondition{} }
func (j *removeViewBox) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	vb, ok := a.Attr(ref, viewBoxName)
	if !ok {
		return nil
	}
	w, wok := a.Attr(ref, widthName)
	h, hok := a.Attr(ref, heightName)
	if !wok || !hok {
		return nil
	}
	fields := strings.Fields(strings.ReplaceAll(vb.Value, ",", " "))
	if len(fields) != 4 || fields[0] != "0" || fields[1] != "0" {
		return nil
	}
	if fields[2] == strings.TrimSuffix(w.Value, "px") && fields[3] == strings.TrimSuffix(h.Value, "px") {
		a.RemoveAttr(ref, viewBoxName)
	}
	return nil
}

// removeDeprecatedAttrs strips attributes the registry flags
// CategoryDeprecated (§4.7 "remove_deprecated_attrs").
type removeDeprecatedAttrs struct{ visitor.BaseVisitor }

func NewRemoveDeprecatedAttrs() Job                       { return &removeDeprecatedAttrs{} }
func (*removeDeprecatedAttrs) Name() string                { return "remove_deprecated_attrs" }
func (*removeDeprecatedAttrs) Precondition() Precondition  { return Precondition{} }
func (j *removeDeprecatedAttrs) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	var kept []dom.Attr
	for _, at := range a.Attrs(ref) {
		local := at.Name.String()
		if spec, ok := attr.Lookup(local); ok && spec.Category&attr.CategoryDeprecated != 0 {
			continue
		}
		kept = append(kept, at)
	}
	a.SetAttrs(ref, kept)
	return nil
}

// removeEmptyAttrs strips attributes whose value is the empty string,
// except ones where an empty value is meaningful (§4.7
// "remove_empty_attrs").
type removeEmptyAttrs struct{ visitor.BaseVisitor }

var emptyAllowed = map[string]bool{"d": true, "points": true}

func NewRemoveEmptyAttrs() Job                       { return &removeEmptyAttrs{} }
func (*removeEmptyAttrs) Name() string                { return "remove_empty_attrs" }
func (*removeEmptyAttrs) Precondition() Precondition  { return Precondition{} }
func (j *removeEmptyAttrs) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	var kept []dom.Attr
	for _, at := range a.Attrs(ref) {
		if at.Value == "" && !emptyAllowed[at.Name.Local.String()] {
			continue
		}
		kept = append(kept, at)
	}
	a.SetAttrs(ref, kept)
	return nil
}

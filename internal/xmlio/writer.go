package xmlio

import (
	"strings"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
)

// Indent selects the writer's inter-tag whitespace policy (§6).
type Indent struct {
	// Kind is one of "none", "tabs", or "spaces" (numeric indent).
	Kind  string
	Width int // used when Kind == "spaces"
}

// Space selects the whitespace-in-text policy (§6): auto, preserve, or
// collapse.
type Space string

const (
	SpaceAuto     Space = "auto"
	SpacePreserve Space = "preserve"
	SpaceCollapse Space = "collapse"
)

// WriteOptions controls serialisation formatting.
type WriteOptions struct {
	Indent Indent
	Space  Space
}

// Write serialises root (a Document or Element ref) to text under opts.
func Write(a *dom.Arena, root dom.Ref, opts WriteOptions) string {
	w := &writer{arena: a, opts: opts}
	w.writeNode(root, 0)
	return w.sb.String()
}

type writer struct {
	arena *dom.Arena
	opts  WriteOptions
	sb    strings.Builder
}

func (w *writer) newlineIndent(depth int) {
	switch w.opts.Indent.Kind {
	case "", "none":
		return
	case "tabs":
		w.sb.WriteByte('\n')
		for i := 0; i < depth; i++ {
			w.sb.WriteByte('\t')
		}
	default: // numeric
		w.sb.WriteByte('\n')
		n := w.opts.Indent.Width * depth
		for i := 0; i < n; i++ {
			w.sb.WriteByte(' ')
		}
	}
}

func (w *writer) writeNode(r dom.Ref, depth int) {
	switch w.arena.Kind(r) {
	case dom.KindDocument:
		for _, c := range w.arena.Children(r) {
			w.writeNode(c, depth)
		}
	case dom.KindElement:
		w.writeElement(r, depth)
	case dom.KindText:
		w.writeText(w.arena.Data(r))
	case dom.KindCDATA:
		w.sb.WriteString("<![CDATA[")
		w.sb.WriteString(w.arena.Data(r))
		w.sb.WriteString("]]>")
	case dom.KindComment:
		w.sb.WriteString("<!--")
		w.sb.WriteString(w.arena.Data(r))
		w.sb.WriteString("-->")
	case dom.KindProcessingInstruction:
		w.sb.WriteString("<?")
		w.sb.WriteString(w.arena.Target(r))
		if d := w.arena.Data(r); d != "" {
			w.sb.WriteByte(' ')
			w.sb.WriteString(d)
		}
		w.sb.WriteString("?>")
	case dom.KindDoctype:
		w.sb.WriteString("<!DOCTYPE ")
		w.sb.WriteString(w.arena.Data(r))
		w.sb.WriteByte('>')
	}
}

func (w *writer) writeText(s string) {
	if w.opts.Space == SpaceCollapse {
		s = collapseWhitespace(s)
	}
	w.sb.WriteString(EscapeText(s))
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func (w *writer) writeElement(r dom.Ref, depth int) {
	tag := qnameTag(w.arena, w.arena.Name(r))

	w.sb.WriteByte('<')
	w.sb.WriteString(tag)
	for _, a := range w.arena.Attrs(r) {
		w.sb.WriteByte(' ')
		w.sb.WriteString(attrTag(w.arena, a))
		w.sb.WriteString(`="`)
		w.sb.WriteString(EscapeAttr(a.Value))
		w.sb.WriteByte('"')
	}

	children := w.arena.Children(r)
	if len(children) == 0 {
		w.sb.WriteString("/>")
		return
	}
	w.sb.WriteByte('>')
	for _, c := range children {
		if w.arena.Kind(c) == dom.KindElement {
			w.newlineIndent(depth + 1)
		}
		w.writeNode(c, depth+1)
	}
	if hasElementChild(w.arena, r) {
		w.newlineIndent(depth)
	}
	w.sb.WriteString("</")
	w.sb.WriteString(tag)
	w.sb.WriteByte('>')
}

func hasElementChild(a *dom.Arena, r dom.Ref) bool {
	for _, c := range a.Children(r) {
		if a.Kind(c) == dom.KindElement {
			return true
		}
	}
	return false
}

// qnameTag renders an element's tag name, preferring the document's own
// chosen prefix/alias (§3 round-trip requirement) over the canonical one.
func qnameTag(a *dom.Arena, name atom.QName) string {
	ns := name.NS.String()
	if ns == "" || ns == atom.NSSVG {
		return name.Local.String()
	}
	if alias, ok := a.Aliases.Alias(ns); ok && alias != "" {
		return alias + ":" + name.Local.String()
	}
	return name.Local.String()
}

// attrTag renders an attribute's name, namespacing only attributes that
// actually carry one (xlink:, xml:, or a document-declared custom ns).
func attrTag(a *dom.Arena, at dom.Attr) string {
	ns := at.Name.NS.String()
	if ns == "" {
		return at.Name.Local.String()
	}
	if ns == atom.NSXMLNS {
		if at.Name.Prefix == 0 {
			return "xmlns"
		}
		return "xmlns:" + at.Name.Local.String()
	}
	if alias, ok := a.Aliases.Alias(ns); ok && alias != "" {
		return alias + ":" + at.Name.Local.String()
	}
	return at.Name.Local.String()
}

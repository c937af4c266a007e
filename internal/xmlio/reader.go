// Package xmlio implements the XML reader and writer (components J and K):
// parsing source text into a dom.Arena with byte-range metadata, and
// serialising an Arena back to text under a formatting policy.
//
// The reader is a small hand-written recursive-descent scanner rather than
// encoding/xml, because the arena model needs to retain raw whitespace and
// byte ranges that encoding/xml's reflection-based decoder discards.
package xmlio

import (
	"fmt"
	"strings"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
)

// MaxNesting is the element-nesting depth guard from §4.1: beyond this the
// reader fails with NodesLimitReached rather than risk unbounded recursion
// from a crafted or malformed document.
const MaxNesting = 1024

// ErrorKind classifies a Malformed parse failure.
type ErrorKind int

const (
	ErrUnexpectedEOF ErrorKind = iota
	ErrUnexpectedToken
	ErrUnclosedTag
	ErrMismatchedTag
	ErrInvalidEntity
	ErrInvalidName
)

// ParseError is returned for any XML syntax violation; it carries the byte
// range of the offending text (§7).
type ParseError struct {
	Kind  ErrorKind
	Start int
	End   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("xml: %s at byte %d", e.Msg, e.Start)
}

// NodesLimitReached is returned when nesting exceeds MaxNesting.
type NodesLimitReached struct{}

func (NodesLimitReached) Error() string { return "xml: nesting limit reached" }

// Options controls reader behaviour.
type Options struct {
	// MaxDepth overrides MaxNesting; zero means use the default.
	MaxDepth int
}

type reader struct {
	src   string
	pos   int
	depth int
	max   int

	arena *dom.Arena
	// prefix → namespace URI, scoped by a stack of maps (one per open
	// element) to support shadowing.
	nsStack []map[string]string
}

// Parse reads source into a fresh Arena and returns the Document ref.
// No partial tree is returned on failure (§4.1).
func Parse(source string, opts Options) (*dom.Arena, dom.Ref, error) {
	max := opts.MaxDepth
	if max == 0 {
		max = MaxNesting
	}
	r := &reader{src: source, arena: dom.NewArena(), max: max}
	r.pushNamespaceScope()
	r.declareDefaults()

	doc := r.arena.NewDocument()
	if err := r.parseContent(doc, true); err != nil {
		return nil, 0, err
	}
	return r.arena, doc, nil
}

func (r *reader) declareDefaults() {
	for prefix, ns := range map[string]string{
		"xml": atom.NSXML, "xmlns": atom.NSXMLNS,
	} {
		r.arena.Aliases.Declare(prefix, ns)
		r.nsStack[0][prefix] = ns
	}
}

func (r *reader) pushNamespaceScope() {
	parent := map[string]string{}
	if len(r.nsStack) > 0 {
		for k, v := range r.nsStack[len(r.nsStack)-1] {
			parent[k] = v
		}
	}
	r.nsStack = append(r.nsStack, parent)
}

func (r *reader) popNamespaceScope() {
	r.nsStack = r.nsStack[:len(r.nsStack)-1]
}

func (r *reader) resolve(prefix string) (string, bool) {
	ns, ok := r.nsStack[len(r.nsStack)-1][prefix]
	return ns, ok
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peekByte() byte {
	if r.eof() {
		return 0
	}
	return r.src[r.pos]
}

func (r *reader) fail(kind ErrorKind, msg string) error {
	return &ParseError{Kind: kind, Start: r.pos, End: r.pos + 1, Msg: msg}
}

func isNameStart(c byte) bool {
	return c == '_' || c == ':' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

func (r *reader) skipWhitespace() {
	for !r.eof() {
		switch r.src[r.pos] {
		case ' ', '\t', '\n', '\r':
			r.pos++
		default:
			return
		}
	}
}

func (r *reader) readName() (string, error) {
	start := r.pos
	if r.eof() || !isNameStart(r.src[r.pos]) {
		return "", r.fail(ErrInvalidName, "expected a name")
	}
	r.pos++
	for !r.eof() && isNameChar(r.src[r.pos]) {
		r.pos++
	}
	return r.src[start:r.pos], nil
}

// parseContent parses a run of children up to either EOF (top) or a
// closing tag (handled by the caller for elements).
func (r *reader) parseContent(parent dom.Ref, top bool) error {
	for {
		if r.eof() {
			if !top {
				return r.fail(ErrUnexpectedEOF, "unexpected end of document")
			}
			return nil
		}
		if strings.HasPrefix(r.src[r.pos:], "</") {
			return nil // let the element parser consume the close tag
		}
		if r.peekByte() == '<' {
			if err := r.parseMarkup(parent); err != nil {
				return err
			}
			continue
		}
		if err := r.parseText(parent); err != nil {
			return err
		}
	}
}

func (r *reader) parseText(parent dom.Ref) error {
	start := r.pos
	for !r.eof() && r.src[r.pos] != '<' {
		r.pos++
	}
	raw := r.src[start:r.pos]
	text, err := unescapeEntities(raw)
	if err != nil {
		return &ParseError{Kind: ErrInvalidEntity, Start: start, End: r.pos, Msg: err.Error()}
	}
	r.arena.AppendChild(parent, r.arena.NewText(text, start, r.pos))
	return nil
}

func (r *reader) parseMarkup(parent dom.Ref) error {
	switch {
	case strings.HasPrefix(r.src[r.pos:], "<!--"):
		return r.parseComment(parent)
	case strings.HasPrefix(r.src[r.pos:], "<![CDATA["):
		return r.parseCDATA(parent)
	case strings.HasPrefix(r.src[r.pos:], "<!DOCTYPE") || strings.HasPrefix(r.src[r.pos:], "<!doctype"):
		return r.parseDoctype(parent)
	case strings.HasPrefix(r.src[r.pos:], "<?"):
		return r.parsePI(parent)
	default:
		return r.parseElement(parent)
	}
}

func (r *reader) parseComment(parent dom.Ref) error {
	start := r.pos
	r.pos += len("<!--")
	end := strings.Index(r.src[r.pos:], "-->")
	if end < 0 {
		return r.fail(ErrUnclosedTag, "unterminated comment")
	}
	data := r.src[r.pos : r.pos+end]
	r.pos += end + len("-->")
	r.arena.AppendChild(parent, r.arena.NewComment(data, start, r.pos))
	return nil
}

func (r *reader) parseCDATA(parent dom.Ref) error {
	start := r.pos
	r.pos += len("<![CDATA[")
	end := strings.Index(r.src[r.pos:], "]]>")
	if end < 0 {
		return r.fail(ErrUnclosedTag, "unterminated CDATA section")
	}
	data := r.src[r.pos : r.pos+end]
	r.pos += end + len("]]>")
	r.arena.AppendChild(parent, r.arena.NewCDATA(data, start, r.pos))
	return nil
}

func (r *reader) parseDoctype(parent dom.Ref) error {
	start := r.pos
	r.pos += len("<!DOCTYPE")
	depth := 1
	bodyStart := r.pos
	for !r.eof() && depth > 0 {
		switch r.src[r.pos] {
		case '[', '<':
			depth++
		case ']':
			depth--
		case '>':
			depth--
			if depth == 0 {
				data := strings.TrimSpace(r.src[bodyStart:r.pos])
				r.pos++
				r.arena.AppendChild(parent, r.arena.NewDoctype(data, start, r.pos))
				return nil
			}
		}
		r.pos++
	}
	return r.fail(ErrUnclosedTag, "unterminated DOCTYPE")
}

func (r *reader) parsePI(parent dom.Ref) error {
	start := r.pos
	r.pos += len("<?")
	target, err := r.readName()
	if err != nil {
		return err
	}
	r.skipWhitespace()
	end := strings.Index(r.src[r.pos:], "?>")
	if end < 0 {
		return r.fail(ErrUnclosedTag, "unterminated processing instruction")
	}
	data := r.src[r.pos : r.pos+end]
	r.pos += end + len("?>")
	r.arena.AppendChild(parent, r.arena.NewProcessingInstruction(target, data, start, r.pos))
	return nil
}

func splitPrefix(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func (r *reader) parseElement(parent dom.Ref) error {
	r.depth++
	if r.depth > r.max {
		return NodesLimitReached{}
	}
	defer func() { r.depth-- }()

	start := r.pos
	r.pos++ // '<'
	rawName, err := r.readName()
	if err != nil {
		return err
	}

	r.pushNamespaceScope()
	defer r.popNamespaceScope()

	var attrs []rawAttr
	selfClose := false
	for {
		r.skipWhitespace()
		if r.eof() {
			return r.fail(ErrUnexpectedEOF, "unterminated start tag")
		}
		if r.src[r.pos] == '/' {
			r.pos++
			if r.eof() || r.src[r.pos] != '>' {
				return r.fail(ErrUnexpectedToken, "expected '>'")
			}
			r.pos++
			selfClose = true
			break
		}
		if r.src[r.pos] == '>' {
			r.pos++
			break
		}
		a, err := r.parseAttr()
		if err != nil {
			return err
		}
		attrs = append(attrs, a)
	}

	for _, a := range attrs {
		if a.rawName == "xmlns" {
			r.arena.Aliases.Declare("", a.value)
			r.nsStack[len(r.nsStack)-1][""] = a.value
		} else if p, local := splitPrefix(a.rawName); p == "xmlns" {
			r.arena.Aliases.Declare(local, a.value)
			r.nsStack[len(r.nsStack)-1][local] = a.value
		}
	}

	prefix, local := splitPrefix(rawName)
	ns := r.elementNamespace(prefix)
	qname := atom.NewQName(prefix, ns, local)

	elementEnd := r.pos
	el := r.arena.NewElement(qname, start, elementEnd)

	var domAttrs []dom.Attr
	for _, a := range attrs {
		if a.rawName == "xmlns" || strings.HasPrefix(a.rawName, "xmlns:") {
			ap, al := splitPrefix(a.rawName)
			domAttrs = append(domAttrs, dom.Attr{Name: atom.NewQName(ap, atom.NSXMLNS, al), Value: a.value})
			continue
		}
		ap, al := splitPrefix(a.rawName)
		ans := ""
		if ap != "" {
			if resolved, ok := r.resolve(ap); ok {
				ans = resolved
			}
		}
		domAttrs = append(domAttrs, dom.Attr{Name: atom.NewQName(ap, ans, al), Value: a.value})
	}
	r.arena.SetAttrs(el, domAttrs)
	r.arena.AppendChild(parent, el)

	if selfClose {
		return nil
	}

	if err := r.parseContent(el, false); err != nil {
		return err
	}

	if !strings.HasPrefix(r.src[r.pos:], "</") {
		return r.fail(ErrUnclosedTag, "expected closing tag")
	}
	r.pos += 2
	closeName, err := r.readName()
	if err != nil {
		return err
	}
	if closeName != rawName {
		return r.fail(ErrMismatchedTag, fmt.Sprintf("mismatched closing tag %q for %q", closeName, rawName))
	}
	r.skipWhitespace()
	if r.eof() || r.src[r.pos] != '>' {
		return r.fail(ErrUnexpectedToken, "expected '>'")
	}
	r.pos++
	return nil
}

func (r *reader) elementNamespace(prefix string) string {
	if ns, ok := r.resolve(prefix); ok {
		return ns
	}
	if prefix == "" {
		return atom.NSSVG
	}
	if ns, ok := atom.WellKnownNamespace(prefix); ok {
		return ns
	}
	return ""
}

type rawAttr struct {
	rawName string
	value   string
}

func (r *reader) parseAttr() (rawAttr, error) {
	name, err := r.readName()
	if err != nil {
		return rawAttr{}, err
	}
	r.skipWhitespace()
	if r.eof() || r.src[r.pos] != '=' {
		return rawAttr{}, r.fail(ErrUnexpectedToken, "expected '='")
	}
	r.pos++
	r.skipWhitespace()
	if r.eof() || (r.src[r.pos] != '"' && r.src[r.pos] != '\'') {
		return rawAttr{}, r.fail(ErrUnexpectedToken, "expected a quoted attribute value")
	}
	quote := r.src[r.pos]
	r.pos++
	start := r.pos
	for !r.eof() && r.src[r.pos] != quote {
		r.pos++
	}
	if r.eof() {
		return rawAttr{}, r.fail(ErrUnexpectedEOF, "unterminated attribute value")
	}
	raw := r.src[start:r.pos]
	r.pos++
	value, err := unescapeEntities(raw)
	if err != nil {
		return rawAttr{}, &ParseError{Kind: ErrInvalidEntity, Start: start, End: r.pos, Msg: err.Error()}
	}
	return rawAttr{rawName: name, value: value}, nil
}

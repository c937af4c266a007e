// Package dom implements the arena-allocated DOM (component E of the
// design): owned nodes addressed by stable index within one Arena, with
// parent/sibling/child links and byte-range metadata for diagnostics.
package dom

import "github.com/oxvg/oxvg-go/internal/atom"

// Kind tags the variant a Node holds.
type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindText
	KindCDATA
	KindComment
	KindProcessingInstruction
	KindDoctype
)

// Ref is a stable reference to a node within one Arena. The zero Ref
// refers to no node.
type Ref uint32

const NoRef Ref = 0

// Attr is one (name, value) pair on an element, in document order.
type Attr struct {
	Name  atom.QName
	Value string
	// Raw is true when Value could not be parsed into a typed attribute
	// model and is carried verbatim (§3 "Unknown or malformed attributes
	// carry their raw string").
	Raw bool
}

// SelectorFlags caches which CSS pseudo-class invalidations an element has
// been marked for (§4.2).
type SelectorFlags struct {
	NthChildDirty bool
	NthTypeDirty  bool
}

// node is the internal storage for one arena slot. Ref 0 is reserved and
// unused so that the zero Ref can mean "no node".
type node struct {
	kind Kind

	parent, prev, next   Ref
	firstChild, lastChild Ref

	start, end int // byte range into the source text

	// Element
	name  atom.QName
	attrs []Attr
	flags SelectorFlags

	// Text / CDATA / Comment / ProcessingInstruction / Doctype
	data   string
	target string // processing-instruction target
}

// Arena owns every node parsed from one document. No node outlives its
// Arena (§3 "Links are lifetime-bound to the arena that owns the node").
type Arena struct {
	nodes   []node
	Aliases *atom.NamespaceAliases
}

// NewArena returns an empty arena with its reserved nil slot.
func NewArena() *Arena {
	a := &Arena{nodes: make([]node, 1), Aliases: atom.NewNamespaceAliases()}
	return a
}

func (a *Arena) alloc(n node) Ref {
	a.nodes = append(a.nodes, n)
	return Ref(len(a.nodes) - 1)
}

func (a *Arena) at(r Ref) *node {
	return &a.nodes[r]
}

// NewDocument allocates the (sole) document root.
func (a *Arena) NewDocument() Ref {
	return a.alloc(node{kind: KindDocument})
}

// NewElement allocates a detached element node.
func (a *Arena) NewElement(name atom.QName, start, end int) Ref {
	return a.alloc(node{kind: KindElement, name: name, start: start, end: end})
}

// NewText allocates a detached text node.
func (a *Arena) NewText(data string, start, end int) Ref {
	return a.alloc(node{kind: KindText, data: data, start: start, end: end})
}

// NewCDATA allocates a detached CDATA node.
func (a *Arena) NewCDATA(data string, start, end int) Ref {
	return a.alloc(node{kind: KindCDATA, data: data, start: start, end: end})
}

// NewComment allocates a detached comment node.
func (a *Arena) NewComment(data string, start, end int) Ref {
	return a.alloc(node{kind: KindComment, data: data, start: start, end: end})
}

// NewProcessingInstruction allocates a detached PI node.
func (a *Arena) NewProcessingInstruction(target, data string, start, end int) Ref {
	return a.alloc(node{kind: KindProcessingInstruction, target: target, data: data, start: start, end: end})
}

// NewDoctype allocates a detached doctype node.
func (a *Arena) NewDoctype(data string, start, end int) Ref {
	return a.alloc(node{kind: KindDoctype, data: data, start: start, end: end})
}

// AppendChild appends child to the end of parent's child list. Construction
// only ever appends, which is how the "no cycles" invariant (§3) is
// maintained by construction rather than checked at runtime.
func (a *Arena) AppendChild(parent, child Ref) {
	p, c := a.at(parent), a.at(child)
	c.parent = parent
	if p.lastChild == NoRef {
		p.firstChild = child
	} else {
		last := a.at(p.lastChild)
		last.next = child
		c.prev = p.lastChild
	}
	p.lastChild = child
}

// Kind reports the node's variant.
func (a *Arena) Kind(r Ref) Kind { return a.at(r).kind }

// Parent returns the parent reference, or NoRef for the document root.
func (a *Arena) Parent(r Ref) Ref { return a.at(r).parent }

// NextSibling returns the next sibling reference, or NoRef.
func (a *Arena) NextSibling(r Ref) Ref { return a.at(r).next }

// PrevSibling returns the previous sibling reference, or NoRef.
func (a *Arena) PrevSibling(r Ref) Ref { return a.at(r).prev }

// FirstChild returns the first child reference, or NoRef.
func (a *Arena) FirstChild(r Ref) Ref { return a.at(r).firstChild }

// LastChild returns the last child reference, or NoRef.
func (a *Arena) LastChild(r Ref) Ref { return a.at(r).lastChild }

// Children returns a snapshot slice of r's children in document order.
// Visitors iterate over snapshots (§4.6) so that reparenting the current
// element during a walk cannot corrupt iteration.
func (a *Arena) Children(r Ref) []Ref {
	var out []Ref
	for c := a.at(r).firstChild; c != NoRef; c = a.at(c).next {
		out = append(out, c)
	}
	return out
}

// Range returns the byte range of r within the source text.
func (a *Arena) Range(r Ref) (start, end int) {
	n := a.at(r)
	return n.start, n.end
}

// Name returns an element's qualified name.
func (a *Arena) Name(r Ref) atom.QName { return a.at(r).name }

// SetName rewrites an element's qualified name in place, used by passes
// that replace one element kind with an equivalent (e.g. convert_shape_to_path).
func (a *Arena) SetName(r Ref, name atom.QName) { a.at(r).name = name }

// Data returns the text content of a Text/CDATA/Comment/Doctype node, or
// the data portion of a processing instruction.
func (a *Arena) Data(r Ref) string { return a.at(r).data }

// SetData replaces the text content of a Text/CDATA/Comment/Doctype node.
func (a *Arena) SetData(r Ref, data string) { a.at(r).data = data }

// Target returns a processing instruction's target.
func (a *Arena) Target(r Ref) string { return a.at(r).target }

// Flags returns a pointer to r's cached selector-invalidation flags.
func (a *Arena) Flags(r Ref) *SelectorFlags { return &a.at(r).flags }

// Attrs returns the attribute list for an element, in document order. The
// returned slice aliases the arena's storage; use SetAttrs to replace it.
func (a *Arena) Attrs(r Ref) []Attr { return a.at(r).attrs }

// SetAttrs replaces r's attribute list wholesale.
func (a *Arena) SetAttrs(r Ref, attrs []Attr) { a.at(r).attrs = attrs }

// Attr looks up an attribute by qualified name (namespace + local name,
// per §3's uniqueness invariant).
func (a *Arena) Attr(r Ref, name atom.QName) (Attr, bool) {
	for _, at := range a.at(r).attrs {
		if at.Name.Equal(name) {
			return at, true
		}
	}
	return Attr{}, false
}

// SetAttr inserts or replaces an attribute, preserving insertion order for
// new attributes and position for existing ones.
func (a *Arena) SetAttr(r Ref, at Attr) {
	n := a.at(r)
	for i := range n.attrs {
		if n.attrs[i].Name.Equal(at.Name) {
			n.attrs[i] = at
			return
		}
	}
	n.attrs = append(n.attrs, at)
}

// RemoveAttr deletes an attribute by name, reporting whether it was present.
func (a *Arena) RemoveAttr(r Ref, name atom.QName) bool {
	n := a.at(r)
	for i := range n.attrs {
		if n.attrs[i].Name.Equal(name) {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Detach removes r from its parent's child list without deallocating it.
// The node may be reattached elsewhere with AppendChild.
func (a *Arena) Detach(r Ref) {
	n := a.at(r)
	parent := n.parent
	if parent == NoRef {
		return
	}
	p := a.at(parent)
	if n.prev != NoRef {
		a.at(n.prev).next = n.next
	} else {
		p.firstChild = n.next
	}
	if n.next != NoRef {
		a.at(n.next).prev = n.prev
	} else {
		p.lastChild = n.prev
	}
	n.parent, n.prev, n.next = NoRef, NoRef, NoRef
}

// ReplaceChildren detaches every existing child of parent and appends refs
// in order; used by passes that rebuild a subtree (e.g. collapse_groups).
func (a *Arena) ReplaceChildren(parent Ref, refs []Ref) {
	for _, c := range a.Children(parent) {
		a.Detach(c)
	}
	for _, c := range refs {
		a.AppendChild(parent, c)
	}
}

// InsertBefore inserts child immediately before sibling in sibling's
// parent's child list.
func (a *Arena) InsertBefore(sibling, child Ref) {
	s := a.at(sibling)
	parent := s.parent
	c := a.at(child)
	c.parent = parent
	c.next = sibling
	c.prev = s.prev
	if s.prev != NoRef {
		a.at(s.prev).next = child
	} else {
		a.at(parent).firstChild = child
	}
	s.prev = child
}

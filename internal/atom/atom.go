// Package atom implements a process-wide string interner for element and
// attribute names, plus the qualified-name model used throughout the DOM.
package atom

import "sync"

// Atom is an interned string. Two atoms with the same text compare equal
// by their index.
type Atom uint32

var (
	mu     sync.RWMutex
	byText = map[string]Atom{"": 0}
	texts  = []string{""}
)

// Intern returns the Atom for s, inserting it if this is the first time s
// has been seen.
func Intern(s string) Atom {
	mu.RLock()
	if a, ok := byText[s]; ok {
		mu.RUnlock()
		return a
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if a, ok := byText[s]; ok {
		return a
	}
	a := Atom(len(texts))
	texts = append(texts, s)
	byText[s] = a
	return a
}

// String returns the interned text for a. The zero Atom is the empty string.
func (a Atom) String() string {
	mu.RLock()
	defer mu.RUnlock()
	if int(a) >= len(texts) {
		return ""
	}
	return texts[a]
}

// Well-known namespace prefixes and their canonical URIs, pre-interned so
// that namespace resolution never allocates for the common case.
const (
	NSSVG   = "http://www.w3.org/2000/svg"
	NSXML   = "http://www.w3.org/XML/1998/namespace"
	NSXMLNS = "http://www.w3.org/2000/xmlns/"
	NSXLink = "http://www.w3.org/1999/xlink"
	NSXHTML = "http://www.w3.org/1999/xhtml"
	NSMathML = "http://www.w3.org/1998/Math/MathML"
)

var wellKnownPrefixes = map[string]string{
	"svg":   NSSVG,
	"xml":   NSXML,
	"xmlns": NSXMLNS,
	"xlink": NSXLink,
	"xhtml": NSXHTML,
	"mathml": NSMathML,
}

func init() {
	Intern("")
	for prefix, ns := range wellKnownPrefixes {
		Intern(prefix)
		Intern(ns)
	}
}

// WellKnownNamespace returns the canonical URI for one of the pre-interned
// prefixes (svg, xml, xmlns, xlink, xhtml, mathml), and whether it is known.
func WellKnownNamespace(prefix string) (string, bool) {
	ns, ok := wellKnownPrefixes[prefix]
	return ns, ok
}

// QName is a qualified name: an optional source prefix, a resolved
// namespace URI (empty for no namespace), and a local name.
//
// Prefix is the literal prefix text as written in the source document (it
// may be a document-chosen alias, e.g. "s" for "xmlns:s=\".../svg\"");
// NS is always the canonical, resolved namespace URI.
type QName struct {
	Prefix Atom
	NS     Atom
	Local  Atom
}

// NewQName interns prefix/ns/local and returns the resulting QName.
func NewQName(prefix, ns, local string) QName {
	return QName{Prefix: Intern(prefix), NS: Intern(ns), Local: Intern(local)}
}

// Equal reports whether two qualified names have the same namespace and
// local name (prefixes may differ legitimately — they are not part of
// identity per the XML namespaces spec).
func (q QName) Equal(o QName) bool {
	return q.NS == o.NS && q.Local == o.Local
}

func (q QName) String() string {
	if q.Prefix != 0 {
		return q.Prefix.String() + ":" + q.Local.String()
	}
	return q.Local.String()
}

// NamespaceAliases records a document's own prefix→URI declarations so the
// writer can round-trip the alias the author actually chose instead of
// always emitting the canonical prefix (§3 "aliasing is recorded").
type NamespaceAliases struct {
	mu      sync.Mutex
	toURI   map[string]string
	toAlias map[string]string
}

// NewNamespaceAliases returns an empty alias table.
func NewNamespaceAliases() *NamespaceAliases {
	return &NamespaceAliases{toURI: map[string]string{}, toAlias: map[string]string{}}
}

// Declare records that prefix was bound to uri in the source document.
func (n *NamespaceAliases) Declare(prefix, uri string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toURI[prefix] = uri
	if _, exists := n.toAlias[uri]; !exists {
		n.toAlias[uri] = prefix
	}
}

// URI returns the namespace URI a prefix was declared against in this
// document, if any.
func (n *NamespaceAliases) URI(prefix string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	uri, ok := n.toURI[prefix]
	return uri, ok
}

// Alias returns the document's chosen prefix for a namespace URI, if one
// was declared.
func (n *NamespaceAliases) Alias(uri string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	alias, ok := n.toAlias[uri]
	return alias, ok
}

package attr

import (
	"fmt"
	"strings"

	"github.com/oxvg/oxvg-go/internal/cssvalue"
)

// Grammar is a Value backed by a CSS formal value grammar (CSS Values and
// Units Module, Value Definition Syntax), for presentation attributes whose
// shorthand shape is easier to state as a published VDS string than to
// hand-parse field by field, the way Length/Paint/Transform do.
type Grammar struct {
	term cssvalue.Term
	raw  string
}

// grammarCtx is shared by every Grammar value; none of the grammars
// registered below reference a named property or non-terminal, so it stays
// empty rather than needing a property table populated up front.
var grammarCtx = &cssvalue.Context{}

// mustGrammar parses a VDS literal once at package init. A parse failure
// here is a mistake in the literal below, not a runtime condition, so it
// panics rather than threading an error back through the registry.
func mustGrammar(vds string) cssvalue.Term {
	term, err := cssvalue.ParseGrammar(strings.NewReader(vds))
	if err != nil {
		panic(fmt.Sprintf("attr: invalid grammar %q: %v", vds, err))
	}
	return term
}

// cursorGrammar is the CSS Basic User Interface Module's `cursor` property
// syntax (SVG2 presentation attribute, §4.3), loosened to accept a missing
// trailing comma before the final keyword: `<url>#` ends the url list at
// the first token that is not a comma, so that comma is optional.
var cursorGrammar = mustGrammar(
	`[ <url> # ]? [ auto | default | none | context-menu | help | pointer | progress | wait | cell | crosshair | text | vertical-text | alias | copy | move | no-drop | not-allowed | grab | grabbing | all-scroll | col-resize | row-resize | n-resize | e-resize | s-resize | w-resize | ne-resize | nw-resize | se-resize | sw-resize | ew-resize | ns-resize | nesw-resize | nwse-resize | zoom-in | zoom-out ]`,
)

// NewGrammar builds a Value constructor for a registered VDS grammar.
func NewGrammar(term cssvalue.Term) func() Value {
	return func() Value { return &Grammar{term: term} }
}

func (g *Grammar) Parse(raw string) error {
	g.raw = raw
	if cssvalue.Match(grammarCtx, g.term, strings.NewReader(raw)) == nil {
		return fmt.Errorf("%q does not match the expected grammar", raw)
	}
	return nil
}

func (g *Grammar) WriteAtom(sb *strings.Builder) { sb.WriteString(g.raw) }

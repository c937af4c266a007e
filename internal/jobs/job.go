// Package jobs implements the transformation passes (I) the optimiser
// orchestrator runs in a fixed order over one shared tree (§4.7). Each
// pass is a visitor.Visitor plus a small config struct and the
// precondition flags the orchestrator consults before materialising a
// stylesheet or computed style for it.
package jobs

import "github.com/oxvg/oxvg-go/internal/visitor"

// Precondition mirrors §4.7's "needs-stylesheet / needs-script-scan /
// use-computed-style" advertisement.
type Precondition struct {
	NeedsStylesheet bool
	NeedsScriptScan bool
	UseComputedStyle bool
}

// Job pairs a visitor.Visitor with its name (used by config/registry
// lookup) and declared preconditions.
type Job interface {
	visitor.Visitor
	Name() string
	Precondition() Precondition
}

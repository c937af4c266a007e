package lint

import (
	"github.com/oxvg/oxvg-go/internal/attr"
	"github.com/oxvg/oxvg-go/internal/diagnostic"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// Config toggles each rule (§6 lint config schema: noUnknownElements,
// noUnknownAttributes, noDeprecated, noDefaultAttributes, noXLink, each
// off|warn|error).
type Config struct {
	NoUnknownElements   diagnostic.Severity
	NoUnknownAttributes diagnostic.Severity
	NoDeprecated        diagnostic.Severity
	NoDefaultAttributes diagnostic.Severity
	NoXLink             diagnostic.Severity
	NoInvalidAttrValue  diagnostic.Severity
}

// DefaultConfig matches oxvg_lint's bundled "recommended" preset: every
// rule on at warn.
func DefaultConfig() Config {
	return Config{
		NoUnknownElements:   diagnostic.SeverityWarn,
		NoUnknownAttributes: diagnostic.SeverityWarn,
		NoDeprecated:        diagnostic.SeverityWarn,
		NoDefaultAttributes: diagnostic.SeverityWarn,
		NoXLink:             diagnostic.SeverityWarn,
		NoInvalidAttrValue:  diagnostic.SeverityWarn,
	}
}

// defaultValues mirrors jobs.removeUnknownsAndDefaults's table; kept as
// its own copy since jobs's is unexported and lint must not depend on
// jobs (lint runs standalone from `oxvg lint`, jobs only from `oxvg
// optimise`).
var defaultValues = map[string]string{
	"fill":              "black",
	"fill-opacity":      "1",
	"fill-rule":         "nonzero",
	"stroke":            "none",
	"stroke-width":      "1",
	"stroke-opacity":    "1",
	"stroke-linecap":    "butt",
	"stroke-linejoin":   "miter",
	"stroke-dasharray":  "none",
	"stroke-dashoffset": "0",
	"opacity":           "1",
	"clip-rule":         "nonzero",
	"visibility":        "visible",
	"display":           "inline",
}

// Runner applies every enabled rule to one document in a single visitor
// pass (visitor.Walk is a DFS; a wrapper Visitor fans Element out to each
// enabled rule rather than re-walking per rule).
type Runner struct {
	visitor.BaseVisitor
	rules []Rule
}

// NewRunner builds the rule set enabled by cfg. A rule at SeverityOff is
// omitted entirely rather than run-then-discarded.
func NewRunner(cfg Config, report *diagnostic.Report) *Runner {
	r := &Runner{}
	if cfg.NoUnknownElements != diagnostic.SeverityOff {
		r.rules = append(r.rules, NewNoUnknownElements(report, cfg.NoUnknownElements))
	}
	if cfg.NoUnknownAttributes != diagnostic.SeverityOff {
		r.rules = append(r.rules, NewNoUnknownAttributes(report, func(local string) bool {
			_, ok := attr.Lookup(local)
			return ok
		}, cfg.NoUnknownAttributes))
	}
	if cfg.NoDeprecated != diagnostic.SeverityOff {
		r.rules = append(r.rules, NewNoDeprecated(report, func(local string) bool {
			spec, ok := attr.Lookup(local)
			return ok && spec.Category&attr.CategoryDeprecated != 0
		}, cfg.NoDeprecated))
	}
	if cfg.NoDefaultAttributes != diagnostic.SeverityOff {
		r.rules = append(r.rules, NewNoDefaultAttrs(report, func(local, value string) bool {
			def, ok := defaultValues[local]
			return ok && value == def
		}, cfg.NoDefaultAttributes))
	}
	if cfg.NoXLink != diagnostic.SeverityOff {
		r.rules = append(r.rules, NewNoXLink(report, cfg.NoXLink))
	}
	if cfg.NoInvalidAttrValue != diagnostic.SeverityOff {
		r.rules = append(r.rules, NewNoInvalidAttrValue(report, cfg.NoInvalidAttrValue))
	}
	return r
}

func (r *Runner) Element(ctx *visitor.Context, ref dom.Ref) error {
	for _, rule := range r.rules {
		if err := rule.Element(ctx, ref); err != nil {
			return err
		}
	}
	return nil
}

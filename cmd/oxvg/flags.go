package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/oxvg/oxvg-go/internal/xmlio"
)

// prettyValue implements pflag.Value for `-p/--pretty <none|tabs|N>`
// (§6), decoding directly into an xmlio.Indent rather than a bare string
// so a malformed value is rejected at flag-parse time.
type prettyValue struct {
	indent *xmlio.Indent
}

func (p *prettyValue) String() string {
	switch p.indent.Kind {
	case "tabs":
		return "tabs"
	case "spaces":
		return strconv.Itoa(p.indent.Width)
	default:
		return "none"
	}
}

func (p *prettyValue) Set(s string) error {
	switch s {
	case "none", "":
		*p.indent = xmlio.Indent{Kind: "none"}
		return nil
	case "tabs":
		*p.indent = xmlio.Indent{Kind: "tabs"}
		return nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return fmt.Errorf("pretty must be none, tabs, or a non-negative integer, got %q", s)
		}
		*p.indent = xmlio.Indent{Kind: "spaces", Width: n}
		return nil
	}
}

func (p *prettyValue) Type() string { return "none|tabs|N" }

// spaceValue implements pflag.Value for `-s/--space <auto|preserve|collapse>`.
type spaceValue struct {
	space *xmlio.Space
}

func (s *spaceValue) String() string { return string(*s.space) }

func (s *spaceValue) Set(v string) error {
	switch xmlio.Space(v) {
	case xmlio.SpaceAuto, xmlio.SpacePreserve, xmlio.SpaceCollapse:
		*s.space = xmlio.Space(v)
		return nil
	default:
		return fmt.Errorf("space must be auto, preserve, or collapse, got %q", v)
	}
}

func (s *spaceValue) Type() string { return "auto|preserve|collapse" }

func registerPrettyFlag(fs *pflag.FlagSet, indent *xmlio.Indent) {
	*indent = xmlio.Indent{Kind: "none"}
	fs.VarP(&prettyValue{indent: indent}, "pretty", "p", "indentation: none, tabs, or a numeric width")
}

func registerSpaceFlag(fs *pflag.FlagSet, space *xmlio.Space) {
	*space = xmlio.SpaceAuto
	fs.VarP(&spaceValue{space: space}, "space", "s", "whitespace policy: auto, preserve, or collapse")
}

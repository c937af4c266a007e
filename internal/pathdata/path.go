package pathdata

import "strings"

// Path is a parsed `d` attribute value together with the precision used to
// serialise it back out.
type Path struct {
	Commands []Command
}

// ParsePath parses raw per Parse and wraps the result.
func ParsePath(raw string) (Path, error) {
	cmds, err := Parse(raw)
	if err != nil {
		return Path{}, err
	}
	return Path{Commands: cmds}, nil
}

// String serialises the path using the given precision, matching the
// minimal-separator convention of WriteAtom.
func (p Path) String(precision int) string {
	r := Rounder{Precision: precision}
	var sb strings.Builder
	for _, c := range p.Commands {
		c.WriteAtom(&sb, r.Round)
	}
	return sb.String()
}

// Optimise returns a new Path with Optimise(p.Commands, opts) applied.
func (p Path) Optimise(opts Options) Path {
	return Path{Commands: Optimise(p.Commands, opts)}
}

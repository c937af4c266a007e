package lint

import (
	"fmt"

	"github.com/oxvg/oxvg-go/internal/diagnostic"
	"github.com/oxvg/oxvg-go/internal/visitor"
	"github.com/oxvg/oxvg-go/internal/xmlio"
)

// Run parses source and applies every rule cfg enables in a single DFS
// pass (lint rules don't mutate the tree, so unlike internal/optimise's
// one-Walk-per-pass there is no ordering hazard running them together).
func Run(source, path string, cfg Config) (*diagnostic.Report, error) {
	a, root, err := xmlio.Parse(source, xmlio.Options{})
	if err != nil {
		return nil, fmt.Errorf("lint: parse %s: %w", path, err)
	}
	report := &diagnostic.Report{}
	runner := NewRunner(cfg, report)
	info := &visitor.Info{Arena: a, SourcePath: path}
	if err := visitor.Walk(a, info, root, []visitor.Visitor{runner}); err != nil {
		return nil, fmt.Errorf("lint: %s: %w", path, err)
	}
	return report, nil
}

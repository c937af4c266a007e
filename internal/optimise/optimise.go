// Package optimise wires internal/xmlio, internal/config, internal/jobs
// and internal/visitor into the single-document optimise pipeline the
// `optimise` command and the batch walker in cmd/oxvg both call (§2, §4.7).
package optimise

import (
	"fmt"

	"github.com/oxvg/oxvg-go/internal/config"
	"github.com/oxvg/oxvg-go/internal/visitor"
	"github.com/oxvg/oxvg-go/internal/xmlio"
)

// Result is one document's outcome.
type Result struct {
	Output     string
	InputSize  int
	OutputSize int
}

// Run parses source, applies every pass cfg.BuildJobs selects in order
// (one visitor.Walk per pass, so a structural remover's mutations are
// fully visible to the consolidator/rewriter passes that follow it —
// running them all in a single combined Walk would interleave their
// mutations unpredictably), and serialises the result under writeOpts.
func Run(source, path string, cfg config.OptimiseConfig, writeOpts xmlio.WriteOptions) (Result, error) {
	a, root, err := xmlio.Parse(source, xmlio.Options{})
	if err != nil {
		return Result{}, fmt.Errorf("optimise: parse %s: %w", path, err)
	}

	jobList, err := config.BuildJobs(cfg)
	if err != nil {
		return Result{}, err
	}

	info := &visitor.Info{Arena: a, SourcePath: path}
	for i, job := range jobList {
		info.Multipass = i
		if err := visitor.Walk(a, info, root, []visitor.Visitor{job}); err != nil {
			return Result{}, fmt.Errorf("optimise: %s: pass %q: %w", path, job.Name(), err)
		}
	}

	out := xmlio.Write(a, root, writeOpts)
	return Result{Output: out, InputSize: len(source), OutputSize: len(out)}, nil
}

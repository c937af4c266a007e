package jobs

import (
	"strings"

	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// RemoveCommentsConfig controls the remove_comments pass (§4.7
// "remove_comments ... with !-prefix and user-pattern preservation").
type RemoveCommentsConfig struct {
	// Preserve holds literal substrings; a comment containing any of them
	// survives regardless of the "!" rule.
	Preserve []string
}

// removeComments deletes <!-- ... --> nodes, except ones starting with
// "!" (the conventional "preserve this comment" marker carried over from
// CSS/JS minifiers) or matching a user-supplied preserve pattern.
type removeComments struct {
	visitor.BaseVisitor
	cfg RemoveCommentsConfig
}

func NewRemoveComments(cfg RemoveCommentsConfig) Job { return &removeComments{cfg: cfg} }

func (*removeComments) Name() string               { return "remove_comments" }
func (*removeComments) Precondition() Precondition  { return Precondition{} }

func (j *removeComments) Comment(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	text := a.Data(ref)
	if strings.HasPrefix(strings.TrimSpace(text), "!") {
		return nil
	}
	for _, p := range j.cfg.Preserve {
		if strings.Contains(text, p) {
			return nil
		}
	}
	a.Detach(ref)
	return nil
}

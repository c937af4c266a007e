package jobs

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

var enableBackgroundName = atom.NewQName("", "", "enable-background")

// cleanupEnableBackground deletes `enable-background` attributes whose
// value is exactly "new" with no explicit region, the only form that
// carries no information beyond what's already implied by viewBox (§4.7
// "cleanup_enable_background").
type cleanupEnableBackground struct{ visitor.BaseVisitor }

func NewCleanupEnableBackground() Job                      { return &cleanupEnableBackground{} }
func (*cleanupEnableBackground) Name() string               { return "cleanup_enable_background" }
func (*cleanupEnableBackground) Precondition() Precondition { return Precondition{} }

func (j *cleanupEnableBackground) Element(ctx *visitor.Context, ref dom.Ref) error {
	a := ctx.Info.Arena
	if at, ok := a.Attr(ref, enableBackgroundName); ok && at.Value == "new" {
		a.RemoveAttr(ref, enableBackgroundName)
	}
	return nil
}

package jobs

import (
	"fmt"
	"strings"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/log"
	"github.com/oxvg/oxvg-go/internal/visitor"
)

// PrecheckConfig controls precheck's pre-clean validation, ported from
// svgcleaner via original_source's precheck.rs (§13 supplemental pass).
type PrecheckConfig struct {
	// FailFast aborts the whole pass set on the first violation instead of
	// logging and continuing.
	FailFast bool
	// PrecleanChecks enables the checks at all; when false, precheck is a
	// no-op (matches the Rust default of false).
	PrecleanChecks bool
}

var errPrecheck = func(msg string) error { return fmt.Errorf("precheck: %s", msg) }

const (
	scriptingNotSupported   = "scripting is not supported"
	animationNotSupported   = "animation is not supported"
	conditionalNotSupported = "conditional processing attributes is not supported"
)

var animationElements = map[string]bool{
	"animate": true, "animateColor": true, "animateMotion": true,
	"animateTransform": true, "set": true,
}

// scriptEventAttrs are graphical/document/animation event attribute names
// (onclick, onload, onbegin, ...) precheck flags as unsupported scripting.
var scriptEventAttrs = map[string]bool{
	"onfocusin": true, "onfocusout": true, "onactivate": true, "onclick": true,
	"onmousedown": true, "onmouseup": true, "onmouseover": true, "onmousemove": true,
	"onmouseout": true, "onload": true, "onunload": true, "onabort": true,
	"onerror": true, "onresize": true, "onscroll": true, "onbegin": true,
	"onend": true, "onrepeat": true,
}

var (
	requiredFeaturesName = atom.NewQName("", "", "requiredFeatures")
	systemLanguageName   = atom.NewQName("", "", "systemLanguage")
)

var externalXLinkExempt = map[atom.Atom]bool{
	atom.Intern("a"): true, atom.Intern("image"): true,
	atom.Intern("font-face-uri"): true, atom.Intern("feImage"): true,
}

// precheck validates a document against a handful of "will this even
// render anywhere" checks ported from svgcleaner (§13 "precheck").
type precheck struct {
	visitor.BaseVisitor
	cfg PrecheckConfig
}

func NewPrecheck(cfg PrecheckConfig) Job { return &precheck{cfg: cfg} }

func (*precheck) Name() string               { return "precheck" }
func (*precheck) Precondition() Precondition { return Precondition{} }

func (j *precheck) Element(ctx *visitor.Context, ref dom.Ref) error {
	if !j.cfg.PrecleanChecks {
		return nil
	}
	a := ctx.Info.Arena
	if err := j.checkUnsupportedElements(a, ref); err != nil {
		return err
	}
	if err := j.checkScriptAttributes(a, ref); err != nil {
		return err
	}
	if err := j.checkConditionalAttributes(a, ref); err != nil {
		return err
	}
	return j.checkExternalXLink(a, ref)
}

func (j *precheck) emit(msg string) error {
	if j.cfg.FailFast {
		return errPrecheck(msg)
	}
	log.Default().Error(msg)
	return nil
}

func (j *precheck) checkUnsupportedElements(a *dom.Arena, ref dom.Ref) error {
	name := a.Name(ref)
	if name.Prefix != 0 {
		return nil
	}
	switch name.Local {
	case scriptName:
		return j.emit(scriptingNotSupported)
	default:
		if animationElements[name.Local.String()] {
			return j.emit(animationNotSupported)
		}
	}
	return nil
}

func (j *precheck) checkScriptAttributes(a *dom.Arena, ref dom.Ref) error {
	for _, at := range a.Attrs(ref) {
		if at.Name.Prefix != 0 {
			continue
		}
		if scriptEventAttrs[at.Name.Local.String()] {
			if err := j.emit(scriptingNotSupported); err != nil {
				return err
			}
		}
	}
	return nil
}

func (j *precheck) checkConditionalAttributes(a *dom.Arena, ref dom.Ref) error {
	for _, at := range a.Attrs(ref) {
		if at.Name.Prefix != 0 || at.Value == "" {
			continue
		}
		if at.Name == requiredFeaturesName || at.Name == systemLanguageName {
			if err := j.emit(conditionalNotSupported); err != nil {
				return err
			}
		}
	}
	return nil
}

func (j *precheck) checkExternalXLink(a *dom.Arena, ref dom.Ref) error {
	if externalXLinkExempt[a.Name(ref).Local] {
		return nil
	}
	for _, at := range a.Attrs(ref) {
		if at.Name.Prefix.String() != "xlink" || at.Name.Local.String() != "href" {
			continue
		}
		if strings.HasPrefix(at.Value, "#") {
			continue
		}
		if err := j.emit(fmt.Sprintf("the `xlink:href` attribute is referencing an external object %q which is not supported", at.Value)); err != nil {
			return err
		}
	}
	return nil
}

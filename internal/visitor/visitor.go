// Package visitor implements the DFS tree-walking framework every
// optimiser job and lint rule plugs into (§4.6, §9 "polymorphic passes").
// A Visitor is a record of hooks with no-op defaults (embed BaseVisitor),
// matching the teacher's habit of small interfaces satisfied by embedding
// a zero-value base rather than implementing every method by hand.
package visitor

import (
	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/oxvg/oxvg-go/internal/style"
)

// PrepareOutcome is returned by Prepare to tell the walker whether this
// visitor wants to run at all, and whether it needs computed styles.
type PrepareOutcome int

const (
	PrepareNone PrepareOutcome = iota
	PrepareSkip
	PrepareUseStyle
)

// ContextFlags mirrors §4.6's mutable per-visit flags.
type ContextFlags struct {
	HasScriptRef      bool
	HasStylesheet     bool
	UseStyle          bool
	WithinForeignObject bool
	SkipChildren      bool
}

// Info carries per-document state that outlives any one element visit.
type Info struct {
	Arena      *dom.Arena
	SourcePath string
	Multipass  int
}

// Context is passed to every hook. Style is nil unless a visitor requested
// PrepareUseStyle (§4.6 "if requested").
type Context struct {
	Root     dom.Ref
	Style    *style.Session
	Computed *style.ComputedStyle
	Flags    *ContextFlags
	Info     *Info
}

// Visitor is the polymorphic pass interface (§9): default no-op bodies via
// BaseVisitor, override only the hooks a pass cares about.
type Visitor interface {
	Prepare(ctx *Context) PrepareOutcome
	Document(ctx *Context, ref dom.Ref) error
	Element(ctx *Context, ref dom.Ref) error
	ExitElement(ctx *Context, ref dom.Ref) error
	ExitDocument(ctx *Context, ref dom.Ref) error
	TextOrCDATA(ctx *Context, ref dom.Ref) error
	Comment(ctx *Context, ref dom.Ref) error
	Doctype(ctx *Context, ref dom.Ref) error
	ProcessingInstruction(ctx *Context, ref dom.Ref) error
}

// BaseVisitor supplies the no-op defaults; embed it and override only the
// hooks a concrete pass needs.
type BaseVisitor struct{}

func (BaseVisitor) Prepare(*Context) PrepareOutcome                    { return PrepareNone }
func (BaseVisitor) Document(*Context, dom.Ref) error                   { return nil }
func (BaseVisitor) Element(*Context, dom.Ref) error                   { return nil }
func (BaseVisitor) ExitElement(*Context, dom.Ref) error                { return nil }
func (BaseVisitor) ExitDocument(*Context, dom.Ref) error               { return nil }
func (BaseVisitor) TextOrCDATA(*Context, dom.Ref) error                { return nil }
func (BaseVisitor) Comment(*Context, dom.Ref) error                    { return nil }
func (BaseVisitor) Doctype(*Context, dom.Ref) error                    { return nil }
func (BaseVisitor) ProcessingInstruction(*Context, dom.Ref) error      { return nil }

var foreignObjectName = atom.Intern("foreignObject")

// Walk runs a single DFS over arena starting at root, calling each active
// visitor's hooks in document order. Each visitor's Prepare is called once
// up front; visitors that return PrepareSkip are excluded from this walk.
func Walk(a *dom.Arena, info *Info, root dom.Ref, visitors []Visitor) error {
	flags := &ContextFlags{}
	ctx := &Context{Root: root, Flags: flags, Info: info}

	active := make([]Visitor, 0, len(visitors))
	for _, v := range visitors {
		switch v.Prepare(ctx) {
		case PrepareSkip:
			continue
		case PrepareUseStyle:
			flags.UseStyle = true
			active = append(active, v)
		default:
			active = append(active, v)
		}
	}
	if len(active) == 0 {
		return nil
	}

	if flags.UseStyle {
		session, err := style.NewSession(a, root)
		if err == nil {
			ctx.Style = session
			flags.HasStylesheet = len(session.Stylesheet().Rules) > 0
		}
	}

	if err := walkNode(a, ctx, root, active); err != nil {
		return err
	}
	for _, v := range active {
		if err := v.ExitDocument(ctx, root); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(a *dom.Arena, ctx *Context, ref dom.Ref, visitors []Visitor) error {
	switch a.Kind(ref) {
	case dom.KindDocument:
		for _, v := range visitors {
			if err := v.Document(ctx, ref); err != nil {
				return err
			}
		}
		return descend(a, ctx, ref, visitors)

	case dom.KindElement:
		wasForeign := ctx.Flags.WithinForeignObject
		if a.Name(ref).Local == foreignObjectName {
			ctx.Flags.WithinForeignObject = true
		}
		if ctx.Flags.UseStyle && ctx.Style != nil {
			ctx.Computed = ctx.Style.Compute(ref)
		}

		ctx.Flags.SkipChildren = false
		for _, v := range visitors {
			if err := v.Element(ctx, ref); err != nil {
				return err
			}
		}
		if !ctx.Flags.SkipChildren {
			if err := descend(a, ctx, ref, visitors); err != nil {
				return err
			}
		}
		for _, v := range visitors {
			if err := v.ExitElement(ctx, ref); err != nil {
				return err
			}
		}
		ctx.Flags.WithinForeignObject = wasForeign
		return nil

	case dom.KindText, dom.KindCDATA:
		for _, v := range visitors {
			if err := v.TextOrCDATA(ctx, ref); err != nil {
				return err
			}
		}
		return nil

	case dom.KindComment:
		for _, v := range visitors {
			if err := v.Comment(ctx, ref); err != nil {
				return err
			}
		}
		return nil

	case dom.KindDoctype:
		for _, v := range visitors {
			if err := v.Doctype(ctx, ref); err != nil {
				return err
			}
		}
		return nil

	case dom.KindProcessingInstruction:
		for _, v := range visitors {
			if err := v.ProcessingInstruction(ctx, ref); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// descend reads children into a snapshot before iterating (§4.6: a
// visitor may reparent or remove the current element and its siblings
// without invalidating the walk).
func descend(a *dom.Arena, ctx *Context, ref dom.Ref, visitors []Visitor) error {
	children := a.Children(ref)
	for _, c := range children {
		if a.Parent(c) != ref {
			continue // reparented or detached by an earlier sibling's pass
		}
		if err := walkNode(a, ctx, c, visitors); err != nil {
			return err
		}
	}
	return nil
}

// Package diagnostic formats parse errors, job errors, and lint findings
// for the terminal and for the LSP surface (§7, §4.1). Byte ranges are
// captured for free at parse time (internal/xmlio, internal/pathdata); this
// package only does the line/column conversion, lazily, on report.
//
// Grounded on original_source/crates/oxvg_diagnostics/lib.rs's SVGError
// (a label, a span, optional advice, optional related "caused by" span),
// rendered here with github.com/muesli/termenv colour instead of miette.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Severity mirrors the lint config's off|warn|error vocabulary (§6).
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "off"
	}
}

// ParseSeverity accepts the JSON config's off|warn|error strings.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "off":
		return SeverityOff, true
	case "warn":
		return SeverityWarn, true
	case "error":
		return SeverityError, true
	}
	return SeverityOff, false
}

// Diagnostic is one reported problem: a label, its severity, the byte
// range it applies to, and an optional second "caused by" range — the Go
// analogue of the Rust SVGError{label, span, advice, cause}.
type Diagnostic struct {
	Kind     string // e.g. "UnknownAttribute", "ParseError" — mirrors §7's error kinds
	Message  string
	Severity Severity
	Start    int
	End      int
	HasCause bool
	CauseStart, CauseEnd int
	Advice   string
}

// Position is a 1-based line/column pair.
type Position struct {
	Line, Column int
}

// locate performs the single scan of preceding bytes that §9 "Diagnostics"
// calls for: byte ranges are stored eagerly, line/column computed lazily.
func locate(src string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line := 1
	col := 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col}
}

func lineBounds(src string, offset int) (start, end int) {
	start = strings.LastIndexByte(src[:offset], '\n') + 1
	if rel := strings.IndexByte(src[offset:], '\n'); rel >= 0 {
		end = offset + rel
	} else {
		end = len(src)
	}
	return start, end
}

// Render formats d against src for the terminal: severity-coloured label,
// file position, and a one-line-of-context source window with a caret
// range under the offending span — termenv picks the colour profile (dumb
// terminal, ANSI, or truecolor) so piping to a file degrades to plain text.
func Render(d Diagnostic, path, src string) string {
	profile := termenv.ColorProfile()
	pos := locate(src, d.Start)

	var sevColor termenv.Color
	switch d.Severity {
	case SeverityError:
		sevColor = profile.Color("9")
	case SeverityWarn:
		sevColor = profile.Color("11")
	default:
		sevColor = profile.Color("7")
	}

	var b strings.Builder
	header := termenv.String(fmt.Sprintf("%s: %s", d.Severity, d.Message)).Foreground(sevColor).Bold()
	fmt.Fprintf(&b, "%s\n", header.String())
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", path, pos.Line, pos.Column)

	lineStart, lineEnd := lineBounds(src, d.Start)
	line := src[lineStart:lineEnd]
	fmt.Fprintf(&b, "   | %s\n", line)

	caretLen := d.End - d.Start
	if caretLen < 1 {
		caretLen = 1
	}
	caretCol := d.Start - lineStart
	if caretCol < 0 {
		caretCol = 0
	}
	caret := strings.Repeat(" ", caretCol) + termenv.String(strings.Repeat("^", caretLen)).Foreground(sevColor).String()
	fmt.Fprintf(&b, "   | %s\n", caret)

	if d.Advice != "" {
		fmt.Fprintf(&b, "   = help: %s\n", d.Advice)
	}
	if d.HasCause {
		causePos := locate(src, d.CauseStart)
		fmt.Fprintf(&b, "   = caused by: %s:%d:%d\n", path, causePos.Line, causePos.Column)
	}
	return b.String()
}

// Report is the ordered collection of diagnostics produced over one
// document, with the counts needed to drive LintReported's exit code.
type Report struct {
	Diagnostics []Diagnostic
}

func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Counts returns the number of warnings and errors in the report.
func (r *Report) Counts() (warnings, errors int) {
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case SeverityWarn:
			warnings++
		case SeverityError:
			errors++
		}
	}
	return
}

// ExitCode implements §6's exit-code threshold: 0 if nothing at or above
// threshold was reported, 1 otherwise.
func (r *Report) ExitCode(threshold Severity) int {
	if threshold == SeverityOff {
		return 0
	}
	for _, d := range r.Diagnostics {
		if d.Severity >= threshold && d.Severity != SeverityOff {
			return 1
		}
	}
	return 0
}

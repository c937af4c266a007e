// Package pathdata implements the path model and optimiser (components C
// and D): a grammar-correct parser for the SVG path `d` mini-language, and
// a multi-stage minifier producing the shortest equivalent path.
//
// The recursive-descent coordinate scanner is grounded directly on the
// teacher's elements_paths.go ParsePathCommands, restructured to emit one
// Command per letter-group (the teacher groups repeated coordinate pairs
// into a single multi-point command value) so that the Implicit<Cmd>
// invariant from §3 has somewhere to attach.
package pathdata

import "strings"

// Kind identifies a path command's letter.
type Kind int

const (
	KindMoveTo Kind = iota
	KindLineTo
	KindHLineTo
	KindVLineTo
	KindCubicTo
	KindSmoothTo
	KindQuadTo
	KindSmoothQuadTo
	KindArcTo
	KindClosePath
)

var letters = map[Kind][2]byte{
	KindMoveTo:       {'M', 'm'},
	KindLineTo:       {'L', 'l'},
	KindHLineTo:      {'H', 'h'},
	KindVLineTo:      {'V', 'v'},
	KindCubicTo:      {'C', 'c'},
	KindSmoothTo:     {'S', 's'},
	KindQuadTo:       {'Q', 'q'},
	KindSmoothQuadTo: {'T', 't'},
	KindArcTo:        {'A', 'a'},
	KindClosePath:    {'Z', 'z'},
}

// Arity is the number of numeric arguments one instance of Kind consumes
// (flags count as numeric arguments for ArcTo's purposes).
func (k Kind) Arity() int {
	switch k {
	case KindMoveTo, KindLineTo, KindSmoothQuadTo:
		return 2
	case KindHLineTo, KindVLineTo:
		return 1
	case KindCubicTo:
		return 6
	case KindSmoothTo, KindQuadTo:
		return 4
	case KindArcTo:
		return 7
	case KindClosePath:
		return 0
	}
	return 0
}

// NextImplicit is the command kind a bare (letter-less) repetition of this
// command implies, per §3 "next_implicit()". Every drawing command implies
// itself; MoveTo implies LineTo (the SVG spec's "subsequent pairs are
// treated as implicit lineto"); ClosePath has no implicit continuation.
func (k Kind) NextImplicit() (Kind, bool) {
	switch k {
	case KindMoveTo:
		return KindLineTo, true
	case KindClosePath:
		return 0, false
	default:
		return k, true
	}
}

// Command is one SVG path command: a kind, an absolute/relative flag, the
// numeric argument list, and whether it is printed without a letter
// because its predecessor implies it (§3 Implicit<Cmd>).
type Command struct {
	Kind     Kind
	Abs      bool
	Args     []float64 // semantics depend on Kind; see packers below
	Implicit bool
}

// Letter returns the textual letter for the command, honouring Abs.
func (c Command) Letter() byte {
	pair := letters[c.Kind]
	if c.Abs {
		return pair[0]
	}
	return pair[1]
}

// MoveTo / LineTo / SmoothQuadTo args: [x, y]
// HLineTo / VLineTo args: [d]
// CubicTo args: [x1,y1,x2,y2,x,y]
// SmoothTo args: [x2,y2,x,y] (second control point; the first is implied)
// QuadTo args: [x1,y1,x,y]
// ArcTo args: [rx,ry,xrot,largeArc(0/1),sweep(0/1),x,y]

// EndPoint returns the command's own (dx,dy) or (x,y) endpoint delta as
// literally encoded in Args (relative semantics resolved by a Positioned
// walk, not here).
func (c Command) EndPoint() (x, y float64) {
	switch c.Kind {
	case KindHLineTo:
		return c.Args[0], 0
	case KindVLineTo:
		return 0, c.Args[0]
	case KindClosePath:
		return 0, 0
	default:
		n := len(c.Args)
		return c.Args[n-2], c.Args[n-1]
	}
}

// WriteAtom appends the command's canonical text form (letter + minimal
// argument separators) to sb. The Implicit flag suppresses the letter.
func (c Command) WriteAtom(sb *strings.Builder, round func(float64) string) {
	if !c.Implicit {
		sb.WriteByte(c.Letter())
	}
	for i, a := range c.Args {
		s := round(a)
		if (i > 0 || c.Implicit) && needsSeparator(sb, s) {
			sb.WriteByte(' ')
		}
		sb.WriteString(s)
	}
}

// needsSeparator reports whether a space must precede s to avoid the
// previous character and s fusing into one token (e.g. two digits, or a
// digit followed by another digit without a sign/dot boundary, or "10"
// followed by ".5").
func needsSeparator(sb *strings.Builder, s string) bool {
	if sb.Len() == 0 || s == "" {
		return false
	}
	prev := sb.String()[sb.Len()-1]
	next := s[0]
	if next == '-' {
		return false // '-' itself acts as a separator
	}
	if prev == '.' && next >= '0' && next <= '9' {
		return true
	}
	if (prev >= '0' && prev <= '9') && (next >= '0' && next <= '9') {
		return true
	}
	if prev == '.' && next == '.' {
		return true
	}
	if prev >= '0' && prev <= '9' && next == '.' {
		str := sb.String()
		i := len(str) - 1
		for i >= 0 && str[i] >= '0' && str[i] <= '9' {
			i--
		}
		return i < 0 || str[i] != '.'
	}
	return false
}

package pathdata

// Point is a plain 2D coordinate.
type Point struct{ X, Y float64 }

// Positioned is a Command paired with its resolved absolute start and end
// points and, for curve commands, its absolute control points. Computing
// this view is the prerequisite for every optimiser stage in §4.5: relative
// forms can't be compared or folded without knowing where they actually
// land on the canvas.
type Positioned struct {
	Command
	Start, End Point
	// Ctrl holds absolute control points: one for Quad/SmoothQuad, two for
	// Cubic/Smooth, unused otherwise.
	Ctrl [2]Point
}

// Walk resolves every command in cmds against a running cursor and the
// current subpath's start point (needed for ClosePath's implicit line back
// and for unresolved relative Z-then-m sequences), returning one Positioned
// per input command.
func Walk(cmds []Command) []Positioned {
	out := make([]Positioned, 0, len(cmds))
	var cursor, subpathStart Point
	var prevCtrl Point
	var prevKind Kind
	havePrevCtrl := false

	for _, c := range cmds {
		p := Positioned{Command: c, Start: cursor}

		switch c.Kind {
		case KindClosePath:
			p.End = subpathStart
			cursor = subpathStart
			havePrevCtrl = false

		case KindMoveTo:
			end := resolvePoint(c, cursor)
			p.End = end
			cursor, subpathStart = end, end
			havePrevCtrl = false

		case KindLineTo:
			end := resolvePoint(c, cursor)
			p.End = end
			cursor = end
			havePrevCtrl = false

		case KindHLineTo:
			dx := c.Args[0]
			x := dx
			if !c.Abs {
				x = cursor.X + dx
			}
			p.End = Point{x, cursor.Y}
			cursor = p.End
			havePrevCtrl = false

		case KindVLineTo:
			dy := c.Args[0]
			y := dy
			if !c.Abs {
				y = cursor.Y + dy
			}
			p.End = Point{cursor.X, y}
			cursor = p.End
			havePrevCtrl = false

		case KindCubicTo:
			c1, c2, end := resolveCubic(c, cursor)
			p.Ctrl[0], p.Ctrl[1], p.End = c1, c2, end
			cursor = end
			prevCtrl, havePrevCtrl, prevKind = c2, true, KindCubicTo

		case KindSmoothTo:
			c1 := cursor
			if havePrevCtrl && (prevKind == KindCubicTo || prevKind == KindSmoothTo) {
				c1 = reflect(prevCtrl, cursor)
			}
			c2, end := resolveSmoothTail(c, cursor)
			p.Ctrl[0], p.Ctrl[1], p.End = c1, c2, end
			cursor = end
			prevCtrl, havePrevCtrl, prevKind = c2, true, KindSmoothTo

		case KindQuadTo:
			ctrl, end := resolveQuad(c, cursor)
			p.Ctrl[0], p.End = ctrl, end
			cursor = end
			prevCtrl, havePrevCtrl, prevKind = ctrl, true, KindQuadTo

		case KindSmoothQuadTo:
			ctrl := cursor
			if havePrevCtrl && (prevKind == KindQuadTo || prevKind == KindSmoothQuadTo) {
				ctrl = reflect(prevCtrl, cursor)
			}
			end := resolvePoint(c, cursor)
			p.Ctrl[0], p.End = ctrl, end
			cursor = end
			prevCtrl, havePrevCtrl, prevKind = ctrl, true, KindSmoothQuadTo

		case KindArcTo:
			end := resolveArcEnd(c, cursor)
			p.End = end
			cursor = end
			havePrevCtrl = false
		}

		out = append(out, p)
	}
	return out
}

func resolvePoint(c Command, cursor Point) Point {
	x, y := c.Args[0], c.Args[1]
	if c.Abs {
		return Point{x, y}
	}
	return Point{cursor.X + x, cursor.Y + y}
}

func resolveCubic(c Command, cursor Point) (c1, c2, end Point) {
	a := c.Args
	if c.Abs {
		return Point{a[0], a[1]}, Point{a[2], a[3]}, Point{a[4], a[5]}
	}
	return Point{cursor.X + a[0], cursor.Y + a[1]},
		Point{cursor.X + a[2], cursor.Y + a[3]},
		Point{cursor.X + a[4], cursor.Y + a[5]}
}

func resolveSmoothTail(c Command, cursor Point) (c2, end Point) {
	a := c.Args
	if c.Abs {
		return Point{a[0], a[1]}, Point{a[2], a[3]}
	}
	return Point{cursor.X + a[0], cursor.Y + a[1]}, Point{cursor.X + a[2], cursor.Y + a[3]}
}

func resolveQuad(c Command, cursor Point) (ctrl, end Point) {
	a := c.Args
	if c.Abs {
		return Point{a[0], a[1]}, Point{a[2], a[3]}
	}
	return Point{cursor.X + a[0], cursor.Y + a[1]}, Point{cursor.X + a[2], cursor.Y + a[3]}
}

func resolveArcEnd(c Command, cursor Point) Point {
	a := c.Args
	if c.Abs {
		return Point{a[5], a[6]}
	}
	return Point{cursor.X + a[5], cursor.Y + a[6]}
}

func reflect(ctrl, about Point) Point {
	return Point{2*about.X - ctrl.X, 2*about.Y - ctrl.Y}
}

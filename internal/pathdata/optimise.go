package pathdata

import "math"

// Options configures the optimiser's tolerance and which stages run,
// mirroring the convert_path_data job's config surface (§4.5, §6).
type Options struct {
	Precision       int
	ArcThreshold    float64 // degrees; not read by any optimiser stage (arc folding uses ArcTolerance)
	ArcTolerance    float64 // max positional error tolerated when folding a curve into an arc
	ForceAbsolute   bool
	StraightCurves  bool
	CurveSmooth     bool
	LineShorthands  bool
	CollapseRepeats bool
	CurveToArc      bool
}

// DefaultOptions mirrors the job's documented defaults.
func DefaultOptions() Options {
	return Options{
		Precision:       3,
		ArcThreshold:    2.5,
		ArcTolerance:    0.5,
		StraightCurves:  true,
		CurveSmooth:     true,
		LineShorthands:  true,
		CollapseRepeats: true,
		CurveToArc:      true,
	}
}

// Optimise runs the four-stage minifier described in §4.5 over cmds and
// returns the shortest equivalent command sequence.
//
// Stage 1 picks, per command, whichever of the absolute/relative encoding
// is shorter once rounded (unless ForceAbsolute pins absolute).
// Stage 2 folds/removes redundant segments: zero-length segments, straight
// curves collapsed to lines, lines expressible as H/V shorthands, curve
// chains collapsed into Smooth continuations, runs of cubic curves that
// trace a circular arc replaced by ArcTo, and repeated identical commands
// merged under one Implicit run.
// Stage 3 re-walks the folded sequence to keep Positioned data consistent
// after stage 2's rewrites.
// Stage 4 strips any command that becomes a no-op once rounded to
// Precision (e.g. a LineTo to the same rounded point as its start).
func Optimise(cmds []Command, opts Options) []Command {
	if len(cmds) == 0 {
		return cmds
	}

	pos := Walk(cmds)
	pos = stageRelativeForm(pos, opts)
	pos = stageFold(pos, opts)
	pos = Walk(extractCommands(pos)) // stage 3: re-derive positions after folds
	out := stageCleanup(pos, opts)
	return out
}

func extractCommands(pos []Positioned) []Command {
	cmds := make([]Command, len(pos))
	for i, p := range pos {
		cmds[i] = p.Command
	}
	return cmds
}

// stageRelativeForm picks whichever of the absolute/relative encodings of
// each command rounds to fewer characters, per §4.5 stage 1.
func stageRelativeForm(pos []Positioned, opts Options) []Positioned {
	r := Rounder{Precision: opts.Precision}
	out := make([]Positioned, len(pos))
	for i, p := range pos {
		if opts.ForceAbsolute || p.Kind == KindClosePath {
			out[i] = p
			continue
		}
		absCmd := toAbsolute(p)
		relCmd := toRelative(p)
		if textLen(absCmd, r) <= textLen(relCmd, r) {
			p.Command = absCmd
		} else {
			p.Command = relCmd
		}
		out[i] = p
	}
	return out
}

func textLen(c Command, r Rounder) int {
	n := 1
	for _, a := range c.Args {
		n += len(r.Round(a)) + 1
	}
	return n
}

func toAbsolute(p Positioned) Command {
	c := p.Command
	if c.Abs {
		return c
	}
	c.Abs = true
	c.Args = absoluteArgs(p)
	return c
}

func toRelative(p Positioned) Command {
	c := p.Command
	if !c.Abs {
		return c
	}
	c.Abs = false
	c.Args = relativeArgs(p)
	return c
}

func absoluteArgs(p Positioned) []float64 {
	switch p.Kind {
	case KindHLineTo:
		return []float64{p.End.X}
	case KindVLineTo:
		return []float64{p.End.Y}
	case KindMoveTo, KindLineTo, KindSmoothQuadTo:
		return []float64{p.End.X, p.End.Y}
	case KindQuadTo:
		return []float64{p.Ctrl[0].X, p.Ctrl[0].Y, p.End.X, p.End.Y}
	case KindSmoothTo:
		return []float64{p.Ctrl[1].X, p.Ctrl[1].Y, p.End.X, p.End.Y}
	case KindCubicTo:
		return []float64{p.Ctrl[0].X, p.Ctrl[0].Y, p.Ctrl[1].X, p.Ctrl[1].Y, p.End.X, p.End.Y}
	case KindArcTo:
		a := append([]float64{}, p.Command.Args...)
		a[5], a[6] = p.End.X, p.End.Y
		return a
	}
	return p.Command.Args
}

func relativeArgs(p Positioned) []float64 {
	dx, dy := p.End.X-p.Start.X, p.End.Y-p.Start.Y
	switch p.Kind {
	case KindHLineTo:
		return []float64{dx}
	case KindVLineTo:
		return []float64{dy}
	case KindMoveTo, KindLineTo, KindSmoothQuadTo:
		return []float64{dx, dy}
	case KindQuadTo:
		return []float64{p.Ctrl[0].X - p.Start.X, p.Ctrl[0].Y - p.Start.Y, dx, dy}
	case KindSmoothTo:
		return []float64{p.Ctrl[1].X - p.Start.X, p.Ctrl[1].Y - p.Start.Y, dx, dy}
	case KindCubicTo:
		return []float64{
			p.Ctrl[0].X - p.Start.X, p.Ctrl[0].Y - p.Start.Y,
			p.Ctrl[1].X - p.Start.X, p.Ctrl[1].Y - p.Start.Y,
			dx, dy,
		}
	case KindArcTo:
		a := append([]float64{}, p.Command.Args...)
		a[5], a[6] = dx, dy
		return a
	}
	return p.Command.Args
}

// stageFold applies the redundant-segment removals and rewrites of §4.5
// stage 2, in this order: zero-length removal, straight-curve flattening,
// line-to-H/V, curve-chain-to-smooth, curve-to-arc, merge-repeated.
func stageFold(pos []Positioned, opts Options) []Positioned {
	pos = foldZeroLength(pos)
	if opts.StraightCurves {
		pos = foldStraightCurves(pos, opts)
	}
	if opts.LineShorthands {
		pos = foldLineShorthands(pos)
	}
	if opts.CurveSmooth {
		pos = foldSmoothChains(pos)
	}
	if opts.CurveToArc {
		pos = foldCurvesToArcs(pos, opts)
	}
	if opts.CollapseRepeats {
		pos = mergeRepeated(pos)
	}
	return pos
}

// foldZeroLength drops LineTo/CubicTo/QuadTo/Smooth* commands whose start
// and end coincide, except when doing so would remove the only command in
// a subpath (a lone "M10 10L10 10" still needs to paint a dot marker).
func foldZeroLength(pos []Positioned) []Positioned {
	out := make([]Positioned, 0, len(pos))
	for i, p := range pos {
		switch p.Kind {
		case KindLineTo, KindHLineTo, KindVLineTo, KindCubicTo, KindQuadTo, KindSmoothTo, KindSmoothQuadTo:
			if p.Start == p.End {
				if i+1 < len(pos) && pos[i+1].Kind == KindMoveTo {
					continue
				}
				if i == len(pos)-1 && len(out) > 0 {
					continue
				}
			}
		}
		out = append(out, p)
	}
	return out
}

// foldStraightCurves replaces a cubic/quadratic Bezier whose control
// points lie on the line from Start to End (within ArcTolerance) with a
// plain LineTo, since a straight curve draws identically to a line.
func foldStraightCurves(pos []Positioned, opts Options) []Positioned {
	out := make([]Positioned, len(pos))
	copy(out, pos)
	for i, p := range out {
		var ctrls []Point
		switch p.Kind {
		case KindCubicTo, KindSmoothTo:
			ctrls = []Point{p.Ctrl[0], p.Ctrl[1]}
		case KindQuadTo, KindSmoothQuadTo:
			ctrls = []Point{p.Ctrl[0]}
		default:
			continue
		}
		if allCollinear(p.Start, p.End, ctrls, opts.ArcTolerance) {
			out[i] = Positioned{
				Command: Command{Kind: KindLineTo, Abs: true, Args: []float64{p.End.X, p.End.Y}},
				Start:   p.Start, End: p.End,
			}
		}
	}
	return out
}

func allCollinear(a, b Point, pts []Point, tol float64) bool {
	for _, p := range pts {
		if distToSegment(p, a, b) > tol {
			return false
		}
	}
	return true
}

func distToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	projX, projY := a.X+t*dx, a.Y+t*dy
	return math.Hypot(p.X-projX, p.Y-projY)
}

// foldLineShorthands rewrites a LineTo that is purely horizontal or
// vertical into HLineTo/VLineTo.
func foldLineShorthands(pos []Positioned) []Positioned {
	out := make([]Positioned, len(pos))
	copy(out, pos)
	for i, p := range out {
		if p.Kind != KindLineTo {
			continue
		}
		switch {
		case p.Start.Y == p.End.Y && p.Start.X != p.End.X:
			out[i].Command = Command{Kind: KindHLineTo, Abs: true, Args: []float64{p.End.X}}
		case p.Start.X == p.End.X && p.Start.Y != p.End.Y:
			out[i].Command = Command{Kind: KindVLineTo, Abs: true, Args: []float64{p.End.Y}}
		}
	}
	return out
}

// foldSmoothChains rewrites a CubicTo/QuadTo whose first control point is
// the reflection of the previous curve's last control point into
// SmoothTo/SmoothQuadTo, which omits that now-redundant control point.
func foldSmoothChains(pos []Positioned) []Positioned {
	out := make([]Positioned, len(pos))
	copy(out, pos)
	const eps = 1e-6
	for i := 1; i < len(out); i++ {
		prev, cur := out[i-1], out[i]
		switch cur.Kind {
		case KindCubicTo:
			if prev.Kind == KindCubicTo || prev.Kind == KindSmoothTo {
				want := reflect(prev.Ctrl[1], prev.End)
				if closeEnough(cur.Ctrl[0], want, eps) {
					out[i].Kind = KindSmoothTo
					out[i].Command = Command{Kind: KindSmoothTo, Abs: true, Args: []float64{cur.Ctrl[1].X, cur.Ctrl[1].Y, cur.End.X, cur.End.Y}}
				}
			}
		case KindQuadTo:
			if prev.Kind == KindQuadTo || prev.Kind == KindSmoothQuadTo {
				want := reflect(prev.Ctrl[0], prev.End)
				if closeEnough(cur.Ctrl[0], want, eps) {
					out[i].Kind = KindSmoothQuadTo
					out[i].Command = Command{Kind: KindSmoothQuadTo, Abs: true, Args: []float64{cur.End.X, cur.End.Y}}
				}
			}
		}
	}
	return out
}

func closeEnough(a, b Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// mergeRepeated marks a run of identical-kind, identical-Abs commands as
// Implicit after the first, so the writer omits their letters.
func mergeRepeated(pos []Positioned) []Positioned {
	out := make([]Positioned, len(pos))
	copy(out, pos)
	for i := 1; i < len(out); i++ {
		if out[i].Kind == out[i-1].Kind && out[i].Abs == out[i-1].Abs && out[i].Kind != KindMoveTo && out[i].Kind != KindClosePath {
			out[i].Implicit = true
		} else {
			out[i].Implicit = false
		}
	}
	return out
}

// stageCleanup removes commands that become a true no-op once rounded:
// a LineTo/HLineTo/VLineTo whose rounded end equals its rounded start.
func stageCleanup(pos []Positioned, opts Options) []Command {
	r := Rounder{Precision: opts.Precision}
	out := make([]Command, 0, len(pos))
	for i, p := range pos {
		if p.Kind == KindLineTo || p.Kind == KindHLineTo || p.Kind == KindVLineTo {
			if r.Round(p.Start.X) == r.Round(p.End.X) && r.Round(p.Start.Y) == r.Round(p.End.Y) {
				if !(i+1 < len(pos) && pos[i+1].Kind == KindMoveTo) && len(out) > 0 {
					continue
				}
			}
		}
		out = append(out, p.Command)
	}
	return out
}

package pathdata

import "math"

// foldCurvesToArcs replaces a run of cubic Bezier curves that trace a
// circular arc within ArcTolerance with a single ArcTo, per
// §4.5's "curves→arc detection" stage. Soundness requires the fitted
// circle to actually pass near every sampled point on the curve, not just
// its endpoints — fitting a circle through three points and trusting it
// produces false positives on curves that only coincidentally share
// endpoints with a circle.
func foldCurvesToArcs(pos []Positioned, opts Options) []Positioned {
	out := make([]Positioned, 0, len(pos))
	i := 0
	for i < len(pos) {
		if pos[i].Kind != KindCubicTo {
			out = append(out, pos[i])
			i++
			continue
		}
		arc, consumed, ok := fitArcRun(pos[i:], opts)
		if !ok {
			out = append(out, pos[i])
			i++
			continue
		}
		out = append(out, arc)
		i += consumed
	}
	return out
}

// fitArcRun attempts to fit a single circular arc to one or more leading
// cubic curves in run, returning the replacement ArcTo command and how
// many source commands it consumes.
func fitArcRun(run []Positioned, opts Options) (Positioned, int, bool) {
	first := run[0]
	center, radius, ok := fitCircle(first)
	if !ok {
		return Positioned{}, 0, false
	}

	n := 0
	for n < len(run) && run[n].Kind == KindCubicTo {
		if !curveOnCircle(run[n], center, radius, opts.ArcTolerance) {
			break
		}
		n++
	}
	if n == 0 {
		return Positioned{}, 0, false
	}

	start := run[0].Start
	end := run[n-1].End
	large, sweep := arcFlags(run[:n], center)

	cmd := Command{
		Kind: KindArcTo,
		Abs:  true,
		Args: []float64{radius, radius, 0, boolToFlag(large), boolToFlag(sweep), end.X, end.Y},
	}
	return Positioned{Command: cmd, Start: start, End: end}, n, true
}

func boolToFlag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// fitCircle estimates a circle through a cubic's start point, end point,
// and midpoint (De Casteljau evaluation at t=0.5), which is exact for a
// curve that truly traces an arc and only approximate otherwise — callers
// must still verify with curveOnCircle before trusting the fit.
func fitCircle(p Positioned) (center Point, radius float64, ok bool) {
	mid := bezierPoint(p.Start, p.Ctrl[0], p.Ctrl[1], p.End, 0.5)
	return circumcircle(p.Start, mid, p.End)
}

func circumcircle(a, b, c Point) (Point, float64, bool) {
	ax, ay := a.X, a.Y
	bx, by := b.X, b.Y
	cx, cy := c.X, c.Y

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if math.Abs(d) < 1e-9 {
		return Point{}, 0, false
	}
	ux := ((ax*ax+ay*ay)*(by-cy) + (bx*bx+by*by)*(cy-ay) + (cx*cx+cy*cy)*(ay-by)) / d
	uy := ((ax*ax+ay*ay)*(cx-bx) + (bx*bx+by*by)*(ax-cx) + (cx*cx+cy*cy)*(bx-ax)) / d
	center := Point{ux, uy}
	r := math.Hypot(ax-ux, ay-uy)
	return center, r, true
}

func bezierPoint(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	x := mt*mt*mt*p0.X + 3*mt*mt*t*p1.X + 3*mt*t*t*p2.X + t*t*t*p3.X
	y := mt*mt*mt*p0.Y + 3*mt*mt*t*p1.Y + 3*mt*t*t*p2.Y + t*t*t*p3.Y
	return Point{x, y}
}

// curveOnCircle samples a cubic at several t values and checks that each
// sample lies within tol of the candidate circle, which is what makes the
// detection sound against curves that merely share three points with a
// circle by coincidence.
func curveOnCircle(p Positioned, center Point, radius, tol float64) bool {
	for _, t := range []float64{0.1, 0.25, 0.4, 0.6, 0.75, 0.9} {
		pt := bezierPoint(p.Start, p.Ctrl[0], p.Ctrl[1], p.End, t)
		d := math.Hypot(pt.X-center.X, pt.Y-center.Y)
		if math.Abs(d-radius) > tol {
			return false
		}
	}
	return true
}

// arcFlags derives the large-arc and sweep flags for the run of curves
// from the signed turning direction and total swept angle around center.
func arcFlags(run []Positioned, center Point) (large, sweep bool) {
	start := run[0].Start
	end := run[len(run)-1].End
	a0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	a1 := math.Atan2(end.Y-center.Y, end.X-center.X)

	mid := bezierPoint(run[0].Start, run[0].Ctrl[0], run[0].Ctrl[1], run[0].End, 0.5)
	amid := math.Atan2(mid.Y-center.Y, mid.X-center.X)

	sweep = angleBetween(a0, amid, a1)
	delta := normalizeAngle(a1 - a0)
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}
	large = math.Abs(delta) > math.Pi
	return large, sweep
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// angleBetween reports whether mid lies on the arc from a0 to a1 that
// sweeps through increasing angle (CCW).
func angleBetween(a0, mid, a1 float64) bool {
	norm := func(a float64) float64 {
		for a < 0 {
			a += 2 * math.Pi
		}
		for a >= 2*math.Pi {
			a -= 2 * math.Pi
		}
		return a
	}
	a0, mid, a1 = norm(a0), norm(mid), norm(a1)
	if a0 <= a1 {
		return mid >= a0 && mid <= a1
	}
	return mid >= a0 || mid <= a1
}

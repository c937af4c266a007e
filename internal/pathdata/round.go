package pathdata

import (
	"math"
	"strconv"
	"strings"
)

// Rounder formats a coordinate to at most Precision fractional digits,
// trimming trailing zeros and a redundant leading "0" (§4.5 "error =
// 10^-p backoff").
type Rounder struct {
	Precision int
}

func (r Rounder) Round(v float64) string {
	p := r.Precision
	if p < 0 {
		p = 0
	}
	scale := math.Pow(10, float64(p))
	v = math.Round(v*scale) / scale
	if v == 0 {
		v = 0 // normalize -0
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return trimLeadingZero(s)
}

// trimLeadingZero strips a redundant leading "0" before a decimal point
// (".5" instead of "0.5", "-.5" instead of "-0.5") — the same minimal-text
// convention the attribute grammars use for lengths and numbers.
func trimLeadingZero(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if strings.HasPrefix(s, "0.") {
		s = s[1:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// RoundArcRadius applies "smart" radius rounding for arc rx/ry (§4.5):
// radii are rounded to the same precision as other coordinates, but a
// radius that rounds to zero is bumped to the smallest representable
// nonzero value to avoid collapsing the arc into a line unexpectedly.
func (r Rounder) RoundArcRadius(v float64) string {
	s := r.Round(v)
	if s == "0" && v != 0 {
		return strconv.FormatFloat(1/math.Pow(10, float64(r.Precision)), 'f', r.Precision, 64)
	}
	return s
}

// fitsPrecision reports whether rounded lies within 10^-p of orig (§4.5
// "error = 10^-p"). No optimiser stage calls it.
func fitsPrecision(orig, rounded float64, p int) bool {
	tol := math.Pow(10, -float64(p))
	return math.Abs(orig-rounded) <= tol
}

package pathdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimiseDropsZeroLengthLine(t *testing.T) {
	cmds, err := Parse("M10 10L10 10L20 20")
	require.NoError(t, err)
	out := Optimise(cmds, DefaultOptions())
	require.Len(t, out, 2)
	require.Equal(t, KindMoveTo, out[0].Kind)
	require.Equal(t, KindLineTo, out[1].Kind)
}

func TestOptimiseLineToHVShorthand(t *testing.T) {
	cmds, err := Parse("M0 0L10 0L10 10")
	require.NoError(t, err)
	out := Optimise(cmds, DefaultOptions())
	require.Len(t, out, 3)
	require.Equal(t, KindHLineTo, out[1].Kind)
	require.Equal(t, KindVLineTo, out[2].Kind)
}

func TestOptimiseStraightCubicBecomesLine(t *testing.T) {
	// A cubic whose control points lie exactly on the line from (0,0) to (30,0).
	cmds, err := Parse("M0 0C10 0 20 0 30 0")
	require.NoError(t, err)
	out := Optimise(cmds, DefaultOptions())
	require.Len(t, out, 2)
	require.Equal(t, KindHLineTo, out[1].Kind)
}

func TestOptimiseIdempotent(t *testing.T) {
	cmds, err := Parse("M0 0L10 0L10 10L0 10Z")
	require.NoError(t, err)
	once := Optimise(cmds, DefaultOptions())
	twice := Optimise(once, DefaultOptions())
	require.Equal(t, once, twice)
}

func TestOptimisePreservesEndpoint(t *testing.T) {
	cmds, err := Parse("M5 5L15 5L15 15L5 15Z")
	require.NoError(t, err)
	out := Optimise(cmds, DefaultOptions())
	posBefore := Walk(cmds)
	posAfter := Walk(out)
	require.Equal(t, posBefore[len(posBefore)-1].End, posAfter[len(posAfter)-1].End)
}

func TestRounderTrimsLeadingZero(t *testing.T) {
	r := Rounder{Precision: 3}
	require.Equal(t, ".5", r.Round(0.5))
	require.Equal(t, "-.5", r.Round(-0.5))
	require.Equal(t, "1", r.Round(1.0))
}

func TestArcDetectionRejectsNonCircularCurve(t *testing.T) {
	// A cubic approximating a generic S-curve, not a circular arc: no fold expected.
	cmds, err := Parse("M0 0C0 10 10 0 10 10")
	require.NoError(t, err)
	out := Optimise(cmds, DefaultOptions())
	foundArc := false
	for _, c := range out {
		if c.Kind == KindArcTo {
			foundArc = true
		}
	}
	require.False(t, foundArc, "non-circular curve should not be folded into an arc")
}

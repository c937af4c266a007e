package pathdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBasicMoveLine(t *testing.T) {
	cmds, err := Parse("M10 10L20 20")
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	require.Equal(t, KindMoveTo, cmds[0].Kind)
	require.True(t, cmds[0].Abs)
	require.Equal(t, []float64{10, 10}, cmds[0].Args)
	require.Equal(t, KindLineTo, cmds[1].Kind)
	require.Equal(t, []float64{20, 20}, cmds[1].Args)
}

func TestParseImplicitLineToAfterMove(t *testing.T) {
	cmds, err := Parse("M0 0 10 10 20 20")
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	require.Equal(t, KindMoveTo, cmds[0].Kind)
	require.False(t, cmds[0].Implicit)
	require.Equal(t, KindLineTo, cmds[1].Kind)
	require.True(t, cmds[1].Implicit)
	require.Equal(t, KindLineTo, cmds[2].Kind)
	require.True(t, cmds[2].Implicit)
}

func TestParseImplicitRepeatSameCommand(t *testing.T) {
	cmds, err := Parse("M0 0L10 0 20 0 30 0")
	require.NoError(t, err)
	require.Len(t, cmds, 4)
	for i := 1; i < 4; i++ {
		require.Equal(t, KindLineTo, cmds[i].Kind)
	}
	require.False(t, cmds[1].Implicit)
	require.True(t, cmds[2].Implicit)
	require.True(t, cmds[3].Implicit)
}

func TestParseNoCommasRequired(t *testing.T) {
	cmds, err := Parse("M0 0 L10-10")
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	require.Equal(t, []float64{10, -10}, cmds[1].Args)
}

func TestParseArcFlags(t *testing.T) {
	cmds, err := Parse("M0 0A5 5 0 1 0 10 10")
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	require.Equal(t, KindArcTo, cmds[1].Kind)
	require.Equal(t, []float64{5, 5, 0, 1, 0, 10, 10}, cmds[1].Args)
}

func TestParseArcFlagsFused(t *testing.T) {
	// Flags may appear fused with no separator, both with each other and with
	// the following x: "1110 10" reads as large=1, sweep=1, x=10, y=10.
	cmds, err := Parse("M0 0A5 5 0 1110 10")
	require.NoError(t, err)
	require.Equal(t, KindArcTo, cmds[1].Kind)
	require.Equal(t, float64(1), cmds[1].Args[3])
	require.Equal(t, float64(1), cmds[1].Args[4])
}

func TestParseClosePath(t *testing.T) {
	cmds, err := Parse("M0 0L10 0L10 10Z")
	require.NoError(t, err)
	require.Len(t, cmds, 4)
	require.Equal(t, KindClosePath, cmds[3].Kind)
}

func TestParseHVShorthands(t *testing.T) {
	cmds, err := Parse("M0 0H10V10")
	require.NoError(t, err)
	require.Equal(t, KindHLineTo, cmds[1].Kind)
	require.Equal(t, KindVLineTo, cmds[2].Kind)
}

func TestParseInvalidNumber(t *testing.T) {
	_, err := Parse("M0 0L-")
	require.Error(t, err)
}

func TestWriteAtomRoundTrip(t *testing.T) {
	cmds, err := Parse("M10 10L20 20L30 10")
	require.NoError(t, err)
	r := Rounder{Precision: 2}
	var sb []byte
	_ = sb
	path := Path{Commands: cmds}
	out := path.String(2)
	require.Equal(t, "M10 10L20 20L30 10", out)
	_ = r
}

package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func gridOf(w, h int, values ...float64) *Grid {
	g := NewGrid(w, h)
	copy(g.Pix, values)
	return g
}

func TestDarkPct(t *testing.T) {
	g := gridOf(4, 1, 0.1, 0.39, 0.4, 0.9)
	require.InDelta(t, 0.5, DarkPct(g, 0.4), 1e-9)
	require.InDelta(t, 0.0, DarkPct(g, 0.1), 1e-9)
}

func TestBrightPct(t *testing.T) {
	g := gridOf(4, 1, 0.85, 0.86, 1.0, 0.2)
	require.InDelta(t, 0.5, BrightPct(g, 0.85), 1e-9)
}

func TestMeanBrightness(t *testing.T) {
	g := gridOf(2, 2, 0, 0.5, 0.5, 1)
	require.InDelta(t, 0.5, MeanBrightness(g), 1e-9)
}

func TestStats_EmptyGrid(t *testing.T) {
	g := NewGrid(0, 0)
	require.Equal(t, 0.0, DarkPct(g, 0.4))
	require.Equal(t, 0.0, BrightPct(g, 0.85))
	require.Equal(t, 0.0, MeanBrightness(g))

	var nilGrid *Grid
	require.Equal(t, 0.0, MeanBrightness(nilGrid))
}

func TestStats_RatiosInUnitRange(t *testing.T) {
	g := NewGrid(16, 16)
	for i := range g.Pix {
		g.Pix[i] = float64(i%17) / 16.0
	}
	for _, th := range []float64{0, 0.05, 0.4, 0.85, 1} {
		d := DarkPct(g, th)
		b := BrightPct(g, th)
		require.GreaterOrEqual(t, d, 0.0)
		require.LessOrEqual(t, d, 1.0)
		require.GreaterOrEqual(t, b, 0.0)
		require.LessOrEqual(t, b, 1.0)
	}
}

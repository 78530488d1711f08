package fibershade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootsClosedFormR(t *testing.T) {
	var hs [3]Real
	n := azimuthalRoots(&hs, 0, 0, 1.55)
	require.Equal(t, 1, n)
	assert.Equal(t, 0.0, hs[0])

	n = azimuthalRoots(&hs, 0, math.Pi, 1.55)
	require.Equal(t, 1, n)
	assert.Equal(t, -1.0, hs[0])
}

func TestRootsBisectionTT(t *testing.T) {
	var hs [3]Real
	n := azimuthalRoots(&hs, 1, 0, 1.55)
	require.Equal(t, 1, n)
	h := hs[0]
	residual := 2*math.Asin(clampUnit(h/1.55)) - 2*math.Asin(clampUnit(h))
	assert.Less(t, math.Abs(residual), 1e-6)
}

func TestRootsConvergeOverPhi(t *testing.T) {
	var hs [3]Real
	for _, etaD := range []Real{1.2, 1.55, 1.9} {
		for phi := -math.Pi; phi <= math.Pi; phi += 0.05 {
			for p := 1; p <= 2; p++ {
				n := azimuthalRoots(&hs, p, phi, etaD)
				for i := 0; i < n; i++ {
					assert.GreaterOrEqual(t, hs[i], -1.0)
					assert.LessOrEqual(t, hs[i], 1.0)
					// The residual steepens near |h| = 1, so check the root is bracketed instead.
					lo := math.Max(hs[i]-BisectTol, -1)
					hi := math.Min(hs[i]+BisectTol, 1)
					assert.LessOrEqual(t, sign(azimuth(p, lo, phi, etaD))*sign(azimuth(p, hi, phi, etaD)), 0,
						"p=%d phi=%g etaD=%g h=%g", p, phi, etaD, hs[i])
				}
			}
		}
	}
}

func TestRootsNoSignChange(t *testing.T) {
	var hs [3]Real
	// g(±1) are both negative: the TT path cannot exit at phi = 3.
	assert.Equal(t, 0, azimuthalRoots(&hs, 1, 3, 1.55))
	// Unknown paths have no roots.
	assert.Equal(t, 0, azimuthalRoots(&hs, 3, 0, 1.55))
}

func TestRootsTRTThreeBranches(t *testing.T) {
	var hs [3]Real
	n := azimuthalRoots(&hs, 2, 0, 1.55)
	require.Equal(t, 3, n)
	ext := math.Sqrt(4-1.55*1.55) / math.Sqrt(3)
	assert.Less(t, hs[0], -ext)
	assert.InDelta(t, 0, hs[1], 1e-6)
	assert.Greater(t, hs[2], ext)
}

func TestRootsTRTMonotonePastEtaTwo(t *testing.T) {
	var hs [3]Real
	n := azimuthalRoots(&hs, 2, 0, 2.5)
	require.Equal(t, 1, n)
	assert.InDelta(t, 0, hs[0], 1e-6)
}

func TestBisectStopsWithinTolerance(t *testing.T) {
	h, ok := bisect(true, 1, 0.5, 1.55, -1, 1)
	require.True(t, ok)
	assert.Less(t, math.Abs(azimuth(1, h, 0.5, 1.55)), 1e-6)

	_, ok = bisect(true, 1, 0.5, 1.55, 0.9, 1)
	assert.False(t, ok)
}

package fibershade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func newMarschner(t *testing.T, p FiberParams, opts ...ShaderOption) *MarschnerShader {
	t.Helper()
	m, err := NewMarschnerShader(Vec{Z: 1}, p, opts...)
	require.NoError(t, err)
	return m
}

func TestMarschnerRejectsZeroTangent(t *testing.T) {
	_, err := NewMarschnerShader(Vec{}, DefaultFiberParams())
	assert.Error(t, err)
}

func TestMarschnerFiniteOverSphere(t *testing.T) {
	for _, physical := range []bool{false, true} {
		p := DefaultFiberParams()
		p.PhysicalTRT = physical
		m := newMarschner(t, p)
		n := Vec{Y: 1}
		for a := 0.0; a < 2*math.Pi; a += math.Pi / 7 {
			for b := -math.Pi / 2; b <= math.Pi/2; b += math.Pi / 9 {
				l := Vec{X: math.Cos(b) * math.Cos(a), Y: math.Cos(b) * math.Sin(a), Z: math.Sin(b)}
				for c := 0.0; c < 2*math.Pi; c += math.Pi / 5 {
					v := Vec{X: math.Cos(c), Y: math.Sin(c) * 0.7, Z: math.Sin(c) * 0.7}
					out := m.Sample(l, v, n)
					require.True(t, isFinite(out), "l=%v v=%v", l, v)
					require.GreaterOrEqual(t, out, 0.0)
				}
			}
		}
	}
}

func TestMarschnerIdempotent(t *testing.T) {
	m := newMarschner(t, DefaultFiberParams())
	before := m.Params()
	l := Vec{X: 0.3, Y: 1, Z: 0.2}
	v := Vec{X: -0.4, Y: 0.8, Z: -0.1}
	first := m.Sample(l, v, Vec{Y: 1})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Sample(l, v, Vec{Y: 1}))
	}
	assert.Equal(t, before, m.Params())
}

func TestMarschnerNormalizationBound(t *testing.T) {
	p := DefaultFiberParams()
	for _, thetaD := range []Real{0, 1e-3, 0.05} {
		a := AngleTriple{Phi: 0.3, ThetaD: thetaD, ThetaH: p.LongitudinalShiftR}
		l := marschnerLobes(a, &p, nil)
		sum := l.R + l.TT + l.TRT
		require.Greater(t, sum, 0.0)
		out := marschner(a, &p, nil)
		assert.LessOrEqual(t, out, sum/MinCosThetaD2)
		assert.InDelta(t, sum/(math.Cos(thetaD)*math.Cos(thetaD)), out, 1e-12)
	}
	// Past cos²θd = 0.1 the floor takes over.
	a := AngleTriple{Phi: 0.3, ThetaD: 1.4, ThetaH: 0}
	l := marschnerLobes(a, &p, nil)
	assert.Equal(t, 1/MinCosThetaD2, l.Scale)
}

func TestMarschnerTermsNonNegative(t *testing.T) {
	p := DefaultFiberParams()
	for phi := -math.Pi + 0.01; phi <= math.Pi; phi += 0.1 {
		for thetaD := 0.0; thetaD < math.Pi/2; thetaD += 0.1 {
			for thetaH := -1.5; thetaH <= 1.5; thetaH += 0.3 {
				l := marschnerLobes(AngleTriple{Phi: phi, ThetaD: thetaD, ThetaH: thetaH}, &p, nil)
				for _, x := range []Real{l.R, l.TT, l.TRT, l.Scale} {
					assert.True(t, isFinite(x))
					assert.GreaterOrEqual(t, x, 0.0)
				}
			}
		}
	}
}

func TestMarschnerGrazingTotalInternalReflection(t *testing.T) {
	p := DefaultFiberParams()
	a := AngleTriple{Phi: 2.10297, ThetaD: 1.24742, ThetaH: -0.06174}
	_, etaDD := effectiveEta(p.Eta, a.ThetaD)
	require.Less(t, etaDD, 1.0)

	d := NewDiagLog(nil)
	l := marschnerLobes(a, &p, d)
	assert.Equal(t, 0.0, l.R)
	assert.Equal(t, 0.0, l.TRT)
	assert.GreaterOrEqual(t, d.Count(NonFinite), 2)
	assert.Equal(t, l.TT*l.Scale, marschner(a, &p, nil))
}

func TestMarschnerRLobeMatchesHandEvaluation(t *testing.T) {
	p := DefaultFiberParams()
	a := AngleTriple{Phi: 0, ThetaD: 0, ThetaH: p.LongitudinalShiftR}
	l := marschnerLobes(a, &p, nil)
	// phi = 0: single root h = 0, normal-incidence Fresnel, Jacobian 1/2.
	f := (1 - p.Eta) / (1 + p.Eta)
	nR := f * f * 0.5 * 0.5
	mR := 1 / (p.LongitudinalWidthR * math.Sqrt(2*math.Pi))
	assert.True(t, scalar.EqualWithinAbsOrRel(p.IntensityR*mR*nR, l.R, 1e-12, 1e-12), "R=%g", l.R)
	// TRT reuses the R azimuthal term by default.
	mTRT := gaussian(a.ThetaH, p.LongitudinalShiftTRT, p.LongitudinalWidthTRT)
	assert.InDelta(t, p.IntensityTRT*mTRT*nR, l.TRT, 1e-12)
}

func TestMarschnerPhysicalTRT(t *testing.T) {
	legacy := DefaultFiberParams()
	physical := legacy
	physical.PhysicalTRT = true
	a := AngleTriple{Phi: 0, ThetaD: 0.1, ThetaH: 0.2}
	ll := marschnerLobes(a, &legacy, nil)
	lp := marschnerLobes(a, &physical, nil)
	assert.Equal(t, ll.R, lp.R)
	assert.Equal(t, ll.TT, lp.TT)
	assert.NotEqual(t, ll.TRT, lp.TRT)
	assert.Greater(t, lp.TRT, 0.0)
}

func TestMarschnerApproxAzimuthal(t *testing.T) {
	p := DefaultFiberParams()
	p.Azimuthal = AzimuthalApprox
	a := AngleTriple{Phi: 0.5, ThetaD: 0, ThetaH: 0}
	l := marschnerLobes(a, &p, nil)

	mR := gaussian(0, p.LongitudinalShiftR, p.LongitudinalWidthR)
	assert.InDelta(t, p.IntensityR*mR*math.Cos(0.25), l.R, 1e-12)

	mTT := gaussian(0, p.LongitudinalShiftTT, p.LongitudinalWidthTT)
	nTT := gaussian(math.Pi, 0.5, p.AzimuthalWidthTT)
	assert.InDelta(t, p.IntensityTT*mTT*nTT, l.TT, 1e-12)

	// The glint term raises TRT above the plain cosine lobe.
	noGlint := p
	noGlint.IntensityG = 0
	assert.Greater(t, l.TRT, marschnerLobes(a, &noGlint, nil).TRT)

	m := newMarschner(t, p)
	out := m.Sample(Vec{X: 1, Y: 1}, Vec{X: -1, Y: 0.5, Z: 0.3}, Vec{Y: 1})
	assert.True(t, isFinite(out))
	assert.GreaterOrEqual(t, out, 0.0)
}

func TestMarschnerSetParamsSanitizes(t *testing.T) {
	m := newMarschner(t, DefaultFiberParams())
	p := m.Params()
	p.Eta = -4
	p.IntensityTT = -1
	m.SetParams(p)
	got := m.Params()
	assert.Equal(t, MinEta, got.Eta)
	assert.Equal(t, 0.0, got.IntensityTT)
}

func TestMarschnerDiagnostics(t *testing.T) {
	d := NewDiagLog(nil)
	m := newMarschner(t, DefaultFiberParams(), WithDiagnostics(d))
	// Zero view vector and a normal parallel to the tangent both collapse the frame.
	assert.Equal(t, 0.0, m.Sample(Vec{Y: 1}, Vec{}, Vec{Y: 1}))
	assert.Equal(t, 0.0, m.Sample(Vec{Y: 1}, Vec{X: 1}, Vec{Z: 1}))
	assert.Equal(t, 2, d.Count(Degenerate))

	// A TT miss is reported, not fatal.
	p := DefaultFiberParams()
	before := d.Count(NoRoot)
	l := marschnerLobes(AngleTriple{Phi: 3, ThetaD: 0, ThetaH: 0}, &p, d)
	assert.Equal(t, 0.0, l.TT)
	assert.Greater(t, d.Count(NoRoot), before)
}

package fibershade

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

// MarschnerShader is the Marschner et al. hair model: R, TT and TRT lobes,
// each a longitudinal Gaussian times an azimuthal scattering term.
type MarschnerShader struct {
	shaderBase
	tangent Vec // unit
	params  FiberParams
}

// NewMarschnerShader builds a fiber shader around tangent. params are sanitized.
func NewMarschnerShader(tangent Vec, params FiberParams, opts ...ShaderOption) (*MarschnerShader, error) {
	s := &MarschnerShader{shaderBase: newShaderBase(opts)}
	if err := s.SetTangent(tangent); err != nil {
		return nil, err
	}
	s.SetParams(params)
	return s, nil
}

func (s *MarschnerShader) Kind() Kind { return KindMarschner }
func (s *MarschnerShader) isShader()  {}

func (s *MarschnerShader) Tangent() Vec { return s.tangent }

// Params returns a copy of the current parameters.
func (s *MarschnerShader) Params() FiberParams { return s.params }

// SetParams replaces the parameters with a sanitized copy of p.
func (s *MarschnerShader) SetParams(p FiberParams) { s.params = SanitizeFiberParams(p) }

// SetTangent stores the normalized fiber direction.
func (s *MarschnerShader) SetTangent(t Vec) error {
	u := unit(t)
	if !isFiniteVec(u) {
		return errors.New("tangent must be non-zero and finite")
	}
	s.tangent = u
	return nil
}

// Sample evaluates the fiber lobes for the given light and view directions.
// normal fixes the fiber frame together with the tangent.
func (s *MarschnerShader) Sample(lightDir, viewDir, normal Vec) Real {
	u, v, w := fiberFrame(s.tangent, normal)
	view := unit(r3.Scale(-1, viewDir))
	light := unit(lightDir)
	a := decomposeAngles(view, light, u, v, w)
	if !a.finite() {
		s.diag.record("angles", Degenerate, a.Phi)
		return 0
	}
	return marschner(a, &s.params, s.diag)
}

// lobes are the clamped per-path terms and the 1/cos²θd normalization.
type lobes struct {
	R, TT, TRT Real
	Scale      Real
}

func (l lobes) total() Real { return nonNeg((l.R + l.TT + l.TRT) * l.Scale) }

func marschner(a AngleTriple, p *FiberParams, diag *DiagLog) Real {
	return marschnerLobes(a, p, diag).total()
}

func gaussian(x, mu, sigma Real) Real {
	return distuv.Normal{Mu: mu, Sigma: sigma}.Prob(x)
}

func marschnerLobes(a AngleTriple, p *FiberParams, diag *DiagLog) lobes {
	var nR, nTT, nTRT Real
	switch p.Azimuthal {
	case AzimuthalApprox:
		absPhi := math.Abs(a.Phi)
		nR = math.Cos(a.Phi * 0.5)
		nTT = gaussian(math.Pi, absPhi, p.AzimuthalWidthTT)
		nTRT = math.Cos(a.Phi*0.5) + p.IntensityG*gaussian(p.AzimuthalShiftG, absPhi, p.AzimuthalWidthG)
	default:
		nR = azimuthalScattering(0, a.ThetaD, a.Phi, p.Eta, p.SigmaA, diag)
		nTT = azimuthalScattering(1, a.ThetaD, a.Phi, p.Eta, p.SigmaA, diag)
		trtPath := 0
		if p.PhysicalTRT {
			trtPath = 2
		}
		nTRT = azimuthalScattering(trtPath, a.ThetaD, a.Phi, p.Eta, p.SigmaA, diag)
	}

	mR := gaussian(a.ThetaH, p.LongitudinalShiftR, p.LongitudinalWidthR)
	mTT := gaussian(a.ThetaH, p.LongitudinalShiftTT, p.LongitudinalWidthTT)
	mTRT := gaussian(a.ThetaH, p.LongitudinalShiftTRT, p.LongitudinalWidthTRT)

	cosD := math.Cos(a.ThetaD)
	return lobes{
		R:     nonNeg(diag.check("R", p.IntensityR*mR*nR)),
		TT:    nonNeg(diag.check("TT", p.IntensityTT*mTT*nTT)),
		TRT:   nonNeg(diag.check("TRT", p.IntensityTRT*mTRT*nTRT)),
		Scale: diag.check("scale", 1/math.Max(cosD*cosD, MinCosThetaD2)),
	}
}

package fibershade

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// KajiyaKayShader is the classic anisotropic fiber model: a diffuse term
// proportional to sin(T, L) and a specular cone around the tangent.
type KajiyaKayShader struct {
	shaderBase
	tangent    Vec // unit
	specFactor Real
	kd, ks     Real
}

// NewKajiyaKayShader builds a Kajiya-Kay shader. The tangent must be non-zero;
// specFactor, kd and ks are clamped to >= 0.
func NewKajiyaKayShader(tangent Vec, specFactor, kd, ks Real, opts ...ShaderOption) (*KajiyaKayShader, error) {
	s := &KajiyaKayShader{shaderBase: newShaderBase(opts)}
	if err := s.SetTangent(tangent); err != nil {
		return nil, err
	}
	s.SetSpecFactor(specFactor)
	s.SetKd(kd)
	s.SetKs(ks)
	return s, nil
}

func (s *KajiyaKayShader) Kind() Kind { return KindKajiyaKay }
func (s *KajiyaKayShader) isShader()  {}

func (s *KajiyaKayShader) Tangent() Vec     { return s.tangent }
func (s *KajiyaKayShader) SpecFactor() Real { return s.specFactor }
func (s *KajiyaKayShader) Kd() Real         { return s.kd }
func (s *KajiyaKayShader) Ks() Real         { return s.ks }

// SetTangent stores the normalized tangent.
func (s *KajiyaKayShader) SetTangent(t Vec) error {
	u := unit(t)
	if !isFiniteVec(u) {
		return errors.New("tangent must be non-zero and finite")
	}
	s.tangent = u
	return nil
}

func (s *KajiyaKayShader) SetSpecFactor(v Real) { s.specFactor = nonNeg(v) }
func (s *KajiyaKayShader) SetKd(v Real)         { s.kd = nonNeg(v) }
func (s *KajiyaKayShader) SetKs(v Real)         { s.ks = nonNeg(v) }

// kajiyaKayDiffuse is sin of the angle between the unit tangent and the light.
func kajiyaKayDiffuse(t, lightDir Vec) Real {
	df := r3.Dot(t, unit(lightDir))
	return math.Sqrt(math.Max(1-df*df, 0))
}

// kajiyaKaySpecular is cos(θ_l − θ_e) for the light and view cones around t, floored at 0.
func kajiyaKaySpecular(t, lightDir, viewDir Vec) Real {
	sintl := kajiyaKayDiffuse(t, lightDir)
	vt := r3.Dot(viewDir, t)
	sinte := math.Sqrt(math.Max(1-vt*vt, 0))
	kspec := sintl*sinte - r3.Dot(unit(lightDir), t)*vt
	return math.Max(kspec, 0)
}

// Sample returns kd·diffuse + ks·specular^specFactor. The normal is unused:
// the fiber's orientation is fully described by its tangent.
func (s *KajiyaKayShader) Sample(lightDir, viewDir, normal Vec) Real {
	v := unit(viewDir)
	diffuse := kajiyaKayDiffuse(s.tangent, lightDir)
	spec := kajiyaKaySpecular(s.tangent, lightDir, v)
	if !isFinite(diffuse) || !isFinite(spec) {
		s.diag.record("kajiyaKay", Degenerate, diffuse+spec)
		return 0
	}
	return nonNeg(s.kd*diffuse + s.ks*math.Pow(spec, s.specFactor))
}

package fibershade

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SpecularShader is a Phong-style mirror lobe around the reflected light direction.
type SpecularShader struct {
	shaderBase
	specFactor Real
}

// NewSpecularShader builds a specular shader; specFactor is clamped to >= 0.
func NewSpecularShader(specFactor Real, opts ...ShaderOption) *SpecularShader {
	s := &SpecularShader{shaderBase: newShaderBase(opts)}
	s.SetSpecFactor(specFactor)
	return s
}

func (s *SpecularShader) Kind() Kind { return KindSpecular }
func (s *SpecularShader) isShader()  {}

func (s *SpecularShader) SpecFactor() Real { return s.specFactor }

// SetSpecFactor sets the exponent, clamped to >= 0.
func (s *SpecularShader) SetSpecFactor(v Real) { s.specFactor = nonNeg(v) }

// Sample returns max(V·reflect(−L, N), 0)^specFactor.
func (s *SpecularShader) Sample(lightDir, viewDir, normal Vec) Real {
	l := unit(lightDir)
	v := unit(viewDir)
	n := unit(normal)
	d := r3.Dot(v, reflect(r3.Scale(-1, l), n))
	if !isFinite(d) {
		s.diag.record("specular", Degenerate, d)
		return 0
	}
	if d < 0 {
		d = 0
	}
	return nonNeg(math.Pow(d, s.specFactor))
}

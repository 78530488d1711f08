package fibershade

import "fmt"

// Shader maps a light direction, a view direction and a surface normal to a
// reflected intensity. The set of implementations is closed: SpecularShader,
// KajiyaKayShader and MarschnerShader.
//
// Sample always returns a finite value >= 0 and never writes to the shader,
// so concurrent calls on one instance are safe as long as nobody edits its
// parameters at the same time.
type Shader interface {
	Sample(lightDir, viewDir, normal Vec) Real
	Kind() Kind
	isShader()
}

// Kind identifies a Shader variant.
type Kind int

const (
	kindInvalid Kind = iota
	KindSpecular
	KindKajiyaKay
	KindMarschner
)

// KindFromName looks a kind up by its String name.
func KindFromName(name string) (Kind, error) {
	switch name {
	case "specular":
		return KindSpecular, nil
	case "kajiyaKay":
		return KindKajiyaKay, nil
	case "marschner":
		return KindMarschner, nil
	}
	return kindInvalid, fmt.Errorf("unknown shader %q", name)
}

func (k Kind) String() string {
	switch k {
	case KindSpecular:
		return "specular"
	case KindKajiyaKay:
		return "kajiyaKay"
	case KindMarschner:
		return "marschner"
	}
	return "invalid"
}

// shaderBase carries what every variant shares.
type shaderBase struct {
	diag *DiagLog
}

// ShaderOption configures optional shader behavior at construction.
type ShaderOption func(*shaderBase)

// WithDiagnostics records NaN/Inf intermediates and solver misses into d.
func WithDiagnostics(d *DiagLog) ShaderOption {
	return func(b *shaderBase) { b.diag = d }
}

func newShaderBase(opts []ShaderOption) shaderBase {
	var b shaderBase
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Snapshot returns an independent copy of s. Sampling passes run against a
// snapshot so that parameter edits on s never race with them.
func Snapshot(s Shader) Shader {
	switch v := s.(type) {
	case *SpecularShader:
		c := *v
		return &c
	case *KajiyaKayShader:
		c := *v
		return &c
	case *MarschnerShader:
		c := *v
		return &c
	}
	panic(fmt.Sprintf("fibershade: unknown shader %T", s))
}

// Describe returns a one-line summary of the shader and its parameters.
func Describe(s Shader) string {
	switch v := s.(type) {
	case *SpecularShader:
		return fmt.Sprintf("%s specFactor=%g", v.Kind(), v.specFactor)
	case *KajiyaKayShader:
		return fmt.Sprintf("%s tangent=%v specFactor=%g kd=%g ks=%g", v.Kind(), v.tangent, v.specFactor, v.kd, v.ks)
	case *MarschnerShader:
		p := v.params
		return fmt.Sprintf("%s tangent=%v eta=%g sigmaA=%g I(R,TT,TRT)=(%g,%g,%g) azimuthal=%s physicalTRT=%t",
			v.Kind(), v.tangent, p.Eta, p.SigmaA, p.IntensityR, p.IntensityTT, p.IntensityTRT, p.Azimuthal, p.PhysicalTRT)
	}
	return "invalid"
}

package fibershade

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a 3D direction; callers need not normalize it.
type Vec = r3.Vec

// unit returns v scaled to length 1.
// A zero (or non-finite) vector comes back as NaNs so the caller's final guard maps it to 0.
func unit(v Vec) Vec {
	l := r3.Norm(v)
	if l == 0 || !isFinite(l) {
		return Vec{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}
	}
	return r3.Scale(1/l, v)
}

// reflect mirrors the incident direction d about the normal n (GLSL reflect).
func reflect(d, n Vec) Vec {
	return r3.Sub(d, r3.Scale(2*r3.Dot(n, d), n))
}

func isFiniteVec(v Vec) bool { return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z) }

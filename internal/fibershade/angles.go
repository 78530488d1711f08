package fibershade

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AngleTriple holds the fiber-frame angles consumed by the Marschner lobes.
type AngleTriple struct {
	Phi    Real // relative azimuth, (−π, π]
	ThetaD Real // longitudinal difference angle
	ThetaH Real // longitudinal half angle
	ThetaT Real // light latitude
}

// fiberFrame builds the orthonormal frame U = tangent, V = normal, W = U×V.
func fiberFrame(tangent, normal Vec) (u, v, w Vec) {
	u = unit(tangent)
	v = unit(normal)
	w = unit(r3.Cross(u, v))
	return u, v, w
}

// localSpherical expresses d in the frame (x, y, z) as longitude around z
// (measured from x towards y) and latitude above the x-y plane.
func localSpherical(d, x, y, z Vec) (lon, lat Real) {
	xd := r3.Dot(d, x)
	yd := r3.Dot(d, y)
	zd := r3.Dot(d, z)
	r := math.Sqrt(xd*xd + yd*yd + zd*zd)
	return math.Atan2(yd, xd), math.Pi/2 - math.Acos(clampUnit(zd/r))
}

// decomposeAngles converts unit view and light directions into the Marschner
// angles relative to the fiber frame (u along the fiber, v the normal, w = u×v).
func decomposeAngles(view, light, u, v, w Vec) AngleTriple {
	lonO, latO := localSpherical(view, v, w, u)
	lonI, latI := localSpherical(light, v, w, u)

	phi := math.Abs(lonO - lonI)
	if phi > math.Pi {
		phi -= 2 * math.Pi
	}
	thetaD := math.Abs(latO-latI) * 0.5
	if thetaD > math.Pi/2 {
		thetaD -= math.Pi
	}
	return AngleTriple{
		Phi:    phi,
		ThetaD: thetaD,
		ThetaH: (latO + latI) * 0.5,
		ThetaT: latI,
	}
}

func (a AngleTriple) finite() bool {
	return isFinite(a.Phi) && isFinite(a.ThetaD) && isFinite(a.ThetaH) && isFinite(a.ThetaT)
}

package fibershade

import "math"

// fresnel is the dielectric reflectance for a ray hitting the interface
// eta1 -> eta2 at incidence angle gamma, capped at 1.
// Past the critical angle there is no refracted ray and the result is NaN;
// callers zero the term that used it.
func fresnel(eta1, eta2, gamma Real) Real {
	s := math.Sin(gamma) * eta1 / eta2
	if math.Abs(s) > 1 {
		return math.NaN()
	}
	a := eta1 * math.Cos(gamma)
	b := eta2 * math.Sqrt(1-s*s)
	if a+b == 0 {
		return 1
	}
	r := (a - b) / (a + b)
	return math.Min(r*r, 1)
}

// fresnelAvg averages the reflectance against the two effective indices of the
// incidence plane (etaD) and the perpendicular plane (etaDD). inv swaps the media:
// the ray leaves the fiber instead of entering it.
func fresnelAvg(etaD, etaDD, gamma Real, inv bool) Real {
	var fs, ft Real
	if inv {
		fs = fresnel(etaD, 1, gamma)
		ft = fresnel(etaDD, 1, gamma)
	} else {
		fs = fresnel(1, etaD, gamma)
		ft = fresnel(1, etaDD, gamma)
	}
	return 0.5 * (fs + ft)
}

// absorption is the interior transmittance for one chord of the fiber.
func absorption(sigmaA, thetaD, gammaT Real) Real {
	cosD := math.Max(math.Abs(math.Cos(thetaD)), minCosAbsorb)
	return math.Exp(-2 * sigmaA / cosD * (1 + math.Cos(2*gammaT)))
}

// attenuation is A(p, h): the energy surviving path p for one root.
func attenuation(p int, gammaI, gammaT, etaD, etaDD, thetaD, sigmaA Real) Real {
	if p == 0 {
		return fresnelAvg(etaD, etaDD, gammaI, false)
	}
	t := absorption(sigmaA, thetaD, gammaT)
	f := fresnelAvg(etaD, etaDD, gammaI, false)
	if p == 1 {
		return (1 - f) * (1 - f) * t
	}
	fInv := fresnelAvg(etaD, etaDD, gammaT, true)
	return (1 - f) * (1 - f) * fInv * t * t
}

// effectiveEta returns Bravais' effective indices for the incidence plane
// (etaD) and the perpendicular plane (etaDD) at difference angle thetaD.
func effectiveEta(eta, thetaD Real) (etaD, etaDD Real) {
	sinD := math.Sin(thetaD)
	cosD := math.Abs(math.Cos(thetaD))
	root := math.Sqrt(eta*eta - sinD*sinD)
	etaD = root / math.Max(cosD, minDenom)
	etaDD = eta * eta / math.Max(root, minDenom) * cosD
	return etaD, etaDD
}

package fibershade

import "math"

// dphiDhInv is |dh/dphi| for path p at offset h, the density correction of one root.
func dphiDhInv(p int, h, etaD Real) Real {
	if p == 0 {
		return math.Sqrt(1-h*h) / 2
	}
	a := math.Sqrt(1 - h*h)
	b := math.Sqrt(etaD*etaD - h*h)
	return a * b / (2 * math.Max(math.Abs(Real(p)*a-b), minDenom))
}

// azimuthalScattering is N_p: the azimuthal scattering of path p summed over
// every offset h that exits at azimuth phi. A non-finite root contribution
// zeroes the whole term.
func azimuthalScattering(p int, thetaD, phi, eta, sigmaA Real, diag *DiagLog) Real {
	etaD, etaDD := effectiveEta(eta, thetaD)
	if !isFinite(etaD) || !isFinite(etaDD) {
		diag.record("etaD", NonFinite, etaD)
		return 0
	}

	var hs [3]Real
	n := azimuthalRoots(&hs, p, phi, etaD)
	if n == 0 {
		diag.record("roots", NoRoot, phi)
		return 0
	}

	var np Real
	for i := 0; i < n; i++ {
		h := hs[i]
		gammaI := math.Asin(clampUnit(h))
		gammaT := math.Asin(clampUnit(h / etaD))
		np += attenuation(p, gammaI, gammaT, etaD, etaDD, thetaD, sigmaA) * dphiDhInv(p, h, etaD) * 0.5
	}
	return diag.check("azimuthal", np)
}

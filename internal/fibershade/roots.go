package fibershade

import "math"

// azimuth is the exit azimuth residual g(h) - phi for path p:
// 2p·asin(h/etaD) − 2·asin(h) − phi.
func azimuth(p int, h, phi, etaD Real) Real {
	return 2*Real(p)*math.Asin(clampUnit(h/etaD)) - 2*math.Asin(clampUnit(h)) - phi
}

// bisect looks for a root of azimuth(p, ·, phi, etaD) on [lo, hi].
// decreasing states the monotonicity of the residual on that interval.
// It needs a strict sign change at the endpoints; otherwise ok is false.
func bisect(decreasing bool, p int, phi, etaD, lo, hi Real) (h Real, ok bool) {
	if sign(azimuth(p, lo, phi, etaD))*sign(azimuth(p, hi, phi, etaD)) >= 0 {
		return 0, false
	}
	for i := 0; math.Abs(hi-lo) > BisectTol && i < BisectMaxIter; i++ {
		mid := (hi + lo) / 2
		g := azimuth(p, mid, phi, etaD)
		if decreasing {
			if g < 0 {
				hi = mid
			} else {
				lo = mid
			}
		} else {
			if g > 0 {
				hi = mid
			} else {
				lo = mid
			}
		}
	}
	return (hi + lo) / 2, true
}

// azimuthalRoots solves for the offsets h that scatter path p into azimuth phi.
// It writes up to three roots into hs and returns how many were found.
func azimuthalRoots(hs *[3]Real, p int, phi, etaD Real) int {
	n := 0
	add := func(h Real, ok bool) {
		if ok {
			hs[n] = h
			n++
		}
	}
	switch p {
	case 0:
		hs[0] = math.Sin(-phi / 2)
		return 1
	case 1:
		add(bisect(true, p, phi, etaD, -1, 1))
	case 2:
		// g has local extrema at ±sqrt(4-etaD²)/sqrt(3); past etaD = 2 it is monotone.
		d := 4 - etaD*etaD
		if d <= 0 {
			add(bisect(true, p, phi, etaD, -1, 1))
			break
		}
		ext := math.Sqrt(d) / math.Sqrt(3)
		add(bisect(true, p, phi, etaD, -1, -ext))
		add(bisect(false, p, phi, etaD, -ext, ext))
		add(bisect(true, p, phi, etaD, ext, 1))
	}
	return n
}

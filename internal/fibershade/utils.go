package fibershade

import (
	"math"
)

type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// finiteOr0 maps NaN/Inf to zero.
func finiteOr0(x Real) Real {
	if !isFinite(x) {
		return 0
	}
	return x
}

// nonNeg maps NaN/Inf and negatives to zero.
func nonNeg(x Real) Real {
	if !isFinite(x) || x < 0 {
		return 0
	}
	return x
}

func clampUnit(x Real) Real {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}

func sign(x Real) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func degToRad(x Real) Real { return x * math.Pi / 180 }

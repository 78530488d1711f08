package fibershade

import (
	"fmt"
	"math"
)

// AzimuthalMode selects how N_p is evaluated.
type AzimuthalMode uint8

const (
	AzimuthalExact  AzimuthalMode = iota // root solve + Fresnel/absorption + Jacobian
	AzimuthalApprox                      // cosine lobes, Gaussian TT and glint
)

func (m AzimuthalMode) String() string {
	switch m {
	case AzimuthalExact:
		return "exact"
	case AzimuthalApprox:
		return "approx"
	}
	return "invalid"
}

// AzimuthalModeFromName looks the mode up by its String name.
func AzimuthalModeFromName(name string) (AzimuthalMode, error) {
	switch name {
	case "", "exact":
		return AzimuthalExact, nil
	case "approx":
		return AzimuthalApprox, nil
	}
	return 0, fmt.Errorf("unknown azimuthal mode %q", name)
}

// FiberParams configures the Marschner fiber model. Angles are in radians.
type FiberParams struct {
	IntensityR         Real
	LongitudinalShiftR Real
	LongitudinalWidthR Real

	IntensityTT         Real
	LongitudinalShiftTT Real
	LongitudinalWidthTT Real
	AzimuthalWidthTT    Real

	IntensityTRT         Real
	LongitudinalShiftTRT Real
	LongitudinalWidthTRT Real

	// Glint, used by AzimuthalApprox.
	IntensityG      Real
	AzimuthalShiftG Real
	AzimuthalWidthG Real

	AttenuationFromRoot Real

	Eta       Real // relative refractive index, > 1
	SigmaA    Real // absorption coefficient, >= 0
	Thickness Real

	Azimuthal AzimuthalMode
	// PhysicalTRT evaluates the TRT azimuthal term with the p=2 solver.
	// Off by default: TRT reuses the p=0 term, matching the reference renders.
	PhysicalTRT bool
}

// DefaultFiberParams returns the reference hair parameters.
func DefaultFiberParams() FiberParams {
	shiftR := degToRad(-7.5)
	widthR := degToRad(7.5)
	return FiberParams{
		IntensityR:         5,
		LongitudinalShiftR: shiftR,
		LongitudinalWidthR: widthR,

		IntensityTT:         0.5,
		LongitudinalShiftTT: -shiftR / 2,
		LongitudinalWidthTT: widthR / 2,
		AzimuthalWidthTT:    3,

		IntensityTRT:         0.5,
		LongitudinalShiftTRT: -3 * shiftR / 2,
		LongitudinalWidthTRT: 2 * widthR,

		IntensityG:      1,
		AzimuthalShiftG: degToRad(30),
		AzimuthalWidthG: degToRad(10),

		AttenuationFromRoot: 1,

		Eta:       1.55,
		SigmaA:    0.2,
		Thickness: 0.2,
	}
}

// SanitizeFiberParams clamps every field into its valid range:
// intensities, sigma_a, thickness and attenuation to >= 0, widths to >= MinWidth,
// eta to >= MinEta, non-finite shifts to 0 and unknown modes to AzimuthalExact.
func SanitizeFiberParams(p FiberParams) FiberParams {
	width := func(x Real) Real { return math.Max(nonNeg(x), MinWidth) }

	p.IntensityR = nonNeg(p.IntensityR)
	p.IntensityTT = nonNeg(p.IntensityTT)
	p.IntensityTRT = nonNeg(p.IntensityTRT)
	p.IntensityG = nonNeg(p.IntensityG)

	p.LongitudinalShiftR = finiteOr0(p.LongitudinalShiftR)
	p.LongitudinalShiftTT = finiteOr0(p.LongitudinalShiftTT)
	p.LongitudinalShiftTRT = finiteOr0(p.LongitudinalShiftTRT)
	p.AzimuthalShiftG = finiteOr0(p.AzimuthalShiftG)

	p.LongitudinalWidthR = width(p.LongitudinalWidthR)
	p.LongitudinalWidthTT = width(p.LongitudinalWidthTT)
	p.LongitudinalWidthTRT = width(p.LongitudinalWidthTRT)
	p.AzimuthalWidthTT = width(p.AzimuthalWidthTT)
	p.AzimuthalWidthG = width(p.AzimuthalWidthG)

	p.AttenuationFromRoot = nonNeg(p.AttenuationFromRoot)
	p.SigmaA = nonNeg(p.SigmaA)
	p.Thickness = nonNeg(p.Thickness)
	if !isFinite(p.Eta) || p.Eta < MinEta {
		p.Eta = MinEta
	}
	if p.Azimuthal > AzimuthalApprox {
		p.Azimuthal = AzimuthalExact
	}
	return p
}

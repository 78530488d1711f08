package fibershade

import "math"

const (
	// Bisection limits for the azimuthal root solver.
	BisectMaxIter = 28
	BisectTol     = 1e-7

	// Normalization floor for 1/cos²(θd).
	MinCosThetaD2 = 0.1

	// Division floors used throughout the Marschner terms.
	minCosAbsorb = 1e-30
	minDenom     = 1e-20

	// Parameter floors enforced on write.
	MinEta   = 1.0 + 1e-6
	MinWidth = 1e-4

	// Hemisphere sampling defaults.
	DefaultNPhi    = 100
	DefaultWorkers = 8
	WorkerQueue    = 256
	WorkerIdle     = 1 // seconds a pool worker waits before exiting

	// Image outputs.
	PNGOut   = "lobe.png"
	GIFOut   = "sweep.gif"
	GIFDelay = 8 // 100ths of a second per frame
	Gamma    = 0.75

	// Distance of the light from the origin (see LightFromDegrees).
	LightLength = math.Sqrt2

	// Max events kept by a DiagLog per category.
	DiagKeep = 64
)

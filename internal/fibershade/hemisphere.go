package fibershade

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"gonum.org/v1/gonum/spatial/r3"
)

// Lobe is a shader's intensity sampled over a unit hemisphere around Up.
// Samples are stored row by row: azimuth step iPhi, elevation step iTheta,
// followed by the pole.
type Lobe struct {
	NPhi, NTheta int
	Up           Vec
	LightDir     Vec
	Dirs         []Vec  // unit sample directions
	Intensity    []Real // shader output per direction
}

func (l *Lobe) idx(iPhi, iTheta int) int { return iPhi*l.NTheta + iTheta }

// At returns the intensity at azimuth step iPhi and elevation step iTheta.
func (l *Lobe) At(iPhi, iTheta int) Real { return l.Intensity[l.idx(iPhi, iTheta)] }

// Pole returns the intensity straight along Up.
func (l *Lobe) Pole() Real { return l.Intensity[len(l.Intensity)-1] }

// Vertex returns sample i pushed out to its intensity, the point a lobe mesh would use.
func (l *Lobe) Vertex(i int) Vec { return r3.Scale(l.Intensity[i], l.Dirs[i]) }

// Max returns the peak intensity.
func (l *Lobe) Max() Real {
	m := 0.0
	for _, v := range l.Intensity {
		if v > m {
			m = v
		}
	}
	return m
}

// Sampler evaluates shaders over hemispheres on a shared worker pool.
type Sampler struct {
	workers int
	pool    worker.DynamicWorkerPool
}

// NewSampler starts a sampler with the given number of workers (DefaultWorkers if <= 0).
func NewSampler(workers int) *Sampler {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Sampler{
		workers: workers,
		pool:    worker.NewDynamicWorkerPool(workers, WorkerQueue, WorkerIdle*time.Second),
	}
}

// Close stops the sampler's workers.
func (s *Sampler) Close() { s.pool.Stop() }

// orientation returns a map taking +Y onto up.
func orientation(up Vec) (func(Vec) Vec, error) {
	u := unit(up)
	if !isFiniteVec(u) {
		return nil, errors.New("up direction must be non-zero and finite")
	}
	y := Vec{Y: 1}
	axis := r3.Cross(y, u)
	sinA := r3.Norm(axis)
	cosA := r3.Dot(y, u)
	if sinA < 1e-12 {
		if cosA > 0 {
			return func(p Vec) Vec { return p }, nil
		}
		// 180 degrees: mirror Y
		DebugLogOnce("Up direction is -Y, mirroring the hemisphere instead of rotating")
		return func(p Vec) Vec { return Vec{X: p.X, Y: -p.Y, Z: p.Z} }, nil
	}
	rot := r3.NewRotation(math.Atan2(sinA, cosA), r3.Scale(1/sinA, axis))
	return rot.Rotate, nil
}

// Hemisphere samples shader over nPhi azimuth steps and max(nPhi/4, 1)
// elevation steps (from the horizon up to, not including, the pole) plus
// the pole itself. Every sample is evaluated as shader.Sample(lightDir, dir, up).
// The shader is snapshotted first, so edits made during the pass do not race with it.
func (s *Sampler) Hemisphere(ctx context.Context, shader Shader, lightDir, up Vec, nPhi int) (*Lobe, error) {
	if shader == nil {
		return nil, errors.New("shader must not be nil")
	}
	if nPhi <= 0 {
		return nil, errors.New("nPhi must be positive")
	}
	orient, err := orientation(up)
	if err != nil {
		return nil, err
	}
	sh := Snapshot(shader)
	up = unit(up)
	light := unit(lightDir)
	nTheta := max(nPhi/4, 1)

	l := &Lobe{
		NPhi:      nPhi,
		NTheta:    nTheta,
		Up:        up,
		LightDir:  light,
		Dirs:      make([]Vec, nPhi*nTheta+1),
		Intensity: make([]Real, nPhi*nTheta+1),
	}

	row := func(iPhi int) {
		phi := 2 * math.Pi * Real(iPhi) / Real(nPhi)
		for iTheta := 0; iTheta < nTheta; iTheta++ {
			theta := 0.5 * math.Pi * Real(iTheta) / Real(nTheta)
			d := orient(Vec{
				X: math.Cos(theta) * math.Sin(phi),
				Y: math.Sin(theta),
				Z: math.Cos(theta) * math.Cos(phi),
			})
			i := l.idx(iPhi, iTheta)
			l.Dirs[i] = d
			l.Intensity[i] = sh.Sample(light, d, up)
		}
	}

	// Rows are striped over at most WorkerQueue tasks so the queue never overflows.
	nTasks := min(nPhi, WorkerQueue)
	var wg sync.WaitGroup
	for t := 0; t < nTasks; t++ {
		wg.Add(1)
		first := t
		s.pool.SubmitTask(worker.Task{
			ID: first,
			Do: func() (any, error) {
				defer wg.Done()
				for iPhi := first; iPhi < nPhi; iPhi += nTasks {
					if ctx.Err() != nil {
						return nil, ctx.Err()
					}
					row(iPhi)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pole := orient(Vec{Y: 1})
	l.Dirs[nPhi*nTheta] = pole
	l.Intensity[nPhi*nTheta] = sh.Sample(light, pole, up)
	DebugLog("Sampled %s lobe: %dx%d+1 points, max=%g", sh.Kind(), nPhi, nTheta, l.Max())
	return l, nil
}

// LightFromDegrees places the light the way the interactive viewer does:
// theta tilts away from +Y, phi turns around it; both are clamped to [-180, 180].
func LightFromDegrees(thetaDeg, phiDeg Real) Vec {
	clamp := func(x Real) Real { return math.Max(-180, math.Min(180, x)) }
	theta := degToRad(clamp(thetaDeg))
	phi := degToRad(clamp(phiDeg))
	return Vec{
		X: math.Sin(theta) * math.Cos(phi) * LightLength,
		Y: math.Cos(theta) * LightLength,
		Z: math.Sin(theta) * math.Sin(phi) * LightLength,
	}
}

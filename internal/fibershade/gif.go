package fibershade

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"log/slog"
	"math"
	"os"
)

// SweepLobes samples shader once per frame while the light elevation sweeps
// from -90 to 90 degrees at a fixed azimuth phiDeg.
func (s *Sampler) SweepLobes(ctx context.Context, shader Shader, up Vec, nPhi, frames int, phiDeg Real) ([]*Lobe, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", frames)
	}
	out := make([]*Lobe, 0, frames)
	for k := 0; k < frames; k++ {
		theta := -90.0
		if frames > 1 {
			theta += 180 * Real(k) / Real(frames-1)
		}
		l, err := s.Hemisphere(ctx, shader, LightFromDegrees(theta, phiDeg), up, nPhi)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
		if k%max(1, frames/10) == 0 {
			slog.Info("[GIF] sweep", "percent", math.Round(Real(k+1)*10000/Real(frames))/100)
		}
	}
	return out, nil
}

// SaveLobeSweepGIF writes one GIF frame per lobe.
// delay is in 100ths of a second; each frame is normalized on its own.
func SaveLobeSweepGIF(lobes []*Lobe, path string, delay int, gamma Real) error {
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(lobes)),
		Delay:     make([]int, 0, len(lobes)),
		LoopCount: 0,
	}
	for _, l := range lobes {
		w, h, px := lobeGrid(l, gamma)
		rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
		// flip Y so the pole is on top
		for j := 0; j < h; j++ {
			rowOff := (h - 1 - j) * rgba.Stride
			for i := 0; i < w; i++ {
				v := uint8(math.Round(px[j*w+i] * 255))
				p := rowOff + i*4
				rgba.Pix[p+0] = v
				rgba.Pix[p+1] = v
				rgba.Pix[p+2] = v
				rgba.Pix[p+3] = 255
			}
		}
		// Quantize to paletted for GIF
		pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}

package fibershade

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
)

// lobeGrid lays a lobe out as an image-shaped grid: NPhi columns and NTheta+1
// rows, row 0 at the horizon and the last row holding the pole.
// Values are normalized by the lobe's peak and gamma-mapped into [0,1].
func lobeGrid(l *Lobe, gamma Real) (w, h int, px []Real) {
	w, h = l.NPhi, l.NTheta+1
	px = make([]Real, w*h)
	peak := l.Max()
	if peak == 0 {
		peak = 1 // avoid div-by-zero; the image will be black
	}
	scale := 1.0 / peak
	level := func(v Real) Real {
		if v <= 0 {
			return 0
		}
		n := v * scale
		if n > 1 {
			n = 1
		}
		if gamma != 1 {
			n = math.Pow(n, 1.0/gamma)
		}
		return n
	}
	for i := 0; i < w; i++ {
		for j := 0; j < l.NTheta; j++ {
			px[j*w+i] = level(l.At(i, j))
		}
		px[l.NTheta*w+i] = level(l.Pole())
	}
	return w, h, px
}

// SaveLobePNG16 writes the lobe as a lossless 16-bit PNG (flipped so the pole is on top).
func SaveLobePNG16(l *Lobe, path string, gamma Real) error {
	w, h, px := lobeGrid(l, gamma)
	img := image.NewNRGBA64(image.Rect(0, 0, w, h))
	const pxBytes = 8 // 4 channels * 2 bytes/channel
	for j := 0; j < h; j++ {
		y := h - 1 - j
		rowOff := y * img.Stride
		for i := 0; i < w; i++ {
			v := uint16(math.Round(px[j*w+i] * 65535.0))
			p := rowOff + i*pxBytes
			// NRGBA64 stores big-endian uint16 per channel: R, G, B, A.
			for c := 0; c < 3; c++ {
				img.Pix[p+2*c] = uint8(v >> 8)
				img.Pix[p+2*c+1] = uint8(v)
			}
			img.Pix[p+6] = 0xFF
			img.Pix[p+7] = 0xFF
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

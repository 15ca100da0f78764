package preprocess

import (
	"image"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// lowContrastSpread is the CIE-Lab lightness spread (5th to 95th
// percentile, L in [0,1]) below which an image is considered too flat for
// plain contrast enhancement and gets binarized instead.
const lowContrastSpread = 0.35

// SuggestMode inspects the global contrast of an image and picks a
// pipeline Mode for it.
//
// Pixel lightness is measured in the perceptual CIE-Lab space on a
// subsampled grid (at most 64 samples per axis). Images whose lightness
// spread between the 5th and 95th percentile falls below a fixed cutoff
// are flat enough that CLAHE alone will leave foreground and background
// entangled, so ModeAdaptive is suggested; everything else gets ModeCLAHE.
func SuggestMode(img image.Image) Mode {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return ModeCLAHE
	}

	stepX := width / 64
	if stepX < 1 {
		stepX = 1
	}
	stepY := height / 64
	if stepY < 1 {
		stepY = 1
	}

	var lightness []float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// Fully transparent pixel, nothing to measure.
				continue
			}
			l, _, _ := c.Lab()
			lightness = append(lightness, l)
		}
	}
	if len(lightness) < 2 {
		return ModeCLAHE
	}

	sort.Float64s(lightness)
	lo := lightness[len(lightness)*5/100]
	hi := lightness[len(lightness)*95/100]
	if hi-lo < lowContrastSpread {
		return ModeAdaptive
	}
	return ModeCLAHE
}

package preprocess

import (
	"image"
	"math"
)

// CLAHE applies Contrast Limited Adaptive Histogram Equalization to a
// grayscale image.
//
// The image is divided into a tiles x tiles grid. Each tile gets its own
// histogram, clipped at clipLimit times the uniform bin height (the excess
// is redistributed evenly across all bins), from which a cumulative lookup
// table is built. Every pixel is then remapped by bilinearly interpolating
// between the lookup tables of the four nearest tile centers, which avoids
// visible tile seams.
//
// Parameters:
//   - src: 8-bit grayscale input.
//   - tiles: grid dimension; 8 is the conventional default. Values below 1
//     are treated as 1, and the grid never exceeds the image size.
//   - clipLimit: histogram clip multiplier; values <= 0 disable clipping
//     and yield plain adaptive histogram equalization.
//
// The operation is deterministic and leaves src unmodified.
func CLAHE(src *image.Gray, tiles int, clipLimit float64) *image.Gray {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return src
	}

	if tiles < 1 {
		tiles = 1
	}
	tilesX := tiles
	if tilesX > width {
		tilesX = width
	}
	tilesY := tiles
	if tilesY > height {
		tilesY = height
	}
	tileW := (width + tilesX - 1) / tilesX
	tileH := (height + tilesY - 1) / tilesY

	// Build one clipped-equalization LUT per tile.
	luts := make([][256]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * tileW
			y0 := ty * tileH
			x1 := clamp(x0+tileW, 0, width)
			y1 := clamp(y0+tileH, 0, height)
			luts[ty*tilesX+tx] = tileLUT(src, x0, y0, x1, y1, clipLimit)
		}
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		// Position in tile-center space along Y.
		gy := (float64(y)+0.5)/float64(tileH) - 0.5
		j0 := int(math.Floor(gy))
		fy := gy - float64(j0)
		j0 = clamp(j0, 0, tilesY-1)
		j1 := clamp(j0+1, 0, tilesY-1)

		for x := 0; x < width; x++ {
			gx := (float64(x)+0.5)/float64(tileW) - 0.5
			i0 := int(math.Floor(gx))
			fx := gx - float64(i0)
			i0 = clamp(i0, 0, tilesX-1)
			i1 := clamp(i0+1, 0, tilesX-1)

			v := src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			top := (1-fx)*float64(luts[j0*tilesX+i0][v]) + fx*float64(luts[j0*tilesX+i1][v])
			bot := (1-fx)*float64(luts[j1*tilesX+i0][v]) + fx*float64(luts[j1*tilesX+i1][v])
			val := (1-fy)*top + fy*bot
			out.Pix[y*out.Stride+x] = uint8(clamp(int(math.Round(val)), 0, 255))
		}
	}
	return out
}

// tileLUT builds the clipped cumulative-histogram lookup table for one tile.
func tileLUT(src *image.Gray, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	bounds := src.Bounds()
	var hist [256]int
	npix := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y]++
			npix++
		}
	}

	var lut [256]uint8
	if npix == 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	if clipLimit > 0 {
		limit := int(clipLimit * float64(npix) / 256)
		if limit < 1 {
			limit = 1
		}
		excess := 0
		for i := range hist {
			if hist[i] > limit {
				excess += hist[i] - limit
				hist[i] = limit
			}
		}
		// Redistribute clipped mass evenly; the remainder goes one count
		// per bin from the bottom so totals stay exact.
		share := excess / 256
		rem := excess % 256
		for i := range hist {
			hist[i] += share
			if i < rem {
				hist[i]++
			}
		}
	}

	scale := 255.0 / float64(npix)
	cdf := 0
	for i := range hist {
		cdf += hist[i]
		lut[i] = uint8(clamp(int(math.Round(float64(cdf)*scale)), 0, 255))
	}
	return lut
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

package preprocess

import "image"

// OtsuThreshold computes the global binarization threshold that maximizes
// between-class intensity variance.
//
// The returned value t partitions pixels into background (<= t) and
// foreground (> t). A uniform image yields its single intensity value.
func OtsuThreshold(src *image.Gray) uint8 {
	bounds := src.Bounds()
	var hist [256]int
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[src.GrayAt(x, y).Y]++
			total++
		}
	}
	if total == 0 {
		return 0
	}

	sum := 0.0
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var (
		best    uint8
		bestVar float64
		wBack   int
		sumBack float64
	)
	for t := 0; t < 256; t++ {
		wBack += hist[t]
		if wBack == 0 {
			continue
		}
		wFore := total - wBack
		if wFore == 0 {
			break
		}
		sumBack += float64(t) * float64(hist[t])
		meanBack := sumBack / float64(wBack)
		meanFore := (sum - sumBack) / float64(wFore)
		diff := meanBack - meanFore
		between := float64(wBack) * float64(wFore) * diff * diff
		if between > bestVar {
			bestVar = between
			best = uint8(t)
		}
	}
	return best
}

// Binarize maps every pixel to 0 or 255 against the given threshold.
// With invert false, pixels above thresh become white; with invert true,
// pixels at or below thresh become white (dark ink rendered as foreground).
func Binarize(src *image.Gray, thresh uint8, invert bool) *image.Gray {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			white := v > thresh
			if invert {
				white = !white
			}
			if white {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// binarizeInk produces a binary image with ink as white (255) regardless
// of the input polarity. It binarizes at the Otsu threshold and keeps the
// minority class as foreground, on the assumption that equation strokes
// cover less area than the background.
func binarizeInk(src *image.Gray) *image.Gray {
	bin := Binarize(src, OtsuThreshold(src), true)
	white := 0
	for _, v := range bin.Pix {
		if v != 0 {
			white++
		}
	}
	if white*2 > len(bin.Pix) {
		for i, v := range bin.Pix {
			if v == 0 {
				bin.Pix[i] = 255
			} else {
				bin.Pix[i] = 0
			}
		}
	}
	return bin
}

// AdaptiveThreshold binarizes src against a local mean, compensating for
// uneven lighting across a photographed surface.
//
// For each pixel the mean intensity of the surrounding window x window
// region (clamped at the borders) is computed via an integral image; the
// pixel becomes white (255) when its value is at most mean - c, so dark
// ink on a light background comes out as white foreground on black.
//
// window must be odd; even values are rounded up. Values below 3 are
// treated as 3.
func AdaptiveThreshold(src *image.Gray, window, c int) *image.Gray {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return out
	}

	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	r := window / 2

	// Integral image with a zero top row and left column.
	integral := make([]uint64, (width+1)*(height+1))
	stride := width + 1
	for y := 0; y < height; y++ {
		var rowSum uint64
		for x := 0; x < width; x++ {
			rowSum += uint64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			integral[(y+1)*stride+(x+1)] = integral[y*stride+(x+1)] + rowSum
		}
	}

	for y := 0; y < height; y++ {
		y0 := clamp(y-r, 0, height-1)
		y1 := clamp(y+r, 0, height-1)
		for x := 0; x < width; x++ {
			x0 := clamp(x-r, 0, width-1)
			x1 := clamp(x+r, 0, width-1)

			area := uint64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*stride+(x1+1)] -
				integral[y0*stride+(x1+1)] -
				integral[(y1+1)*stride+x0] +
				integral[y0*stride+x0]
			mean := int(sum / area)

			if int(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) <= mean-c {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

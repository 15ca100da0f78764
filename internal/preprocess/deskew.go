package preprocess

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// houghAngleStep is the angular resolution of the skew accumulator in
// degrees. Half-degree bins keep the estimate well inside the +-1 degree
// tolerance the recognition model can absorb.
const houghAngleStep = 0.5

// EstimateSkew estimates the dominant rotation of near-horizontal line
// content in a binary image (ink as white).
//
// It runs a Hough line transform restricted to normal angles within 45
// degrees of vertical, i.e. line directions within 45 degrees of
// horizontal. Accumulator cells with at least opts.HoughThreshold votes
// that are local maxima become candidate lines; the strongest
// opts.HoughMaxPeaks candidates contribute their angle, and the median of
// those angles is returned.
//
// The angle is in degrees, positive for counter-clockwise tilt. The
// boolean result is false when no line clears the vote threshold, which
// callers must treat as "leave the image alone", never as an error.
func EstimateSkew(bin *image.Gray, opts Options) (float64, bool) {
	bounds := bin.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return 0, false
	}

	// Normal angles theta in [45, 135] cover skews of +-45 degrees around
	// horizontal (theta = 90 is a perfectly horizontal line).
	numAngles := int(90.0/houghAngleStep) + 1
	sins := make([]float64, numAngles)
	coss := make([]float64, numAngles)
	for i := 0; i < numAngles; i++ {
		theta := (45.0 + float64(i)*houghAngleStep) * math.Pi / 180.0
		sins[i] = math.Sin(theta)
		coss[i] = math.Cos(theta)
	}

	maxDist := int(math.Sqrt(float64(width*width+height*height))) + 1
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Vote in Hough space with every foreground pixel.
	voted := false
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if bin.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y == 0 {
				continue
			}
			voted = true
			for i := 0; i < numAngles; i++ {
				rho := float64(x)*coss[i] + float64(y)*sins[i]
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][i]++
				}
			}
		}
	}
	if !voted {
		return 0, false
	}

	threshold := opts.HoughThreshold
	if threshold < 1 {
		threshold = 1
	}

	type peak struct {
		theta int
		votes int
	}
	var peaks []peak
	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for t := 0; t < numAngles; t++ {
			votes := accumulator[rhoIdx][t]
			if votes < threshold {
				continue
			}
			// Keep local maxima only, so one physical line does not
			// dominate the sample with adjacent accumulator cells.
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := t + dt
					if nr < 0 || nr >= maxDist*2 || nt < 0 || nt >= numAngles {
						continue
					}
					if accumulator[nr][nt] > votes {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{theta: t, votes: votes})
			}
		}
	}
	if len(peaks) == 0 {
		return 0, false
	}

	sort.Slice(peaks, func(i, j int) bool { return peaks[i].votes > peaks[j].votes })
	maxPeaks := opts.HoughMaxPeaks
	if maxPeaks < 1 {
		maxPeaks = 1
	}
	if len(peaks) > maxPeaks {
		peaks = peaks[:maxPeaks]
	}

	angles := make([]float64, 0, len(peaks))
	for _, p := range peaks {
		thetaDeg := 45.0 + float64(p.theta)*houghAngleStep
		skew := 90.0 - thetaDeg
		if math.Abs(skew) < opts.SkewMaxDeg {
			angles = append(angles, skew)
		}
	}
	if len(angles) == 0 {
		return 0, false
	}

	sort.Float64s(angles)
	mid := len(angles) / 2
	if len(angles)%2 == 0 {
		return (angles[mid-1] + angles[mid]) / 2, true
	}
	return angles[mid], true
}

// Deskew corrects small rotational misalignment of the image content.
//
// The image is binarized at the Otsu threshold (ink normalized to white)
// purely for skew estimation; the rotation itself is applied to img. The
// bg color fills the corners exposed by the rotation, so callers pass
// white for grayscale images and black for ink-on-black binaries.
//
// Returns the corrected image and the angle that was removed. When no
// lines are detected, or the estimate is within opts.SkewMinDeg of level,
// or it exceeds the opts.SkewMaxDeg sanity bound, the input is returned
// unchanged with an angle of zero.
func Deskew(img *image.Gray, bg color.Color, opts Options) (*image.Gray, float64) {
	angle, ok := EstimateSkew(binarizeInk(img), opts)
	if !ok {
		return img, 0
	}
	if math.Abs(angle) <= opts.SkewMinDeg || math.Abs(angle) >= opts.SkewMaxDeg {
		return img, 0
	}
	return Rotate(img, -angle, bg), angle
}

// Rotate rotates a grayscale image counter-clockwise by angle degrees
// about its center, keeping the canvas size. Exposed corners are filled
// with bg; sampling is bilinear.
func Rotate(img *image.Gray, angle float64, bg color.Color) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return out
	}

	bgVal := color.GrayModel.Convert(bg).(color.Gray).Y
	sin, cos := math.Sincos(angle * math.Pi / 180)
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2

	for y := 0; y < height; y++ {
		dy := float64(y) - cy
		for x := 0; x < width; x++ {
			dx := float64(x) - cx
			// Inverse mapping: where in the source does this output
			// pixel come from (rotate by -angle in screen terms).
			srcX := dx*cos - dy*sin + cx
			srcY := dx*sin + dy*cos + cy
			out.Pix[y*out.Stride+x] = sampleBilinear(img, srcX, srcY, bgVal)
		}
	}
	return out
}

// sampleBilinear reads a sub-pixel value with bilinear interpolation,
// returning bg for coordinates outside the image.
func sampleBilinear(img *image.Gray, x, y float64, bg uint8) uint8 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	at := func(px, py int) float64 {
		if px < 0 || px >= width || py < 0 || py >= height {
			return float64(bg)
		}
		return float64(img.GrayAt(bounds.Min.X+px, bounds.Min.Y+py).Y)
	}

	top := (1-fx)*at(x0, y0) + fx*at(x0+1, y0)
	bot := (1-fx)*at(x0, y0+1) + fx*at(x0+1, y0+1)
	return uint8(clamp(int(math.Round((1-fy)*top+fy*bot)), 0, 255))
}

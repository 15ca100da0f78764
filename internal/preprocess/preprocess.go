package preprocess

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// Preprocess runs the full normalization pipeline over img and returns a
// single-channel result sized per opts.
//
// The pipeline is deterministic: the same image and Options always yield a
// bit-identical output. Degenerate inputs (tiny images, blank content, no
// detectable lines) never cause an error; each optional step falls back to
// passing the image through unchanged.
func Preprocess(img image.Image, opts Options) *image.Gray {
	gray := Grayscale(img)

	if opts.BlurRadius > 0 {
		gray = toGray(blur.Gaussian(gray, opts.BlurRadius))
	}

	switch opts.Mode {
	case ModeAdaptive:
		bin := AdaptiveThreshold(gray, opts.AdaptiveWindow, opts.AdaptiveC)
		if opts.Deskew {
			// Ink is white on black here, so rotation fills with black.
			bin, _ = Deskew(bin, color.Black, opts)
		}
		if opts.MorphOpen {
			bin = morphOpen(bin)
		}
		gray = bin
	default:
		enhanced := CLAHE(gray, opts.CLAHETiles, opts.CLAHEClipLimit)
		if opts.Deskew {
			enhanced, _ = Deskew(enhanced, color.White, opts)
		}
		gray = enhanced
	}

	return resizeToWidth(gray, opts)
}

// Grayscale reduces an image to a single luminance channel using the
// ITU-R BT.601 weights (0.299 R + 0.587 G + 0.114 B).
func Grayscale(img image.Image) *image.Gray {
	return toGray(imaging.Grayscale(img))
}

// resizeToWidth scales the image to opts.TargetWidth preserving aspect
// ratio. Downscaling uses box (area-averaging) resampling to avoid
// aliasing; upscaling uses Catmull-Rom. A non-positive target or a
// ShrinkOnly pass on an already-small image returns the input unchanged.
func resizeToWidth(gray *image.Gray, opts Options) *image.Gray {
	w := gray.Bounds().Dx()
	if opts.TargetWidth <= 0 || w == opts.TargetWidth {
		return gray
	}
	if opts.ShrinkOnly && w < opts.TargetWidth {
		return gray
	}
	filter := imaging.Box
	if w < opts.TargetWidth {
		filter = imaging.CatmullRom
	}
	return toGray(imaging.Resize(gray, opts.TargetWidth, 0, filter))
}

// morphOpen removes isolated speckle from a binary image with a 3x3
// erosion followed by a 3x3 dilation.
func morphOpen(bin *image.Gray) *image.Gray {
	return toGray(effect.Dilate(effect.Erode(bin, 1), 1))
}

// toGray converts any image to an 8-bit single-channel image. Inputs that
// are already grayscale (equal channels) pass through value-exact.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			out.SetGray(x-bounds.Min.X, y-bounds.Min.Y, c)
		}
	}
	return out
}

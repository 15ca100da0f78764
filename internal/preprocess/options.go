package preprocess

// Mode selects the contrast-handling strategy for the pipeline.
type Mode string

const (
	// ModeCLAHE keeps a grayscale image and applies clip-limited adaptive
	// histogram equalization. Default.
	ModeCLAHE Mode = "clahe"

	// ModeAdaptive binarizes the image with a mean-offset adaptive
	// threshold (ink rendered white on black) and cleans the result with
	// a morphological opening.
	ModeAdaptive Mode = "adaptive"
)

// Options holds the tunable parameters of the preprocessing pipeline.
//
// The zero value is not useful; start from DefaultOptions and override
// individual fields as needed. All parameters are plain values, so an
// Options can be shared between goroutines.
type Options struct {
	// Mode selects grayscale-CLAHE or binarizing-adaptive processing.
	Mode Mode

	// BlurRadius is the Gaussian smoothing radius in pixels. Zero or
	// negative disables smoothing.
	BlurRadius float64

	// CLAHEClipLimit bounds per-tile histogram amplification. Values are
	// multiples of the uniform bin height; 2.0 matches the conventional
	// default. Only used in ModeCLAHE.
	CLAHEClipLimit float64

	// CLAHETiles is the tile grid dimension (CLAHETiles x CLAHETiles).
	CLAHETiles int

	// AdaptiveWindow is the side length of the local mean window used by
	// the adaptive threshold. Must be odd; even values are rounded up.
	AdaptiveWindow int

	// AdaptiveC is subtracted from the local mean before comparison.
	AdaptiveC int

	// Deskew enables skew estimation and correction.
	Deskew bool

	// SkewMinDeg is the smallest absolute skew worth correcting; estimates
	// at or below it leave the image untouched.
	SkewMinDeg float64

	// SkewMaxDeg is the sanity bound; estimates at or beyond it are
	// treated as misdetections and ignored.
	SkewMaxDeg float64

	// HoughThreshold is the minimum accumulator vote count for a line to
	// participate in skew estimation.
	HoughThreshold int

	// HoughMaxPeaks caps how many of the strongest lines contribute to
	// the skew estimate.
	HoughMaxPeaks int

	// MorphOpen enables the erode-then-dilate speckle cleanup. Only
	// meaningful for binarized output.
	MorphOpen bool

	// TargetWidth is the output width in pixels. Height follows from the
	// input aspect ratio.
	TargetWidth int

	// ShrinkOnly skips the resize when the image is already at or below
	// TargetWidth, preserving detail in small inputs.
	ShrinkOnly bool
}

// DefaultOptions returns the standard parameter set for the given mode.
//
// ModeCLAHE follows the gentle variant: light 3x3-equivalent blur, 8x8
// CLAHE tiles with clip limit 2.0, shrink-only resize to 800 pixels.
// ModeAdaptive follows the binarizing variant: stronger blur, 11-pixel
// mean window with offset 2, morphological opening, and an unconditional
// resize to 1500 pixels. Any other mode falls back to ModeCLAHE.
func DefaultOptions(mode Mode) Options {
	opts := Options{
		Mode:           ModeCLAHE,
		BlurRadius:     1,
		CLAHEClipLimit: 2.0,
		CLAHETiles:     8,
		AdaptiveWindow: 11,
		AdaptiveC:      2,
		Deskew:         true,
		SkewMinDeg:     0.5,
		SkewMaxDeg:     45,
		HoughThreshold: 200,
		HoughMaxPeaks:  20,
		TargetWidth:    800,
		ShrinkOnly:     true,
	}
	if mode == ModeAdaptive {
		opts.Mode = ModeAdaptive
		opts.BlurRadius = 2
		opts.MorphOpen = true
		opts.TargetWidth = 1500
		opts.ShrinkOnly = false
	}
	return opts
}

// Package preprocess normalizes photographs of handwritten or printed
// equations before they are handed to a LaTeX recognition model.
//
// The pipeline is a fixed, linear sequence of classical image operations:
//
//  1. Grayscale conversion (luminance)
//  2. Gaussian smoothing to suppress sensor and compression noise
//  3. Local contrast enhancement (CLAHE) or adaptive thresholding,
//     depending on the selected Mode
//  4. Optional deskew via a Hough line transform over a binarized copy
//  5. Morphological opening to remove thresholding speckle (binary mode)
//  6. Resize to a fixed target width, preserving aspect ratio
//
// # Determinism
//
// Preprocess is a pure function: given the same input image and Options it
// always produces a bit-identical output. It holds no state between calls
// and is safe to run concurrently on independent images.
//
// # Failure Policy
//
// Degenerate content never aborts the pipeline. If skew estimation finds no
// line segments, or the estimated angle falls outside the configured bounds,
// the deskew step is silently skipped and the image passes through
// unrotated. Tiny inputs (down to 1x1) survive every step.
//
// # Modes
//
// ModeCLAHE keeps the image grayscale and enhances local contrast with a
// clip-limited tile histogram equalization; recognition models trained on
// rendered formulas tend to prefer this gentler treatment. ModeAdaptive
// produces a binarized (ink-on-black) image using a mean-offset adaptive
// threshold, which works better for low-contrast whiteboard photos. The
// two modes also default to different target widths (800 vs 1500 pixels).
package preprocess

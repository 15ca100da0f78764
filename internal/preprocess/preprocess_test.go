package preprocess

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// createTestImage creates an RGBA image filled with a single color
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createEquationImage creates a white image with black horizontal strokes
// and a few short vertical ticks, a stand-in for a printed equation line.
func createEquationImage(width, height int) *image.RGBA {
	img := createTestImage(width, height, color.White)

	// Long horizontal strokes (fraction bars, equals signs).
	for _, y := range []int{height / 3, height / 2, 2 * height / 3} {
		for x := width / 10; x < width-width/10; x++ {
			img.Set(x, y, color.Black)
		}
	}
	// Short vertical ticks. Step stays >= 1 so sub-8px widths terminate.
	tick := width / 8
	if tick < 1 {
		tick = 1
	}
	for x := width / 4; x < width-width/4; x += tick {
		for y := height/2 - height/8; y < height/2+height/8; y++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestPreprocess_Deterministic(t *testing.T) {
	img := createEquationImage(400, 160)

	for _, mode := range []Mode{ModeCLAHE, ModeAdaptive} {
		opts := DefaultOptions(mode)
		a := Preprocess(img, opts)
		b := Preprocess(img, opts)

		if !a.Bounds().Eq(b.Bounds()) {
			t.Fatalf("mode %s: bounds differ between runs: %v vs %v", mode, a.Bounds(), b.Bounds())
		}
		if !bytes.Equal(a.Pix, b.Pix) {
			t.Errorf("mode %s: output is not bit-identical between runs", mode)
		}
	}
}

func TestPreprocess_TargetWidth(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"landscape", 1200, 400},
		{"portrait", 300, 900},
		{"small", 40, 30},
		{"narrow", 5, 40},
		{"single pixel", 1, 1},
	}

	opts := DefaultOptions(ModeAdaptive) // unconditional resize
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createEquationImage(tt.width, tt.height)
			out := Preprocess(img, opts)

			if got := out.Bounds().Dx(); got != opts.TargetWidth {
				t.Errorf("output width = %d, want %d", got, opts.TargetWidth)
			}

			wantH := (tt.height*opts.TargetWidth + tt.width/2) / tt.width
			gotH := out.Bounds().Dy()
			if gotH < wantH-1 || gotH > wantH+1 {
				t.Errorf("output height = %d, want ~%d (aspect preserved)", gotH, wantH)
			}
		})
	}
}

func TestPreprocess_ShrinkOnly(t *testing.T) {
	opts := DefaultOptions(ModeCLAHE)
	img := createEquationImage(400, 160) // below the 800px target

	out := Preprocess(img, opts)
	if got := out.Bounds().Dx(); got != 400 {
		t.Errorf("shrink-only pipeline resized a small image: width %d, want 400", got)
	}

	big := createEquationImage(1600, 400)
	out = Preprocess(big, opts)
	if got := out.Bounds().Dx(); got != opts.TargetWidth {
		t.Errorf("large image width = %d, want %d", got, opts.TargetWidth)
	}
}

func TestPreprocess_BinaryOutput(t *testing.T) {
	img := createEquationImage(600, 200)

	// Resampling blends binary edges, so pin the target width to the
	// input width; every other adaptive-mode stage must keep the image
	// strictly two-level.
	opts := DefaultOptions(ModeAdaptive)
	opts.TargetWidth = 600
	out := Preprocess(img, opts)

	for i, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d has intermediate value %d, want 0 or 255", i, v)
		}
	}
}

func TestGrayscale_UniformLuminance(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want int
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"red", color.RGBA{255, 0, 0, 255}, 76},    // 0.299 * 255
		{"green", color.RGBA{0, 255, 0, 255}, 150}, // 0.587 * 255
		{"blue", color.RGBA{0, 0, 255, 255}, 29},   // 0.114 * 255
		{"gray", color.RGBA{128, 128, 128, 255}, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gray := Grayscale(createTestImage(20, 20, tt.c))

			for y := 0; y < 20; y++ {
				for x := 0; x < 20; x++ {
					got := int(gray.GrayAt(x, y).Y)
					if got < tt.want-2 || got > tt.want+2 {
						t.Fatalf("pixel (%d,%d) = %d, want %d +-2", x, y, got, tt.want)
					}
				}
			}
		})
	}
}

func TestPreprocess_TinyInputsSurvive(t *testing.T) {
	for _, mode := range []Mode{ModeCLAHE, ModeAdaptive} {
		opts := DefaultOptions(mode)
		for _, size := range []int{1, 2, 3, 7} {
			img := createTestImage(size, size, color.White)
			out := Preprocess(img, opts)
			if out == nil || out.Bounds().Dx() == 0 || out.Bounds().Dy() == 0 {
				t.Errorf("mode %s: %dx%d input produced empty output", mode, size, size)
			}
		}
	}
}

func TestPreprocess_ZeroBlurRadius(t *testing.T) {
	opts := DefaultOptions(ModeCLAHE)
	opts.BlurRadius = 0

	img := createEquationImage(200, 100)
	out := Preprocess(img, opts)
	if out.Bounds().Dx() != 200 {
		t.Errorf("width = %d, want 200", out.Bounds().Dx())
	}
}

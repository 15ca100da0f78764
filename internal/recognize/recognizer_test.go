package recognize

import (
	"image"
	"image/color"
	"testing"
)

func createTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestCleanLaTeX(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `\frac{a}{b}`, `\frac{a}{b}`},
		{"whitespace", "  x^2 + y^2 \n", "x^2 + y^2"},
		{"inline dollars", `$e^{i\pi}$`, `e^{i\pi}`},
		{"display dollars", `$$\int_0^1 f$$`, `\int_0^1 f`},
		{"brackets", `\[ a = b \]`, "a = b"},
		{"code fence", "```\nx+1\n```", "x+1"},
		{"latex fence", "```latex\n\\alpha\n```", `\alpha`},
		{"tex fence", "```tex\n\\beta\n```", `\beta`},
		{"fence with dollars", "```latex\n$y = mx$\n```", "y = mx"},
		{"lone dollar kept", "$", "$"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanLaTeX(tc.in); got != tc.want {
				t.Errorf("cleanLaTeX(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := encodePNG(createTestImage(8, 8))
	if err != nil {
		t.Fatalf("encodePNG: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("output does not look like a PNG stream")
	}
}

package recognize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Recognizer converts a normalized equation image into a LaTeX string.
//
// Implementations are opaque: a non-nil error means the request failed and
// the caller should report a generic recognition failure. There is no
// partial result and no retry contract.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// encodePNG serializes an image for transport to a model backend.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// cleanLaTeX strips the wrappers model backends like to add around the
// actual formula: markdown code fences and $ / $$ / \[ \] math delimiters.
func cleanLaTeX(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```latex")
		s = strings.TrimPrefix(s, "```tex")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	for _, pair := range [][2]string{{"$$", "$$"}, {"\\[", "\\]"}, {"$", "$"}} {
		if strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) && len(s) > len(pair[0])+len(pair[1]) {
			s = strings.TrimSpace(s[len(pair[0]) : len(s)-len(pair[1])])
			break
		}
	}
	return s
}

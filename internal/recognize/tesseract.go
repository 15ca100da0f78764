package recognize

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes printed equations with the local Tesseract engine.
//
// Tesseract and its language data must be installed on the system
// (e.g. apt-get install tesseract-ocr tesseract-ocr-eng). Recognition
// quality on handwritten input is poor; this backend is intended for
// printed material and for environments without a model server.
type Tesseract struct {
	// Language is the Tesseract language code, "eng" by default. The
	// "equ" math training data can be combined as "eng+equ" when
	// installed.
	Language string
}

// NewTesseract creates a Tesseract recognizer for the given language code.
// An empty language defaults to "eng".
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{Language: language}
}

// Recognize writes the image to a temporary PNG (the engine wants a file
// path) and returns the recognized text.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("wb2latex-%s.png", uuid.NewString()))
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	defer os.Remove(tmpPath)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.Language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	text = cleanLaTeX(text)
	if text == "" {
		return "", fmt.Errorf("no text recognized")
	}
	return text, nil
}

// Package config resolves runtime configuration from the environment.
//
// Outside production a .env file in the working directory is loaded first
// (via godotenv), then individual variables override the built-in defaults.
package config

import (
	"fmt"
	"image"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/skatari172/CV-FinalProject/internal/preprocess"
	"github.com/skatari172/CV-FinalProject/internal/recognize"
)

// Recognizer backend names accepted in WB2LATEX_RECOGNIZER.
const (
	BackendPix2Tex   = "pix2tex"
	BackendTesseract = "tesseract"
	BackendVision    = "vision"
)

// Config holds everything the CLI and web front ends need at startup.
type Config struct {
	// Addr is the HTTP listen address for the web front end.
	Addr string

	// Backend selects the recognition model implementation.
	Backend string

	// Pix2TexURL is the base URL of the pix2tex inference server.
	Pix2TexURL string

	// TesseractLang is the Tesseract language code.
	TesseractLang string

	// OpenAIKey, OpenAIModel and OpenAIBaseURL configure the vision-LLM
	// backend.
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	// Mode is the preprocessing mode: "clahe", "adaptive" or "auto".
	Mode string

	// TargetWidth overrides the mode's default output width when > 0.
	TargetWidth int
}

// Load reads configuration from the environment, applying defaults for
// everything that is unset. A .env file is honored unless APP_ENV is
// "production".
func Load() Config {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := Config{
		Addr:          envOr("WB2LATEX_ADDR", ":5001"),
		Backend:       envOr("WB2LATEX_RECOGNIZER", BackendPix2Tex),
		Pix2TexURL:    envOr("PIX2TEX_URL", "http://localhost:8502"),
		TesseractLang: envOr("TESSERACT_LANG", "eng"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		Mode:          envOr("WB2LATEX_MODE", string(preprocess.ModeCLAHE)),
	}
	if w, err := strconv.Atoi(os.Getenv("WB2LATEX_TARGET_WIDTH")); err == nil && w > 0 {
		cfg.TargetWidth = w
	}
	return cfg
}

// Recognizer constructs the configured recognition backend, validating
// the settings it depends on.
func (c Config) Recognizer() (recognize.Recognizer, error) {
	switch c.Backend {
	case BackendPix2Tex:
		if c.Pix2TexURL == "" {
			return nil, fmt.Errorf("PIX2TEX_URL must be set for the pix2tex backend")
		}
		return recognize.NewPix2Tex(c.Pix2TexURL), nil
	case BackendTesseract:
		return recognize.NewTesseract(c.TesseractLang), nil
	case BackendVision:
		if c.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY must be set for the vision backend")
		}
		return recognize.NewVisionLLM(c.OpenAIKey, c.OpenAIModel, c.OpenAIBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown recognizer backend %q", c.Backend)
	}
}

// OptionsFor resolves the preprocessing options for one image. In "auto"
// mode the image's global contrast picks between CLAHE and adaptive
// thresholding; otherwise the configured mode's defaults apply.
func (c Config) OptionsFor(img image.Image) preprocess.Options {
	mode := preprocess.Mode(c.Mode)
	if c.Mode == "auto" {
		mode = preprocess.SuggestMode(img)
	}
	opts := preprocess.DefaultOptions(mode)
	if c.TargetWidth > 0 {
		opts.TargetWidth = c.TargetWidth
	}
	return opts
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

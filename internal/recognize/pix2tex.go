package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Pix2Tex calls a pix2tex inference server over HTTP.
//
// The server is expected to expose POST {base}/predict/ accepting a
// multipart form with the image in the "file" field and answering with a
// JSON-encoded LaTeX string (the pix2tex API module's native shape) or an
// object carrying a "latex" field.
type Pix2Tex struct {
	baseURL string
	client  *http.Client
}

// NewPix2Tex creates a client for the inference server at baseURL
// (e.g. "http://localhost:8502"). Trailing slashes are tolerated.
func NewPix2Tex(baseURL string) *Pix2Tex {
	return &Pix2Tex{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Recognize uploads the image and returns the predicted LaTeX string.
func (p *Pix2Tex) Recognize(ctx context.Context, img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "equation.png")
	if err != nil {
		return "", fmt.Errorf("failed to build multipart request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build multipart request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/predict/", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("model server unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model server returned status %d", resp.StatusCode)
	}

	// The pix2tex API answers with a bare JSON string; be liberal and
	// also accept an object with a "latex" field.
	var latex string
	if err := json.Unmarshal(raw, &latex); err != nil {
		var obj struct {
			Latex string `json:"latex"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil || obj.Latex == "" {
			return "", fmt.Errorf("unrecognized model response: %s", strings.TrimSpace(string(raw)))
		}
		latex = obj.Latex
	}

	latex = cleanLaTeX(latex)
	if latex == "" {
		return "", fmt.Errorf("model returned an empty result")
	}
	return latex, nil
}

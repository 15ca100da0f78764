package recognize

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// visionPrompt asks the model for the bare formula so the response needs
// no further parsing beyond delimiter stripping.
const visionPrompt = "Transcribe the mathematical equation in this image to LaTeX. " +
	"Reply with the LaTeX source only, no delimiters, no explanation."

// VisionLLM recognizes equations with a vision-capable chat model through
// the OpenAI-compatible completions API.
type VisionLLM struct {
	client openai.Client
	model  string
}

// NewVisionLLM creates a recognizer backed by the given model name
// (e.g. "gpt-4o-mini"). apiKey is required; baseURL is optional and
// allows pointing at any OpenAI-compatible endpoint.
func NewVisionLLM(apiKey, model, baseURL string) *VisionLLM {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &VisionLLM{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Recognize sends the image as a base64 data URL and returns the model's
// transcription.
func (v *VisionLLM) Recognize(ctx context.Context, img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	completion, err := v.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(v.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(visionPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision model request failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("vision model returned no choices")
	}

	latex := cleanLaTeX(completion.Choices[0].Message.Content)
	if latex == "" {
		return "", fmt.Errorf("vision model returned an empty result")
	}
	return latex, nil
}

package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultImageModel = "gemini-2.5-flash-image"

// GeminiRenderer requests inline image output from Gemini image models.
type GeminiRenderer struct {
	apiKey  string
	model   string
	timeout time.Duration
}

// NewGeminiRenderer constructs a renderer able to request inline images.
func NewGeminiRenderer(apiKey, model string, timeout time.Duration) *GeminiRenderer {
	if strings.TrimSpace(model) == "" {
		model = defaultImageModel
	}
	model = strings.TrimPrefix(strings.TrimSpace(model), "models/")
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiRenderer{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
	}
}

// Render requests a preview image for the given prompt. The reference
// image, when present, is sent inline ahead of the prompt text.
func (g *GeminiRenderer) Render(ctx context.Context, payload Payload) (Result, error) {
	if g == nil || strings.TrimSpace(g.apiKey) == "" {
		return Result{}, fmt.Errorf("render: gemini renderer unavailable")
	}
	if strings.TrimSpace(payload.Prompt) == "" {
		return Result{}, fmt.Errorf("render: empty prompt")
	}

	childCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := genai.NewClient(childCtx, &genai.ClientConfig{
		APIKey: g.apiKey,
	})
	if err != nil {
		return Result{}, fmt.Errorf("render: create genai client: %w", err)
	}

	contents := genai.Text(payload.Prompt)
	if ref := strings.TrimSpace(payload.Reference); ref != "" {
		raw, err := decodeReference(ref)
		if err != nil {
			return Result{}, err
		}
		contents = []*genai.Content{genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(raw, "image/png"),
			genai.NewPartFromText(payload.Prompt),
		}, genai.RoleUser)}
	}

	resp, err := client.Models.GenerateContent(childCtx, g.model, contents, nil)
	if err != nil {
		return Result{}, fmt.Errorf("render: generate failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Result{}, fmt.Errorf("render: no candidates returned")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mime := part.InlineData.MIMEType
		if strings.TrimSpace(mime) == "" {
			mime = "image/png"
		}
		return Result{
			Data: base64.StdEncoding.EncodeToString(part.InlineData.Data),
			MIME: mime,
		}, nil
	}
	return Result{}, fmt.Errorf("render: response carried no image data")
}

func decodeReference(raw string) ([]byte, error) {
	if strings.HasPrefix(raw, "data:") {
		parts := strings.SplitN(raw, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("render: invalid data URL")
		}
		raw = parts[1]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("render: decode reference: %w", err)
	}
	return data, nil
}

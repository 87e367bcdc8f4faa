package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	openRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	appTitle      = "Alquimia Criativa"

	// DefaultModel is used when neither options nor context carry an override.
	DefaultModel = "google/gemini-3-flash-preview"
)

// ErrAPIKeyMissing signals an absent or placeholder credential. It is the
// only failure the orchestration layer treats as fatal, and it is raised
// before any network I/O.
var ErrAPIKeyMissing = errors.New("llm: API key missing or placeholder")

// CompletionOptions tune a single chat-completion request. A non-empty
// Schema makes the transport demand raw JSON matching it.
type CompletionOptions struct {
	Model       string
	Temperature float64
	Schema      json.RawMessage
}

// Client is the chat transport consumed by the generation package.
// Ready reports whether the credential is usable; callers invoke it before
// building a request so a misconfigured deployment fails fast.
type Client interface {
	Ready() error
	ChatCompletion(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (string, error)
}

// OpenRouterClient speaks the OpenRouter chat-completions API.
type OpenRouterClient struct {
	apiKey  string
	referer string
	baseURL string
	client  *http.Client
}

// NewOpenRouterClient constructs a client. referer is optional and is sent
// as the HTTP-Referer attribution header when present.
func NewOpenRouterClient(apiKey, referer string) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey:  apiKey,
		referer: referer,
		baseURL: openRouterURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// Ready validates the configured credential.
func (c *OpenRouterClient) Ready() error {
	key := strings.TrimSpace(c.apiKey)
	if key == "" || strings.Contains(key, "YOUR_KEY") {
		return ErrAPIKeyMissing
	}
	return nil
}

// ChatCompletion posts the messages and returns the first choice content.
func (c *OpenRouterClient) ChatCompletion(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (string, error) {
	if err := c.Ready(); err != nil {
		return "", err
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("openrouter: no messages to send")
	}

	finalMessages := messages
	if len(opts.Schema) > 0 {
		finalMessages = WithSchemaInstruction(messages, opts.Schema)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	if override := modelFromContext(ctx); override != "" {
		model = override
	}

	payload := map[string]any{
		"model":       model,
		"messages":    finalMessages,
		"temperature": opts.Temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal openrouter payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Title", appTitle)
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var failure struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode, failure.Error.Message)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return completion.Choices[0].Message.Content, nil
}

// WithSchemaInstruction returns a copy of messages where the last system
// message carries a strict raw-JSON instruction for the given schema. When
// no system message exists a new one is inserted at the front. The model
// cannot be trusted with the schema alone, so the instruction explicitly
// forbids markdown fences.
func WithSchemaInstruction(messages []ChatMessage, schema json.RawMessage) []ChatMessage {
	pretty := schema
	var buf bytes.Buffer
	if err := json.Indent(&buf, schema, "", "  "); err == nil {
		pretty = buf.Bytes()
	}
	instruction := fmt.Sprintf(
		"\n\nCRITICAL: Output MUST be valid JSON following this schema:\n%s\n\nDo not include markdown formatting like ```json. Return RAW JSON only.",
		pretty,
	)

	out := make([]ChatMessage, len(messages))
	copy(out, messages)

	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Role != RoleSystem {
			continue
		}
		parts := make([]ContentPart, len(out[i].Parts))
		copy(parts, out[i].Parts)
		if n := len(parts); n > 0 && parts[n-1].Type == PartText {
			parts[n-1].Text += instruction
		} else {
			parts = append(parts, TextPart(instruction))
		}
		out[i].Parts = parts
		return out
	}

	return append([]ChatMessage{Text(RoleSystem, strings.TrimSpace(instruction))}, out...)
}

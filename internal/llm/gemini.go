package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// GeminiClient speaks the Google Generative Language generateContent API.
// It implements the same Client contract as the OpenRouter transport so
// the orchestration layer stays provider-agnostic.
type GeminiClient struct {
	apiKey      string
	model       string
	client      *http.Client
	tokenSource oauth2.TokenSource
}

// NewGeminiClient constructs a Gemini transport. Either an API key or an
// oauth2 token source must be supplied.
func NewGeminiClient(apiKey, model string, timeout time.Duration, tokenSource oauth2.TokenSource) *GeminiClient {
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiClient{
		apiKey:      apiKey,
		model:       normalizeGeminiModel(model),
		client:      &http.Client{Timeout: timeout},
		tokenSource: tokenSource,
	}
}

// Ready validates that some credential is configured.
func (c *GeminiClient) Ready() error {
	if c.tokenSource != nil {
		return nil
	}
	key := strings.TrimSpace(c.apiKey)
	if key == "" || strings.Contains(key, "YOUR_KEY") {
		return ErrAPIKeyMissing
	}
	return nil
}

// ChatCompletion translates the chat-completions message list into Gemini
// contents and returns the first candidate text.
func (c *GeminiClient) ChatCompletion(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (string, error) {
	if err := c.Ready(); err != nil {
		return "", err
	}

	finalMessages := messages
	if len(opts.Schema) > 0 {
		finalMessages = WithSchemaInstruction(messages, opts.Schema)
	}

	var systemPrompts []string
	var contents []map[string]any

	for _, msg := range finalMessages {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		if role == RoleSystem {
			systemPrompts = append(systemPrompts, msg.JoinedText())
			continue
		}
		if role == RoleAssistant {
			role = "model"
		} else {
			role = "user"
		}

		var parts []map[string]any
		for _, part := range msg.Parts {
			switch part.Type {
			case PartText:
				parts = append(parts, map[string]any{"text": part.Text})
			case PartImage:
				parts = append(parts, map[string]any{
					"inline_data": map[string]any{
						"mime_type": part.MIME,
						"data":      part.Data,
					},
				})
			}
		}
		if len(parts) == 0 {
			continue
		}
		contents = append(contents, map[string]any{"role": role, "parts": parts})
	}

	if len(contents) == 0 {
		return "", fmt.Errorf("gemini: missing user or assistant messages")
	}

	payload := map[string]any{
		"contents": contents,
		"generationConfig": map[string]any{
			"temperature": opts.Temperature,
		},
	}
	if len(systemPrompts) > 0 {
		payload["systemInstruction"] = map[string]any{
			"parts": []map[string]string{
				{"text": strings.Join(systemPrompts, "\n\n")},
			},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini payload: %w", err)
	}

	model := c.model
	if override := modelFromContext(ctx); override != "" {
		model = normalizeGeminiModel(override)
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
		url.PathEscape(model),
	)
	if c.tokenSource == nil {
		endpoint = fmt.Sprintf("%s?key=%s", endpoint, url.QueryEscape(c.apiKey))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokenSource != nil {
		token, err := c.tokenSource.Token()
		if err != nil {
			return "", fmt.Errorf("gemini: fetch oauth token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var failure struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, failure.Error.Message)
	}

	var completion struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("gemini decode response: %w", err)
	}

	if len(completion.Candidates) == 0 || len(completion.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var texts []string
	for _, part := range completion.Candidates[0].Content.Parts {
		if trimmed := strings.TrimSpace(part.Text); trimmed != "" {
			texts = append(texts, trimmed)
		}
	}
	if len(texts) == 0 {
		return "", fmt.Errorf("gemini candidate missing text")
	}
	return strings.Join(texts, "\n\n"), nil
}

func normalizeGeminiModel(model string) string {
	clean := strings.TrimSpace(model)
	clean = strings.TrimPrefix(clean, "models/")
	if clean == "" {
		return "gemini-3-flash-preview"
	}
	return clean
}

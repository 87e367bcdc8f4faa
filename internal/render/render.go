// Package render turns finished prompts into preview images.
package render

import "context"

// Result is a rendered preview: inline payload when the renderer returns
// bytes, or a stored URL when the pipeline uploads on the way out.
type Result struct {
	Data string `json:"data,omitempty"`
	MIME string `json:"mime,omitempty"`
	URL  string `json:"url,omitempty"`
	Key  string `json:"key,omitempty"`
}

// Payload describes one render request. Reference carries an optional
// base image as raw base64 or a data URL.
type Payload struct {
	Prompt       string
	Reference    string
	ReferenceURL string
}

// Renderer produces a preview image for a prompt.
type Renderer interface {
	Render(ctx context.Context, payload Payload) (Result, error)
}

package llm

import (
	"encoding/json"
	"fmt"
)

// Message roles accepted by the chat-completions wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content part discriminators.
const (
	PartText  = "text"
	PartImage = "image_url"
)

// ContentPart is one segment of a multi-modal message: either plain text
// or an inline base64 image.
type ContentPart struct {
	Type string
	Text string
	MIME string
	Data string
}

// TextPart wraps a text segment.
func TextPart(text string) ContentPart {
	return ContentPart{Type: PartText, Text: text}
}

// ImagePart wraps base64-encoded image bytes with their media type.
func ImagePart(mime, base64Data string) ContentPart {
	return ContentPart{Type: PartImage, MIME: mime, Data: base64Data}
}

// DataURL renders the part as a data URL for providers that inline images.
func (p ContentPart) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", p.MIME, p.Data)
}

// ChatMessage is a single chat turn. Content is an ordered list of parts;
// a message holding exactly one text part marshals as a plain string so
// the wire body matches what text-only providers expect.
type ChatMessage struct {
	Role  string
	Parts []ContentPart
}

// Text builds a single-part text message.
func Text(role, text string) ChatMessage {
	return ChatMessage{Role: role, Parts: []ContentPart{TextPart(text)}}
}

type wireImageURL struct {
	URL string `json:"url"`
}

type wirePart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *wireImageURL `json:"image_url,omitempty"`
}

// MarshalJSON implements the OpenRouter/OpenAI content contract: plain
// string content for text-only messages, an array of typed parts otherwise.
func (m ChatMessage) MarshalJSON() ([]byte, error) {
	if len(m.Parts) == 1 && m.Parts[0].Type == PartText {
		return json.Marshal(struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}{Role: m.Role, Content: m.Parts[0].Text})
	}

	parts := make([]wirePart, 0, len(m.Parts))
	for _, p := range m.Parts {
		switch p.Type {
		case PartText:
			parts = append(parts, wirePart{Type: PartText, Text: p.Text})
		case PartImage:
			parts = append(parts, wirePart{Type: PartImage, ImageURL: &wireImageURL{URL: p.DataURL()}})
		default:
			return nil, fmt.Errorf("llm: unknown content part type %q", p.Type)
		}
	}
	return json.Marshal(struct {
		Role    string     `json:"role"`
		Content []wirePart `json:"content"`
	}{Role: m.Role, Content: parts})
}

// AppendText adds a text segment to the message content.
func (m *ChatMessage) AppendText(text string) {
	m.Parts = append(m.Parts, TextPart(text))
}

// AppendImage adds an inline image segment to the message content.
func (m *ChatMessage) AppendImage(mime, base64Data string) {
	m.Parts = append(m.Parts, ImagePart(mime, base64Data))
}

// JoinedText concatenates the text segments of the message.
func (m ChatMessage) JoinedText() string {
	var out string
	for _, p := range m.Parts {
		if p.Type != PartText {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += p.Text
	}
	return out
}

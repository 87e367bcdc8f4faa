package generation

import (
	"context"
	"errors"

	"alquimia/internal/llm"
)

// stubClient scripts the chat transport for service tests.
type stubClient struct {
	readyErr error
	reply    string
	replyErr error

	calls    int
	messages []llm.ChatMessage
	opts     llm.CompletionOptions
}

func (s *stubClient) Ready() error {
	return s.readyErr
}

func (s *stubClient) ChatCompletion(_ context.Context, messages []llm.ChatMessage, opts llm.CompletionOptions) (string, error) {
	s.calls++
	s.messages = messages
	s.opts = opts
	if s.replyErr != nil {
		return "", s.replyErr
	}
	return s.reply, nil
}

var errTransport = errors.New("connection reset")

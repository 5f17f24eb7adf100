package llm

import (
	"context"
)

// LLM represents a chat-completion model able to request tool calls
type LLM interface {
	// Chat generates a response based on the conversation history
	Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error)
}

// Response contains the model's response and additional metadata
type Response struct {
	Message Message
	Usage   Usage
}

// FirstToolCall returns the first tool call the model designated, if any.
// Additional calls in the same response are ignored by callers.
func (r Response) FirstToolCall() (ToolCall, bool) {
	if len(r.Message.ToolCalls) == 0 {
		return ToolCall{}, false
	}
	return r.Message.ToolCalls[0], true
}

// ChatFunc adapts a plain function to the LLM interface.
type ChatFunc func(ctx context.Context, messages []Message, opts ...Option) (Response, error)

func (f ChatFunc) Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error) {
	return f(ctx, messages, opts...)
}

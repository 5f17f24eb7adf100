package agentx

import (
	"context"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/toolx"
)

// Agent runs one user exchange: a model call with tools offered, at most
// one tool dispatch, and a final model call without tools.
type Agent struct {
	llm     llm.LLM
	tools   *toolx.Registry
	options []llm.Option
}

// AgentOption configures an Agent
type AgentOption func(*Agent)

// WithOptions adds LLM options to every model call
func WithOptions(options ...llm.Option) AgentOption {
	return func(a *Agent) {
		a.options = append(a.options, options...)
	}
}

// WithTools sets the tool registry offered on the first model call
func WithTools(tools *toolx.Registry) AgentOption {
	return func(a *Agent) {
		a.tools = tools
	}
}

// New creates a new agent
func New(model llm.LLM, opts ...AgentOption) *Agent {
	agent := &Agent{llm: model}
	for _, opt := range opts {
		opt(agent)
	}
	return agent
}

// Recorder observes the transcript entries an exchange produces, in order.
// Run keeps its own copy of the messages; the recorder mirrors them into
// whatever state the caller persists.
type Recorder interface {
	// ToolRequested is called with the assistant message carrying the call.
	ToolRequested(msg llm.Message)
	// ToolCompleted is called with the dispatched call and its result.
	ToolCompleted(call ToolCall, msg llm.Message)
}

// ToolCall is the record of the single dispatch of an exchange.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"function"`
	Arguments map[string]any `json:"arguments"`
	Result    toolx.Result   `json:"result"`
}

// Exchange is the outcome of Run.
type Exchange struct {
	Content  string
	ToolCall *ToolCall
	Usage    llm.Usage
}

// Run processes history (which already ends with the user message) and
// returns the final assistant content. Only the first tool call of the
// first response is honored.
func (a *Agent) Run(ctx context.Context, history []llm.Message, rec Recorder) (*Exchange, error) {
	messages := append([]llm.Message(nil), history...)

	options := append([]llm.Option(nil), a.options...)
	if a.tools != nil {
		if toolList := a.tools.Tools(); len(toolList) > 0 {
			options = append(options, llm.WithTools(toolList), llm.WithToolChoice(llm.ToolChoiceAuto))
		}
	}

	response, err := a.llm.Chat(ctx, messages, options...)
	if err != nil {
		return nil, ErrRegistry.NewWithCause(ErrModelCall, err)
	}
	exchange := &Exchange{Usage: response.Usage}

	call, ok := response.FirstToolCall()
	if !ok || a.tools == nil {
		exchange.Content = response.Message.Content
		return exchange, nil
	}

	if call.ID == "" {
		call.ID = "call_" + call.Function.Name
	}
	requested := llm.NewToolCallMessage(response.Message.Content, call)
	messages = append(messages, requested)
	rec.ToolRequested(requested)

	args, err := toolx.ParseArguments(call.Function.Arguments)
	if err != nil {
		// The call must still be answered or the history is no longer a valid prompt.
		failed := ToolCall{ID: call.ID, Name: call.Function.Name, Result: toolx.Fail("invalid tool arguments")}
		rec.ToolCompleted(failed, llm.NewToolMessage(call.ID, call.Function.Name, failed.Result.String()))
		return nil, ErrRegistry.NewWithCause(ErrArgumentParse, err).WithDetail("tool", call.Function.Name)
	}

	result := a.tools.Dispatch(ctx, call.Function.Name, args)
	done := ToolCall{ID: call.ID, Name: call.Function.Name, Arguments: args, Result: result}
	exchange.ToolCall = &done

	toolMsg := llm.NewToolMessage(call.ID, call.Function.Name, result.String())
	messages = append(messages, toolMsg)
	rec.ToolCompleted(done, toolMsg)

	final, err := a.llm.Chat(ctx, messages, a.options...)
	if err != nil {
		return exchange, ErrRegistry.NewWithCause(ErrModelCall, err)
	}
	exchange.Content = final.Message.Content
	exchange.Usage.PromptTokens += final.Usage.PromptTokens
	exchange.Usage.CompletionTokens += final.Usage.CompletionTokens
	exchange.Usage.TotalTokens += final.Usage.TotalTokens
	return exchange, nil
}

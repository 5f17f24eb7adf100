// Package conversation holds the state of chat sessions between a user and
// the travel assistant.
package conversation

import (
	"net/http"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/memoryx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is the function call carried by an assistant turn, or answered
// by a tool turn.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Turn is one entry of the prompt history.
type Turn struct {
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	ToolCall  *ToolCall  `json:"tool_call,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func stamp(t time.Time) *time.Time {
	return &t
}

func SystemTurn(content string) Turn {
	return Turn{Role: RoleSystem, Content: content}
}

func UserTurn(content string, at time.Time) Turn {
	return Turn{Role: RoleUser, Content: content, Timestamp: stamp(at)}
}

func AssistantTurn(content string, at time.Time) Turn {
	return Turn{Role: RoleAssistant, Content: content, Timestamp: stamp(at)}
}

// TurnFromMessage converts a tool-call or tool-result message produced
// during an exchange.
func TurnFromMessage(msg llm.Message) Turn {
	turn := Turn{Role: Role(msg.Role), Content: msg.Content}
	switch {
	case len(msg.ToolCalls) > 0:
		tc := msg.ToolCalls[0]
		turn.ToolCall = &ToolCall{ID: tc.ID, Name: tc.Function.Name, Arguments: tc.Function.Arguments}
	case msg.Role == llm.RoleTool:
		turn.ToolCall = &ToolCall{ID: msg.ToolCallID, Name: msg.Name}
	}
	return turn
}

// Message converts the turn to the model's message shape.
func (t Turn) Message() llm.Message {
	msg := llm.Message{Role: string(t.Role), Content: t.Content}
	if t.ToolCall == nil {
		return msg
	}
	if t.Role == RoleTool {
		msg.ToolCallID = t.ToolCall.ID
		msg.Name = t.ToolCall.Name
		return msg
	}
	msg.ToolCalls = []llm.ToolCall{{
		ID:   t.ToolCall.ID,
		Type: "function",
		Function: llm.FunctionCall{
			Name:      t.ToolCall.Name,
			Arguments: t.ToolCall.Arguments,
		},
	}}
	return msg
}

// State is the full history of one conversation. Turn 0 is always the
// system prompt.
type State struct {
	ID        string    `json:"id"`
	Turns     []Turn    `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewState(id, systemPrompt string, now time.Time) *State {
	return &State{
		ID:        id,
		Turns:     []Turn{SystemTurn(systemPrompt)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *State) Append(turns ...Turn) {
	s.Turns = append(s.Turns, turns...)
}

func (s *State) Len() int {
	return len(s.Turns)
}

// Messages returns the history as a model prompt. A tool result is only
// sent right after the assistant turn that requested it, and a tool call
// only with its result, so a truncated window never splits the pair.
func (s *State) Messages() []llm.Message {
	msgs := make([]llm.Message, 0, len(s.Turns))
	for i, t := range s.Turns {
		if t.requestsTool() && (i+1 >= len(s.Turns) || !s.Turns[i+1].answers(t)) {
			continue
		}
		if t.Role == RoleTool && (i == 0 || !t.answers(s.Turns[i-1])) {
			continue
		}
		msgs = append(msgs, t.Message())
	}
	return msgs
}

func (t Turn) requestsTool() bool {
	return t.Role == RoleAssistant && t.ToolCall != nil
}

// answers reports whether t is the tool result for call.
func (t Turn) answers(call Turn) bool {
	return t.Role == RoleTool && t.ToolCall != nil && call.requestsTool() && t.ToolCall.ID == call.ToolCall.ID
}

// Truncate applies the window, keeping the system prompt. It reports
// whether turns were dropped.
func (s *State) Truncate(w memoryx.Window) bool {
	if !w.Exceeded(len(s.Turns)) {
		return false
	}
	s.Turns = memoryx.Trim(w, s.Turns)
	return true
}

const (
	PreviewLength = 100
	EmptyPreview  = "New conversation"
)

// Summary is the listing view of a conversation.
type Summary struct {
	ID           string    `json:"conversation_id"`
	Preview      string    `json:"preview"`
	MessageCount int       `json:"message_count"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Summary previews the first user message.
func (s *State) Summary() Summary {
	preview := EmptyPreview
	for _, t := range s.Turns {
		if t.Role != RoleUser {
			continue
		}
		r := []rune(t.Content)
		preview = string(r[:min(len(r), PreviewLength)]) + "..."
		break
	}
	return Summary{
		ID:           s.ID,
		Preview:      preview,
		MessageCount: len(s.Turns),
		LastUpdated:  s.UpdatedAt,
	}
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("CONVERSATION")

var (
	CodeNotFound          = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Conversation not found")
	CodeEmptyMessage      = ErrRegistry.Register("EMPTY_MESSAGE", errx.TypeValidation, http.StatusBadRequest, "Message cannot be empty")
	CodeInvalidTransition = ErrRegistry.Register("INVALID_TRANSITION", errx.TypeInternal, http.StatusInternalServerError, "Invalid turn phase transition")
	CodeStore             = ErrRegistry.Register("STORE", errx.TypeInternal, http.StatusInternalServerError, "Conversation store failure")
)

func ErrNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}

func ErrEmptyMessage() *errx.Error {
	return ErrRegistry.New(CodeEmptyMessage)
}

func ErrStore(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStore, err)
}

package conversation

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/memoryx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestTruncateKeepsSystemPrompt(t *testing.T) {
	s := NewState("c1", "system prompt", epoch)
	for i := 1; i <= 22; i++ {
		s.Append(UserTurn(fmt.Sprintf("m%d", i), epoch))
	}
	require.Equal(t, 23, s.Len())

	assert.True(t, s.Truncate(memoryx.DefaultWindow()))
	require.Equal(t, 19, s.Len())
	assert.Equal(t, RoleSystem, s.Turns[0].Role)
	assert.Equal(t, "system prompt", s.Turns[0].Content)
	assert.Equal(t, "m5", s.Turns[1].Content)
	assert.Equal(t, "m22", s.Turns[18].Content)
}

func TestTruncateBelowLimit(t *testing.T) {
	s := NewState("c1", "sys", epoch)
	for i := 0; i < 19; i++ {
		s.Append(UserTurn("x", epoch))
	}
	assert.False(t, s.Truncate(memoryx.DefaultWindow()))
	assert.Equal(t, 20, s.Len())
}

func TestMessagesSkipsSplitToolPairs(t *testing.T) {
	call := llm.ToolCall{ID: "call_1", Type: "function", Function: llm.FunctionCall{Name: "get_weather", Arguments: `{"city":"Paris"}`}}
	other := llm.ToolCall{ID: "call_2", Type: "function", Function: llm.FunctionCall{Name: "get_weather", Arguments: `{"city":"Rome"}`}}

	s := NewState("c1", "sys", epoch)
	s.Append(
		TurnFromMessage(llm.NewToolMessage("call_0", "get_weather", `{"temperature":18}`)),
		AssistantTurn("It is 18 degrees.", epoch),
		UserTurn("And Paris?", epoch),
		TurnFromMessage(llm.NewToolCallMessage("", call)),
		TurnFromMessage(llm.NewToolMessage("call_1", "get_weather", `{"temperature":20}`)),
		AssistantTurn("It is 20 degrees.", epoch),
		TurnFromMessage(llm.NewToolCallMessage("", other)),
		AssistantTurn("I apologize", epoch),
	)

	msgs := s.Messages()
	roles := make([]string, 0, len(msgs))
	for _, m := range msgs {
		roles = append(roles, m.Role)
	}
	assert.Equal(t, []string{
		llm.RoleSystem, llm.RoleAssistant, llm.RoleUser,
		llm.RoleAssistant, llm.RoleTool, llm.RoleAssistant, llm.RoleAssistant,
	}, roles)
	assert.Equal(t, "call_1", msgs[3].ToolCalls[0].ID)
	assert.Equal(t, "call_1", msgs[4].ToolCallID)
	assert.Empty(t, msgs[6].ToolCalls)
	assert.Equal(t, 9, s.Len())
}

func TestTurnMessageRoundTrip(t *testing.T) {
	call := llm.ToolCall{ID: "call_1", Type: "function", Function: llm.FunctionCall{Name: "get_weather", Arguments: `{"city":"Paris"}`}}

	requested := TurnFromMessage(llm.NewToolCallMessage("", call))
	assert.Equal(t, RoleAssistant, requested.Role)
	require.NotNil(t, requested.ToolCall)
	assert.Equal(t, "get_weather", requested.ToolCall.Name)
	assert.Equal(t, []llm.ToolCall{call}, requested.Message().ToolCalls)

	answered := TurnFromMessage(llm.NewToolMessage("call_1", "get_weather", `{"temperature":20}`))
	assert.Equal(t, RoleTool, answered.Role)
	msg := answered.Message()
	assert.Equal(t, "call_1", msg.ToolCallID)
	assert.Equal(t, `{"temperature":20}`, msg.Content)
}

func TestSummary(t *testing.T) {
	s := NewState("c1", "sys", epoch)
	assert.Equal(t, EmptyPreview, s.Summary().Preview)

	long := strings.Repeat("a", 150)
	s.Append(UserTurn(long, epoch), AssistantTurn("ok", epoch))
	sum := s.Summary()
	assert.Equal(t, strings.Repeat("a", 100)+"...", sum.Preview)
	assert.Equal(t, 3, sum.MessageCount)

	short := NewState("c2", "sys", epoch)
	short.Append(UserTurn("Hi", epoch))
	assert.Equal(t, "Hi...", short.Summary().Preview)
	assert.Equal(t, "c1", sum.ID)
}

func TestTracker(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Transition(PhaseAwaitingModel))
	require.NoError(t, tr.Transition(PhaseToolRequested))
	require.NoError(t, tr.Transition(PhaseAwaitingToolResult))
	require.NoError(t, tr.Transition(PhaseAwaitingModel))
	require.NoError(t, tr.Transition(PhaseResponding))
	require.NoError(t, tr.Transition(PhaseIdle))
	assert.Equal(t, PhaseIdle, tr.Phase())
	assert.Len(t, tr.History(), 7)

	err := tr.Transition(PhaseToolRequested)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, CodeInvalidTransition))
}

func TestTrackerFail(t *testing.T) {
	tr := NewTracker()
	tr.Fail()
	assert.Equal(t, PhaseIdle, tr.Phase())

	require.NoError(t, tr.Transition(PhaseAwaitingModel))
	tr.Fail()
	assert.Equal(t, PhaseResponding, tr.Phase())
	require.NoError(t, tr.Transition(PhaseIdle))
}

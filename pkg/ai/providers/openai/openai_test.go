package aiopenai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/embedding"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolCallCompletion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [{
    "index": 0,
    "finish_reason": "tool_calls",
    "message": {
      "role": "assistant",
      "content": null,
      "tool_calls": [{
        "id": "call_1",
        "type": "function",
        "function": {"name": "get_weather", "arguments": "{\"city\":\"Tokyo\"}"}
      }]
    }
  }],
  "usage": {"prompt_tokens": 12, "completion_tokens": 7, "total_tokens": 19}
}`

const embeddingsResponse = `{
  "object": "list",
  "model": "text-embedding-3-small",
  "data": [
    {"object": "embedding", "index": 1, "embedding": [0.5, 0.25]},
    {"object": "embedding", "index": 0, "embedding": [1.0, 0.0]}
  ],
  "usage": {"prompt_tokens": 4, "total_tokens": 4}
}`

type captured struct {
	path string
	body map[string]any
}

func fakeOpenAI(t *testing.T) (*httptest.Server, *[]captured) {
	t.Helper()
	var calls []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		calls = append(calls, captured{path: r.URL.Path, body: body})

		switch {
		case strings.HasSuffix(r.URL.Path, "/chat/completions"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(toolCallCompletion))
		case strings.HasSuffix(r.URL.Path, "/embeddings"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(embeddingsResponse))
		case strings.HasSuffix(r.URL.Path, "/audio/speech"):
			w.Header().Set("Content-Type", "audio/mpeg")
			_, _ = w.Write([]byte("ID3fake"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestProvider(srv *httptest.Server) *OpenAIProvider {
	return New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1/", ChatModel: "gpt-test"})
}

func TestChatWithTools(t *testing.T) {
	srv, calls := fakeOpenAI(t)
	p := newTestProvider(srv)

	tools := []llm.Tool{{
		Type: "function",
		Function: llm.Function{
			Name:        "get_weather",
			Description: "Weather",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{"city": map[string]any{"type": "string"}}},
		},
	}}
	history := []llm.Message{
		llm.NewSystemMessage("You are TravelBot"),
		llm.NewUserMessage("Weather in Tokyo?"),
	}

	resp, err := p.Chat(context.Background(), history,
		llm.WithTools(tools), llm.WithToolChoice(llm.ToolChoiceAuto), llm.WithMaxTokens(2000))
	require.NoError(t, err)

	call, ok := resp.FirstToolCall()
	require.True(t, ok)
	assert.Equal(t, "call_1", call.ID)
	assert.Equal(t, "get_weather", call.Function.Name)
	assert.JSONEq(t, `{"city":"Tokyo"}`, call.Function.Arguments)
	assert.Equal(t, 19, resp.Usage.TotalTokens)

	require.Len(t, *calls, 1)
	body := (*calls)[0].body
	assert.Equal(t, "gpt-test", body["model"])
	assert.Equal(t, "auto", body["tool_choice"])
	assert.EqualValues(t, 2000, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-6)
	assert.Len(t, body["tools"], 1)
	assert.Len(t, body["messages"], 2)
}

func TestChatReplaysToolTurns(t *testing.T) {
	srv, calls := fakeOpenAI(t)
	p := newTestProvider(srv)

	call := llm.ToolCall{ID: "call_1", Type: "function", Function: llm.FunctionCall{Name: "get_weather", Arguments: `{"city":"Tokyo"}`}}
	history := []llm.Message{
		llm.NewUserMessage("Weather in Tokyo?"),
		llm.NewToolCallMessage("", call),
		llm.NewToolMessage("call_1", "get_weather", `{"temperature":21}`),
	}
	_, err := p.Chat(context.Background(), history)
	require.NoError(t, err)

	messages := (*calls)[0].body["messages"].([]any)
	require.Len(t, messages, 3)
	assistant := messages[1].(map[string]any)
	assert.Equal(t, "assistant", assistant["role"])
	assert.Len(t, assistant["tool_calls"], 1)
	tool := messages[2].(map[string]any)
	assert.Equal(t, "tool", tool["role"])
	assert.Equal(t, "call_1", tool["tool_call_id"])
	_, hasTools := (*calls)[0].body["tools"]
	assert.False(t, hasTools)
}

func TestChatRejectsUnknownRole(t *testing.T) {
	srv, _ := fakeOpenAI(t)
	_, err := newTestProvider(srv).Chat(context.Background(), []llm.Message{{Role: "narrator", Content: "x"}})
	require.Error(t, err)
}

func TestEmbedDocumentsKeepsInputOrder(t *testing.T) {
	srv, calls := fakeOpenAI(t)
	p := newTestProvider(srv)

	embs, err := p.EmbedDocuments(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, embs, 2)
	assert.Equal(t, []float32{1.0, 0.0}, embs[0].Vector)
	assert.Equal(t, []float32{0.5, 0.25}, embs[1].Vector)
	assert.Equal(t, "text-embedding-3-small", (*calls)[0].body["model"])

	none, err := p.EmbedDocuments(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSynthesize(t *testing.T) {
	srv, calls := fakeOpenAI(t)
	p := newTestProvider(srv)

	audio, err := p.Synthesize(context.Background(), "Hello traveller", speech.WithSpeechRate(1.5))
	require.NoError(t, err)
	defer audio.Content.Close()

	data, err := io.ReadAll(audio.Content)
	require.NoError(t, err)
	assert.Equal(t, "ID3fake", string(data))
	assert.Equal(t, speech.AudioFormatMP3, audio.Format)

	body := (*calls)[0].body
	assert.Equal(t, "Hello traveller", body["input"])
	assert.Equal(t, "alloy", body["voice"])
	assert.InDelta(t, 1.5, body["speed"], 1e-6)
}

func TestSynthesizeUsesConfiguredVoice(t *testing.T) {
	srv, calls := fakeOpenAI(t)
	p := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1/", Voice: "Nova"})

	audio, err := p.Synthesize(context.Background(), "Xin chao")
	require.NoError(t, err)
	audio.Content.Close()

	audio, err = p.Synthesize(context.Background(), "Bonjour", speech.WithVoice("shimmer"))
	require.NoError(t, err)
	audio.Content.Close()

	require.Len(t, *calls, 2)
	assert.Equal(t, "nova", (*calls)[0].body["voice"])
	assert.Equal(t, "shimmer", (*calls)[1].body["voice"])
}

func TestEmbedDocumentsSendsUser(t *testing.T) {
	srv, calls := fakeOpenAI(t)

	_, err := newTestProvider(srv).EmbedDocuments(context.Background(), []string{"first", "second"}, embedding.WithUser("user_001"))
	require.NoError(t, err)
	assert.Equal(t, "user_001", (*calls)[0].body["user"])
}

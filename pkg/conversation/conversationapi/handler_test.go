package conversationapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/agentx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/speech"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/auth"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationinfra"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationsrv"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSpeaker struct {
	err error
}

func (s stubSpeaker) Synthesize(ctx context.Context, text string, opts ...speech.SynthesisOption) (speech.Audio, error) {
	if s.err != nil {
		return speech.Audio{}, s.err
	}
	return speech.Audio{Content: io.NopCloser(bytes.NewReader([]byte("mp3"))), Format: speech.AudioFormatMP3}, nil
}

func echo(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	return llm.Response{Message: llm.NewAssistantMessage("Echo: " + messages[len(messages)-1].Content)}, nil
}

func newApp(t *testing.T, speaker speech.Speaker, mw *auth.Middleware) *fiber.App {
	t.Helper()
	synth := speech.NewSynthesizer(speaker)
	svc := conversationsrv.NewConversationService(
		conversationinfra.NewMemoryStore(),
		agentx.New(llm.ChatFunc(echo)),
		conversationsrv.WithSynthesizer(synth, speech.DefaultMaxLength),
	)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(true)})
	NewConversationHandlers(svc, synth, export.NewExporter(nil), "user_001").RegisterRoutes(app, mw)
	app.Use(NotFound)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	out := map[string]any{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), string(data))
	}
	return resp, out
}

func TestChatAndConversationLifecycle(t *testing.T) {
	app := newApp(t, stubSpeaker{}, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/chat", ChatRequest{Message: "Plan a trip to Hanoi"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Echo: Plan a trip to Hanoi", body["response"])
	assert.Equal(t, "bXAz", body["audio_base64"])
	id, _ := body["conversation_id"].(string)
	require.NotEmpty(t, id)

	resp, body = doJSON(t, app, http.MethodGet, "/api/conversations/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, body["conversation_id"])
	assert.Len(t, body["messages"], 3)

	resp, body = doJSON(t, app, http.MethodGet, "/api/conversations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list, _ := body["conversations"].([]any)
	require.Len(t, list, 1)
	summary := list[0].(map[string]any)
	assert.Equal(t, "Plan a trip to Hanoi...", summary["preview"])

	resp, body = doJSON(t, app, http.MethodDelete, "/api/conversations/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Conversation deleted successfully", body["message"])

	resp, body = doJSON(t, app, http.MethodDelete, "/api/conversations/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "CONVERSATION.NOT_FOUND", body["code"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/conversations/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	app := newApp(t, stubSpeaker{}, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/chat", ChatRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CONVERSATION.EMPTY_MESSAGE", body["code"])
}

func TestChatWithoutAudio(t *testing.T) {
	app := newApp(t, stubSpeaker{err: errors.New("quota")}, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/chat", ChatRequest{Message: "hello", ConversationID: "c1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "c1", body["conversation_id"])
	assert.Nil(t, body["audio_base64"])
}

func TestTextToSpeech(t *testing.T) {
	app := newApp(t, stubSpeaker{}, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/tts", map[string]any{"text": "Xin chao"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bXAz", body["audio_base64"])
	assert.Equal(t, 1.0, body["speed"])
	assert.Equal(t, float64(speech.DefaultMaxLength), body["max_length"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/tts", map[string]any{"text": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Text cannot be empty", body["error"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/tts", map[string]any{"text": "hi", "speed": 2.5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Speech speed must be between 0.5 and 2.0", body["error"])
}

func TestTextToSpeechFailure(t *testing.T) {
	app := newApp(t, stubSpeaker{err: errors.New("down")}, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/tts", map[string]any{"text": "hi"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "TTS generation failed", body["error"])
}

func TestExport(t *testing.T) {
	app := newApp(t, stubSpeaker{}, nil)

	raw, err := json.Marshal(ExportRequest{
		Messages: []export.Message{{Role: "user", Content: "Hi"}, {Role: "assistant", Content: "Hello"}},
		Format:   "txt",
		Filename: "trip.txt",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/export", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "attachment; filename=trip.txt", resp.Header.Get("Content-Disposition"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "👤 USER:")

	resp, body := doJSON(t, app, http.MethodPost, "/api/export", ExportRequest{Format: "txt"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EXPORT.NO_MESSAGES", body["code"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/export", ExportRequest{
		Messages: []export.Message{{Role: "user", Content: "Hi"}},
		Format:   "pdf",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EXPORT.INVALID_FORMAT", body["code"])
}

func TestStats(t *testing.T) {
	app := newApp(t, stubSpeaker{}, nil)
	doJSON(t, app, http.MethodPost, "/api/chat", ChatRequest{Message: "hi", ConversationID: "a"})

	resp, body := doJSON(t, app, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, body["active_conversations"])
	assert.Equal(t, true, body["tts_available"])
}

func TestAuthenticatedRoutes(t *testing.T) {
	tokens := auth.NewJWTService("secret", "travelbot", time.Hour)
	app := newApp(t, stubSpeaker{}, auth.NewMiddleware(tokens))

	resp, _ := doJSON(t, app, http.MethodGet, "/api/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := tokens.GenerateToken("user_002", "Linh")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	app := newApp(t, stubSpeaker{}, nil)

	resp, body := doJSON(t, app, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/llm/agentx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/speech"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/config"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationapi"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationinfra"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/conversationsrv"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation/export"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/metrics"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoService() *conversationsrv.ConversationService {
	model := llm.ChatFunc(func(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
		return llm.Response{Message: llm.NewAssistantMessage("Echo: " + messages[len(messages)-1].Content)}, nil
	})
	return conversationsrv.NewConversationService(conversationinfra.NewMemoryStore(), agentx.New(model))
}

func TestChatLoop(t *testing.T) {
	svc := echoService()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	in := strings.NewReader("hello\n\n/new\nagain\n/quit\nignored\n")
	var out bytes.Buffer
	require.NoError(t, chatLoop(cmd, svc, in, &out, conversationsrv.TurnRequest{SpeechSpeed: 1}))

	text := out.String()
	assert.Contains(t, text, "🤖 TravelBot: Echo: hello")
	assert.Contains(t, text, "Started a new conversation.")
	assert.Contains(t, text, "🤖 TravelBot: Echo: again")
	assert.NotContains(t, text, "ignored")

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAppServesHealthAndMetrics(t *testing.T) {
	svc := echoService()
	c := &Container{
		Config:   &config.Config{Server: config.ServerConfig{CORSOrigins: []string{"*"}, BodyLimit: 1 << 20}},
		Metrics:  metrics.New(),
		Handlers: conversationapi.NewConversationHandlers(svc, speech.NewSynthesizer(nil), export.NewExporter(nil), "user_001"),
	}
	app := newApp(c)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, version, health["version"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/embedding"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx/vectorxmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *Store {
	return New(vectorx.NewCollection("user_conversations", embedding.NewHashed(256), vectorxmem.New()))
}

func TestRememberAndRecallScopedToConversation(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	require.NoError(t, s.Remember(ctx, "c1", "Hotels in Rome?", "Try the Grand Plaza Hotel."))
	require.NoError(t, s.Remember(ctx, "c2", "Hotels in Rome?", "Comfort Inn is cheaper."))

	got, err := s.Recall(ctx, "Rome hotels", "c1", 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "User: Hotels in Rome?\nAssistant: Try the Grand Plaza Hotel.", got[0].Content)
	assert.Equal(t, "c1", got[0].Metadata[MetaConversationID])
	assert.Equal(t, "Hotels in Rome?", got[0].Metadata[MetaUserMessage])
	assert.Equal(t, "Try the Grand Plaza Hotel.", got[0].Metadata[MetaAssistantResponse])

	_, err = time.Parse(time.RFC3339, got[0].Metadata[MetaTimestamp])
	assert.NoError(t, err)

	none, err := s.Recall(ctx, "Rome hotels", "c3", 2)
	require.NoError(t, err)
	assert.Empty(t, none)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestForget(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	require.NoError(t, s.Remember(ctx, "c1", "old question", "old answer"))

	s.now = func() time.Time { return base.Add(48 * time.Hour) }
	require.NoError(t, s.Remember(ctx, "c1", "new question", "new answer"))

	removed, err := s.Forget(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	got, err := s.Recall(ctx, "question", "c1", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Content, "new question")
}

// Package memory keeps past (user, assistant) exchanges in a vector store
// so later turns of the same conversation can recall them.
package memory

import (
	"context"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx"
)

const (
	MetaConversationID    = "conversation_id"
	MetaTimestamp         = "timestamp"
	MetaUserMessage       = "user_message"
	MetaAssistantResponse = "assistant_response"
)

// Record is one remembered exchange.
type Record struct {
	ID                string
	ConversationID    string
	UserMessage       string
	AssistantResponse string
	Timestamp         time.Time
}

// Document renders the record for embedding.
func (r Record) Document() vectorx.Document {
	return vectorx.Document{
		ID:   r.ID,
		Text: "User: " + r.UserMessage + "\nAssistant: " + r.AssistantResponse,
		Metadata: map[string]string{
			MetaConversationID:    r.ConversationID,
			MetaTimestamp:         r.Timestamp.Format(time.RFC3339),
			MetaUserMessage:       r.UserMessage,
			MetaAssistantResponse: r.AssistantResponse,
		},
		CreatedAt: r.Timestamp,
	}
}

// Recollection is a recalled exchange.
type Recollection struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Score    float64           `json:"score"`
}

type Store struct {
	store vectorx.Store
	now   func() time.Time
}

func New(store vectorx.Store) *Store {
	return &Store{store: store, now: time.Now}
}

// Remember stores one exchange of conversationID.
func (s *Store) Remember(ctx context.Context, conversationID, userMessage, assistantResponse string) error {
	rec := Record{
		ConversationID:    conversationID,
		UserMessage:       userMessage,
		AssistantResponse: assistantResponse,
		Timestamp:         s.now().UTC(),
	}
	return s.store.Insert(ctx, rec.Document())
}

// Recall returns up to limit exchanges of conversationID most similar to query.
func (s *Store) Recall(ctx context.Context, query, conversationID string, limit int) ([]Recollection, error) {
	matches, err := s.store.Search(ctx, query, vectorx.Filter{MetaConversationID: conversationID}, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Recollection, 0, len(matches))
	for _, m := range matches {
		out = append(out, Recollection{ID: m.ID, Content: m.Text, Metadata: m.Metadata, Score: m.Score})
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Forget deletes exchanges recorded more than retention ago.
func (s *Store) Forget(ctx context.Context, retention time.Duration) (int, error) {
	return s.store.DeleteBefore(ctx, s.now().Add(-retention))
}

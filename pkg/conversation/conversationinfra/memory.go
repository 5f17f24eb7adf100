package conversationinfra

import (
	"context"
	"sort"
	"sync"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation"
)

// MemoryStore keeps conversations in process memory. States are deep
// copied on the way in and out.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*conversation.State
}

var _ conversation.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*conversation.State)}
}

func clone(s *conversation.State) *conversation.State {
	c := *s
	c.Turns = append([]conversation.Turn(nil), s.Turns...)
	return &c
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*conversation.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.states[id]
	if !ok {
		return nil, conversation.ErrNotFound().WithDetail("conversation_id", id)
	}
	return clone(s), nil
}

func (m *MemoryStore) Save(ctx context.Context, s *conversation.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[s.ID] = clone(s)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.states[id]; !ok {
		return conversation.ErrNotFound().WithDetail("conversation_id", id)
	}
	delete(m.states, id)
	return nil
}

func (m *MemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.states[id]
	return ok, nil
}

// List returns all conversations, most recently updated first.
func (m *MemoryStore) List(ctx context.Context) ([]*conversation.State, error) {
	m.mu.RLock()
	out := make([]*conversation.State, 0, len(m.states))
	for _, s := range m.states {
		out = append(out, clone(s))
	}
	m.mu.RUnlock()

	sortRecent(out)
	return out, nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states), nil
}

func sortRecent(states []*conversation.State) {
	sort.SliceStable(states, func(i, j int) bool {
		return states[i].UpdatedAt.After(states[j].UpdatedAt)
	})
}

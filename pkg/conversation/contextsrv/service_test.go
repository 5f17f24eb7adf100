package contextsrv

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/knowledge"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/memory"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/travel/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemories struct {
	items []memory.Recollection
	err   error
	got   struct {
		query, conversationID string
		limit                 int
	}
}

func (f *fakeMemories) Recall(ctx context.Context, query, conversationID string, limit int) ([]memory.Recollection, error) {
	f.got.query, f.got.conversationID, f.got.limit = query, conversationID, limit
	return f.items, f.err
}

type fakeKnowledge struct {
	hits  []knowledge.Hit
	err   error
	limit int
}

func (f *fakeKnowledge) Search(ctx context.Context, query string, limit int) ([]knowledge.Hit, error) {
	f.limit = limit
	return f.hits, f.err
}

func profiles(t *testing.T) profile.Provider {
	t.Helper()
	p, err := profile.Default()
	require.NoError(t, err)
	return p
}

func TestBuildEmpty(t *testing.T) {
	a := NewAssembler(&fakeMemories{}, &fakeKnowledge{}, profiles(t), DefaultConfig())
	assert.Equal(t, "", a.Build(context.Background(), "hello", "c1", false, "user_001"))
}

func TestBuildSections(t *testing.T) {
	mem := &fakeMemories{items: []memory.Recollection{
		{Content: "User: Hotels in Rome?\nAssistant: " + strings.Repeat("x", 300)},
	}}
	kb := &fakeKnowledge{hits: []knowledge.Hit{
		{Title: "Japan Rail Pass", Content: "Buy the pass before you arrive."},
	}}
	a := NewAssembler(mem, kb, profiles(t), DefaultConfig())

	got := a.Build(context.Background(), "Rome trip", "c1", false, "")

	assert.Equal(t, "Rome trip", mem.got.query)
	assert.Equal(t, "c1", mem.got.conversationID)
	assert.Equal(t, 2, mem.got.limit)
	assert.Equal(t, 3, kb.limit)

	memLine := "- " + string([]rune("User: Hotels in Rome?\nAssistant: " + strings.Repeat("x", 300))[:200]) + "...\n"
	want := "\n\n🧠 **Relevant Conversation History:**\n" + memLine +
		"\n\n📚 **Relevant Travel Knowledge:**\n" +
		"- **Japan Rail Pass**: Buy the pass before you arrive....\n"
	assert.Equal(t, want, got)
}

func TestBuildProfile(t *testing.T) {
	a := NewAssembler(&fakeMemories{}, &fakeKnowledge{}, profiles(t), DefaultConfig())

	got := a.Build(context.Background(), "plan a trip", "c1", true, "user_001")

	assert.True(t, strings.HasPrefix(got, "\n\n👤 **User Profile & Preferences:**\n"))
	assert.Contains(t, got, "- Name: Alice Smith\n")
	assert.Contains(t, got, "- Preferred Budget: mid-range\n")
	assert.Contains(t, got, "- Preferred Accommodation: hotel, boutique hotel, apartment\n")
	assert.Contains(t, got, "- Special Needs: diet: vegetarian; allergies: peanuts\n")
	assert.Contains(t, got, "- Recent Travel History:\n  • Rome (2021-09-20) - honeymoon\n  • Tokyo (2022-11-15) - business\n  • Paris (2023-05-10) - vacation\n")
	assert.NotContains(t, got, "Barcelona")
	assert.Contains(t, got, "- Loyalty Programs: Marriott Bonvoy, SkyTeam, Accor Live Limitless, British Airways\n")
}

func TestBuildUnknownProfileIsSkipped(t *testing.T) {
	a := NewAssembler(&fakeMemories{}, &fakeKnowledge{}, profiles(t), DefaultConfig())
	assert.Equal(t, "", a.Build(context.Background(), "plan a trip", "c1", true, "nobody"))
}

func TestBuildToleratesRetrievalFailures(t *testing.T) {
	mem := &fakeMemories{err: errors.New("store offline")}
	kb := &fakeKnowledge{hits: []knowledge.Hit{{Title: "Tip", Content: "Pack light."}}}
	a := NewAssembler(mem, kb, profiles(t), DefaultConfig())

	got := a.Build(context.Background(), "packing", "c1", false, "")
	assert.NotContains(t, got, "Conversation History")
	assert.Contains(t, got, "- **Tip**: Pack light....\n")

	kb.err = errors.New("index offline")
	mem.err = nil
	assert.Equal(t, "", a.Build(context.Background(), "packing", "c1", false, ""))
}

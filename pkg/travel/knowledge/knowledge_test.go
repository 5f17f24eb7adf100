package knowledge

import (
	"context"
	"testing"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/embedding"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx/vectorxmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCorpus(t *testing.T) {
	entries, err := Default()
	require.NoError(t, err)
	require.Len(t, entries, 79)
	assert.Equal(t, "Best Time to Visit Europe", entries[0].Title)
	assert.Equal(t, "travel_tips", entries[0].Category)

	doc := entries[0].Document(0)
	assert.Equal(t, "knowledge_0", doc.ID)
	assert.Equal(t, "Best Time to Visit Europe: "+entries[0].Content, doc.Text)
	assert.Equal(t, "Best Time to Visit Europe", doc.Metadata["title"])
}

func TestParseRejectsIncompleteEntries(t *testing.T) {
	_, err := Parse([]byte("entries:\n  - title: Only a title\n"))
	require.Error(t, err)

	_, err = Parse([]byte("entries: [oops"))
	require.Error(t, err)
}

func newBase(t *testing.T) (*Base, vectorx.Store) {
	t.Helper()
	entries, err := Default()
	require.NoError(t, err)
	store := vectorx.NewCollection("travel_knowledge", embedding.NewHashed(512), vectorxmem.New())
	return New(store, entries), store
}

func TestIndexOnlyOnce(t *testing.T) {
	ctx := context.Background()
	base, store := newBase(t)

	n, err := base.Index(ctx)
	require.NoError(t, err)
	assert.Equal(t, 79, n)

	n, err = base.Index(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 79, count)
	assert.Equal(t, 79, base.Size())
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	base, _ := newBase(t)
	_, err := base.Index(ctx)
	require.NoError(t, err)

	hits, err := base.Search(ctx, "travel insurance medical emergencies", 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "Travel Insurance Advice", hits[0].Title)
	assert.Equal(t, "safety", hits[0].Category)
	assert.Contains(t, hits[0].Content, "Travel Insurance Advice: ")
}

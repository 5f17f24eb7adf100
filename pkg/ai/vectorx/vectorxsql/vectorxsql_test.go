package vectorxsql

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Backend {
	t.Helper()
	b, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "vectors.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := openTemp(t)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, b.Upsert(ctx, "knowledge",
		vectorx.Record{
			Document: vectorx.Document{ID: "knowledge_0", Text: "Tokyo rail", Metadata: map[string]string{"title": "Rail"}, CreatedAt: created},
			Vector:   []float64{1, 0, 0},
		},
		vectorx.Record{
			Document: vectorx.Document{ID: "knowledge_1", Text: "Paris food", CreatedAt: created},
			Vector:   []float64{0, 1, 0},
		},
	))

	n, err := b.Count(ctx, "knowledge")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	matches, err := b.Query(ctx, "knowledge", []float64{0.9, 0.1, 0}, nil, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "knowledge_0", matches[0].ID)
	assert.Equal(t, "Rail", matches[0].Metadata["title"])
	assert.True(t, created.Equal(matches[0].CreatedAt))

	other, err := b.Count(ctx, "memory")
	require.NoError(t, err)
	assert.Zero(t, other)
}

func TestSQLiteUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	b := openTemp(t)

	rec := vectorx.Record{Document: vectorx.Document{ID: "m1", Text: "before", CreatedAt: time.Now()}, Vector: []float64{1, 0}}
	require.NoError(t, b.Upsert(ctx, "memory", rec))
	rec.Text = "after"
	require.NoError(t, b.Upsert(ctx, "memory", rec))

	matches, err := b.Query(ctx, "memory", []float64{1, 0}, nil, 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "after", matches[0].Text)
}

func TestSQLiteFilterAndDeleteBefore(t *testing.T) {
	ctx := context.Background()
	b := openTemp(t)
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, b.Upsert(ctx, "memory",
		vectorx.Record{
			Document: vectorx.Document{ID: "a", Text: "a", Metadata: map[string]string{"conversation_id": "c1"}, CreatedAt: cutoff.Add(-time.Minute)},
			Vector:   []float64{1, 0},
		},
		vectorx.Record{
			Document: vectorx.Document{ID: "b", Text: "b", Metadata: map[string]string{"conversation_id": "c2"}, CreatedAt: cutoff.Add(time.Minute)},
			Vector:   []float64{1, 0},
		},
	))

	scoped, err := b.Query(ctx, "memory", []float64{1, 0}, vectorx.Filter{"conversation_id": "c2"}, 5)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "b", scoped[0].ID)

	removed, err := b.DeleteBefore(ctx, "memory", cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	n, err := b.Count(ctx, "memory")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteFilterRunsInDatabase(t *testing.T) {
	ctx := context.Background()
	b := openTemp(t)
	now := time.Now()

	var recs []vectorx.Record
	for i := 0; i < 6; i++ {
		conv := "c1"
		if i%3 == 0 {
			conv = "c2"
		}
		recs = append(recs, vectorx.Record{
			Document: vectorx.Document{
				ID:        fmt.Sprintf("m%d", i),
				Text:      "turn",
				Metadata:  map[string]string{"conversation_id": conv, "user.id": "u1"},
				CreatedAt: now,
			},
			Vector: []float64{1, 0},
		})
	}
	require.NoError(t, b.Upsert(ctx, "memory", recs...))

	rows, err := b.candidates(ctx, "memory", vectorx.Filter{"conversation_id": "c2"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "m0", rows[0].ID)
	assert.Equal(t, "m3", rows[1].ID)

	rows, err = b.candidates(ctx, "memory", vectorx.Filter{"conversation_id": "c1", "user.id": "u1"})
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	rows, err = b.candidates(ctx, "memory", vectorx.Filter{"conversation_id": "c9"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = b.candidates(ctx, "memory", nil)
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}

func TestSQLiteMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.db")
	first, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

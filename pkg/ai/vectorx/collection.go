package vectorx

import (
	"context"
	"strings"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/embedding"
	"github.com/oklog/ulid/v2"
)

// Collection is a Store bound to one named collection of a Backend.
type Collection struct {
	name     string
	embedder embedding.Embedder
	backend  Backend
	now      func() time.Time
}

var _ Store = (*Collection)(nil)

func NewCollection(name string, embedder embedding.Embedder, backend Backend) *Collection {
	return &Collection{
		name:     name,
		embedder: embedder,
		backend:  backend,
		now:      time.Now,
	}
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) Search(ctx context.Context, query string, filter Filter, limit int) ([]Match, error) {
	if limit <= 0 || strings.TrimSpace(query) == "" {
		return nil, nil
	}
	emb, err := c.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, ErrRegistry.NewWithCause(ErrEmbedding, err).WithDetail("collection", c.name)
	}
	matches, err := c.backend.Query(ctx, c.name, emb.Float64(), filter, limit)
	if err != nil {
		return nil, ErrRegistry.NewWithCause(ErrBackend, err).WithDetail("collection", c.name)
	}
	return matches, nil
}

// Insert embeds and stores docs. Empty IDs get a ULID, zero CreatedAt the
// current time. Re-inserting an ID replaces the document.
func (c *Collection) Insert(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	embs, err := c.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return ErrRegistry.NewWithCause(ErrEmbedding, err).WithDetail("collection", c.name)
	}
	if len(embs) != len(docs) {
		return ErrRegistry.New(ErrEmbedding).
			WithDetail("collection", c.name).
			WithDetail("expected", len(docs)).
			WithDetail("got", len(embs))
	}

	records := make([]Record, len(docs))
	for i, d := range docs {
		if d.ID == "" {
			d.ID = ulid.Make().String()
		}
		if d.CreatedAt.IsZero() {
			d.CreatedAt = c.now().UTC()
		}
		records[i] = Record{Document: d, Vector: embs[i].Float64()}
	}
	if err := c.backend.Upsert(ctx, c.name, records...); err != nil {
		return ErrRegistry.NewWithCause(ErrBackend, err).WithDetail("collection", c.name)
	}
	return nil
}

func (c *Collection) Count(ctx context.Context) (int, error) {
	n, err := c.backend.Count(ctx, c.name)
	if err != nil {
		return 0, ErrRegistry.NewWithCause(ErrBackend, err).WithDetail("collection", c.name)
	}
	return n, nil
}

func (c *Collection) DeleteBefore(ctx context.Context, t time.Time) (int, error) {
	n, err := c.backend.DeleteBefore(ctx, c.name, t)
	if err != nil {
		return 0, ErrRegistry.NewWithCause(ErrBackend, err).WithDetail("collection", c.name)
	}
	return n, nil
}

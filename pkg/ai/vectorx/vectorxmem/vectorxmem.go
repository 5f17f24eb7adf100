// Package vectorxmem is the in-process vectorx backend: records live in a
// map per collection and queries are a brute-force cosine scan.
package vectorxmem

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx"
)

type Backend struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

type collection struct {
	index   map[string]int
	records []vectorx.Record
}

var _ vectorx.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{collections: make(map[string]*collection)}
}

func (b *Backend) Upsert(ctx context.Context, name string, records ...vectorx.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.collections[name]
	if !ok {
		c = &collection{index: make(map[string]int)}
		b.collections[name] = c
	}
	for _, r := range records {
		r.Vector = slices.Clone(r.Vector)
		if i, exists := c.index[r.ID]; exists {
			c.records[i] = r
			continue
		}
		c.index[r.ID] = len(c.records)
		c.records = append(c.records, r)
	}
	return nil
}

func (b *Backend) Query(ctx context.Context, name string, vector []float64, filter vectorx.Filter, limit int) ([]vectorx.Match, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, ok := b.collections[name]
	if !ok {
		return nil, nil
	}
	return vectorx.Rank(c.records, vector, filter, limit), nil
}

func (b *Backend) Count(ctx context.Context, name string) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if c, ok := b.collections[name]; ok {
		return len(c.records), nil
	}
	return 0, nil
}

func (b *Backend) DeleteBefore(ctx context.Context, name string, t time.Time) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.collections[name]
	if !ok {
		return 0, nil
	}
	kept := c.records[:0]
	removed := 0
	for _, r := range c.records {
		if r.CreatedAt.Before(t) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	c.records = kept
	c.index = make(map[string]int, len(kept))
	for i, r := range kept {
		c.index[r.ID] = i
	}
	return removed, nil
}

func (b *Backend) Close() error {
	return nil
}

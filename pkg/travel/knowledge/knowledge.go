// Package knowledge is the static travel knowledge base: a YAML corpus
// embedded in the binary and indexed into a vectorx store at startup.
package knowledge

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/ai/vectorx"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var corpus []byte

const batchSize = 100

// Entry is one immutable knowledge item.
type Entry struct {
	Title    string   `yaml:"title"`
	Content  string   `yaml:"content"`
	Category string   `yaml:"category"`
	Region   string   `yaml:"region"`
	Tags     []string `yaml:"tags"`
}

// ID is the stable identity of the entry at position i of the corpus.
func ID(i int) string {
	return fmt.Sprintf("knowledge_%d", i)
}

// Document renders the entry as it is embedded and stored.
func (e Entry) Document(i int) vectorx.Document {
	return vectorx.Document{
		ID:   ID(i),
		Text: e.Title + ": " + e.Content,
		Metadata: map[string]string{
			"title":    e.Title,
			"category": e.Category,
			"region":   e.Region,
			"tags":     strings.Join(e.Tags, ","),
		},
	}
}

// Default returns the embedded corpus.
func Default() ([]Entry, error) {
	return Parse(corpus)
}

func Parse(data []byte) ([]Entry, error) {
	var doc struct {
		Entries []Entry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse knowledge corpus: %w", err)
	}
	for i, e := range doc.Entries {
		if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Content) == "" {
			return nil, fmt.Errorf("knowledge entry %d: title and content are required", i)
		}
	}
	return doc.Entries, nil
}

// Hit is a knowledge search result.
type Hit struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Score    float64  `json:"score"`
}

// Base serves knowledge lookups over a vector store.
type Base struct {
	store   vectorx.Store
	entries []Entry
}

func New(store vectorx.Store, entries []Entry) *Base {
	return &Base{store: store, entries: entries}
}

// Size is the number of entries in the corpus.
func (b *Base) Size() int {
	return len(b.entries)
}

// Index loads the corpus into the store unless it already holds entries.
// It reports how many entries were written.
func (b *Base) Index(ctx context.Context) (int, error) {
	existing, err := b.store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		logx.Infof("Travel knowledge base already contains %d entries", existing)
		return 0, nil
	}

	docs := make([]vectorx.Document, len(b.entries))
	for i, e := range b.entries {
		docs[i] = e.Document(i)
	}
	for start := 0; start < len(docs); start += batchSize {
		end := min(start+batchSize, len(docs))
		if err := b.store.Insert(ctx, docs[start:end]...); err != nil {
			return start, err
		}
	}
	logx.Infof("Initialized travel knowledge base with %d entries", len(docs))
	return len(docs), nil
}

// Search returns the limit entries closest to query.
func (b *Base) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	matches, err := b.store.Search(ctx, query, nil, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		title := m.Metadata["title"]
		if title == "" {
			title = "Travel Tip"
		}
		category := m.Metadata["category"]
		if category == "" {
			category = "General"
		}
		var tags []string
		if t := m.Metadata["tags"]; t != "" {
			tags = strings.Split(t, ",")
		}
		hits = append(hits, Hit{
			ID:       m.ID,
			Title:    title,
			Content:  m.Text,
			Category: category,
			Tags:     tags,
			Score:    m.Score,
		})
	}
	return hits, nil
}

// Count reports how many entries the store holds.
func (b *Base) Count(ctx context.Context) (int, error) {
	return b.store.Count(ctx)
}

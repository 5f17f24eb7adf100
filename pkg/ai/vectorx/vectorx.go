// Package vectorx is a small semantic retrieval service: documents are
// embedded on insert and ranked by cosine similarity to an embedded query.
// One Backend can hold many named collections.
package vectorx

import (
	"context"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Document is a stored text with string metadata.
type Document struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Match is a search hit. Higher Score is closer.
type Match struct {
	Document
	Score float64 `json:"score"`
}

// Filter restricts a search to documents whose metadata has every listed
// key equal to the given value. A nil Filter matches everything.
type Filter map[string]string

func (f Filter) Matches(metadata map[string]string) bool {
	for k, v := range f {
		if metadata[k] != v {
			return false
		}
	}
	return true
}

// Store is the retrieval service the assistant talks to.
type Store interface {
	Search(ctx context.Context, query string, filter Filter, limit int) ([]Match, error)
	Insert(ctx context.Context, docs ...Document) error
	Count(ctx context.Context) (int, error)
	// DeleteBefore removes documents created before t and reports how many.
	DeleteBefore(ctx context.Context, t time.Time) (int, error)
}

// Record is a document with its embedding, as persisted by a Backend.
type Record struct {
	Document
	Vector []float64
}

// Backend persists records per collection and ranks them against a vector.
type Backend interface {
	Upsert(ctx context.Context, collection string, records ...Record) error
	Query(ctx context.Context, collection string, vector []float64, filter Filter, limit int) ([]Match, error)
	Count(ctx context.Context, collection string) (int, error)
	DeleteBefore(ctx context.Context, collection string, t time.Time) (int, error)
	Close() error
}

// Cosine returns the cosine similarity of a and b, 0 when either is a zero
// vector or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

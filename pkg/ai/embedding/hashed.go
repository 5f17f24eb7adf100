package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Hashed is a deterministic bag-of-words embedder. Each lower-cased word is
// hashed into one of Dim buckets and the vector is L2-normalized, so texts
// sharing words score a positive cosine similarity. It needs no network and
// backs offline runs and tests.
type Hashed struct {
	Dim int
}

func NewHashed(dim int) *Hashed {
	if dim <= 0 {
		dim = 256
	}
	return &Hashed{Dim: dim}
}

func (h *Hashed) EmbedDocuments(ctx context.Context, documents []string, opts ...Option) ([]Embedding, error) {
	out := make([]Embedding, len(documents))
	for i, doc := range documents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.embed(doc)
	}
	return out, nil
}

func (h *Hashed) EmbedQuery(ctx context.Context, text string, opts ...Option) (Embedding, error) {
	if err := ctx.Err(); err != nil {
		return Embedding{}, err
	}
	return h.embed(text), nil
}

func (h *Hashed) embed(text string) Embedding {
	vec := make([]float32, h.Dim)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		f := fnv.New32a()
		_, _ = f.Write([]byte(w))
		vec[f.Sum32()%uint32(h.Dim)]++
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return Embedding{Vector: vec, Usage: Usage{PromptTokens: len(words), TotalTokens: len(words)}}
}

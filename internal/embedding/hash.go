package embedding

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// HashEmbedder is a bag-of-words feature-hashing embedder. It needs no
// network and is deterministic, which makes it suitable for local runs and
// tests. Retrieval quality is lexical only.
type HashEmbedder struct {
	Dim int
}

func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = 256
	}
	return &HashEmbedder{Dim: dim}
}

func (h *HashEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	words := strings.FieldsFunc(strings.ToLower(Normalize(text)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(words) == 0 {
		// Punctuation-only text still gets a vector of its own.
		trimmed := Normalize(text)
		if trimmed == "" {
			return nil, errors.New("cannot embed empty text")
		}
		words = []string{trimmed}
	}

	vec := make([]float32, h.Dim)
	for _, w := range words {
		f := fnv.New32a()
		_, _ = f.Write([]byte(w))
		vec[f.Sum32()%uint32(h.Dim)]++
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v * v)
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= inv
	}
	return vec, nil
}

func (h *HashEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := h.EmbedQuery(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesson-rag/internal/config"
)

func TestNormalize_NFC(t *testing.T) {
	decomposed := "Tie\u0302\u0301ng Vie\u0323\u0302t"
	assert.Equal(t, "Ti\u1ebfng Vi\u1ec7t", Normalize("  "+decomposed+" "))
}

func TestHashEmbedder_Deterministic(t *testing.T) {
	h := NewHashEmbedder(64)
	a, err := h.EmbedQuery(context.Background(), "A stack is a LIFO structure.")
	require.NoError(t, err)
	b, err := h.EmbedQuery(context.Background(), "a STACK is a lifo structure")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	punct, err := h.EmbedQuery(context.Background(), " ?! ")
	require.NoError(t, err)
	assert.Len(t, punct, 64)
	assert.NotEqual(t, a, punct)

	_, err = h.EmbedQuery(context.Background(), "   ")
	assert.Error(t, err)
}

type countingEmbedder struct {
	calls []string
	fail  bool
}

func (c *countingEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	c.calls = append(c.calls, text)
	if c.fail {
		return nil, errors.New("service down")
	}
	return []float32{1, 0}, nil
}

func TestEmbeddingFunc_Normalizes(t *testing.T) {
	c := &countingEmbedder{}
	fn := EmbeddingFunc(c)
	_, err := fn(context.Background(), "  hello ")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, c.calls)
}

func TestGenerateEmbeddings(t *testing.T) {
	c := &countingEmbedder{}
	vecs, err := GenerateEmbeddings(context.Background(), c, []string{"one", "two"})
	require.NoError(t, err)
	assert.Len(t, vecs, 2)

	vecs, err = GenerateEmbeddings(context.Background(), c, nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)

	_, err = GenerateEmbeddings(context.Background(), &countingEmbedder{fail: true}, []string{"x"})
	assert.ErrorContains(t, err, "service down")
}

func TestNewEmbedder_Providers(t *testing.T) {
	e, err := NewEmbedder(&config.LLMConfig{Provider: "hash"})
	require.NoError(t, err)
	assert.IsType(t, &HashEmbedder{}, e)

	_, err = NewEmbedder(&config.LLMConfig{Provider: "nope"})
	assert.ErrorContains(t, err, "unsupported embedding provider")
}

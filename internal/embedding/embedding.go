package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/text/unicode/norm"

	"lesson-rag/internal/config"
)

// Embedder turns one text into a vector. langchaingo's EmbedderImpl satisfies it.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// NewEmbedder creates the embedder selected by cfg.Provider.
func NewEmbedder(cfg *config.LLMConfig) (Embedder, error) {
	log.Debug().Interface("config", map[string]string{
		"provider":        cfg.Provider,
		"base_url":        cfg.BaseURL,
		"embedding_model": cfg.Model,
	}).Msg("Creating embedder")

	var client embeddings.EmbedderClient
	switch cfg.Provider {
	case "hash":
		return NewHashEmbedder(0), nil
	case "ollama":
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		client = llm
	case "openai":
		opts := []openai.Option{
			openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
			openai.WithEmbeddingModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		client = llm
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}

	embedder, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return embedder, nil
}

// Normalize brings text into NFC so identical Vietnamese input typed with
// combining marks embeds identically.
func Normalize(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// EmbeddingFunc adapts an Embedder to chromem.
func EmbeddingFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return e.EmbedQuery(ctx, Normalize(text))
	}
}

// GenerateEmbeddings embeds each chunk in order.
func GenerateEmbeddings(ctx context.Context, e Embedder, chunks []string) ([][]float32, error) {
	if len(chunks) == 0 {
		log.Info().Msg("No chunks to embed")
		return nil, nil
	}
	out := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		v, err := e.EmbedQuery(ctx, Normalize(chunk))
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}

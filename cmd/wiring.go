package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lesson-rag/internal/chromemdb"
	"lesson-rag/internal/config"
	"lesson-rag/internal/db"
	"lesson-rag/internal/embedding"
	"lesson-rag/internal/llmservice"
	"lesson-rag/internal/models"
	"lesson-rag/internal/rag"
)

// indexStore is what both backends offer to the commands.
type indexStore interface {
	rag.IndexStore
	Build(ctx context.Context, key models.LessonKey, chunks []string) error
}

type backend struct {
	store   indexStore
	chromem *chromemdb.Store
	close   func() error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		return nil, fmt.Errorf("error initializing embedder: %w", err)
	}

	switch cfg.Index.Backend {
	case "chromem":
		s := chromemdb.NewStore(cfg.Paths.VectorDB, cfg.Index.Collection, cfg.Index.Compress, embedding.EmbeddingFunc(embedder))
		return &backend{store: s, chromem: s, close: func() error { return nil }}, nil
	case "pgvector":
		sqldb, err := db.ConnectDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("error connecting to database: %w", err)
		}
		bdb := db.NewDB(sqldb, cfg.Database.Debug)
		if err := db.InitDB(ctx, bdb); err != nil {
			bdb.Close()
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		return &backend{store: db.NewStore(bdb, embedder), close: bdb.Close}, nil
	default:
		return nil, fmt.Errorf("unsupported index backend: %s", cfg.Index.Backend)
	}
}

func newPipeline(cfg *config.Config, store rag.IndexStore) (*rag.RAG, error) {
	if cfg.Index.CacheSize > 0 {
		cached, err := rag.NewCachedStore(store, cfg.Index.CacheSize)
		if err != nil {
			return nil, err
		}
		log.Info().Int("size", cfg.Index.CacheSize).Msg("Index cache enabled")
		store = cached
	}

	answerer, err := llmservice.New(&cfg.AnswerLLM)
	if err != nil {
		return nil, fmt.Errorf("error initializing answer model: %w", err)
	}
	rewriter, err := llmservice.New(&cfg.RewriteLLM)
	if err != nil {
		return nil, fmt.Errorf("error initializing rewrite model: %w", err)
	}

	return rag.NewRAG(store, rag.PDFSource{PathTemplate: cfg.Paths.PDF}, answerer, rewriter, rag.Options{
		TopK:    cfg.Index.TopK,
		Answer:  cfg.AnswerLLM.ModelConfig(),
		Rewrite: cfg.RewriteLLM.ModelConfig(),
	}), nil
}

package rag

import (
	"context"

	"github.com/rs/zerolog/log"

	"lesson-rag/internal/llmservice"
	"lesson-rag/internal/models"
	"lesson-rag/internal/prompt"
)

// IndexStore loads a lesson's vector index.
type IndexStore interface {
	Load(ctx context.Context, key models.LessonKey) (models.Index, error)
}

// DocumentSource returns a lesson's full source text.
type DocumentSource interface {
	Text(ctx context.Context, key models.LessonKey) (string, error)
}

// Options carries the per-operation model settings, fixed at startup.
type Options struct {
	TopK    int
	Answer  models.ModelConfig
	Rewrite models.ModelConfig
}

type RAG struct {
	store    IndexStore
	source   DocumentSource
	answerer llmservice.Generator
	rewriter llmservice.Generator
	opts     Options
}

func NewRAG(store IndexStore, source DocumentSource, answerer, rewriter llmservice.Generator, opts Options) *RAG {
	if opts.TopK <= 0 {
		opts.TopK = models.DefaultTopK
	}
	return &RAG{
		store:    store,
		source:   source,
		answerer: answerer,
		rewriter: rewriter,
		opts:     opts,
	}
}

// Query answers question from the lesson's index.
func (r *RAG) Query(ctx context.Context, key models.LessonKey, question string) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}

	idx, err := r.store.Load(ctx, key)
	if err != nil {
		return "", err
	}

	chunks, err := Retrieve(ctx, idx, question, r.opts.TopK)
	if err != nil {
		return "", err
	}
	log.Debug().Str("key", key.String()).Int("chunks", len(chunks)).Msg("Retrieved context")

	p, err := prompt.BuildByID(models.AnswerTemplateID, map[string]string{
		"context":  prompt.JoinContext(chunks),
		"question": question,
	})
	if err != nil {
		return "", err
	}

	return r.answerer.Generate(ctx, p, r.opts.Answer)
}

// Rewrite retells the lesson's source text in style.
func (r *RAG) Rewrite(ctx context.Context, key models.LessonKey, style string) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}

	content, err := r.source.Text(ctx, key)
	if err != nil {
		return "", err
	}
	log.Debug().Str("key", key.String()).Int("content_len", len(content)).Msg("Extracted lesson text")

	p, err := prompt.BuildByID(models.RewriteTemplateID, map[string]string{
		"style":   style,
		"content": content,
	})
	if err != nil {
		return "", err
	}

	return r.rewriter.Generate(ctx, p, r.opts.Rewrite)
}

package db

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"lesson-rag/internal/embedding"
	"lesson-rag/internal/models"
)

// documentTable is the slice of the documents table a Store uses.
type documentTable interface {
	Count(ctx context.Context, course string, lesson int) (int, error)
	Search(ctx context.Context, course string, lesson int, query []float32, limit int) ([]Document, error)
	Replace(ctx context.Context, course string, lesson int, docs []Document) error
}

type bunTable struct {
	db *bun.DB
}

func (t bunTable) Count(ctx context.Context, course string, lesson int) (int, error) {
	return CountDocuments(ctx, t.db, course, lesson)
}

func (t bunTable) Search(ctx context.Context, course string, lesson int, query []float32, limit int) ([]Document, error) {
	return SearchDocuments(ctx, t.db, course, lesson, query, limit)
}

func (t bunTable) Replace(ctx context.Context, course string, lesson int, docs []Document) error {
	return ReplaceDocuments(ctx, t.db, course, lesson, docs)
}

// Store serves lesson indexes out of the pgvector documents table.
type Store struct {
	table    documentTable
	embedder embedding.Embedder
}

func NewStore(db *bun.DB, embedder embedding.Embedder) *Store {
	return &Store{table: bunTable{db: db}, embedder: embedder}
}

// Load checks that the lesson has rows. Rows are not read until Search.
func (s *Store) Load(ctx context.Context, key models.LessonKey) (models.Index, error) {
	n, err := s.table.Count(ctx, key.Course, key.ID)
	if err != nil {
		return nil, models.Errorf(models.ErrLoad, "failed to load index %s: %v", key, err)
	}
	if n == 0 {
		return nil, models.Errorf(models.ErrNotFound, "index not found for course=%s lesson=%d", key.Course, key.ID)
	}
	log.Debug().Str("key", key.String()).Int("chunks", n).Msg("Loaded pgvector index")
	return &lessonIndex{store: s, key: key, count: n}, nil
}

// Build replaces the lesson's rows with freshly embedded chunks.
func (s *Store) Build(ctx context.Context, key models.LessonKey, chunks []string) error {
	vectors, err := embedding.GenerateEmbeddings(ctx, s.embedder, chunks)
	if err != nil {
		return err
	}
	docs := make([]Document, len(chunks))
	for i, c := range chunks {
		docs[i] = Document{
			Course:    key.Course,
			Lesson:    key.ID,
			ChunkID:   i + 1,
			Content:   c,
			Embedding: pgvector.NewVector(vectors[i]),
		}
	}
	if err := s.table.Replace(ctx, key.Course, key.ID, docs); err != nil {
		return fmt.Errorf("failed to store documents: %w", err)
	}
	return nil
}

type lessonIndex struct {
	store *Store
	key   models.LessonKey
	count int
}

func (i *lessonIndex) Count() int { return i.count }

func (i *lessonIndex) Search(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	q, err := i.store.embedder.EmbedQuery(ctx, embedding.Normalize(query))
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	docs, err := i.store.table.Search(ctx, i.key.Course, i.key.ID, q, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	chunks := make([]models.Chunk, len(docs))
	for j, d := range docs {
		chunks[j] = models.Chunk{
			ID:      fmt.Sprintf("%s-%d-%d", d.Course, d.Lesson, d.ChunkID),
			Content: d.Content,
			ChunkID: d.ChunkID,
		}
	}
	return chunks, nil
}

package chromemdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"lesson-rag/internal/models"
)

const (
	metaCourse = "course"
	metaLesson = "lesson"
	metaChunk  = "chunk"
)

// VectorDBManager wraps one lesson's persistent chromem database and its collection.
type VectorDBManager struct {
	db         *chromem.DB
	collection *chromem.Collection
	dbPath     string
	compress   bool
}

// Open loads the index persisted at dbPath. It never creates anything on disk.
func Open(dbPath, collectionName string, compress bool, embed chromem.EmbeddingFunc) (*VectorDBManager, error) {
	st, err := os.Stat(dbPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, models.Errorf(models.ErrNotFound, "index not found at: %s", dbPath)
		}
		return nil, models.Errorf(models.ErrLoad, "failed to stat index %s: %v", dbPath, err)
	}
	if !st.IsDir() {
		return nil, models.Errorf(models.ErrLoad, "index path is not a directory: %s", dbPath)
	}

	db, err := chromem.NewPersistentDB(dbPath, compress)
	if err != nil {
		return nil, models.Errorf(models.ErrLoad, "failed to load index %s: %v", dbPath, err)
	}
	c := db.GetCollection(collectionName, embed)
	if c == nil {
		return nil, models.Errorf(models.ErrNotFound, "index not found at: %s (no collection %q)", dbPath, collectionName)
	}

	return &VectorDBManager{db: db, collection: c, dbPath: dbPath, compress: compress}, nil
}

// Create starts a fresh index at dbPath, replacing any existing one.
func Create(dbPath, collectionName string, compress bool, metadata map[string]string, embed chromem.EmbeddingFunc) (*VectorDBManager, error) {
	if err := os.RemoveAll(dbPath); err != nil {
		return nil, fmt.Errorf("failed to remove old index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create index parent: %w", err)
	}
	db, err := chromem.NewPersistentDB(dbPath, compress)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	c, err := db.CreateCollection(collectionName, metadata, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return &VectorDBManager{db: db, collection: c, dbPath: dbPath, compress: compress}, nil
}

func (m *VectorDBManager) Count() int {
	return m.collection.Count()
}

// Search runs a similarity query against the collection.
func (m *VectorDBManager) Search(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	results, err := m.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}
	chunks := make([]models.Chunk, 0, len(results))
	for _, r := range results {
		id, _ := strconv.Atoi(r.Metadata[metaChunk])
		chunks = append(chunks, models.Chunk{
			ID:         r.ID,
			Content:    r.Content,
			ChunkID:    id,
			Similarity: r.Similarity,
		})
	}
	return chunks, nil
}

// AddChunks stores chunk texts in order; chromem embeds them.
func (m *VectorDBManager) AddChunks(ctx context.Context, key models.LessonKey, chunks []string) error {
	docs := make([]chromem.Document, 0, len(chunks))
	for i, content := range chunks {
		docs = append(docs, chromem.Document{
			ID:      fmt.Sprintf("%s-%d-%d", key.Course, key.ID, i+1),
			Content: content,
			Metadata: map[string]string{
				metaCourse: key.Course,
				metaLesson: strconv.Itoa(key.ID),
				metaChunk:  strconv.Itoa(i + 1),
			},
		})
	}
	if len(docs) == 0 {
		return nil
	}
	if err := m.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Export writes the collection to an encrypted gob file.
func (m *VectorDBManager) Export(filePath, encryptionKey string) error {
	if encryptionKey == "" {
		return fmt.Errorf("encryption key is required")
	}
	if filePath == "" {
		return fmt.Errorf("export file path is required")
	}

	log.Debug().
		Str("collection", m.collection.Name).
		Str("file", filePath).
		Bool("compress", m.compress).
		Str("db", m.dbPath).
		Msg("Exporting index")

	if err := m.db.ExportToFile(filePath, m.compress, encryptionKey, m.collection.Name); err != nil {
		return fmt.Errorf("failed to export database: %w", err)
	}
	return nil
}

package chromemdb

import (
	"context"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"lesson-rag/internal/models"
)

// Store resolves lesson keys to on-disk chromem indexes.
type Store struct {
	pathTemplate string
	collection   string
	compress     bool
	embed        chromem.EmbeddingFunc
}

func NewStore(pathTemplate, collection string, compress bool, embed chromem.EmbeddingFunc) *Store {
	return &Store{
		pathTemplate: pathTemplate,
		collection:   collection,
		compress:     compress,
		embed:        embed,
	}
}

// Path returns where the index for key lives.
func (s *Store) Path(key models.LessonKey) string {
	return key.FormatPath(s.pathTemplate)
}

// Load re-reads the index for key from disk on every call.
func (s *Store) Load(_ context.Context, key models.LessonKey) (models.Index, error) {
	path := s.Path(key)
	log.Debug().Str("key", key.String()).Str("path", path).Msg("Loading index")
	m, err := Open(path, s.collection, s.compress, s.embed)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Open loads the index for key as a manager, for export.
func (s *Store) Open(key models.LessonKey) (*VectorDBManager, error) {
	return Open(s.Path(key), s.collection, s.compress, s.embed)
}

// Build replaces the index for key with chunks.
func (s *Store) Build(ctx context.Context, key models.LessonKey, chunks []string) error {
	m, err := Create(s.Path(key), s.collection, s.compress, map[string]string{
		metaCourse: key.Course,
	}, s.embed)
	if err != nil {
		return err
	}
	return m.AddChunks(ctx, key, chunks)
}

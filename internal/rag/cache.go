package rag

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"lesson-rag/internal/models"
)

// CachedStore keeps the most recently used loaded indexes in memory. Failed
// loads are not cached.
type CachedStore struct {
	next  IndexStore
	cache *lru.Cache[models.LessonKey, models.Index]
}

func NewCachedStore(next IndexStore, size int) (*CachedStore, error) {
	cache, err := lru.New[models.LessonKey, models.Index](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create index cache: %w", err)
	}
	return &CachedStore{next: next, cache: cache}, nil
}

func (c *CachedStore) Load(ctx context.Context, key models.LessonKey) (models.Index, error) {
	if idx, ok := c.cache.Get(key); ok {
		log.Debug().Str("key", key.String()).Msg("Index cache hit")
		return idx, nil
	}
	idx, err := c.next.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, idx)
	log.Debug().Str("key", key.String()).Int("cached", c.cache.Len()).Msg("Index cached")
	return idx, nil
}

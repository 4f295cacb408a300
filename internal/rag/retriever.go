package rag

import (
	"context"
	"errors"
	"strings"

	"lesson-rag/internal/models"
)

// Retrieve asks idx for the k chunks nearest to query. When the index holds
// fewer than k chunks all of them are returned; an empty index or a blank
// query yields none.
func Retrieve(ctx context.Context, idx models.Index, query string, k int) ([]models.Chunk, error) {
	if k <= 0 || strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if n := idx.Count(); n < k {
		k = n
	}
	if k == 0 {
		return nil, nil
	}

	chunks, err := idx.Search(ctx, query, k)
	if err != nil {
		var kinded *models.Error
		if errors.As(err, &kinded) {
			return nil, err
		}
		return nil, models.NewError(models.ErrRetrieval, err)
	}
	if len(chunks) > k {
		chunks = chunks[:k]
	}
	return chunks, nil
}

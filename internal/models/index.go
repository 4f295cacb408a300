package models

import "context"

// Index is one lesson's loaded vector index.
type Index interface {
	// Count returns the number of chunks held.
	Count() int
	// Search returns up to k chunks ranked by descending similarity to query.
	// k must not exceed Count.
	Search(ctx context.Context, query string, k int) ([]Chunk, error)
}

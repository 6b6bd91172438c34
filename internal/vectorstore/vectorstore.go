package vectorstore

import (
	"context"
	"errors"

	"homematch/internal/model"
)

// ErrIndexMissing reports that a search was attempted before any index was
// built. It is a precondition failure, distinct from a search that simply
// returns zero results.
var ErrIndexMissing = errors.New("vector index does not exist, generate listings first")

// Store persists embedded listing chunks and answers similarity queries.
//
// Rebuild is destructive: any prior index held by the store handle is
// discarded before the new chunks are written. Rebuild and Search against
// the same handle must not run concurrently; the owning service serializes
// them.
//
// The score convention of Search results is the backend's own and must be
// preserved by callers, not renormalized: the local backend reports cosine
// similarity where higher is better, the postgres backend reports cosine
// distance where lower is better.
type Store interface {
	Rebuild(ctx context.Context, chunks []model.Chunk, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, topK int) ([]model.SearchResult, error)
	Ready(ctx context.Context) (bool, error)
	Close() error
}

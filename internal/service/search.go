package service

import (
	"context"
	"fmt"
	"sync"

	"homematch/internal/chunker"
	"homematch/internal/model"
	"homematch/internal/utils"
	"homematch/internal/vectorstore"
)

// SearchService owns the vector index handle: it rebuilds the index from
// parsed listings and answers semantic queries against it. Rebuild and
// Search are serialized internally because a rebuild is destructive.
type SearchService struct {
	chunker  *chunker.CharacterChunker
	embedder EmbeddingClient
	store    vectorstore.Store
	logger   *utils.Logger

	mu sync.Mutex
}

// NewSearchService creates a SearchService around the given index handle.
func NewSearchService(ch *chunker.CharacterChunker, embedder EmbeddingClient, store vectorstore.Store, logger *utils.Logger) *SearchService {
	return &SearchService{
		chunker:  ch,
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// RebuildIndex chunks every listing's description, attaches a metadata copy
// to each chunk, embeds the chunk texts, and destructively rebuilds the
// index. Returns the number of chunks indexed.
func (s *SearchService) RebuildIndex(ctx context.Context, records []model.ListingRecord) (int, error) {
	var chunks []model.Chunk
	var texts []string

	for id, rec := range records {
		pieces := s.chunker.Split(rec.Description)
		for i, piece := range pieces {
			chunks = append(chunks, model.Chunk{
				Text:     piece,
				Metadata: model.NewChunkMetadata(id, rec, i),
			})
			texts = append(texts, piece)
		}
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("indexing failed: no description text to index")
	}

	vectors, err := s.embedder.CreateEmbeddings(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Rebuild(ctx, chunks, vectors); err != nil {
		return 0, fmt.Errorf("index build failed: %w", err)
	}

	s.logger.Info("[search] rebuilt index with %d chunks from %d listings", len(chunks), len(records))
	return len(chunks), nil
}

// Search formulates the query sentence from the filter selection, embeds
// it, and returns up to topK chunks in the backend's own order along with
// the formulated query string. A missing index surfaces as
// vectorstore.ErrIndexMissing, distinct from an empty result.
func (s *SearchService) Search(ctx context.Context, sel *model.FilterSelection, topK int) (string, []model.SearchResult, error) {
	query := BuildQuery(sel)

	ready, err := s.store.Ready(ctx)
	if err != nil {
		return query, nil, fmt.Errorf("failed to check index: %w", err)
	}
	if !ready {
		return query, nil, vectorstore.ErrIndexMissing
	}

	vectors, err := s.embedder.CreateEmbeddings(ctx, []string{query})
	if err != nil {
		return query, nil, fmt.Errorf("query embedding failed: %w", err)
	}
	if len(vectors) != 1 {
		return query, nil, fmt.Errorf("query embedding failed: got %d vectors, want 1", len(vectors))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	results, err := s.store.Search(ctx, vectors[0], topK)
	if err != nil {
		return query, nil, fmt.Errorf("similarity search failed: %w", err)
	}

	s.logger.Info("[search] query %q returned %d results", query, len(results))
	return query, results, nil
}

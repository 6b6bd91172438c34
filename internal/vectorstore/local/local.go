package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"homematch/internal/model"
	"homematch/internal/vectorstore"
)

const indexFile = "index.json"

// Store is a disk-persisted vector index under a single directory. The
// directory's presence indicates an existing index; Rebuild removes it
// first. Search is brute-force cosine similarity over all entries, which is
// plenty for a demonstration-sized corpus.
//
// Scores are cosine similarity: higher is better.
type Store struct {
	dir string

	mu     sync.RWMutex
	loaded bool
	index  indexData
}

type indexData struct {
	Dimension int          `json:"dimension"`
	Entries   []indexEntry `json:"entries"`
}

type indexEntry struct {
	Chunk  model.Chunk `json:"chunk"`
	Vector []float32   `json:"vector"`
}

// NewStore creates a store handle for the given index directory. The
// directory is not touched until Rebuild or Search.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Rebuild discards any existing index at the store's directory and writes a
// fresh one from the given chunks and vectors.
func (s *Store) Rebuild(ctx context.Context, chunks []model.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	if len(vectors) == 0 {
		return errors.New("refusing to build an empty index")
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to remove existing index: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	idx := indexData{Dimension: dim, Entries: make([]indexEntry, len(chunks))}
	for i := range chunks {
		idx.Entries[i] = indexEntry{Chunk: chunks[i], Vector: vectors[i]}
	}
	data, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, indexFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	s.index = idx
	s.loaded = true
	return nil
}

// Search returns up to topK chunks ranked by cosine similarity to the query
// vector, best first.
func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]model.SearchResult, error) {
	if topK <= 0 {
		topK = 3
	}
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(vector) != s.index.Dimension {
		return nil, fmt.Errorf("query vector has dimension %d, index has %d", len(vector), s.index.Dimension)
	}

	type scored struct {
		entry indexEntry
		score float64
	}
	scores := make([]scored, len(s.index.Entries))
	for i, e := range s.index.Entries {
		scores[i] = scored{entry: e, score: cosine(vector, e.Vector)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if topK > len(scores) {
		topK = len(scores)
	}
	results := make([]model.SearchResult, 0, topK)
	for i := 0; i < topK; i++ {
		results = append(results, model.SearchResult{
			Content:  scores[i].entry.Chunk.Text,
			Metadata: scores[i].entry.Chunk.Metadata,
			Score:    scores[i].score,
		})
	}
	return results, nil
}

// Ready reports whether a persisted index exists at the store's directory.
func (s *Store) Ready(ctx context.Context) (bool, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return true, nil
	}
	_, err := os.Stat(filepath.Join(s.dir, indexFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Close releases the in-memory copy of the index.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.index = indexData{}
	return nil
}

// ensureLoaded lazily reads the persisted index into memory.
func (s *Store) ensureLoaded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return vectorstore.ErrIndexMissing
		}
		return fmt.Errorf("failed to read index: %w", err)
	}
	var idx indexData
	if err := json.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("failed to parse index: %w", err)
	}
	if idx.Dimension <= 0 {
		return errors.New("persisted index has invalid dimension")
	}
	s.index = idx
	s.loaded = true
	return nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

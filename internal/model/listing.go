package model

import "fmt"

// ListingRecord is one parsed real-estate listing. The numeric fields are
// pointers: when a single field fails numeric conversion it is stored as
// null while the record itself is kept. Both free-text fields are always
// non-empty on a successfully parsed record.
type ListingRecord struct {
	Neighborhood            string   `json:"neighborhood"`
	Price                   *int     `json:"price"`
	Bedrooms                *int     `json:"bedrooms"`
	Bathrooms               *float64 `json:"bathrooms"`
	HouseSize               *int     `json:"house_size"`
	Description             string   `json:"description"`
	NeighborhoodDescription string   `json:"neighborhood_description"`
}

// ChunkMetadata is the listing metadata copied onto every embedded chunk.
type ChunkMetadata struct {
	ListingID    int      `json:"listing_id"`
	Neighborhood string   `json:"neighborhood"`
	Price        *int     `json:"price"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *float64 `json:"bathrooms"`
	HouseSize    *int     `json:"house_size"`
	Source       string   `json:"source"`
	ChunkIndex   int      `json:"chunk_index"`
}

// Chunk is a sub-span of a listing's description prepared for embedding.
type Chunk struct {
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// SearchResult is one retrieved chunk with its similarity score. The score
// is whatever the vector backend reports, preserved as-is: the local store
// reports cosine similarity (higher is better), the postgres backend
// reports cosine distance (lower is better).
type SearchResult struct {
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
	Score    float64       `json:"score"`
}

// NewChunkMetadata builds the metadata copy for a listing identified by its
// position in the parsed batch.
func NewChunkMetadata(listingID int, rec ListingRecord, chunkIndex int) ChunkMetadata {
	return ChunkMetadata{
		ListingID:    listingID,
		Neighborhood: rec.Neighborhood,
		Price:        rec.Price,
		Bedrooms:     rec.Bedrooms,
		Bathrooms:    rec.Bathrooms,
		HouseSize:    rec.HouseSize,
		Source:       fmt.Sprintf("listing_%d", listingID),
		ChunkIndex:   chunkIndex,
	}
}

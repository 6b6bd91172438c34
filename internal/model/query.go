package model

// FilterSelection captures the user's structured preferences. Empty fields
// contribute nothing to the formulated query; a range counts as empty when
// both bounds are zero.
type FilterSelection struct {
	Neighborhoods []string  `json:"neighborhoods,omitempty"`
	PriceMin      int       `json:"price_min,omitempty"`
	PriceMax      int       `json:"price_max,omitempty"`
	Bedrooms      []int     `json:"bedrooms,omitempty"`
	Bathrooms     []float64 `json:"bathrooms,omitempty"`
	HouseSizeMin  int       `json:"house_size_min,omitempty"`
	HouseSizeMax  int       `json:"house_size_max,omitempty"`
	Extra         string    `json:"extra,omitempty"`
}

// GenerateRequest asks for a fresh batch of synthetic listings.
type GenerateRequest struct {
	Count int `json:"count"`
}

// GenerateResponse reports the outcome of the generate/parse/index pipeline.
type GenerateResponse struct {
	Requested    int   `json:"requested"`
	Parsed       int   `json:"parsed"`
	Skipped      int   `json:"skipped"`
	NulledFields int   `json:"nulled_fields"`
	Chunks       int   `json:"chunks"`
	Took         int64 `json:"took_ms"`
}

// SearchRequest carries the filter selection plus an optional result count.
type SearchRequest struct {
	FilterSelection
	TopK int `json:"top_k,omitempty"`
}

// SearchResponse returns the formulated query, the retrieved chunks in
// backend order, and the generated summary. A summarization failure fills
// SummaryError without discarding Results.
type SearchResponse struct {
	SearchID     string         `json:"search_id"`
	Query        string         `json:"query"`
	Results      []SearchResult `json:"results"`
	Summary      string         `json:"summary,omitempty"`
	SummaryError string         `json:"summary_error,omitempty"`
	Took         int64          `json:"took_ms"`
}

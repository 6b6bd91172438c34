package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"homematch/internal/chunker"
	"homematch/internal/model"
	"homematch/internal/parser"
	"homematch/internal/store"
	"homematch/internal/utils"
	"homematch/internal/vectorstore"
	"homematch/internal/vectorstore/local"
)

type fakeChat struct {
	out        string
	err        error
	lastPrompt string
	lastTemp   float64
}

func (f *fakeChat) Complete(_ context.Context, prompt string, temperature float64) (string, error) {
	f.lastPrompt = prompt
	f.lastTemp = temperature
	return f.out, f.err
}

// fakeEmbedder assigns each text a vector from keyword buckets so search
// tests can steer which chunk a query lands on.
type fakeEmbedder struct{}

func (fakeEmbedder) CreateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		lower := strings.ToLower(t)
		v := []float32{0.1, 0.1, 0.1}
		switch {
		case strings.Contains(lower, "eco") || strings.Contains(lower, "green oaks"):
			v = []float32{1, 0, 0}
		case strings.Contains(lower, "waterfront") || strings.Contains(lower, "harbor"):
			v = []float32{0, 1, 0}
		case strings.Contains(lower, "cozy") || strings.Contains(lower, "willow"):
			v = []float32{0, 0, 1}
		}
		out[i] = v
	}
	return out, nil
}

type failingEmbedder struct{}

func (failingEmbedder) CreateEmbeddings(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("embedding service unavailable")
}

func TestGeneratorPassesCountAndTemperature(t *testing.T) {
	chat := &fakeChat{out: "1. Neighborhood: ..."}
	g := NewGenerator(chat, 0.5, utils.NewLogger())

	if _, err := g.Generate(context.Background(), 7); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !strings.Contains(chat.lastPrompt, "Create 7 listings.") {
		t.Errorf("prompt does not request 7 listings:\n%s", chat.lastPrompt)
	}
	if chat.lastTemp != 0.5 {
		t.Errorf("temperature = %f, want 0.5", chat.lastTemp)
	}
}

func TestGeneratorDefaultsCount(t *testing.T) {
	chat := &fakeChat{out: "listings"}
	g := NewGenerator(chat, 0.5, utils.NewLogger())

	if _, err := g.Generate(context.Background(), 0); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !strings.Contains(chat.lastPrompt, "Create 10 listings.") {
		t.Error("zero count should default to 10 listings")
	}
}

func TestGeneratorPropagatesFailure(t *testing.T) {
	chat := &fakeChat{err: errors.New("rate limited")}
	g := NewGenerator(chat, 0.5, utils.NewLogger())

	_, err := g.Generate(context.Background(), 3)
	if err == nil {
		t.Fatal("Generate() should propagate the service failure")
	}
	if !strings.Contains(err.Error(), "listing generation failed") {
		t.Errorf("error %q should name the generation stage", err)
	}
}

func TestSummarizerPromptLayout(t *testing.T) {
	price := 800000
	beds := 3
	baths := 2.5
	size := 2000
	results := []model.SearchResult{
		{
			Content: "An eco-friendly oasis with solar panels.",
			Metadata: model.ChunkMetadata{
				Neighborhood: "Green Oaks",
				Price:        &price,
				Bedrooms:     &beds,
				Bathrooms:    &baths,
				HouseSize:    &size,
			},
		},
		{
			Content:  "Price unknown for this one.",
			Metadata: model.ChunkMetadata{Neighborhood: "Cedar Hills"},
		},
	}

	prompt := buildSummaryPrompt(results)

	for _, want := range []string{
		"Listing 1:",
		"Neighborhood: Green Oaks",
		"Price: $800000",
		"Bathrooms: 2.5",
		"House Size: 2000 sqft",
		"Description: An eco-friendly oasis with solar panels.",
		"Listing 2:",
		"Price: $N/A",
		"Bedrooms: N/A",
		"appeal to a potential buyer",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestSummarizerEmptyResults(t *testing.T) {
	s := NewSummarizer(&fakeChat{}, 0.5)
	if _, err := s.Summarize(context.Background(), nil); err == nil {
		t.Error("Summarize() with no results should fail")
	}
}

func TestSummarizerTrimsOutput(t *testing.T) {
	s := NewSummarizer(&fakeChat{out: "\n  A lovely selection of homes.  \n"}, 0.5)
	got, err := s.Summarize(context.Background(), []model.SearchResult{{Content: "x"}})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if got != "A lovely selection of homes." {
		t.Errorf("Summarize() = %q, want trimmed prose", got)
	}
}

func newTestSearchService(t *testing.T) *SearchService {
	t.Helper()
	idx := local.NewStore(filepath.Join(t.TempDir(), "idx"))
	return NewSearchService(chunker.New(1000, 200), fakeEmbedder{}, idx, utils.NewLogger())
}

func testRecords() []model.ListingRecord {
	return []model.ListingRecord{
		{Neighborhood: "Green Oaks", Description: "An eco-friendly oasis with solar panels.", NeighborhoodDescription: "Organic stores."},
		{Neighborhood: "Harbor View", Description: "A waterfront home with bay views.", NeighborhoodDescription: "Marinas."},
		{Neighborhood: "Willow Springs", Description: "A cozy starter home with a sunny backyard.", NeighborhoodDescription: "Quiet streets."},
	}
}

func TestSearchServiceEndToEnd(t *testing.T) {
	ctx := context.Background()
	svc := newTestSearchService(t)

	chunkCount, err := svc.RebuildIndex(ctx, testRecords())
	if err != nil {
		t.Fatalf("RebuildIndex() error: %v", err)
	}
	if chunkCount != 3 {
		t.Errorf("RebuildIndex() indexed %d chunks, want 3", chunkCount)
	}

	sel := &model.FilterSelection{Neighborhoods: []string{"Harbor View"}, Extra: "waterfront living"}
	query, results, err := svc.Search(ctx, sel, 2)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if query != "in Harbor View, that waterfront living." {
		t.Errorf("formulated query = %q", query)
	}
	if len(results) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(results))
	}
	if results[0].Metadata.Neighborhood != "Harbor View" {
		t.Errorf("best match neighborhood = %q, want Harbor View", results[0].Metadata.Neighborhood)
	}
	if results[0].Metadata.Source != "listing_1" {
		t.Errorf("best match source = %q, want listing_1", results[0].Metadata.Source)
	}
}

func TestSearchServiceMissingIndex(t *testing.T) {
	svc := newTestSearchService(t)

	_, _, err := svc.Search(context.Background(), &model.FilterSelection{}, 3)
	if !errors.Is(err, vectorstore.ErrIndexMissing) {
		t.Errorf("Search() before any build: error = %v, want ErrIndexMissing", err)
	}
}

func TestSearchServiceEmbeddingFailure(t *testing.T) {
	idx := local.NewStore(filepath.Join(t.TempDir(), "idx"))
	svc := NewSearchService(chunker.New(1000, 200), failingEmbedder{}, idx, utils.NewLogger())

	_, err := svc.RebuildIndex(context.Background(), testRecords())
	if err == nil {
		t.Fatal("RebuildIndex() should surface the embedding failure")
	}
	if !strings.Contains(err.Error(), "embedding failed") {
		t.Errorf("error %q should name the embedding stage", err)
	}
}

func TestListingServicePipeline(t *testing.T) {
	ctx := context.Background()
	logger := utils.NewLogger()

	raw := `1. Neighborhood: Green Oaks
Price: $800,000
Bedrooms: 3
Bathrooms: 2
House Size: 2,000 sqft
Description: An eco-friendly oasis with solar panels.
Neighborhood Description: Organic stores.

2. Neighborhood: Harbor View
Price: $N/A
Bedrooms: 4
Bathrooms: 2.5
House Size: 3,200 sqft
Description: A waterfront home with bay views.
Neighborhood Description: Marinas.`

	chat := &fakeChat{out: raw}
	files := store.NewFileStore(filepath.Join(t.TempDir(), "listings.json"))
	search := newTestSearchService(t)
	svc := NewListingService(NewGenerator(chat, 0.5, logger), parser.New(logger), files, search, logger)

	resp, err := svc.Refresh(ctx, 2)
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if resp.Parsed != 2 || resp.Skipped != 0 {
		t.Errorf("response = %+v, want 2 parsed, 0 skipped", resp)
	}
	if resp.NulledFields != 1 {
		t.Errorf("nulled fields = %d, want 1 (the $N/A price)", resp.NulledFields)
	}
	if resp.Chunks != 2 {
		t.Errorf("chunks = %d, want 2", resp.Chunks)
	}

	listings, err := svc.Listings()
	if err != nil {
		t.Fatalf("Listings() error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("Listings() returned %d records, want 2", len(listings))
	}
	if listings[1].Price != nil {
		t.Errorf("second listing price = %v, want null", *listings[1].Price)
	}

	// The index built by the pipeline must be searchable.
	_, results, err := search.Search(ctx, &model.FilterSelection{Extra: "eco living"}, 1)
	if err != nil {
		t.Fatalf("Search() after Refresh error: %v", err)
	}
	if results[0].Metadata.Neighborhood != "Green Oaks" {
		t.Errorf("best match = %q, want Green Oaks", results[0].Metadata.Neighborhood)
	}
}

func TestListingServiceUnparseableOutput(t *testing.T) {
	logger := utils.NewLogger()
	chat := &fakeChat{out: "I cannot help with that."}
	files := store.NewFileStore(filepath.Join(t.TempDir(), "listings.json"))
	svc := NewListingService(NewGenerator(chat, 0.5, logger), parser.New(logger), files, newTestSearchService(t), logger)

	_, err := svc.Refresh(context.Background(), 5)
	if err == nil {
		t.Fatal("Refresh() should fail when nothing parses")
	}
	if !strings.Contains(err.Error(), "parsing failed") {
		t.Errorf("error %q should name the parsing stage", err)
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"homematch/internal/model"
	"homematch/internal/parser"
	"homematch/internal/store"
	"homematch/internal/utils"
)

// ListingService runs the generate, parse, persist, index pipeline and
// serves the stored listing records.
type ListingService struct {
	generator *Generator
	parser    *parser.Parser
	files     *store.FileStore
	search    *SearchService
	logger    *utils.Logger
}

// NewListingService wires the pipeline stages together.
func NewListingService(g *Generator, p *parser.Parser, files *store.FileStore, search *SearchService, logger *utils.Logger) *ListingService {
	return &ListingService{
		generator: g,
		parser:    p,
		files:     files,
		search:    search,
		logger:    logger,
	}
}

// Refresh generates a fresh batch of synthetic listings, parses them,
// replaces the listing file, and rebuilds the vector index. Each stage
// failure names the stage; parse problems degrade per-record and never
// abort the batch.
func (s *ListingService) Refresh(ctx context.Context, count int) (*model.GenerateResponse, error) {
	start := time.Now()
	if count <= 0 {
		count = 10
	}

	raw, err := s.generator.Generate(ctx, count)
	if err != nil {
		return nil, err
	}

	records, report := s.parser.Parse(raw)
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing failed: no valid listings found in generator output")
	}
	if report.Skipped > 0 || report.NulledFields > 0 {
		s.logger.Warn("[listings] parse degraded: %d blocks skipped, %d fields nulled", report.Skipped, report.NulledFields)
	}

	if err := s.files.Save(records); err != nil {
		return nil, fmt.Errorf("saving listings failed: %w", err)
	}

	// Index from the persisted file so the index always reflects what is
	// on disk.
	saved, err := s.files.Load()
	if err != nil {
		return nil, fmt.Errorf("reloading listings failed: %w", err)
	}

	chunkCount, err := s.search.RebuildIndex(ctx, saved)
	if err != nil {
		return nil, err
	}

	return &model.GenerateResponse{
		Requested:    count,
		Parsed:       report.Parsed,
		Skipped:      report.Skipped,
		NulledFields: report.NulledFields,
		Chunks:       chunkCount,
		Took:         time.Since(start).Milliseconds(),
	}, nil
}

// Listings returns the records currently persisted in the listing file.
func (s *ListingService) Listings() ([]model.ListingRecord, error) {
	return s.files.Load()
}

package parser

import (
	"regexp"
	"strconv"
	"strings"

	"homematch/internal/model"
	"homematch/internal/utils"
)

var (
	// ordinalRe isolates one listing per "<n>. Neighborhood:" prefix.
	ordinalRe = regexp.MustCompile(`\n?\d+\.\s+Neighborhood:`)

	// blockRe extracts the structured fields from one listing block. Field
	// values are captured as raw line text so that a non-numeric value (for
	// example "Price: $N/A") still matches the block and degrades to a null
	// field instead of rejecting the whole listing. The description is
	// matched lazily so it stops at the next label; the neighborhood
	// description is terminal and consumes the rest of the block.
	blockRe = regexp.MustCompile(`(?s)Neighborhood:\s*(.+?)\n\s*` +
		`Price:\s*\$(.+?)\n\s*` +
		`Bedrooms:\s*(.+?)\n\s*` +
		`Bathrooms:\s*(.+?)\n\s*` +
		`House Size:\s*(.+?)\s*sqft\n\s*` +
		`Description:\s*(.+?)\n\s*` +
		`Neighborhood Description:\s*(.+)`)
)

// Report summarises a parse run. Skipped counts whole blocks that did not
// match the template; NulledFields counts individual numeric fields that
// failed conversion on otherwise valid records.
type Report struct {
	Parsed       int `json:"parsed"`
	Skipped      int `json:"skipped"`
	NulledFields int `json:"nulled_fields"`
}

// Parser converts raw generator output into structured listing records.
// Malformed entries are logged and skipped, never raised.
type Parser struct {
	logger *utils.Logger
}

// New creates a Parser with the given logger.
func New(logger *utils.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse splits the input on the ordinal prefix pattern, discards any
// preamble before the first match, and extracts one record per block.
// Blocks that do not match the template are skipped; numeric fields that
// fail conversion are set to null on a retained record.
func (p *Parser) Parse(input string) ([]model.ListingRecord, Report) {
	var report Report

	splits := ordinalRe.Split(input, -1)
	if len(splits) <= 1 {
		p.logger.Warn("[parser] no numbered listings found in input (%d bytes)", len(input))
		return []model.ListingRecord{}, report
	}

	blocks := splits[1:]
	records := make([]model.ListingRecord, 0, len(blocks))

	for i, block := range blocks {
		ordinal := i + 1

		// The split consumed the "Neighborhood:" label; reattach it.
		block = "Neighborhood:" + strings.TrimSpace(block)

		m := blockRe.FindStringSubmatch(block)
		if m == nil {
			p.logger.Warn("[parser] listing %d does not match the expected format and was skipped", ordinal)
			report.Skipped++
			continue
		}

		rec := model.ListingRecord{
			Neighborhood:            strings.TrimSpace(m[1]),
			Description:             strings.TrimSpace(m[6]),
			NeighborhoodDescription: strings.TrimSpace(m[7]),
		}
		rec.Price = p.parseInt(m[2], "price", ordinal, &report)
		rec.Bedrooms = p.parseInt(m[3], "bedrooms", ordinal, &report)
		rec.Bathrooms = p.parseFloat(m[4], "bathrooms", ordinal, &report)
		rec.HouseSize = p.parseInt(m[5], "house size", ordinal, &report)

		records = append(records, rec)
		report.Parsed++
	}

	return records, report
}

// parseInt strips thousands separators and converts to a non-negative
// integer, returning nil on failure.
func (p *Parser) parseInt(raw, field string, ordinal int, report *Report) *int {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		p.logger.Warn("[parser] listing %d: invalid %s format %q, setting value as null", ordinal, field, strings.TrimSpace(raw))
		report.NulledFields++
		return nil
	}
	return &v
}

// parseFloat converts to a non-negative decimal so half-baths like "2.5"
// survive, returning nil on failure.
func (p *Parser) parseFloat(raw, field string, ordinal int, report *Report) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		p.logger.Warn("[parser] listing %d: invalid %s format %q, setting value as null", ordinal, field, strings.TrimSpace(raw))
		report.NulledFields++
		return nil
	}
	return &v
}

package service

import (
	"context"
	"fmt"
	"strings"

	"homematch/internal/model"
	"homematch/internal/utils"
)

// Summarizer turns retrieved listings into a buyer-facing prose summary.
// There is exactly one summarization entry point with one temperature knob;
// callers that need a summary all go through here.
type Summarizer struct {
	client      ChatClient
	temperature float64
}

// NewSummarizer creates a Summarizer using the given chat client.
func NewSummarizer(client ChatClient, temperature float64) *Summarizer {
	return &Summarizer{client: client, temperature: temperature}
}

// Summarize produces a prose recommendation from the search results.
// Failures surface as errors; the caller keeps its results either way.
func (s *Summarizer) Summarize(ctx context.Context, results []model.SearchResult) (string, error) {
	if len(results) == 0 {
		return "", fmt.Errorf("no search results to summarize")
	}

	summary, err := s.client.Complete(ctx, buildSummaryPrompt(results), s.temperature)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

// buildSummaryPrompt lays out each retrieved listing's metadata and content
// for the model, then asks for a buyer-oriented summary.
func buildSummaryPrompt(results []model.SearchResult) string {
	var b strings.Builder
	b.WriteString("Based on the following real estate listings, write a compelling summary or exposé highlighting the key features and benefits of these properties:\n\n")

	for i, r := range results {
		md := r.Metadata
		fmt.Fprintf(&b, "Listing %d:\n", i+1)
		fmt.Fprintf(&b, "Neighborhood: %s\n", orNA(md.Neighborhood))
		fmt.Fprintf(&b, "Price: $%s\n", intOrNA(md.Price))
		fmt.Fprintf(&b, "Bedrooms: %s\n", intOrNA(md.Bedrooms))
		fmt.Fprintf(&b, "Bathrooms: %s\n", floatOrNA(md.Bathrooms))
		fmt.Fprintf(&b, "House Size: %s sqft\n", intOrNA(md.HouseSize))
		fmt.Fprintf(&b, "Description: %s\n\n", r.Content)
	}

	b.WriteString("Please provide a summary that would appeal to a potential buyer, focusing on how these listings meet the user's preferences.")
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func intOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

func floatOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return utils.FormatDecimal(*v)
}

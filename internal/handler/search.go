package handler

import (
	"errors"
	"net/http"
	"time"

	"homematch/internal/model"
	"homematch/internal/service"
	"homematch/internal/utils"
	"homematch/internal/vectorstore"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService *service.SearchService
	summarizer    *service.Summarizer
	defaultTopK   int
	maxTopK       int
	logger        *utils.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService, summarizer *service.Summarizer, defaultTopK, maxTopK int, logger *utils.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		summarizer:    summarizer,
		defaultTopK:   defaultTopK,
		maxTopK:       maxTopK,
		logger:        logger,
	}
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Validate and cap limits
	if req.TopK <= 0 {
		req.TopK = h.defaultTopK
	}
	if req.TopK > h.maxTopK {
		req.TopK = h.maxTopK
	}

	start := time.Now()

	query, results, err := h.searchService.Search(c.Request.Context(), &req.FilterSelection, req.TopK)
	if err != nil {
		switch {
		case errors.Is(err, vectorstore.ErrIndexMissing):
			c.JSON(http.StatusPreconditionFailed, gin.H{"error": "No listing index built yet; generate listings first"})
		case errors.Is(err, service.ErrDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search unavailable: no API key configured"})
		default:
			h.logger.Error("search failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		}
		return
	}

	response := &model.SearchResponse{
		SearchID: uuid.New().String(),
		Query:    query,
		Results:  results,
		Took:     time.Since(start).Milliseconds(),
	}

	// A failed summary must not discard the retrieved results.
	if len(results) > 0 {
		summary, err := h.summarizer.Summarize(c.Request.Context(), results)
		if err != nil {
			h.logger.Warn("summary generation failed for search %s: %v", response.SearchID, err)
			response.SummaryError = err.Error()
		} else {
			response.Summary = summary
		}
		response.Took = time.Since(start).Milliseconds()
	}

	c.JSON(http.StatusOK, response)
}

package handler

import (
	"errors"
	"io"
	"net/http"

	"homematch/internal/model"
	"homematch/internal/service"
	"homematch/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListingHandler handles listing generation and retrieval HTTP requests
type ListingHandler struct {
	listingService *service.ListingService
	logger         *utils.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService *service.ListingService, logger *utils.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		logger:         logger,
	}
}

// Generate handles POST /api/v1/listings/generate
func (h *ListingHandler) Generate(c *gin.Context) {
	// An empty body is fine, the count then falls back to its default.
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Count < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Count must not be negative"})
		return
	}

	response, err := h.listingService.Refresh(c.Request.Context(), req.Count)
	if err != nil {
		if errors.Is(err, service.ErrDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Generation unavailable: no API key configured"})
			return
		}
		h.logger.Error("listing refresh failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/listings
func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.listingService.Listings()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No listings available: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(listings), "listings": listings})
}

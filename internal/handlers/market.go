package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homescope/homescope/internal/services"
	"github.com/sony/gobreaker/v2"
)

type MarketHandler struct {
	marketStatsService  *services.MarketStatsService
	marketReportService *services.MarketReportService
}

func NewMarketHandler(marketStatsService *services.MarketStatsService, marketReportService *services.MarketReportService) *MarketHandler {
	return &MarketHandler{
		marketStatsService:  marketStatsService,
		marketReportService: marketReportService,
	}
}

// ListSnapshots returns the snapshot for every tracked city
func (h *MarketHandler) ListSnapshots(c *gin.Context) {
	snapshots, err := h.marketStatsService.ListSnapshots()
	if err != nil {
		respondWithError(c, err, "Failed to list market snapshots")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"snapshots": snapshots,
	})
}

// GetSnapshot returns the market snapshot for a city
func (h *MarketHandler) GetSnapshot(c *gin.Context) {
	snapshot, err := h.marketStatsService.GetSnapshot(c.Param("city"))
	if err != nil {
		respondWithError(c, err, "Failed to get market snapshot")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"snapshot": snapshot,
	})
}

// GenerateReport produces an AI market report for a city
func (h *MarketHandler) GenerateReport(c *gin.Context) {
	report, err := h.marketReportService.GenerateReport(c.Request.Context(), c.Param("city"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoAPIKey):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "No Perplexity API key configured",
			})
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "AI report backend temporarily unavailable",
			})
		default:
			respondWithError(c, err, "Failed to generate market report")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report,
	})
}

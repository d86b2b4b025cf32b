package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homescope/homescope/internal/models"
	"github.com/homescope/homescope/internal/services"
	"github.com/homescope/homescope/pkg/logger"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
	exportService   *services.ExportService
}

func NewPropertyHandler(propertyService *services.PropertyService, exportService *services.ExportService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		exportService:   exportService,
	}
}

// ListProperties returns listings filtered by query parameters
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	filter := &models.PropertyFilter{
		City:     c.Query("city"),
		Status:   c.Query("status"),
		MinPrice: parseInt64Query(c, "min_price"),
		MaxPrice: parseInt64Query(c, "max_price"),
		MinBeds:  int(parseInt64Query(c, "min_beds")),
	}

	properties, err := h.propertyService.List(filter)
	if err != nil {
		logger.WithError(err).Error("Failed to list properties")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to list properties",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"properties": properties,
	})
}

// GetProperty returns a single listing by id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	property, err := h.propertyService.GetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to get property")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"property": property,
	})
}

// ExportComparison streams an xlsx comparing the selected properties
func (h *PropertyHandler) ExportComparison(c *gin.Context) {
	raw := c.Query("ids")
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	workbook, err := h.exportService.ComparisonWorkbook(ids)
	if err != nil {
		respondWithError(c, err, "Failed to build comparison export")
		return
	}

	filename := fmt.Sprintf("comparison-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		logger.WithError(err).Error("Failed to stream comparison export")
	}
}

func parseInt64Query(c *gin.Context, name string) int64 {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// respondWithError maps the error taxonomy onto HTTP statuses
func respondWithError(c *gin.Context, err error, fallback string) {
	switch {
	case models.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case models.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	default:
		logger.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fallback})
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homescope/homescope/internal/models"
	"github.com/homescope/homescope/internal/services"
)

type MortgageHandler struct {
	mortgageService *services.MortgageService
}

func NewMortgageHandler(mortgageService *services.MortgageService) *MortgageHandler {
	return &MortgageHandler{mortgageService: mortgageService}
}

// Calculate computes a fixed-rate mortgage payment and totals
func (h *MortgageHandler) Calculate(c *gin.Context) {
	var request models.MortgageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.mortgageService.Calculate(&request)
	if err != nil {
		respondWithError(c, err, "Failed to calculate mortgage")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

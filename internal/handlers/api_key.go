package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homescope/homescope/internal/models"
	"github.com/homescope/homescope/internal/services"
)

type APIKeyHandler struct {
	apiKeyService *services.APIKeyService
}

func NewAPIKeyHandler(apiKeyService *services.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{apiKeyService: apiKeyService}
}

// CreateKey stores a new API key and returns it with the plaintext secret.
// This is the only place the full secret leaves the server.
func (h *APIKeyHandler) CreateKey(c *gin.Context) {
	var request models.APIKeyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	key, err := h.apiKeyService.Create(&request)
	if err != nil {
		if models.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create API key",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"key":     key,
	})
}

// ListKeys returns all stored keys with masked secrets
func (h *APIKeyHandler) ListKeys(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"keys":    h.apiKeyService.List(),
	})
}

// DeleteKey removes a key by id, service name, or legacy alias
func (h *APIKeyHandler) DeleteKey(c *gin.Context) {
	identifier := c.Param("identifier")

	if err := h.apiKeyService.Delete(identifier); err != nil {
		if models.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "API key not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete API key",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "API key deleted",
	})
}

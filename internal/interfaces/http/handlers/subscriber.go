// internal/interfaces/http/handlers/subscriber.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/coralstore-backend/internal/domain/catalog"
)

// SubscriberHandler handles marketing list endpoints
type SubscriberHandler struct {
	catalogService *catalog.Service
}

// NewSubscriberHandler creates a new subscriber handler
func NewSubscriberHandler(catalogService *catalog.Service) *SubscriberHandler {
	return &SubscriberHandler{
		catalogService: catalogService,
	}
}

// SubscribeRequest is a marketing list signup
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name,omitempty"`
}

// Subscribe handles POST /subscribers
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.catalogService.CreateSubscriber(c.Request.Context(), req.Email, req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to subscribe",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Subscribed successfully",
	})
}

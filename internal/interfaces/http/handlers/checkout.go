// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/coralstore-backend/internal/domain/checkout"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	receipt, err := h.checkoutService.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		c.JSON(statusForCheckoutError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    receipt,
	})
}

// statusForCheckoutError maps checkout failures to HTTP status codes.
// Validation failures are the client's problem; gateway failures are
// upstream's.
func statusForCheckoutError(err error) int {
	var chargeErr *checkout.GatewayChargeError
	var orderErr *checkout.GatewayOrderCreationError

	switch {
	case checkout.IsValidationError(err):
		return http.StatusBadRequest
	case errors.As(err, &chargeErr):
		return http.StatusPaymentRequired
	case errors.As(err, &orderErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// internal/interfaces/http/handlers/checkout_test.go
package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/coralstore-backend/internal/domain/checkout"
)

func TestStatusForCheckoutError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty cart", checkout.ErrEmptyCart, http.StatusBadRequest},
		{"missing address", checkout.ErrShippingAddressRequired, http.StatusBadRequest},
		{"product missing", &checkout.ProductNotFoundError{ProductName: "Torch Coral"}, http.StatusBadRequest},
		{"stock short", &checkout.InsufficientStockError{ProductName: "Zoa", Available: 1}, http.StatusBadRequest},
		{"bad ship date", &checkout.ShipDateError{Reason: "no"}, http.StatusBadRequest},
		{"charge declined", &checkout.GatewayChargeError{Message: "declined"}, http.StatusPaymentRequired},
		{"order rejected", &checkout.GatewayOrderCreationError{Message: "bad"}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForCheckoutError(tt.err))
		})
	}
}

func TestPlaceOrderRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewCheckoutHandler(nil)
	router := gin.New()
	router.POST("/checkout", handler.PlaceOrder)

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"items":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request data")
}

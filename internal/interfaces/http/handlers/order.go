// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/coralstore-backend/internal/domain/order"
	"github.com/your-org/coralstore-backend/internal/pkg/pdf"
)

// OrderHandler handles post-purchase order lookup endpoints
type OrderHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, pdfService *pdf.Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		pdfService:   pdfService,
	}
}

// GetOrder handles GET /orders/:id. The id may be a payment id or an
// order id; the success redirect carries whichever the gateway issued.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	details, err := h.orderService.GetOrderDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	receipt := order.BuildReceipt(details.Order, details.Payment, nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    receipt,
	})
}

// GetOrderReceiptPDF handles GET /orders/:id/receipt.pdf
func (h *OrderHandler) GetOrderReceiptPDF(c *gin.Context) {
	details, err := h.orderService.GetOrderDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	receipt := order.BuildReceipt(details.Order, details.Payment, nil)

	buf, err := h.pdfService.GenerateReceipt(&receipt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt PDF",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", receipt.OrderID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/coralstore-backend/internal/domain/catalog"
)

// ProductHandler handles catalog read endpoints
type ProductHandler struct {
	catalogService *catalog.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *catalog.Service) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// ListProducts handles GET /products. Every product carries its
// current sale pricing so the storefront never computes prices itself.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.PricedProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Catalog is temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.PricedProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Catalog is temporarily unavailable",
		})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// GetCheckoutSettings handles GET /checkout/settings
func (h *ProductHandler) GetCheckoutSettings(c *gin.Context) {
	settings, err := h.catalogService.CheckoutSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Checkout settings are temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout settings retrieved successfully",
		"data":    settings,
	})
}

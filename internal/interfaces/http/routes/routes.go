// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/coralstore-backend/internal/domain/catalog"
	"github.com/your-org/coralstore-backend/internal/domain/checkout"
	"github.com/your-org/coralstore-backend/internal/domain/order"
	"github.com/your-org/coralstore-backend/internal/interfaces/http/handlers"
	"github.com/your-org/coralstore-backend/internal/pkg/pdf"
)

// Services carries the wired domain services the routes depend on
type Services struct {
	Catalog  *catalog.Service
	Checkout *checkout.Service
	Order    *order.Service
	PDF      *pdf.Service
}

// SetupRoutes wires all API routes onto the given group
func SetupRoutes(rg *gin.RouterGroup, svcs Services) {
	productHandler := handlers.NewProductHandler(svcs.Catalog)
	checkoutHandler := handlers.NewCheckoutHandler(svcs.Checkout)
	orderHandler := handlers.NewOrderHandler(svcs.Order, svcs.PDF)
	subscriberHandler := handlers.NewSubscriberHandler(svcs.Catalog)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.POST("", checkoutHandler.PlaceOrder)
		checkoutGroup.GET("/settings", productHandler.GetCheckoutSettings)
	}

	orders := rg.Group("/orders")
	{
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/receipt.pdf", orderHandler.GetOrderReceiptPDF)
	}

	rg.POST("/subscribers", subscriberHandler.Subscribe)
}

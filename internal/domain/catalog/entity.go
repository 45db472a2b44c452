// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/your-org/coralstore-backend/internal/domain/pricing"
)

// Product is the authoritative catalog record for a storefront item.
// Prices are stored in dollars by the CMS; inventory is the
// authoritative stock signal and is decremented by successful orders.
type Product struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	Price     float64  `json:"price"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags,omitempty"`
	Inventory int      `json:"inventory"`
	ImageURL  string   `json:"imageUrl,omitempty"`
}

// PricingProjection returns the pricing-relevant view of the product
func (p Product) PricingProjection() pricing.Product {
	return pricing.Product{
		ID:        p.ID,
		BasePrice: p.Price,
		Category:  p.Category,
		Tags:      p.Tags,
	}
}

// PricedProduct is a product with its current sale pricing applied,
// ready for storefront display.
type PricedProduct struct {
	Product
	Pricing pricing.PriceResult `json:"pricing"`
}

// CheckoutSettings is the merchant-managed checkout configuration
// document. All fields are optional; callers fall back to configured
// defaults when the document is missing or incomplete.
type CheckoutSettings struct {
	AllowedShippingDays  []string `json:"allowedShippingDays,omitempty"` // weekday numbers, "0" = Sunday
	BlackoutDates        []string `json:"blackoutDates,omitempty"`       // YYYY-MM-DD
	MaxBookingWindowDays int      `json:"maxBookingWindowDays,omitempty"`
	PickupWarning        string   `json:"pickupWarning,omitempty"`
	FlatRateShipping     *float64 `json:"flatRateShipping,omitempty"` // dollars
	TaxRate              *float64 `json:"taxRate,omitempty"`          // percent
}

// Subscriber is a marketing-list entry
type Subscriber struct {
	Email    string    `json:"email"`
	Name     string    `json:"name,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}

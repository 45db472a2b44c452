// internal/domain/pricing/entity.go
package pricing

import "time"

// DiscountType determines how a sale's amount is interpreted
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Sale represents a discount campaign from the CMS
type Sale struct {
	ID           string       `json:"_id"`
	Title        string       `json:"title"`
	IsActive     bool         `json:"isActive"`
	DiscountType DiscountType `json:"discountType"`
	Amount       float64      `json:"amount"` // percent (0-100) or dollars, per DiscountType
	StartDate    *time.Time   `json:"startDate,omitempty"`
	EndDate      *time.Time   `json:"endDate,omitempty"`

	// Targeting dimensions, OR-combined. A sale with all three
	// empty matches nothing.
	TargetCategories []string `json:"targetCategories,omitempty"`
	TargetTags       []string `json:"targetTags,omitempty"`
	TargetProducts   []string `json:"targetProducts,omitempty"`
}

// Product is the pricing-relevant projection of a catalog product
type Product struct {
	ID        string   `json:"_id"`
	BasePrice float64  `json:"price"` // dollars
	Category  string   `json:"category"`
	Tags      []string `json:"tags,omitempty"`
}

// PriceResult is the outcome of evaluating a product against the
// currently active sales.
type PriceResult struct {
	OriginalPrice  float64 `json:"originalPrice"`
	SalePrice      float64 `json:"salePrice"`
	IsOnSale       bool    `json:"isOnSale"`
	DiscountAmount float64 `json:"discountAmount"`
	SaleLabel      string  `json:"saleLabel,omitempty"`
}

// internal/domain/checkout/entity.go
package checkout

import "time"

// DeliveryMethod selects the fulfillment branch
type DeliveryMethod string

const (
	DeliveryShip   DeliveryMethod = "ship"
	DeliveryPickup DeliveryMethod = "pickup"
)

// CartItem is a client-submitted cart entry. Only the product id and
// quantity drive the order; name and image are display hints that are
// re-derived from the catalog before anything priced is built.
type CartItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Name      string `json:"name,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// CustomerInfo is the buyer's contact information
type CustomerInfo struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// ShippingDetails is the destination for a shipped order
type ShippingDetails struct {
	AddressLine1  string     `json:"address_line_1"`
	AddressLine2  string     `json:"address_line_2,omitempty"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	PostalCode    string     `json:"postal_code"`
	Country       string     `json:"country,omitempty"`
	RequestedDate *time.Time `json:"requested_date,omitempty"`
	Phone         string     `json:"phone,omitempty"`
}

// PlaceOrderRequest is one checkout attempt
type PlaceOrderRequest struct {
	Items            []CartItem       `json:"items" binding:"required"`
	Customer         CustomerInfo     `json:"customer" binding:"required"`
	Delivery         DeliveryMethod   `json:"delivery" binding:"required,oneof=ship pickup"`
	Shipping         *ShippingDetails `json:"shipping,omitempty"`
	MarketingConsent bool             `json:"marketing_consent"`
	PaymentToken     string           `json:"payment_token" binding:"required"`
}

// internal/infrastructure/square/types.go
package square

import (
	"fmt"
	"time"
)

// Money is a wire-format amount in minor currency units.
// Square sends and accepts plain integers here; conversion to the
// string-safe representation happens at the API response boundary.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// LineItem is one priced entry of an order
type LineItem struct {
	UID            string `json:"uid,omitempty"`
	Name           string `json:"name"`
	Quantity       string `json:"quantity"`
	BasePriceMoney Money  `json:"base_price_money"`
	Note           string `json:"note,omitempty"`
}

// OrderTax is an order-scoped tax specification. The gateway computes
// the tax amount from the percentage and folds it into the total.
type OrderTax struct {
	UID        string `json:"uid,omitempty"`
	Name       string `json:"name"`
	Percentage string `json:"percentage"`
	Scope      string `json:"scope"`
	Type       string `json:"type"`
}

// Address is a shipping destination
type Address struct {
	AddressLine1  string `json:"address_line_1"`
	AddressLine2  string `json:"address_line_2,omitempty"`
	Locality      string `json:"locality"`
	AdminDistrict string `json:"administrative_district_level_1"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
}

// Recipient identifies who a shipment goes to
type Recipient struct {
	DisplayName  string   `json:"display_name"`
	EmailAddress string   `json:"email_address,omitempty"`
	PhoneNumber  string   `json:"phone_number,omitempty"`
	Address      *Address `json:"address,omitempty"`
}

// ShipmentDetails carries the destination and optional expected date
type ShipmentDetails struct {
	Recipient         Recipient `json:"recipient"`
	ExpectedShippedAt string    `json:"expected_shipped_at,omitempty"`
}

// Fulfillment is the shipment-or-pickup delivery descriptor
type Fulfillment struct {
	Type            string           `json:"type"`
	State           string           `json:"state"`
	ShipmentDetails *ShipmentDetails `json:"shipment_details,omitempty"`
}

const (
	FulfillmentTypeShipment  = "SHIPMENT"
	FulfillmentStateProposed = "PROPOSED"

	TaxScopeOrder   = "ORDER"
	TaxTypeAdditive = "ADDITIVE"
)

// OrderRequest is the order body of a create-order call
type OrderRequest struct {
	LocationID   string        `json:"location_id"`
	ReferenceID  string        `json:"reference_id,omitempty"`
	LineItems    []LineItem    `json:"line_items"`
	Taxes        []OrderTax    `json:"taxes,omitempty"`
	Fulfillments []Fulfillment `json:"fulfillments,omitempty"`
}

// CreateOrderRequest is the full create-order payload
type CreateOrderRequest struct {
	IdempotencyKey string       `json:"idempotency_key"`
	Order          OrderRequest `json:"order"`
}

// Card is a payment card summary
type Card struct {
	CardBrand string `json:"card_brand"`
	Last4     string `json:"last_4"`
}

// TenderCardDetails describes the card behind a tender
type TenderCardDetails struct {
	Status string `json:"status,omitempty"`
	Card   *Card  `json:"card,omitempty"`
}

// Tender is a payment applied to an order by the gateway
type Tender struct {
	ID          string             `json:"id"`
	PaymentID   string             `json:"payment_id,omitempty"`
	Type        string             `json:"type,omitempty"`
	CardDetails *TenderCardDetails `json:"card_details,omitempty"`
}

// Order is the gateway's order record. Owned by the gateway;
// this system only constructs the creation request and reads results.
type Order struct {
	ID            string     `json:"id"`
	LocationID    string     `json:"location_id"`
	ReferenceID   string     `json:"reference_id,omitempty"`
	State         string     `json:"state,omitempty"`
	LineItems     []LineItem `json:"line_items"`
	Taxes         []OrderTax `json:"taxes,omitempty"`
	Tenders       []Tender   `json:"tenders,omitempty"`
	TotalMoney    Money      `json:"total_money"`
	TotalTaxMoney Money      `json:"total_tax_money"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreatePaymentRequest is the charge payload
type CreatePaymentRequest struct {
	SourceID          string `json:"source_id"`
	IdempotencyKey    string `json:"idempotency_key"`
	AmountMoney       Money  `json:"amount_money"`
	OrderID           string `json:"order_id,omitempty"`
	LocationID        string `json:"location_id,omitempty"`
	BuyerEmailAddress string `json:"buyer_email_address,omitempty"`
	Note              string `json:"note,omitempty"`
}

// PaymentCardDetails describes the card behind a payment
type PaymentCardDetails struct {
	Status string `json:"status,omitempty"`
	Card   *Card  `json:"card,omitempty"`
}

// Payment is the gateway's charge record
type Payment struct {
	ID                string              `json:"id"`
	OrderID           string              `json:"order_id,omitempty"`
	Status            string              `json:"status"`
	AmountMoney       Money               `json:"amount_money"`
	ReceiptURL        string              `json:"receipt_url,omitempty"`
	BuyerEmailAddress string              `json:"buyer_email_address,omitempty"`
	Note              string              `json:"note,omitempty"`
	CardDetails       *PaymentCardDetails `json:"card_details,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

// ErrorDetail is one structured gateway error
type ErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
	Field    string `json:"field,omitempty"`
}

// APIError is a non-2xx gateway response
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("square: status %d: %s", e.StatusCode, e.FirstDetail())
}

// FirstDetail returns the first structured error detail, or a generic
// message when the gateway sent nothing usable.
func (e *APIError) FirstDetail() string {
	if len(e.Errors) > 0 && e.Errors[0].Detail != "" {
		return e.Errors[0].Detail
	}
	if len(e.Errors) > 0 && e.Errors[0].Code != "" {
		return e.Errors[0].Code
	}
	return "payment service error"
}

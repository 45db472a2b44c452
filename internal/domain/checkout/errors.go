// internal/domain/checkout/errors.go
package checkout

import (
	"errors"
	"fmt"
)

// Validation and charge failures surface messages suitable for direct
// display to the shopper.
var (
	ErrEmptyCart               = errors.New("your cart is empty")
	ErrShippingAddressRequired = errors.New("a shipping address is required for delivery orders")
	ErrPaymentTokenRequired    = errors.New("a payment token is required")
)

// ProductNotFoundError means a cart item no longer resolves to a
// catalog record.
type ProductNotFoundError struct {
	ProductName string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Sorry, %q is no longer available.", e.ProductName)
}

// InsufficientStockError means a cart quantity exceeds the
// authoritative inventory count.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Sorry, we only have %d of %s left.", e.Available, e.ProductName)
}

// ShipDateError means a requested delivery date violates the
// merchant's shipping calendar.
type ShipDateError struct {
	Reason string
}

func (e *ShipDateError) Error() string {
	return e.Reason
}

// GatewayOrderCreationError means the gateway rejected the order
// creation request. No charge was attempted.
type GatewayOrderCreationError struct {
	Message string
}

func (e *GatewayOrderCreationError) Error() string {
	return e.Message
}

// GatewayChargeError means the charge itself failed. No side effects
// were executed.
type GatewayChargeError struct {
	Message string
}

func (e *GatewayChargeError) Error() string {
	return e.Message
}

// ConfigurationMissingError records that the merchant checkout
// settings could not be loaded and configured fallbacks were used.
// Non-fatal: it is logged, never returned to the shopper.
type ConfigurationMissingError struct {
	Cause error
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("checkout settings unavailable, using fallbacks: %v", e.Cause)
}

func (e *ConfigurationMissingError) Unwrap() error {
	return e.Cause
}

// IsValidationError reports whether the error is a pre-charge
// validation failure (as opposed to a gateway failure).
func IsValidationError(err error) bool {
	var notFound *ProductNotFoundError
	var stock *InsufficientStockError
	var shipDate *ShipDateError
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrShippingAddressRequired) ||
		errors.Is(err, ErrPaymentTokenRequired) ||
		errors.As(err, &notFound) ||
		errors.As(err, &stock) ||
		errors.As(err, &shipDate)
}

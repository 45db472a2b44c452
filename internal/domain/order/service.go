// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coralstore-backend/internal/infrastructure/square"
)

// Gateway is the order lookup's view of the payment gateway
type Gateway interface {
	GetOrder(ctx context.Context, orderID string) (*square.Order, error)
	GetPayment(ctx context.Context, paymentID string) (*square.Payment, error)
}

// Service handles the post-purchase order lookup read path
type Service struct {
	gateway Gateway
	log     *logrus.Logger
}

// NewService creates a new order service
func NewService(gateway Gateway, log *logrus.Logger) *Service {
	return &Service{
		gateway: gateway,
		log:     log,
	}
}

// Details is the resolved order with buyer contact and receipt link
type Details struct {
	Order      *square.Order
	Payment    *square.Payment
	Email      string
	ReceiptURL string
}

// GetOrderDetails resolves a lookup id that may be either a payment id
// or an order id. Success URLs carry payment ids, so the payment lookup
// is tried first; when that misses, the id is treated as an order id.
func (s *Service) GetOrderDetails(ctx context.Context, lookupID string) (*Details, error) {
	if lookupID == "" {
		return nil, fmt.Errorf("lookup id is required")
	}

	details := &Details{}
	orderID := lookupID

	payment, err := s.gateway.GetPayment(ctx, lookupID)
	if err == nil && payment != nil {
		details.Payment = payment
		details.Email = payment.BuyerEmailAddress
		details.ReceiptURL = payment.ReceiptURL
		if payment.OrderID != "" {
			orderID = payment.OrderID
		}
	} else {
		s.log.WithField("lookup_id", lookupID).Debug("id is not a payment, trying as order id")
	}

	gwOrder, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	details.Order = gwOrder

	// If the payment lookup missed, recover the email and receipt
	// link through the order's first tender.
	if details.Email == "" || details.ReceiptURL == "" {
		s.fillFromTender(ctx, details)
	}

	return details, nil
}

func (s *Service) fillFromTender(ctx context.Context, details *Details) {
	if len(details.Order.Tenders) == 0 {
		return
	}

	tender := details.Order.Tenders[0]
	if tender.PaymentID == "" {
		return
	}

	payment, err := s.gateway.GetPayment(ctx, tender.PaymentID)
	if err != nil {
		s.log.WithError(err).WithField("payment_id", tender.PaymentID).
			Warn("could not fetch linked payment details")
		return
	}

	if details.Payment == nil {
		details.Payment = payment
	}
	if details.Email == "" {
		details.Email = payment.BuyerEmailAddress
	}
	if details.ReceiptURL == "" {
		details.ReceiptURL = payment.ReceiptURL
	}
}

// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coralstore-backend/internal/config"
	"github.com/your-org/coralstore-backend/internal/domain/catalog"
	"github.com/your-org/coralstore-backend/internal/domain/order"
	"github.com/your-org/coralstore-backend/internal/domain/pricing"
	"github.com/your-org/coralstore-backend/internal/infrastructure/square"
	"github.com/your-org/coralstore-backend/internal/pkg/money"
)

// Catalog is the checkout workflow's view of the product catalog
type Catalog interface {
	ProductsByID(ctx context.Context, ids []string) (map[string]catalog.Product, error)
	ActiveSales(ctx context.Context) ([]pricing.Sale, error)
	CheckoutSettings(ctx context.Context) (*catalog.CheckoutSettings, error)
	DecrementInventory(ctx context.Context, productID string, amount int) error
	CreateSubscriber(ctx context.Context, email, name string) error
}

// Gateway is the checkout workflow's view of the payment gateway
type Gateway interface {
	CreateOrder(ctx context.Context, req square.CreateOrderRequest) (*square.Order, error)
	CreatePayment(ctx context.Context, req square.CreatePaymentRequest) (*square.Payment, error)
}

// ReceiptMailer sends the order confirmation email
type ReceiptMailer interface {
	SendReceipt(ctx context.Context, to string, receipt order.Receipt) error
}

// Service orchestrates a checkout attempt: validation, authoritative
// repricing, order assembly, charge, and post-charge side effects.
type Service struct {
	catalog Catalog
	gateway Gateway
	mailer  ReceiptMailer
	config  *config.Config
	log     *logrus.Logger
	now     func() time.Time
}

// NewService creates a new checkout service
func NewService(cat Catalog, gw Gateway, mailer ReceiptMailer, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		catalog: cat,
		gateway: gw,
		mailer:  mailer,
		config:  cfg,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

const shippingLineItemName = "Shipping (Flat Rate)"

// PlaceOrder runs one checkout attempt end to end.
//
// Validation happens before any gateway call, so a failure there never
// leaves a charge behind. Prices and stock come fresh from the catalog;
// client-submitted prices are never trusted. Once the charge succeeds
// the result is success regardless of how the post-charge side effects
// fare: the customer's money has moved.
func (s *Service) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*order.Receipt, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if req.PaymentToken == "" {
		return nil, ErrPaymentTokenRequired
	}

	now := s.now()
	settings, shippingCents, taxRate := s.resolveSettings(ctx)

	if req.Delivery == DeliveryShip {
		if !hasShippingAddress(req.Shipping) {
			return nil, ErrShippingAddressRequired
		}
		if req.Shipping.RequestedDate != nil {
			if err := ValidateShipDate(*req.Shipping.RequestedDate, settings, s.config.Checkout.MaxBookingWindowDays, now); err != nil {
				return nil, err
			}
		}
	}

	products, err := s.validateItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	sales, err := s.catalog.ActiveSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active sales: %w", err)
	}

	currency := s.config.Checkout.Currency
	lineItems, images := s.buildLineItems(req.Items, products, sales, now, currency)

	if req.Delivery == DeliveryShip {
		lineItems = append(lineItems, square.LineItem{
			Name:           shippingLineItemName,
			Quantity:       "1",
			BasePriceMoney: square.Money{Amount: int64(shippingCents), Currency: currency},
		})
	}

	orderReq := square.CreateOrderRequest{
		IdempotencyKey: uuid.NewString(),
		Order: square.OrderRequest{
			LineItems:    lineItems,
			Taxes:        buildTaxes(taxRate),
			Fulfillments: buildFulfillment(req),
		},
	}

	gwOrder, err := s.gateway.CreateOrder(ctx, orderReq)
	if err != nil {
		s.log.WithError(err).Error("gateway order creation failed")
		return nil, &GatewayOrderCreationError{Message: gatewayMessage(err)}
	}

	payment, err := s.gateway.CreatePayment(ctx, square.CreatePaymentRequest{
		SourceID:          req.PaymentToken,
		IdempotencyKey:    uuid.NewString(),
		AmountMoney:       gwOrder.TotalMoney,
		OrderID:           gwOrder.ID,
		BuyerEmailAddress: req.Customer.Email,
		Note:              buildOrderNote(req),
	})
	if err != nil {
		s.log.WithError(err).WithField("order_id", gwOrder.ID).Error("gateway charge failed")
		return nil, &GatewayChargeError{Message: gatewayMessage(err)}
	}

	s.log.WithFields(logrus.Fields{
		"order_id":   gwOrder.ID,
		"payment_id": payment.ID,
		"total":      gwOrder.TotalMoney.Amount,
	}).Info("checkout charged")

	receipt := order.BuildReceipt(gwOrder, payment, images)
	s.runSideEffects(ctx, req, receipt)

	return &receipt, nil
}

// resolveSettings loads merchant checkout settings, falling back to
// configured defaults when the document is unavailable. The fallback
// path is logged, never surfaced to the shopper.
func (s *Service) resolveSettings(ctx context.Context) (*catalog.CheckoutSettings, money.Cents, float64) {
	shippingCents := money.Cents(s.config.Checkout.FallbackShippingCents)
	taxRate := s.config.Checkout.FallbackTaxRate

	settings, err := s.catalog.CheckoutSettings(ctx)
	if err != nil {
		cfgErr := &ConfigurationMissingError{Cause: err}
		s.log.WithError(cfgErr).Warn("checkout settings unavailable")
		return nil, shippingCents, taxRate
	}
	if settings == nil {
		return nil, shippingCents, taxRate
	}

	if settings.FlatRateShipping != nil {
		shippingCents = money.FromDollars(*settings.FlatRateShipping)
	}
	if settings.TaxRate != nil {
		taxRate = *settings.TaxRate
	}
	return settings, shippingCents, taxRate
}

// validateItems resolves every cart line against the authoritative
// catalog and checks stock. Fails on the first problem found.
func (s *Service) validateItems(ctx context.Context, items []CartItem) (map[string]catalog.Product, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.catalog.ProductsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	// Duplicate cart lines for one product count against stock together.
	requested := make(map[string]int, len(items))
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductName: displayName(item)}
		}
		requested[item.ProductID] += item.Quantity
		if requested[item.ProductID] > product.Inventory {
			return nil, &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Inventory,
			}
		}
	}

	return products, nil
}

// buildLineItems reprices every cart line server-side and assembles the
// gateway line items, plus an image index for the receipt email.
func (s *Service) buildLineItems(items []CartItem, products map[string]catalog.Product, sales []pricing.Sale, now time.Time, currency string) ([]square.LineItem, map[string]string) {
	lineItems := make([]square.LineItem, 0, len(items)+1)
	images := make(map[string]string, len(items))

	for _, item := range items {
		product := products[item.ProductID]
		result := pricing.CalculateSalePrice(product.PricingProjection(), sales, now)
		unitPrice := money.FromDollars(result.SalePrice)

		lineItems = append(lineItems, square.LineItem{
			Name:           product.Name,
			Quantity:       strconv.Itoa(item.Quantity),
			BasePriceMoney: square.Money{Amount: int64(unitPrice), Currency: currency},
		})

		if product.ImageURL != "" {
			images[product.Name] = product.ImageURL
		} else if item.ImageURL != "" {
			images[product.Name] = item.ImageURL
		}
	}

	return lineItems, images
}

// buildTaxes produces the order-level tax specification. The gateway
// computes the amount and adds it to the total; that total is trusted
// as returned.
func buildTaxes(taxRate float64) []square.OrderTax {
	if taxRate <= 0 {
		return nil
	}
	return []square.OrderTax{{
		UID:        "order-sales-tax",
		Name:       "Sales Tax",
		Percentage: strconv.FormatFloat(taxRate, 'f', -1, 64),
		Scope:      square.TaxScopeOrder,
		Type:       square.TaxTypeAdditive,
	}}
}

// buildFulfillment maps the delivery choice onto the gateway order.
// Pickup deliberately produces no structured fulfillment; the merchant
// reads the payment note instead.
func buildFulfillment(req *PlaceOrderRequest) []square.Fulfillment {
	if req.Delivery != DeliveryShip {
		return nil
	}

	details := square.ShipmentDetails{
		Recipient: square.Recipient{
			DisplayName:  req.Customer.Name,
			EmailAddress: req.Customer.Email,
			PhoneNumber:  req.Shipping.Phone,
			Address: &square.Address{
				AddressLine1:  req.Shipping.AddressLine1,
				AddressLine2:  req.Shipping.AddressLine2,
				Locality:      req.Shipping.City,
				AdminDistrict: req.Shipping.State,
				PostalCode:    req.Shipping.PostalCode,
				Country:       defaultCountry(req.Shipping.Country),
			},
		},
	}
	if req.Shipping.RequestedDate != nil {
		details.ExpectedShippedAt = req.Shipping.RequestedDate.UTC().Format(time.RFC3339)
	}

	return []square.Fulfillment{{
		Type:            square.FulfillmentTypeShipment,
		State:           square.FulfillmentStateProposed,
		ShipmentDetails: &details,
	}}
}

// buildOrderNote composes the free-text note attached to the payment
func buildOrderNote(req *PlaceOrderRequest) string {
	if req.Delivery == DeliveryPickup {
		return fmt.Sprintf("PICKUP ORDER - %s", req.Customer.Name)
	}
	return fmt.Sprintf("Ship to %s", req.Customer.Name)
}

// runSideEffects performs the post-charge fan-out: inventory
// decrements, optional marketing enrollment, and the receipt email.
// All three run concurrently and independently; a failure is logged
// and does not change the already-successful charge outcome.
func (s *Service) runSideEffects(ctx context.Context, req *PlaceOrderRequest, receipt order.Receipt) {
	var wg sync.WaitGroup

	for _, item := range req.Items {
		wg.Add(1)
		go func(productID string, quantity int) {
			defer wg.Done()
			if err := s.catalog.DecrementInventory(ctx, productID, quantity); err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"order_id":   receipt.OrderID,
					"product_id": productID,
				}).Error("inventory decrement failed")
			}
		}(item.ProductID, item.Quantity)
	}

	if req.MarketingConsent {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.catalog.CreateSubscriber(ctx, req.Customer.Email, req.Customer.Name); err != nil {
				s.log.WithError(err).WithField("order_id", receipt.OrderID).
					Error("subscriber enrollment failed")
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.mailer.SendReceipt(ctx, req.Customer.Email, receipt); err != nil {
			s.log.WithError(err).WithField("order_id", receipt.OrderID).
				Error("receipt email failed")
		}
	}()

	wg.Wait()
}

// gatewayMessage extracts the first structured gateway error detail,
// or falls back to the raw error message.
func gatewayMessage(err error) string {
	var apiErr *square.APIError
	if errors.As(err, &apiErr) {
		return apiErr.FirstDetail()
	}
	return err.Error()
}

func hasShippingAddress(details *ShippingDetails) bool {
	return details != nil &&
		details.AddressLine1 != "" &&
		details.City != "" &&
		details.State != "" &&
		details.PostalCode != ""
}

func displayName(item CartItem) string {
	if item.Name != "" {
		return item.Name
	}
	return item.ProductID
}

func defaultCountry(country string) string {
	if country == "" {
		return "US"
	}
	return country
}

// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coralstore-backend/internal/domain/pricing"
)

const (
	activeSalesCacheKey      = "catalog:active_sales"
	checkoutSettingsCacheKey = "catalog:checkout_settings"

	// The storefront tolerates sale/settings data up to a minute stale.
	cacheTTL = 60 * time.Second
)

// CMS is the catalog's view of the headless CMS
type CMS interface {
	QueryProducts(ctx context.Context, ids []string) ([]Product, error)
	QueryAllProducts(ctx context.Context) ([]Product, error)
	QueryActiveSales(ctx context.Context, now time.Time) ([]pricing.Sale, error)
	QueryCheckoutSettings(ctx context.Context) (*CheckoutSettings, error)
	DecrementInventory(ctx context.Context, productID string, amount int) error
	CreateSubscriber(ctx context.Context, sub Subscriber) error
}

// Service handles catalog reads and writes against the CMS,
// with short-lived Redis caching for the hot sale/settings queries.
type Service struct {
	cms         CMS
	redisClient *redis.Client
	log         *logrus.Logger
}

// NewService creates a new catalog service
func NewService(cms CMS, redisClient *redis.Client, log *logrus.Logger) *Service {
	return &Service{
		cms:         cms,
		redisClient: redisClient,
		log:         log,
	}
}

// ProductsByID fetches the authoritative product records for the given
// ids, keyed by id. Missing ids are simply absent from the result;
// callers decide whether that is an error. Never cached: price and
// inventory must be fresh for every checkout attempt.
func (s *Service) ProductsByID(ctx context.Context, ids []string) (map[string]Product, error) {
	if len(ids) == 0 {
		return map[string]Product{}, nil
	}

	products, err := s.cms.QueryProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// PricedProducts returns the full catalog with sale pricing applied,
// the way the storefront displays it.
func (s *Service) PricedProducts(ctx context.Context) ([]PricedProduct, error) {
	products, err := s.cms.QueryAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	sales, err := s.ActiveSales(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	priced := make([]PricedProduct, 0, len(products))
	for _, p := range products {
		priced = append(priced, PricedProduct{
			Product: p,
			Pricing: pricing.CalculateSalePrice(p.PricingProjection(), sales, now),
		})
	}
	return priced, nil
}

// PricedProduct returns a single product with sale pricing applied,
// or nil when the id is unknown.
func (s *Service) PricedProduct(ctx context.Context, id string) (*PricedProduct, error) {
	products, err := s.cms.QueryProducts(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	if len(products) == 0 {
		return nil, nil
	}

	sales, err := s.ActiveSales(ctx)
	if err != nil {
		return nil, err
	}

	p := products[0]
	return &PricedProduct{
		Product: p,
		Pricing: pricing.CalculateSalePrice(p.PricingProjection(), sales, time.Now().UTC()),
	}, nil
}

// ActiveSales returns the currently active discount campaigns,
// served from cache when fresh.
func (s *Service) ActiveSales(ctx context.Context) ([]pricing.Sale, error) {
	var cached []pricing.Sale
	if s.readCache(ctx, activeSalesCacheKey, &cached) {
		return cached, nil
	}

	sales, err := s.cms.QueryActiveSales(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active sales: %w", err)
	}

	s.writeCache(ctx, activeSalesCacheKey, sales)
	return sales, nil
}

// CheckoutSettings returns the merchant checkout settings document,
// served from cache when fresh.
func (s *Service) CheckoutSettings(ctx context.Context) (*CheckoutSettings, error) {
	var cached CheckoutSettings
	if s.readCache(ctx, checkoutSettingsCacheKey, &cached) {
		return &cached, nil
	}

	settings, err := s.cms.QueryCheckoutSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checkout settings: %w", err)
	}
	if settings == nil {
		return nil, fmt.Errorf("checkout settings document not found")
	}

	s.writeCache(ctx, checkoutSettingsCacheKey, settings)
	return settings, nil
}

// DecrementInventory reduces a product's stock by the given amount,
// clamped so the stored count never goes negative. A clamped (short)
// decrement means concurrent checkouts oversold the product; it is
// logged for manual reconciliation rather than failing the caller.
func (s *Service) DecrementInventory(ctx context.Context, productID string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("invalid decrement amount %d for product %s", amount, productID)
	}

	products, err := s.cms.QueryProducts(ctx, []string{productID})
	if err != nil {
		return fmt.Errorf("failed to fetch product %s for decrement: %w", productID, err)
	}
	if len(products) == 0 {
		return fmt.Errorf("product %s not found for decrement", productID)
	}

	available := products[0].Inventory
	applied := amount
	if applied > available {
		applied = available
		s.log.WithFields(logrus.Fields{
			"product_id": productID,
			"requested":  amount,
			"available":  available,
		}).Error("inventory decrement clamped, stock oversold")
	}

	if applied == 0 {
		return nil
	}

	if err := s.cms.DecrementInventory(ctx, productID, applied); err != nil {
		return fmt.Errorf("failed to decrement inventory for %s: %w", productID, err)
	}
	return nil
}

// CreateSubscriber enrolls an email address in the marketing list
func (s *Service) CreateSubscriber(ctx context.Context, email, name string) error {
	sub := Subscriber{
		Email:    email,
		Name:     name,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.cms.CreateSubscriber(ctx, sub); err != nil {
		return fmt.Errorf("failed to create subscriber: %w", err)
	}
	return nil
}

// readCache loads a cached JSON value; a miss or Redis failure is
// treated as a miss.
func (s *Service) readCache(ctx context.Context, key string, out interface{}) bool {
	if s.redisClient == nil {
		return false
	}
	data, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false
	}
	return true
}

// writeCache stores a JSON value with the standard TTL; failures are
// logged and otherwise ignored.
func (s *Service) writeCache(ctx context.Context, key string, value interface{}) {
	if s.redisClient == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to write catalog cache")
	}
}

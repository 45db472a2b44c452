// internal/infrastructure/cms/client.go
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/your-org/coralstore-backend/internal/config"
	"github.com/your-org/coralstore-backend/internal/domain/catalog"
	"github.com/your-org/coralstore-backend/internal/domain/pricing"
)

// Client is an HTTP client for the headless CMS (Sanity) data APIs.
// Reads go through the GROQ query endpoint, writes through the
// mutations endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
	apiToken   string
}

// NewClient creates a new CMS client from configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.CMS.Timeout,
		},
		baseURL:  cfg.GetCMSBaseURL(),
		dataset:  cfg.CMS.Dataset,
		apiToken: cfg.CMS.APIToken,
	}
}

const productProjection = `{
  _id,
  "name": title,
  "slug": slug.current,
  price,
  "category": category->slug.current,
  tags,
  inventory,
  "imageUrl": images[0].asset->url
}`

// QueryProducts fetches product records by id
func (c *Client) QueryProducts(ctx context.Context, ids []string) ([]catalog.Product, error) {
	query := `*[_type == "product" && _id in $ids]` + productProjection

	var products []catalog.Product
	if err := c.query(ctx, query, map[string]interface{}{"ids": ids}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// QueryAllProducts fetches the entire product catalog
func (c *Client) QueryAllProducts(ctx context.Context) ([]catalog.Product, error) {
	query := `*[_type == "product"] | order(title asc)` + productProjection

	var products []catalog.Product
	if err := c.query(ctx, query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// QueryActiveSales fetches sales whose kill switch is on and whose date
// window contains now. The pricing engine re-checks both conditions, so
// a slightly stale result here is harmless.
func (c *Client) QueryActiveSales(ctx context.Context, now time.Time) ([]pricing.Sale, error) {
	query := `*[_type == "sale"
  && isActive == true
  && (!defined(startDate) || startDate <= $now)
  && (!defined(endDate) || endDate >= $now)
] | order(_createdAt desc) {
  _id,
  title,
  isActive,
  discountType,
  amount,
  startDate,
  endDate,
  targetCategories,
  targetTags,
  "targetProducts": targetProducts[]._ref
}`

	var sales []pricing.Sale
	if err := c.query(ctx, query, map[string]interface{}{"now": now.Format(time.RFC3339)}, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// QueryCheckoutSettings fetches the singleton checkout settings document
func (c *Client) QueryCheckoutSettings(ctx context.Context) (*catalog.CheckoutSettings, error) {
	query := `*[_type == "checkoutSettings"][0] {
  allowedShippingDays,
  blackoutDates,
  maxBookingWindowDays,
  pickupWarning,
  flatRateShipping,
  taxRate
}`

	var settings *catalog.CheckoutSettings
	if err := c.query(ctx, query, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// DecrementInventory applies an atomic dec patch to a product's
// inventory counter.
func (c *Client) DecrementInventory(ctx context.Context, productID string, amount int) error {
	mutations := []map[string]interface{}{
		{
			"patch": map[string]interface{}{
				"id":  productID,
				"dec": map[string]interface{}{"inventory": amount},
			},
		},
	}
	return c.mutate(ctx, mutations)
}

// CreateSubscriber creates a marketing-list document
func (c *Client) CreateSubscriber(ctx context.Context, sub catalog.Subscriber) error {
	doc := map[string]interface{}{
		"_type":    "subscriber",
		"email":    sub.Email,
		"joinedAt": sub.JoinedAt.Format(time.RFC3339),
	}
	if sub.Name != "" {
		doc["name"] = sub.Name
	}

	mutations := []map[string]interface{}{
		{"create": doc},
	}
	return c.mutate(ctx, mutations)
}

// query runs a GROQ query and decodes the result envelope
func (c *Client) query(ctx context.Context, groq string, params map[string]interface{}, out interface{}) error {
	body := map[string]interface{}{"query": groq}
	if len(params) > 0 {
		body["params"] = params
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := c.doRequest(ctx, "/data/query/"+c.dataset, body, &envelope); err != nil {
		return err
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to decode cms query result: %w", err)
	}
	return nil
}

// mutate submits a mutations batch
func (c *Client) mutate(ctx context.Context, mutations []map[string]interface{}) error {
	body := map[string]interface{}{"mutations": mutations}
	return c.doRequest(ctx, "/data/mutate/"+c.dataset, body, nil)
}

// doRequest performs an authenticated JSON POST against the CMS
func (c *Client) doRequest(ctx context.Context, path string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal cms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create cms request: %w", err)
	}

	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cms request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read cms response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("cms returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode cms response: %w", err)
		}
	}

	return nil
}

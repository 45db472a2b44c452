// internal/infrastructure/square/client.go
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/your-org/coralstore-backend/internal/config"
)

// Client is an HTTP client for the Square Orders and Payments APIs
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	locationID  string
}

// NewClient creates a new Square client from configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Square.Timeout,
		},
		baseURL:     cfg.GetSquareBaseURL(),
		accessToken: cfg.Square.AccessToken,
		locationID:  cfg.Square.LocationID,
	}
}

// CreateOrder submits an order-creation request
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if req.Order.LocationID == "" {
		req.Order.LocationID = c.locationID
	}

	var resp struct {
		Order *Order `json:"order"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/orders", req, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil || resp.Order.ID == "" {
		return nil, fmt.Errorf("square: create order returned no order record")
	}
	return resp.Order, nil
}

// CreatePayment charges a tokenized payment source against an order
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	var resp struct {
		Payment *Payment `json:"payment"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/payments", req, &resp); err != nil {
		return nil, err
	}
	if resp.Payment == nil || resp.Payment.ID == "" {
		return nil, fmt.Errorf("square: create payment returned no payment record")
	}
	return resp.Payment, nil
}

// GetOrder fetches an order by id
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var resp struct {
		Order *Order `json:"order"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/orders/"+orderID, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil {
		return nil, fmt.Errorf("square: order %s not found", orderID)
	}
	return resp.Order, nil
}

// GetPayment fetches a payment by id
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var resp struct {
		Payment *Payment `json:"payment"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/payments/"+paymentID, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Payment == nil {
		return nil, fmt.Errorf("square: payment %s not found", paymentID)
	}
	return resp.Payment, nil
}

// doRequest performs an authenticated JSON request against the gateway
func (c *Client) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("square request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read square response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Errors []ErrorDetail `json:"errors"`
		}
		if err := json.Unmarshal(respBody, &envelope); err == nil {
			apiErr.Errors = envelope.Errors
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode square response: %w", err)
		}
	}

	return nil
}

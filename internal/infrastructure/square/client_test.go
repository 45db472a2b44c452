package square

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coralstore-backend/internal/config"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.Square.BaseURL = baseURL
	cfg.Square.AccessToken = "test-token"
	cfg.Square.LocationID = "LOC123"
	cfg.Square.Timeout = 5 * time.Second
	return NewClient(cfg)
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.IdempotencyKey)
		// Location id filled in from config when the caller leaves it blank
		assert.Equal(t, "LOC123", req.Order.LocationID)
		require.Len(t, req.Order.LineItems, 1)
		assert.Equal(t, int64(8000), req.Order.LineItems[0].BasePriceMoney.Amount)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"order": map[string]interface{}{
				"id":          "ord_1",
				"location_id": "LOC123",
				"total_money": map[string]interface{}{"amount": 17440, "currency": "USD"},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		IdempotencyKey: "key-1",
		Order: OrderRequest{
			LineItems: []LineItem{{
				Name:           "Purple Tang",
				Quantity:       "2",
				BasePriceMoney: Money{Amount: 8000, Currency: "USD"},
			}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "ord_1", order.ID)
	assert.Equal(t, int64(17440), order.TotalMoney.Amount)
}

func TestCreatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)

		var req CreatePaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cnon_token", req.SourceID)
		assert.Equal(t, "ord_1", req.OrderID)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment": map[string]interface{}{
				"id":           "pay_1",
				"order_id":     "ord_1",
				"status":       "COMPLETED",
				"receipt_url":  "https://squareup.com/receipt/pay_1",
				"amount_money": map[string]interface{}{"amount": 17440, "currency": "USD"},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	payment, err := client.CreatePayment(context.Background(), CreatePaymentRequest{
		SourceID:       "cnon_token",
		IdempotencyKey: "key-2",
		AmountMoney:    Money{Amount: 17440, Currency: "USD"},
		OrderID:        "ord_1",
	})

	require.NoError(t, err)
	assert.Equal(t, "pay_1", payment.ID)
	assert.Equal(t, "COMPLETED", payment.Status)
	assert.Equal(t, "https://squareup.com/receipt/pay_1", payment.ReceiptURL)
}

func TestGetOrderAndPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders/ord_1":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"order": map[string]interface{}{"id": "ord_1"},
			})
		case "/payments/pay_1":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"payment": map[string]interface{}{"id": "pay_1", "status": "COMPLETED"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"errors": []map[string]string{{"category": "INVALID_REQUEST_ERROR", "code": "NOT_FOUND", "detail": "Resource not found."}},
			})
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	order, err := client.GetOrder(context.Background(), "ord_1")
	require.NoError(t, err)
	assert.Equal(t, "ord_1", order.ID)

	payment, err := client.GetPayment(context.Background(), "pay_1")
	require.NoError(t, err)
	assert.Equal(t, "pay_1", payment.ID)

	_, err = client.GetPayment(context.Background(), "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Resource not found.", apiErr.FirstDetail())
}

func TestAPIError_FirstDetail(t *testing.T) {
	tests := []struct {
		name string
		err  APIError
		want string
	}{
		{"detail present", APIError{Errors: []ErrorDetail{{Detail: "Card declined."}}}, "Card declined."},
		{"code only", APIError{Errors: []ErrorDetail{{Code: "CARD_DECLINED"}}}, "CARD_DECLINED"},
		{"empty", APIError{StatusCode: 500}, "payment service error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.FirstDetail())
		})
	}
}

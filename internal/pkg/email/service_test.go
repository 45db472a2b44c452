// internal/pkg/email/service_test.go
package email

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
	"github.com/your-org/coralstore-backend/internal/domain/order"
	"github.com/your-org/coralstore-backend/internal/pkg/money"
)

func testReceipt() order.Receipt {
	return order.Receipt{
		OrderID:    "abc123def456",
		OrderRef:   "#abc123de",
		CreatedAt:  time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		CardBrand:  "VISA",
		Last4:      "1234",
		Total:      money.Cents(10499),
		TotalTax:   money.Cents(500),
		ReceiptURL: "https://squareup.com/receipt/p1",
		BuyerEmail: "reef@example.com",
		Lines: []order.ReceiptLine{
			{Name: "Acropora Frag", Quantity: "2", Amount: money.Cents(4000), ImageURL: "https://cdn.example.com/acro.jpg"},
			{Name: "Shipping (Flat Rate)", Quantity: "1", Amount: money.Cents(1999)},
		},
	}
}

func TestSendReceipt(t *testing.T) {
	var captured ResendEmailRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ResendResponse{ID: "email-1"})
	}))
	defer server.Close()

	svc := NewService(&config.Config{
		Email: config.EmailConfig{
			APIKey:    "re_test_key",
			FromEmail: "receipts@example.com",
			FromName:  "Down South Corals",
		},
	})
	svc.endpoint = server.URL

	err := svc.SendReceipt(context.Background(), "reef@example.com", testReceipt())
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", authHeader)
	assert.Equal(t, []string{"reef@example.com"}, captured.To)
	assert.Equal(t, "Down South Corals <receipts@example.com>", captured.From)
	assert.Equal(t, "Order Confirmation #abc123de", captured.Subject)
	assert.Contains(t, captured.HTML, "Acropora Frag")
	assert.Contains(t, captured.HTML, "https://cdn.example.com/acro.jpg")
	assert.Contains(t, captured.HTML, "$104.99")
	assert.Contains(t, captured.HTML, "VISA")
	assert.Contains(t, captured.HTML, "ending in 1234")
}

func TestSendReceiptServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid from address"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	svc := NewService(&config.Config{
		Email: config.EmailConfig{APIKey: "re_test_key", FromEmail: "bad"},
	})
	svc.endpoint = server.URL

	err := svc.SendReceipt(context.Background(), "reef@example.com", testReceipt())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
}

func TestSendReceiptMissingAPIKey(t *testing.T) {
	svc := NewService(&config.Config{})

	err := svc.SendReceipt(context.Background(), "reef@example.com", testReceipt())
	assert.Error(t, err)
}

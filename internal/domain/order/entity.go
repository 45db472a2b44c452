// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/coralstore-backend/internal/infrastructure/square"
	"github.com/your-org/coralstore-backend/internal/pkg/money"
)

// Receipt is a sanitized, JSON-safe order summary. All money amounts
// use money.Cents so gateway totals serialize as decimal strings.
type Receipt struct {
	OrderID    string        `json:"order_id"`
	OrderRef   string        `json:"order_ref"` // short id for display, e.g. "#a1b2c3d4"
	CreatedAt  time.Time     `json:"created_at"`
	CardBrand  string        `json:"card_brand,omitempty"`
	Last4      string        `json:"last_4,omitempty"`
	Total      money.Cents   `json:"total"`
	TotalTax   money.Cents   `json:"total_tax"`
	ReceiptURL string        `json:"receipt_url,omitempty"`
	BuyerEmail string        `json:"buyer_email,omitempty"`
	Lines      []ReceiptLine `json:"lines"`
}

// ReceiptLine is one priced entry on a receipt
type ReceiptLine struct {
	Name     string      `json:"name"`
	Quantity string      `json:"quantity"`
	Amount   money.Cents `json:"amount"` // unit price
	ImageURL string      `json:"image_url,omitempty"`
}

// BuildReceipt assembles a Receipt from gateway records. The images
// map carries cart item images keyed by line-item name; the gateway
// order itself has no image data.
func BuildReceipt(gwOrder *square.Order, payment *square.Payment, images map[string]string) Receipt {
	receipt := Receipt{
		OrderID:   gwOrder.ID,
		OrderRef:  shortRef(gwOrder.ID),
		CreatedAt: gwOrder.CreatedAt,
		Total:     money.Cents(gwOrder.TotalMoney.Amount),
		TotalTax:  money.Cents(gwOrder.TotalTaxMoney.Amount),
	}

	for _, item := range gwOrder.LineItems {
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Amount:   money.Cents(item.BasePriceMoney.Amount),
			ImageURL: images[item.Name],
		})
	}

	if payment != nil {
		receipt.ReceiptURL = payment.ReceiptURL
		receipt.BuyerEmail = payment.BuyerEmailAddress
		if payment.CardDetails != nil && payment.CardDetails.Card != nil {
			receipt.CardBrand = payment.CardDetails.Card.CardBrand
			receipt.Last4 = payment.CardDetails.Card.Last4
		}
	}

	// Tender fallback for card details when the payment record is
	// absent or carries no card summary.
	if receipt.CardBrand == "" {
		for _, tender := range gwOrder.Tenders {
			if tender.CardDetails != nil && tender.CardDetails.Card != nil {
				receipt.CardBrand = tender.CardDetails.Card.CardBrand
				receipt.Last4 = tender.CardDetails.Card.Last4
				break
			}
		}
	}

	return receipt
}

func shortRef(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "#" + id
}

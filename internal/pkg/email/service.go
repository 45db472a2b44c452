// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/your-org/coralstore-backend/internal/config"
	"github.com/your-org/coralstore-backend/internal/domain/order"
	"github.com/your-org/coralstore-backend/internal/pkg/money"
)

// Service handles all outbound email
type Service struct {
	config   *config.Config
	client   *http.Client
	endpoint string
	receipt  *template.Template
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoint: resendEndpoint,
		receipt:  template.Must(template.New("order_receipt").Funcs(templateFuncs).Parse(receiptTemplate)),
	}
}

// SendReceipt sends the order confirmation email for a charged order
func (s *Service) SendReceipt(ctx context.Context, to string, receipt order.Receipt) error {
	html, err := s.renderReceipt(receipt)
	if err != nil {
		return fmt.Errorf("failed to render receipt template: %w", err)
	}

	return s.sendResendEmail(ctx, &Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("Order Confirmation %s", receipt.OrderRef),
		HTMLContent: html,
		Type:        EmailTypeOrderReceipt,
	})
}

type receiptView struct {
	order.Receipt
	StoreName string
	Year      int
}

func (s *Service) renderReceipt(receipt order.Receipt) (string, error) {
	view := receiptView{
		Receipt:   receipt,
		StoreName: s.config.Email.FromName,
		Year:      time.Now().Year(),
	}

	var buf bytes.Buffer
	if err := s.receipt.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to execute receipt template: %w", err)
	}
	return buf.String(), nil
}

var templateFuncs = template.FuncMap{
	"usd": func(c money.Cents) string {
		return "$" + c.String()
	},
}

const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.StoreName}} Order Confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">{{.StoreName}}</h1>
        <p>Thanks for your order! Your payment went through and we're getting it ready.</p>
        <p><strong>Order {{.OrderRef}}</strong> placed {{.CreatedAt.Format "January 2, 2006"}}</p>
        <table style="width: 100%; border-collapse: collapse;">
            {{range .Lines}}
            <tr style="border-bottom: 1px solid #eee;">
                <td style="padding: 8px 0; width: 64px;">
                    {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Name}}" width="56" style="border-radius: 4px;">{{end}}
                </td>
                <td style="padding: 8px;">{{.Name}} &times; {{.Quantity}}</td>
                <td style="padding: 8px; text-align: right;">{{usd .Amount}}</td>
            </tr>
            {{end}}
            {{if .TotalTax}}
            <tr>
                <td></td>
                <td style="padding: 8px;">Sales Tax</td>
                <td style="padding: 8px; text-align: right;">{{usd .TotalTax}}</td>
            </tr>
            {{end}}
            <tr>
                <td></td>
                <td style="padding: 8px;"><strong>Total</strong></td>
                <td style="padding: 8px; text-align: right;"><strong>{{usd .Total}}</strong></td>
            </tr>
        </table>
        {{if .CardBrand}}
        <p style="color: #666;">Paid with {{.CardBrand}} ending in {{.Last4}}</p>
        {{end}}
        {{if .ReceiptURL}}
        <p><a href="{{.ReceiptURL}}">View your payment receipt</a></p>
        {{end}}
        <hr>
        <p style="font-size: 12px; color: #666;">
            &copy; {{.Year}} {{.StoreName}}. All rights reserved.
        </p>
    </div>
</body>
</html>`

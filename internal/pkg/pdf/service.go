// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/coralstore-backend/internal/config"
	"github.com/your-org/coralstore-backend/internal/domain/order"
	"github.com/your-org/coralstore-backend/internal/pkg/money"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt renders a printable PDF receipt for a charged order
func (s *Service) GenerateReceipt(receipt *order.Receipt) (*bytes.Buffer, error) {
	data := ReceiptData{
		Receipt: receipt,
		Store: StoreInfo{
			Name:    s.config.App.StoreName,
			Phone:   s.config.App.StorePhone,
			Website: s.config.App.StoreURL,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Funcs(template.FuncMap{
		"usd": func(c money.Cents) string { return "$" + c.String() },
	}).Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	Receipt *order.Receipt `json:"receipt"`
	Store   StoreInfo      `json:"store"`
}

// StoreInfo represents store information
type StoreInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.Receipt.OrderRef}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            border-bottom: 2px solid #333;
            padding-bottom: 12px;
            margin-bottom: 24px;
        }
        .store-name {
            font-size: 22px;
            font-weight: bold;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        th, td {
            text-align: left;
            padding: 8px;
            border-bottom: 1px solid #ddd;
        }
        .amount {
            text-align: right;
        }
        .totals td {
            border-bottom: none;
            font-weight: bold;
        }
        .meta {
            color: #666;
            font-size: 12px;
            margin-top: 24px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <div class="store-name">{{.Store.Name}}</div>
            <div>{{.Store.Website}}</div>
            <div>{{.Store.Phone}}</div>
        </div>
        <div>
            <div><strong>Receipt {{.Receipt.OrderRef}}</strong></div>
            <div>{{.Receipt.CreatedAt.Format "January 2, 2006"}}</div>
        </div>
    </div>

    <table>
        <tr>
            <th>Item</th>
            <th>Qty</th>
            <th class="amount">Unit Price</th>
        </tr>
        {{range .Receipt.Lines}}
        <tr>
            <td>{{.Name}}</td>
            <td>{{.Quantity}}</td>
            <td class="amount">{{usd .Amount}}</td>
        </tr>
        {{end}}
        {{if .Receipt.TotalTax}}
        <tr>
            <td colspan="2">Sales Tax</td>
            <td class="amount">{{usd .Receipt.TotalTax}}</td>
        </tr>
        {{end}}
        <tr class="totals">
            <td colspan="2">Total</td>
            <td class="amount">{{usd .Receipt.Total}}</td>
        </tr>
    </table>

    {{if .Receipt.CardBrand}}
    <p class="meta">Paid with {{.Receipt.CardBrand}} ending in {{.Receipt.Last4}}</p>
    {{end}}
    <p class="meta">Order ID: {{.Receipt.OrderID}}</p>
</body>
</html>`

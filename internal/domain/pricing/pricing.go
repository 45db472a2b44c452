// internal/domain/pricing/pricing.go
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculateSalePrice computes the lowest price for a product across all
// eligible sales at the given evaluation time. Pure function: no I/O,
// deterministic for a fixed now.
//
// Each sale is checked independently (active flag, date window,
// targeting) and the lowest resulting price wins. The comparison is
// strict, so among equal candidates the first eligible sale in input
// order keeps the win. A sale with no targeting at all matches nothing.
func CalculateSalePrice(product Product, activeSales []Sale, now time.Time) PriceResult {
	base := decimal.NewFromFloat(product.BasePrice)
	bestPrice := base
	var winner *Sale

	for i := range activeSales {
		sale := &activeSales[i]

		// Safe to call with an unfiltered list: re-check the kill
		// switch and the date window here.
		if !sale.IsActive {
			continue
		}
		if sale.StartDate != nil && sale.StartDate.After(now) {
			continue
		}
		if sale.EndDate != nil && sale.EndDate.Before(now) {
			continue
		}

		if !saleMatches(sale, product) {
			continue
		}

		candidate := base
		switch sale.DiscountType {
		case DiscountTypePercentage:
			discount := base.Mul(decimal.NewFromFloat(sale.Amount)).Div(decimal.NewFromInt(100))
			candidate = base.Sub(discount)
		case DiscountTypeFixed:
			candidate = base.Sub(decimal.NewFromFloat(sale.Amount))
		}

		if candidate.IsNegative() {
			candidate = decimal.Zero
		}

		if candidate.LessThan(bestPrice) {
			bestPrice = candidate
			winner = sale
		}
	}

	finalPrice := bestPrice.Round(2)

	result := PriceResult{
		OriginalPrice:  product.BasePrice,
		SalePrice:      finalPrice.InexactFloat64(),
		IsOnSale:       finalPrice.LessThan(base),
		DiscountAmount: base.Sub(finalPrice).InexactFloat64(),
	}
	if winner != nil {
		result.SaleLabel = winner.Title
	}
	return result
}

// saleMatches reports whether any targeting dimension applies to the product
func saleMatches(sale *Sale, product Product) bool {
	for _, cat := range sale.TargetCategories {
		if cat == product.Category {
			return true
		}
	}

	for _, tag := range product.Tags {
		for _, target := range sale.TargetTags {
			if tag == target {
				return true
			}
		}
	}

	for _, id := range sale.TargetProducts {
		if id == product.ID {
			return true
		}
	}

	return false
}

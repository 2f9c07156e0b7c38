package sales

import (
	"github.com/shopspring/decimal"
)

// Line is the priced part of a sale item.
type Line struct {
	Price    float64
	Quantity int
}

type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	Total          float64 `json:"total"`
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives the money fields of a sale. discountPercent is 0-100 and
// applies to the subtotal; taxRate is a fraction applied after the discount. Every
// amount is rounded to cents and Total is exactly Subtotal - DiscountAmount + TaxAmount.
func ComputeTotals(lines []Line, discountPercent, taxRate float64) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	subtotal = subtotal.Round(2)

	discount := subtotal.Mul(decimal.NewFromFloat(discountPercent)).Div(hundred).Round(2)
	tax := subtotal.Sub(discount).Mul(decimal.NewFromFloat(taxRate)).Round(2)
	total := subtotal.Sub(discount).Add(tax)

	return Totals{
		Subtotal:       subtotal.InexactFloat64(),
		DiscountAmount: discount.InexactFloat64(),
		TaxAmount:      tax.InexactFloat64(),
		Total:          total.InexactFloat64(),
	}
}

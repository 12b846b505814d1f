package pricing

import (
	"github.com/shopspring/decimal"
)

// LineItem is one product/quantity pair inside a cart.
type LineItem struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals carries the derived amounts for a cart. Values stay unrounded;
// rounding happens once, at display time.
type Totals struct {
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
}

// DisplayTotals is the two-decimal rendering handed to clients.
type DisplayTotals struct {
	Subtotal   string `json:"subtotal"`
	TaxAmount  string `json:"tax_amount"`
	GrandTotal string `json:"grand_total"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputeTotals derives subtotal, tax amount and grand total from the given
// line items at the provided tax rate (percent). The function is pure and
// safe to re-invoke on every read; there is no cached derived state.
func ComputeTotals(items []LineItem, taxRatePercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	taxAmount := subtotal.Mul(taxRatePercent.Div(oneHundred))
	return Totals{
		Subtotal:   subtotal,
		TaxAmount:  taxAmount,
		GrandTotal: subtotal.Add(taxAmount),
	}
}

// Display rounds each of the three totals independently to two fractional
// digits. Intermediate values are never rounded, so the displayed grand
// total always reconciles with subtotal plus tax within one cent.
func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal:   t.Subtotal.StringFixed(2),
		TaxAmount:  t.TaxAmount.StringFixed(2),
		GrandTotal: t.GrandTotal.StringFixed(2),
	}
}

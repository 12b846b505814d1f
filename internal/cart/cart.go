package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rgarza/posdesk-backend/internal/pricing"
)

// Line is one product/quantity pair in the cart. Identity is ProductID;
// the same product never appears on two lines.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Cart is the ordered line-item list for one POS session. Lines keep
// insertion order; sorting for display is a view preference, not cart
// state.
type Cart struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PricingItems adapts the cart for the pricing calculator.
func (c *Cart) PricingItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, pricing.LineItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return items
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one sellable catalog entry. Identity is the integer id the
// register uses on every cart operation.
type Product struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	ImagePath string          `json:"image_path"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rgarza/posdesk-backend/pkg/enums"
)

// Order records one completed checkout: the pricing snapshot taken at
// submit time plus the non-sensitive card metadata the gateway echoed
// back. Full card numbers and CVVs are never stored.
type Order struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID         string              `gorm:"not null;index" json:"session_id"`
	MerchantReference string              `gorm:"not null" json:"merchant_reference"`
	Status            enums.PaymentStatus `gorm:"not null" json:"status"`
	Currency          enums.Currency      `gorm:"not null" json:"currency"`
	Subtotal          decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	TaxRatePercent    decimal.Decimal     `gorm:"type:numeric(6,3);not null" json:"tax_rate_percent"`
	TaxAmount         decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"tax_amount"`
	GrandTotal        decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"grand_total"`
	CardBrand         string              `json:"card_brand"`
	CardLast4         string              `json:"card_last4"`
	CardholderName    string              `json:"cardholder_name"`
	AuthorizationCode string              `json:"authorization_code"`
	TransactionID     string              `json:"transaction_id"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

package gateway

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rgarza/posdesk-backend/pkg/enums"
)

// Card is the digit-only card detail handed to the processor. It exists
// only for the duration of one submission and is never persisted.
type Card struct {
	Number         string
	ExpiryMonth    int
	ExpiryYear     int
	CVV            string
	CardholderName string
	Brand          string
}

// PaymentRequest is the outbound transaction shape.
type PaymentRequest struct {
	MerchantReference string
	Amount            decimal.Decimal
	CurrencyCode      string
	Card              Card
	Description       string
}

// PaymentResponse is what the processor reports back.
type PaymentResponse struct {
	MerchantReference string
	TransactionID     string
	Status            enums.PaymentStatus
	Amount            decimal.Decimal
	CurrencyCode      string
	Timestamp         time.Time
	ErrorCode         string
	ErrorMessage      string
	AuthorizationCode string
	Last4             string
	CardBrand         string
}

// Failure reasons reported on declined or errored transactions.
const (
	FailureInvalidCVV       = "invalid_cvv"
	FailureProcessorFailure = "processor_failure"
	FailureNetworkError     = "network_error"
)

// Client is the payment transport boundary. The register only depends on
// this interface; the wire protocol behind it is not part of this core.
type Client interface {
	SubmitPayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error)
}

package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rgarza/posdesk-backend/pkg/enums"
)

// declineCVV is the sandbox trigger: submitting this CVV produces a
// DECLINED response instead of an authorization.
const declineCVV = "000"

// Simulated is an in-process stand-in for a real payment processor.
// It authorizes everything except the decline trigger.
type Simulated struct {
	now func() time.Time
}

// NewSimulated builds the simulated processor.
func NewSimulated() *Simulated {
	return &Simulated{now: time.Now}
}

// SubmitPayment implements Client.
func (s *Simulated) SubmitPayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := &PaymentResponse{
		MerchantReference: req.MerchantReference,
		TransactionID:     uuid.NewString(),
		Amount:            req.Amount,
		CurrencyCode:      req.CurrencyCode,
		Timestamp:         s.now().UTC(),
		Last4:             last4(req.Card.Number),
		CardBrand:         req.Card.Brand,
	}

	if req.Card.CVV == declineCVV {
		resp.Status = enums.PaymentStatusDeclined
		resp.ErrorCode = FailureInvalidCVV
		resp.ErrorMessage = "card security code rejected"
		return resp, nil
	}

	resp.Status = enums.PaymentStatusAuthorized
	resp.AuthorizationCode = strings.ToUpper(uuid.NewString()[:8])
	return resp, nil
}

func last4(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

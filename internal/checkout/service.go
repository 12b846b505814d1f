package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rgarza/posdesk-backend/internal/cart"
	"github.com/rgarza/posdesk-backend/internal/card"
	"github.com/rgarza/posdesk-backend/internal/preferences"
	"github.com/rgarza/posdesk-backend/internal/pricing"
	"github.com/rgarza/posdesk-backend/pkg/db/models"
	"github.com/rgarza/posdesk-backend/pkg/enums"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
	"github.com/rgarza/posdesk-backend/pkg/gateway"
	"github.com/rgarza/posdesk-backend/pkg/logger"
	"github.com/rgarza/posdesk-backend/pkg/metrics"
)

// CardInput carries the raw field values as typed at the register. Every
// field is re-derived server side; nothing in here is trusted as clean.
type CardInput struct {
	CardholderName string `json:"cardholder_name"`
	CardNumber     string `json:"card_number"`
	Expiry         string `json:"expiry"`
	CVV            string `json:"cvv"`
}

// CardPreview is the derived form state echoed back per keystroke: the
// formatted values, the identified brand, the field caps and any advisory
// expiry error.
type CardPreview struct {
	CardholderName      string `json:"cardholder_name"`
	CardNumberDigits    string `json:"card_number_digits"`
	CardNumberFormatted string `json:"card_number_formatted"`
	CardNumberMaxDigits int    `json:"card_number_max_digits"`
	Brand               string `json:"brand"`
	ExpiryFormatted     string `json:"expiry_formatted"`
	ExpiryError         string `json:"expiry_error,omitempty"`
	CVVDigits           string `json:"cvv_digits"`
	CVVMaxDigits        int    `json:"cvv_max_digits"`
	Complete            bool   `json:"complete"`
}

// Quote is the priced view of the session's cart.
type Quote struct {
	Lines          []cart.Line           `json:"lines"`
	Currency       string                `json:"currency"`
	TaxRatePercent string                `json:"tax_rate_percent"`
	Totals         pricing.DisplayTotals `json:"totals"`
}

// Receipt is the record handed back after a finished submission.
type Receipt struct {
	OrderID           uuid.UUID             `json:"order_id"`
	MerchantReference string                `json:"merchant_reference"`
	Status            enums.PaymentStatus   `json:"status"`
	Currency          string                `json:"currency"`
	Totals            pricing.DisplayTotals `json:"totals"`
	CardBrand         string                `json:"card_brand"`
	CardLast4         string                `json:"card_last4"`
	AuthorizationCode string                `json:"authorization_code,omitempty"`
	TransactionID     string                `json:"transaction_id"`
}

type orderWriter interface {
	Create(ctx context.Context, order *models.Order) error
}

// Service runs the checkout flow: quoting the cart, previewing the card
// form and submitting payment.
type Service interface {
	Quote(ctx context.Context, sessionID string) (*Quote, error)
	PreviewCard(ctx context.Context, input CardInput) (CardPreview, error)
	Submit(ctx context.Context, sessionID string, input CardInput) (*Receipt, error)
}

// Params wires the checkout service's collaborators.
type Params struct {
	Cart              cart.Service
	Preferences       preferences.Service
	Orders            orderWriter
	Gateway           gateway.Client
	Validator         *card.Validator
	Metrics           *metrics.CheckoutMetrics
	Logger            *logger.Logger
	TaxRatePercent    decimal.Decimal
	Currency          string
	MerchantRefPrefix string
	GatewayTimeout    time.Duration
}

type service struct {
	cart      cart.Service
	prefs     preferences.Service
	orders    orderWriter
	gateway   gateway.Client
	validator *card.Validator
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger

	taxRatePercent decimal.Decimal
	currency       string
	refPrefix      string
	gatewayTimeout time.Duration
}

// NewService builds the checkout service.
func NewService(p Params) (Service, error) {
	if p.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service required")
	}
	if p.Preferences == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "preferences service required")
	}
	if p.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order repository required")
	}
	if p.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment gateway required")
	}
	if p.Validator == nil {
		p.Validator = card.NewValidator()
	}
	if p.Currency == "" {
		p.Currency = string(enums.CurrencyUSD)
	}
	if p.MerchantRefPrefix == "" {
		p.MerchantRefPrefix = "posdesk"
	}
	return &service{
		cart:           p.Cart,
		prefs:          p.Preferences,
		orders:         p.Orders,
		gateway:        p.Gateway,
		validator:      p.Validator,
		metrics:        p.Metrics,
		logg:           p.Logger,
		taxRatePercent: p.TaxRatePercent,
		currency:       p.Currency,
		refPrefix:      p.MerchantRefPrefix,
		gatewayTimeout: p.GatewayTimeout,
	}, nil
}

// Quote prices the session's cart. Totals are derived on every call; the
// cart never stores computed amounts.
func (s *service) Quote(ctx context.Context, sessionID string) (*Quote, error) {
	current, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	totals := pricing.ComputeTotals(current.PricingItems(), s.taxRatePercent)
	return &Quote{
		Lines:          current.Lines,
		Currency:       s.currency,
		TaxRatePercent: s.taxRatePercent.String(),
		Totals:         totals.Display(),
	}, nil
}

// PreviewCard re-derives the payment form from the raw input and echoes
// the formatted state back. It never rejects input; malformed values
// surface as an unknown brand or an advisory error string.
func (s *service) PreviewCard(_ context.Context, input CardInput) (CardPreview, error) {
	state := s.deriveFormState(input)
	return CardPreview{
		CardholderName:      state.CardholderName,
		CardNumberDigits:    state.CardNumberDigits,
		CardNumberFormatted: state.CardNumberFormatted,
		CardNumberMaxDigits: state.CardNumberMaxDigits,
		Brand:               state.Brand,
		ExpiryFormatted:     state.ExpiryFormatted,
		ExpiryError:         state.ExpiryError,
		CVVDigits:           state.CVVDigits,
		CVVMaxDigits:        state.CVVMaxDigits,
		Complete:            state.Complete(),
	}, nil
}

// Submit prices the cart, validates the card form and hands the payment
// to the gateway. An authorized payment records the order, clears the
// cart and resets the session's display preferences.
func (s *service) Submit(ctx context.Context, sessionID string, input CardInput) (*Receipt, error) {
	started := time.Now()

	current, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	state := s.deriveFormState(input)
	payload, ok := state.SubmissionPayload()
	if !ok {
		details := "card form is incomplete"
		if state.ExpiryError != "" {
			details = state.ExpiryError
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card details are not submittable").WithDetails(details)
	}

	totals := pricing.ComputeTotals(current.PricingItems(), s.taxRatePercent)
	merchantRef := s.refPrefix + "-" + uuid.NewString()

	gwCtx := ctx
	if s.gatewayTimeout > 0 {
		var cancel context.CancelFunc
		gwCtx, cancel = context.WithTimeout(ctx, s.gatewayTimeout)
		defer cancel()
	}

	resp, err := s.gateway.SubmitPayment(gwCtx, gateway.PaymentRequest{
		MerchantReference: merchantRef,
		Amount:            totals.GrandTotal,
		CurrencyCode:      s.currency,
		Card: gateway.Card{
			Number:         payload.CardNumberDigits,
			ExpiryMonth:    payload.ExpiryMonth,
			ExpiryYear:     payload.ExpiryYear,
			CVV:            payload.CVVDigits,
			CardholderName: payload.CardholderName,
			Brand:          state.Brand,
		},
		Description: "POS checkout",
	})
	if err != nil {
		s.observe(string(enums.PaymentStatusError), started)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submitting payment")
	}

	s.observe(string(resp.Status), started)

	order := &models.Order{
		SessionID:         sessionID,
		MerchantReference: merchantRef,
		Status:            resp.Status,
		Currency:          enums.Currency(s.currency),
		Subtotal:          totals.Subtotal,
		TaxRatePercent:    s.taxRatePercent,
		TaxAmount:         totals.TaxAmount,
		GrandTotal:        totals.GrandTotal,
		CardBrand:         resp.CardBrand,
		CardLast4:         resp.Last4,
		CardholderName:    payload.CardholderName,
		AuthorizationCode: resp.AuthorizationCode,
		TransactionID:     resp.TransactionID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if resp.Status != enums.PaymentStatusAuthorized {
		return nil, pkgerrors.New(pkgerrors.CodePayment, "payment was declined").WithDetails(resp.ErrorCode)
	}

	// The sale is done: the next customer starts from a clean register.
	if err := s.cart.Clear(ctx, sessionID); err != nil {
		s.warn(ctx, err, "clearing cart after checkout")
	}
	if err := s.prefs.Reset(ctx, sessionID); err != nil {
		s.warn(ctx, err, "resetting preferences after checkout")
	}

	return &Receipt{
		OrderID:           order.ID,
		MerchantReference: merchantRef,
		Status:            resp.Status,
		Currency:          s.currency,
		Totals:            totals.Display(),
		CardBrand:         resp.CardBrand,
		CardLast4:         resp.Last4,
		AuthorizationCode: resp.AuthorizationCode,
		TransactionID:     resp.TransactionID,
	}, nil
}

// deriveFormState replays the field operations over the raw input. The
// CVV is capped here to the brand's length, the way the field's
// max-length constraint caps it in the form.
func (s *service) deriveFormState(input CardInput) card.FormState {
	state := card.NewFormState()
	state = s.validator.UpdateCardNumber(state, input.CardNumber)
	state = s.validator.UpdateExpiry(state, input.Expiry)

	cvv := card.StripDigits(input.CVV)
	if len(cvv) > state.CVVMaxDigits {
		cvv = cvv[:state.CVVMaxDigits]
	}
	state = s.validator.UpdateCVV(state, cvv)
	state = s.validator.UpdateCardholderName(state, input.CardholderName)
	return state
}

func (s *service) observe(status string, started time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveSubmission(status, time.Since(started))
	}
}

func (s *service) warn(ctx context.Context, err error, msg string) {
	if s.logg != nil {
		s.logg.Warn(ctx, msg+": "+err.Error())
	}
}

package controllers

import (
	"net/http"

	"github.com/rgarza/posdesk-backend/api/responses"
	"github.com/rgarza/posdesk-backend/api/validators"
	checkoutsvc "github.com/rgarza/posdesk-backend/internal/checkout"
	"github.com/rgarza/posdesk-backend/pkg/logger"
)

// cardRequest mirrors the raw form fields. Nothing is validated here
// beyond presence on submit; the checkout service re-derives every field.
type cardRequest struct {
	CardholderName string `json:"cardholder_name"`
	CardNumber     string `json:"card_number"`
	Expiry         string `json:"expiry"`
	CVV            string `json:"cvv"`
}

func (c cardRequest) toInput() checkoutsvc.CardInput {
	return checkoutsvc.CardInput{
		CardholderName: c.CardholderName,
		CardNumber:     c.CardNumber,
		Expiry:         c.Expiry,
		CVV:            c.CVV,
	}
}

// CheckoutQuote prices the session's cart.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, logg, svc != nil)
		if !ok {
			return
		}

		quote, err := svc.Quote(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// CheckoutCardPreview echoes the derived card form state: formatted
// number, identified brand, field caps and any advisory expiry error.
func CheckoutCardPreview(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ok := requireSession(w, r, logg, svc != nil)
		if !ok {
			return
		}

		var payload cardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		preview, err := svc.PreviewCard(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, preview)
	}
}

// CheckoutSubmit runs the payment and, on authorization, returns the
// receipt for the completed sale.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, logg, svc != nil)
		if !ok {
			return
		}

		var payload cardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Submit(r.Context(), sessionID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rgarza/posdesk-backend/api/middleware"
	"github.com/rgarza/posdesk-backend/api/responses"
	"github.com/rgarza/posdesk-backend/api/validators"
	cartsvc "github.com/rgarza/posdesk-backend/internal/cart"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
	"github.com/rgarza/posdesk-backend/pkg/logger"
)

type addItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
}

// Quantity carries no validate tag: zero and negative values are legal
// input that the service treats as a no-op.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartFetch returns the session's cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, logg, svc != nil)
		if !ok {
			return
		}

		out, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}

// CartAddItem adds one unit of a product, incrementing the existing line
// when the product is already in the cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, logg, svc != nil)
		if !ok {
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.AddItem(r.Context(), sessionID, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}

// CartUpdateQuantity sets a line's quantity. Zero or negative quantities
// leave the cart untouched.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, logg, svc != nil)
		if !ok {
			return
		}

		productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.UpdateQuantity(r.Context(), sessionID, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}

// CartRemoveItem drops a product's line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, logg, svc != nil)
		if !ok {
			return
		}

		productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		out, err := svc.RemoveItem(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}

// CartClear empties the session's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, logg, svc != nil)
		if !ok {
			return
		}

		if err := svc.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func requireSession(w http.ResponseWriter, r *http.Request, logg *logger.Logger, svcPresent bool) (string, bool) {
	if !svcPresent {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service unavailable"))
		return "", false
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session context missing"))
		return "", false
	}
	return sessionID, true
}

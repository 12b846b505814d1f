package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rgarza/posdesk-backend/api/responses"
	productsvc "github.com/rgarza/posdesk-backend/internal/products"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
	"github.com/rgarza/posdesk-backend/pkg/logger"
)

// ProductList returns the catalog, alphabetically sorted and optionally
// filtered by the q query parameter.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		out, err := svc.ListProducts(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}

// ProductDetail returns a single catalog entry.
func ProductDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

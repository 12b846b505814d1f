package controllers

import (
	"net/http"

	"github.com/rgarza/posdesk-backend/api/responses"
	"github.com/rgarza/posdesk-backend/api/validators"
	prefsvc "github.com/rgarza/posdesk-backend/internal/preferences"
	"github.com/rgarza/posdesk-backend/pkg/enums"
	"github.com/rgarza/posdesk-backend/pkg/logger"
)

type updatePreferencesRequest struct {
	SortMethod string `json:"sort_method" validate:"required,oneof=sequential alphabetical"`
	ViewMode   string `json:"view_mode" validate:"required,oneof=card list"`
}

// PreferencesFetch returns the session's display preferences, falling back
// to the defaults when nothing is stored.
func PreferencesFetch(svc prefsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, logg, svc != nil)
		if !ok {
			return
		}

		prefs, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prefs)
	}
}

// PreferencesUpdate stores the session's display preferences.
func PreferencesUpdate(svc prefsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, logg, svc != nil)
		if !ok {
			return
		}

		var payload updatePreferencesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefs, err := svc.Set(r.Context(), sessionID, prefsvc.Preferences{
			SortMethod: enums.CartSortMethod(payload.SortMethod),
			ViewMode:   enums.ProductViewMode(payload.ViewMode),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prefs)
	}
}

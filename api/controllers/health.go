package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rgarza/posdesk-backend/api/responses"
	"github.com/rgarza/posdesk-backend/pkg/config"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
	"github.com/rgarza/posdesk-backend/pkg/logger"
)

// Pinger is the health-check surface a dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PosDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP Pinger, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PosDesk-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["postgres"] = err.Error()
				healthy = false
			} else {
				checks["postgres"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		if !healthy {
			responses.WriteError(r.Context(), logg,
				w, pkgerrors.New(pkgerrors.CodeDependency, "dependency not ready").WithDetails(checks))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

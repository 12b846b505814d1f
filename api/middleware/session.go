package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rgarza/posdesk-backend/pkg/logger"
)

// SessionHeader carries the POS session identifier. The cart and the
// display preferences hang off this id; a register without one gets a
// fresh id minted and echoed back.
const SessionHeader = "X-POS-Session"

type contextKey string

const ctxSessionID contextKey = "session_id"

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithSessionID injects the session identifier into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// Session resolves the POS session id from the request header, minting a
// new one when absent, and tags the request logger with it.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(SessionHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

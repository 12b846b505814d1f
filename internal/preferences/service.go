package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rgarza/posdesk-backend/pkg/enums"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
	"github.com/rgarza/posdesk-backend/pkg/redis"
)

// Preferences are the per-session register display settings.
type Preferences struct {
	SortMethod enums.CartSortMethod  `json:"sort_method"`
	ViewMode   enums.ProductViewMode `json:"view_mode"`
}

// Defaults returns the out-of-the-box display settings.
func Defaults() Preferences {
	return Preferences{
		SortMethod: enums.CartSortSequential,
		ViewMode:   enums.ProductViewCard,
	}
}

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Service stores and retrieves the session's display preferences.
type Service interface {
	Get(ctx context.Context, sessionID string) (Preferences, error)
	Set(ctx context.Context, sessionID string, prefs Preferences) (Preferences, error)
	Reset(ctx context.Context, sessionID string) error
}

type service struct {
	store store
	ttl   time.Duration
}

// NewService builds a redis-backed preferences service.
func NewService(store store, ttl time.Duration) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "preferences store required")
	}
	return &service{store: store, ttl: ttl}, nil
}

// Get returns the stored preferences, or the defaults when the session has
// never customized them.
func (s *service) Get(ctx context.Context, sessionID string) (Preferences, error) {
	if sessionID == "" {
		return Preferences{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	raw, err := s.store.Get(ctx, redis.PrefsKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return Defaults(), nil
	}
	if err != nil {
		return Preferences{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading preferences")
	}

	var prefs Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return Preferences{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding preferences")
	}
	return prefs, nil
}

// Set validates and stores the preferences, returning the stored value.
func (s *service) Set(ctx context.Context, sessionID string, prefs Preferences) (Preferences, error) {
	if sessionID == "" {
		return Preferences{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if !prefs.SortMethod.IsValid() {
		return Preferences{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid cart sort method")
	}
	if !prefs.ViewMode.IsValid() {
		return Preferences{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid product view mode")
	}

	payload, err := json.Marshal(prefs)
	if err != nil {
		return Preferences{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding preferences")
	}
	if err := s.store.Set(ctx, redis.PrefsKey(sessionID), payload, s.ttl); err != nil {
		return Preferences{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving preferences")
	}
	return prefs, nil
}

// Reset drops the stored preferences so the session falls back to the
// defaults. A completed checkout calls this alongside clearing the cart.
func (s *service) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.store.Del(ctx, redis.PrefsKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resetting preferences")
	}
	return nil
}

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
	"github.com/rgarza/posdesk-backend/pkg/redis"
)

// store is the slice of the redis client the cart needs.
type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Repository persists the session cart as a JSON blob with a TTL, the
// server-side equivalent of the register keeping its cart across reloads.
type Repository interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Clear(ctx context.Context, sessionID string) error
}

type repository struct {
	store store
	ttl   time.Duration
}

// NewRepository builds a redis-backed cart repository.
func NewRepository(store store, ttl time.Duration) Repository {
	return &repository{store: store, ttl: ttl}
}

// Load returns the session's cart, or a fresh empty cart when none is
// stored yet.
func (r *repository) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := r.store.Get(ctx, redis.CartKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return &Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding cart")
	}
	cart.SessionID = sessionID
	return &cart, nil
}

// Save writes the cart back, refreshing the TTL.
func (r *repository) Save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart")
	}
	if err := r.store.Set(ctx, redis.CartKey(cart.SessionID), payload, r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return nil
}

// Clear drops the session's cart.
func (r *repository) Clear(ctx context.Context, sessionID string) error {
	if err := r.store.Del(ctx, redis.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

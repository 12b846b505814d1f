package cart

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rgarza/posdesk-backend/pkg/db/models"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
	"github.com/rgarza/posdesk-backend/pkg/redis"
)

type stubStore struct {
	data map[string]string
}

func newStubStore() *stubStore {
	return &stubStore{data: map[string]string{}}
}

func (s *stubStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (s *stubStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		s.data[key] = string(v)
	case string:
		s.data[key] = v
	}
	return nil
}

func (s *stubStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

type stubCatalog struct {
	products map[int64]*models.Product
}

func (s *stubCatalog) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return p, nil
}

func newCartService(t *testing.T) (Service, *stubStore) {
	t.Helper()

	store := newStubStore()
	catalog := &stubCatalog{products: map[int64]*models.Product{
		1: {ID: 1, Name: "Coffee", UnitPrice: decimal.RequireFromString("3.50")},
		2: {ID: 2, Name: "Tea", UnitPrice: decimal.RequireFromString("2.50")},
	}}

	svc, err := NewService(NewRepository(store, time.Hour), catalog)
	require.NoError(t, err)
	return svc, store
}

func TestGetReturnsEmptyCartForNewSession(t *testing.T) {
	svc, _ := newCartService(t)

	cart, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
	require.Equal(t, "sess-1", cart.SessionID)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1)
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, "sess-1", 1)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "sess-1", 1)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 2)
	require.Equal(t, int64(2), cart.Lines[0].ProductID)
	require.Equal(t, int64(1), cart.Lines[1].ProductID)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.AddItem(context.Background(), "sess-1", 99)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", 1, 5)
	require.NoError(t, err)
	require.Equal(t, 5, cart.Lines[0].Quantity)
}

func TestUpdateQuantityZeroIsNoOp(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", 1, 0)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, 1, cart.Lines[0].Quantity)

	cart, err = svc.UpdateQuantity(ctx, "sess-1", 1, -3)
	require.NoError(t, err)
	require.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.UpdateQuantity(context.Background(), "sess-1", 1, 2)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRemoveItemDropsLine(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", 2)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "sess-1", 1)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, int64(2), cart.Lines[0].ProductID)
}

func TestClearEmptiesCart(t *testing.T) {
	svc, store := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "sess-1"))
	require.Empty(t, store.data)

	cart, err := svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
}

func TestCartSurvivesReload(t *testing.T) {
	svc, store := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1)
	require.NoError(t, err)

	// A second service over the same store sees the same cart, the way a
	// register reload does.
	catalog := &stubCatalog{products: map[int64]*models.Product{}}
	svc2, err := NewService(NewRepository(store, time.Hour), catalog)
	require.NoError(t, err)

	cart, err := svc2.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, "Coffee", cart.Lines[0].Name)
}

func TestSessionIDRequired(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

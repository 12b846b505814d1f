package cart

import (
	"context"

	"github.com/rgarza/posdesk-backend/pkg/db/models"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
)

type productLoader interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// Service exposes the cart mutations the register performs.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, productID int64) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	repo     Repository
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo Repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart repository required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.repo.Load(ctx, sessionID)
}

// AddItem puts one unit of the product in the cart. Adding a product that
// is already present increments its quantity instead of appending a
// duplicate line.
func (s *service) AddItem(ctx context.Context, sessionID string, productID int64) (*Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID {
			cart.Lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		cart.Lines = append(cart.Lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.UnitPrice,
			Quantity:  1,
		})
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the line's quantity. A quantity of zero or below is
// rejected as a no-op: the line keeps its previous quantity and the cart
// is returned unchanged. Removal is an explicit operation.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}

	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return cart, nil
	}

	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID {
			cart.Lines[i].Quantity = quantity
			if err := s.repo.Save(ctx, cart); err != nil {
				return nil, err
			}
			return cart, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
}

// RemoveItem drops the product's line entirely.
func (s *service) RemoveItem(ctx context.Context, sessionID string, productID int64) (*Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}

	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	cart.Lines = kept

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	return s.repo.Clear(ctx, sessionID)
}

func requireSession(sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}

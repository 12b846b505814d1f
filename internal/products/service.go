package products

import (
	"context"

	"github.com/rgarza/posdesk-backend/pkg/db/models"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
)

// Service exposes the catalog to the register.
type Service interface {
	ListProducts(ctx context.Context, query string) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, query string) ([]models.Product, error) {
	return s.repo.List(ctx, query)
}

func (s *service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	return s.repo.GetByID(ctx, id)
}

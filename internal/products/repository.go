package products

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rgarza/posdesk-backend/pkg/db/models"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
)

// Repository exposes catalog reads.
type Repository interface {
	List(ctx context.Context, query string) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository over the given connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// List returns the catalog sorted alphabetically, optionally filtered by a
// case-insensitive name substring.
func (r *repository) List(ctx context.Context, query string) ([]models.Product, error) {
	var out []models.Product
	tx := r.db.WithContext(ctx).Order("name ASC")
	if q := strings.TrimSpace(query); q != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if err := tx.Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return out, nil
}

// GetByID loads one catalog entry.
func (r *repository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return &product, nil
}

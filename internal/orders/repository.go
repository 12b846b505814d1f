package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rgarza/posdesk-backend/pkg/db/models"
	pkgerrors "github.com/rgarza/posdesk-backend/pkg/errors"
)

// Repository persists completed checkouts.
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Order, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a gorm-backed order repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order")
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching order")
	}
	return &order, nil
}

// ListBySession returns the session's orders, newest first.
func (r *repository) ListBySession(ctx context.Context, sessionID string) ([]models.Order, error) {
	var out []models.Order
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return out, nil
}

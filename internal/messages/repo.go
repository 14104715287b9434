package messages

import (
	"context"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists delivery chat messages. The log is append-only.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, message *models.Message) error
	ListByDelivery(ctx context.Context, deliveryID int64) ([]models.Message, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a messages repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *repositoryImpl) ListByDelivery(ctx context.Context, deliveryID int64) ([]models.Message, error) {
	var rows []models.Message
	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

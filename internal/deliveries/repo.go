package deliveries

import (
	"context"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	"github.com/avelara/dispatchly-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository exposes delivery persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, delivery *models.Delivery) error
	FindByID(ctx context.Context, id int64) (*models.Delivery, error)
	List(ctx context.Context, query listQuery) ([]models.Delivery, *pagination.Cursor, error)
	Update(ctx context.Context, id int64, changes map[string]any) (int64, error)
	UpdateCAS(ctx context.Context, id, version int64, changes map[string]any) (int64, error)
	DeletePending(ctx context.Context, id int64) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a deliveries repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, delivery *models.Delivery) error {
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id int64) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&delivery, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *repositoryImpl) List(ctx context.Context, query listQuery) ([]models.Delivery, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(query.Limit)
	normalized := pagination.NormalizeLimit(query.Limit)

	q := r.db.WithContext(ctx).Model(&models.Delivery{}).Preload("Items")
	if query.MerchantID != nil {
		q = q.Where("merchant_id = ?", *query.MerchantID)
	}
	if query.DriverID != nil {
		q = q.Where("driver_id = ?", *query.DriverID)
	}
	if query.CustomerID != nil {
		q = q.Where("customer_id = ?", *query.CustomerID)
	}
	if query.Status != nil {
		q = q.Where("status = ?", *query.Status)
	}
	if query.From != nil {
		q = q.Where("created_at >= ?", *query.From)
	}
	if query.To != nil {
		q = q.Where("created_at < ?", *query.To)
	}
	if query.Cursor != nil {
		q = q.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			query.Cursor.CreatedAt, query.Cursor.CreatedAt, query.Cursor.ID,
		)
	}

	var deliveries []models.Delivery
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&deliveries).Error; err != nil {
		return nil, nil, err
	}

	if len(deliveries) > normalized {
		next := deliveries[normalized]
		deliveries = deliveries[:normalized]
		return deliveries, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return deliveries, nil, nil
}

func (r *repositoryImpl) Update(ctx context.Context, id int64, changes map[string]any) (int64, error) {
	if len(changes) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("id = ?", id).
		Updates(changes)
	return result.RowsAffected, result.Error
}

// UpdateCAS applies changes only when the stored version still matches,
// bumping the version on success. Zero rows means a concurrent writer won
// or the row is missing; callers disambiguate with FindByID.
func (r *repositoryImpl) UpdateCAS(ctx context.Context, id, version int64, changes map[string]any) (int64, error) {
	payload := map[string]any{"version": gorm.Expr("version + 1")}
	for k, v := range changes {
		payload[k] = v
	}
	result := r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("id = ? AND version = ?", id, version).
		Updates(payload)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) DeletePending(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, enums.DeliveryStatusPending).
		Delete(&models.Delivery{})
	return result.RowsAffected, result.Error
}

package products

import (
	"context"
	"strings"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes catalogue persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, params ListParams) ([]models.Product, error)
	Update(ctx context.Context, id int64, changes map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// productSortColumns whitelists sortable columns; the id tiebreak keeps the
// ordering stable across equal keys.
var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a products repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repositoryImpl) List(ctx context.Context, params ListParams) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if params.MerchantID != nil {
		q = q.Where("merchant_id = ?", *params.MerchantID)
	}
	if params.Category != nil {
		q = q.Where("category = ?", *params.Category)
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if params.AvailableOnly {
		q = q.Where("available = ?", true)
	}

	column, ok := productSortColumns[params.SortBy]
	if !ok {
		column = "name"
	}
	direction := "ASC"
	if params.SortDesc {
		direction = "DESC"
	}

	var rows []models.Product
	if err := q.Order(column + " " + direction + ", id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) Update(ctx context.Context, id int64, changes map[string]any) (int64, error) {
	if len(changes) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(changes)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

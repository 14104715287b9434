package deliveries

import (
	"time"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	"github.com/avelara/dispatchly-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CreateDeliveryItemDTO is one order line on a new delivery.
type CreateDeliveryItemDTO struct {
	ProductID *int64          `json:"product_id,omitempty" validate:"omitempty,gt=0"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
}

// CreateDeliveryDTO holds everything needed to open a delivery.
type CreateDeliveryDTO struct {
	MerchantID    int64                   `json:"merchant_id" validate:"required,gt=0"`
	CustomerID    *int64                  `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	CustomerName  string                  `json:"customer_name" validate:"required"`
	CustomerPhone string                  `json:"customer_phone"`
	Address       string                  `json:"address" validate:"required"`
	Amount        decimal.Decimal         `json:"amount"`
	Notes         *string                 `json:"notes,omitempty"`
	Items         []CreateDeliveryItemDTO `json:"items" validate:"dive"`
}

// UpdateDeliveryDTO is a patch; nil fields are left untouched. Identity,
// status, and timestamps are never patchable through this path.
type UpdateDeliveryDTO struct {
	CustomerName  *string          `json:"customer_name,omitempty"`
	CustomerPhone *string          `json:"customer_phone,omitempty"`
	Address       *string          `json:"address,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

func (u UpdateDeliveryDTO) changes() map[string]any {
	changes := map[string]any{}
	if u.CustomerName != nil {
		changes["customer_name"] = *u.CustomerName
	}
	if u.CustomerPhone != nil {
		changes["customer_phone"] = *u.CustomerPhone
	}
	if u.Address != nil {
		changes["address"] = *u.Address
	}
	if u.Amount != nil {
		changes["amount"] = *u.Amount
	}
	if u.Notes != nil {
		changes["notes"] = *u.Notes
	}
	return changes
}

// ListParams filters and paginates delivery queries.
type ListParams struct {
	MerchantID *int64
	DriverID   *int64
	CustomerID *int64
	Status     *enums.DeliveryStatus
	From       *time.Time
	To         *time.Time
	Limit      int
	Cursor     string
}

type listQuery struct {
	MerchantID *int64
	DriverID   *int64
	CustomerID *int64
	Status     *enums.DeliveryStatus
	From       *time.Time
	To         *time.Time
	Limit      int
	Cursor     *pagination.Cursor
}

// ListResult wraps a page of deliveries and the cursor for the next one.
type ListResult struct {
	Items  []models.Delivery `json:"items"`
	Cursor string            `json:"cursor"`
}

// DeliveryItemDTO is the transport shape of one order line.
type DeliveryItemDTO struct {
	ID        int64           `json:"id"`
	ProductID *int64          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// DeliveryDTO is the transport shape of a delivery with its items.
type DeliveryDTO struct {
	ID                  int64                `json:"id"`
	MerchantID          int64                `json:"merchant_id"`
	DriverID            *int64               `json:"driver_id,omitempty"`
	CustomerID          *int64               `json:"customer_id,omitempty"`
	CustomerName        string               `json:"customer_name"`
	CustomerPhone       string               `json:"customer_phone,omitempty"`
	Address             string               `json:"address"`
	Amount              decimal.Decimal      `json:"amount"`
	Status              enums.DeliveryStatus `json:"status"`
	Notes               *string              `json:"notes,omitempty"`
	DriverRating        *int                 `json:"driver_rating,omitempty"`
	DriverRatingComment *string              `json:"driver_rating_comment,omitempty"`
	DeliveredAt         *time.Time           `json:"delivered_at,omitempty"`
	Version             int64                `json:"version"`
	Items               []DeliveryItemDTO    `json:"items"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// FromModel converts a persisted delivery into its transport shape.
func FromModel(d *models.Delivery) *DeliveryDTO {
	if d == nil {
		return nil
	}
	items := make([]DeliveryItemDTO, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, DeliveryItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return &DeliveryDTO{
		ID:                  d.ID,
		MerchantID:          d.MerchantID,
		DriverID:            d.DriverID,
		CustomerID:          d.CustomerID,
		CustomerName:        d.CustomerName,
		CustomerPhone:       d.CustomerPhone,
		Address:             d.Address,
		Amount:              d.Amount,
		Status:              d.Status,
		Notes:               d.Notes,
		DriverRating:        d.DriverRating,
		DriverRatingComment: d.DriverRatingComment,
		DeliveredAt:         d.DeliveredAt,
		Version:             d.Version,
		Items:               items,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (c CreateDeliveryDTO) toModel() *models.Delivery {
	items := make([]models.DeliveryItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, models.DeliveryItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return &models.Delivery{
		MerchantID:    c.MerchantID,
		CustomerID:    c.CustomerID,
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		Address:       c.Address,
		Amount:        c.Amount,
		Status:        enums.DeliveryStatusPending,
		Notes:         c.Notes,
		Items:         items,
	}
}

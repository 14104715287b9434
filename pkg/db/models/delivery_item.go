package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryItem is one ordered line inside a delivery. ProductID is nil when
// the merchant typed a free-form line instead of picking from the catalogue.
type DeliveryItem struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	DeliveryID int64           `gorm:"column:delivery_id;not null;index"`
	ProductID  *int64          `gorm:"column:product_id"`
	Name       string          `gorm:"column:name;type:text;not null"`
	Quantity   int             `gorm:"column:quantity;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelara/dispatchly-backend/pkg/enums"
)

// Delivery is the central transactional record. Status moves through the
// workflow engine only; Version backs its compare-and-swap updates.
//
// Invariants enforced by the workflow:
//   - DeliveredAt is non-nil iff Status is delivered.
//   - DriverRating is non-nil only when Status is delivered.
//   - DriverID is non-nil for every status except pending.
type Delivery struct {
	ID                  int64                `gorm:"column:id;primaryKey;autoIncrement"`
	MerchantID          int64                `gorm:"column:merchant_id;not null;index"`
	DriverID            *int64               `gorm:"column:driver_id;index"`
	CustomerID          *int64               `gorm:"column:customer_id;index"`
	CustomerName        string               `gorm:"column:customer_name;type:text;not null"`
	CustomerPhone       string               `gorm:"column:customer_phone;type:text"`
	Address             string               `gorm:"column:address;type:text;not null"`
	Amount              decimal.Decimal      `gorm:"column:amount;type:numeric;not null"`
	Status              enums.DeliveryStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Notes               *string              `gorm:"column:notes;type:text"`
	DriverRating        *int                 `gorm:"column:driver_rating"`
	DriverRatingComment *string              `gorm:"column:driver_rating_comment;type:text"`
	DeliveredAt         *time.Time           `gorm:"column:delivered_at"`
	Version             int64                `gorm:"column:version;not null;default:0"`
	Items               []DeliveryItem       `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

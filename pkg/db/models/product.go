package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalogue entry owned by exactly one merchant.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	MerchantID  int64           `gorm:"column:merchant_id;not null;index"`
	Name        string          `gorm:"column:name;type:text;not null"`
	Category    string          `gorm:"column:category;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	Description string          `gorm:"column:description;type:text"`
	Available   bool            `gorm:"column:available;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

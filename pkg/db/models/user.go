package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelara/dispatchly-backend/pkg/enums"
)

// User is an account on the platform. Role-specific attributes are nullable
// and populated only for the matching role.
type User struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string          `gorm:"column:name;type:text;not null"`
	Email        string          `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;type:text;not null"`
	Role         enums.Role      `gorm:"column:role;type:text;not null"`
	Phone        string          `gorm:"column:phone;type:text"`
	Earnings     decimal.Decimal `gorm:"column:earnings;type:numeric;not null;default:0"`
	BusinessName *string         `gorm:"column:business_name;type:text"`
	Address      *string         `gorm:"column:address;type:text"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

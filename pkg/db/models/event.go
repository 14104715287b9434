package models

import "time"

// Event is an entry in the event-manager half of the product: a dated
// gathering with invited guests. GuestCount is maintained from guest rows.
type Event struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string    `gorm:"column:title;type:text;not null"`
	Description string    `gorm:"column:description;type:text"`
	Date        time.Time `gorm:"column:date;not null"`
	Location    string    `gorm:"column:location;type:text"`
	Category    string    `gorm:"column:category;type:text"`
	GuestCount  int       `gorm:"column:guest_count;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

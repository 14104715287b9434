package models

import (
	"time"

	"github.com/avelara/dispatchly-backend/pkg/enums"
)

// Guest is an invitee scoped to one event.
type Guest struct {
	ID         int64            `gorm:"column:id;primaryKey;autoIncrement"`
	EventID    int64            `gorm:"column:event_id;not null;index"`
	Name       string           `gorm:"column:name;type:text;not null"`
	Email      string           `gorm:"column:email;type:text"`
	Phone      string           `gorm:"column:phone;type:text"`
	RSVPStatus enums.RSVPStatus `gorm:"column:rsvp_status;type:text;not null;default:'Pending'"`
	AddedAt    time.Time        `gorm:"column:added_at;autoCreateTime"`
}

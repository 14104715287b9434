package models

import (
	"time"

	"github.com/avelara/dispatchly-backend/pkg/enums"
)

// Notification stores in-app notification payloads scoped to users.
// Read only ever moves false -> true.
type Notification struct {
	ID        int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64                  `gorm:"column:user_id;not null;index"`
	Type      enums.NotificationType `gorm:"column:type;type:text;not null"`
	Message   string                 `gorm:"column:message;type:text;not null"`
	Read      bool                   `gorm:"column:read;not null;default:false"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}

package models

import "time"

// Message belongs to exactly one delivery. Append-only; no edit or delete.
type Message struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DeliveryID int64     `gorm:"column:delivery_id;not null;index"`
	SenderID   int64     `gorm:"column:sender_id;not null"`
	ReceiverID int64     `gorm:"column:receiver_id;not null"`
	Content    string    `gorm:"column:content;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

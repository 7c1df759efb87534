package entity

import "time"

// Notification is an append-only notification record; only ReadAt is ever
// mutated after insert.
type Notification struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           string     `gorm:"not null;index" json:"user_id"`
	NotificationType string     `json:"notification_type"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	Ticker           *string    `json:"ticker"`
	SentAt           time.Time  `json:"sent_at"`
	ReadAt           *time.Time `json:"read_at"`
	CreatedAt        time.Time  `gorm:"type:date" json:"created_at"`
}

func (Notification) TableName() string {
	return "notification_history"
}

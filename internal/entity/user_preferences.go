package entity

import (
	"time"

	"gorm.io/datatypes"
)

// UserPreferences holds one user's notification toggles. A row is created
// lazily with all alerts enabled the first time the user is seen.
type UserPreferences struct {
	ID                        uint           `gorm:"primaryKey" json:"id"`
	UserID                    string         `gorm:"uniqueIndex;not null" json:"user_id"`
	MorningAlertsEnabled      bool           `gorm:"default:true" json:"morning_alerts_enabled"`
	AfternoonAlertsEnabled    bool           `gorm:"default:true" json:"afternoon_alerts_enabled"`
	PushNotificationsEnabled  bool           `gorm:"default:true" json:"push_notifications_enabled"`
	EmailNotificationsEnabled bool           `gorm:"default:true" json:"email_notifications_enabled"`
	PreferredSectors          datatypes.JSON `gorm:"type:jsonb" json:"preferred_sectors"`
	RiskTolerance             string         `json:"risk_tolerance"`
	CreatedAt                 time.Time      `gorm:"type:date" json:"created_at"`
	UpdatedAt                 time.Time      `gorm:"type:date" json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

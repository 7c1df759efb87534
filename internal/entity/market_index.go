package entity

import "time"

// MarketIndex is one market-wide index, upserted by case-insensitive name.
type MarketIndex struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;index" json:"name"`
	CurrentValue  float64   `json:"current_value"`
	ChangeValue   float64   `json:"change_value"`
	ChangePercent float64   `json:"change_percent"`
	LastUpdated   time.Time `gorm:"type:date" json:"last_updated"`
	CreatedAt     time.Time `gorm:"type:date" json:"created_at"`
}

func (MarketIndex) TableName() string {
	return "market_indices"
}

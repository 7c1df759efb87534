package entity

import "time"

// Holding is one portfolio position. Ticker is unique across the portfolio.
// BuyPrice, CurrentPrice and Volume are pointers because a holding may be
// tracked before it is priced; derived fields are recomputed whenever all
// three are present.
type Holding struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Ticker        string    `gorm:"uniqueIndex;not null" json:"ticker"`
	CompanyName   string    `json:"company_name"`
	Sector        string    `json:"sector"`
	IndexGroup    string    `json:"index_group"`
	BuyPrice      *float64  `json:"buy_price"`
	CurrentPrice  *float64  `json:"current_price"`
	ChangeValue   float64   `json:"change_value"`
	ChangePercent float64   `json:"change_percent"`
	Volume        *int64    `json:"volume"`
	MarketCap     float64   `json:"market_cap"`
	LastUpdated   time.Time `gorm:"type:date" json:"last_updated"`
	CreatedAt     time.Time `gorm:"type:date" json:"created_at"`
}

func (Holding) TableName() string {
	return "portfolio_holdings"
}

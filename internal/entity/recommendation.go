package entity

import "time"

// RecommendationAction is the advised action for a stock.
type RecommendationAction string

const (
	ActionBuy  RecommendationAction = "BUY"
	ActionSell RecommendationAction = "SELL"
	ActionHold RecommendationAction = "HOLD"
)

// StockRecommendation is one AI-generated recommendation. The natural key is
// (lower(ticker), alert_time, recommendation_date); ConfidenceScore is stored
// on a 0-100 scale.
type StockRecommendation struct {
	ID                 uint                 `gorm:"primaryKey" json:"id"`
	Ticker             string               `gorm:"not null;index" json:"ticker"`
	CompanyName        string               `json:"company_name"`
	Sector             string               `json:"sector"`
	CurrentPrice       float64              `json:"current_price"`
	TargetPrice        float64              `json:"target_price"`
	Action             RecommendationAction `gorm:"column:recommendation" json:"recommendation"`
	ConfidenceScore    float64              `json:"confidence_score"`
	Timeframe          string               `json:"timeframe"`
	Reasons            string               `json:"reasons"`
	AlertTime          string               `gorm:"index" json:"alert_time"`
	RecommendationDate time.Time            `gorm:"type:date;index" json:"recommendation_date"`
	IsActive           bool                 `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time            `gorm:"type:date" json:"created_at"`
}

func (StockRecommendation) TableName() string {
	return "stock_recommendations"
}

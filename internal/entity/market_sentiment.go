package entity

import "time"

// MarketSentiment is an append-only sentiment reading; the latest row is the
// current market analysis.
type MarketSentiment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	AnalysisDate     time.Time `gorm:"type:date;index" json:"analysis_date"`
	BullishSentiment float64   `json:"bullish_sentiment"`
	BearishSentiment float64   `json:"bearish_sentiment"`
	MarketTrend      string    `json:"market_trend"`
	FearGreedIndex   float64   `json:"fear_greed_index"`
	VolatilityIndex  string    `json:"volatility_index"`
	CreatedAt        time.Time `gorm:"type:date" json:"created_at"`
}

func (MarketSentiment) TableName() string {
	return "market_analysis"
}

package entity

import "time"

// TechnicalIndicator is an append-only per-ticker per-date indicator snapshot.
type TechnicalIndicator struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Ticker          string    `gorm:"not null;index" json:"ticker"`
	RSI14           float64   `gorm:"column:rsi_14" json:"rsi_14"`
	MACD            float64   `gorm:"column:macd" json:"macd"`
	MovingAvg50     float64   `json:"moving_avg_50"`
	MovingAvg200    float64   `json:"moving_avg_200"`
	BollingerUpper  float64   `json:"bollinger_upper"`
	BollingerLower  float64   `json:"bollinger_lower"`
	SupportLevel    float64   `json:"support_level"`
	ResistanceLevel float64   `json:"resistance_level"`
	AnalysisDate    time.Time `gorm:"type:date;index" json:"analysis_date"`
	CreatedAt       time.Time `gorm:"type:date" json:"created_at"`
}

func (TechnicalIndicator) TableName() string {
	return "technical_indicators"
}

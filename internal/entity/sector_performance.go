package entity

import "time"

// SectorTrend is the direction of a sector's performance.
type SectorTrend string

const (
	TrendPositive SectorTrend = "positive"
	TrendNegative SectorTrend = "negative"
)

// SectorPerformance is one sector snapshot, upserted by case-insensitive
// sector name.
type SectorPerformance struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	SectorName         string      `gorm:"not null;index" json:"sector_name"`
	PerformancePercent float64     `json:"performance_percent"`
	Trend              SectorTrend `json:"trend"`
	MarketCap          float64     `json:"market_cap"`
	AnalysisDate       time.Time   `gorm:"type:date" json:"analysis_date"`
	CreatedAt          time.Time   `gorm:"type:date" json:"created_at"`
}

func (SectorPerformance) TableName() string {
	return "sector_performance"
}

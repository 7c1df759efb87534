package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IndexResponse is one market index as served to clients.
type IndexResponse struct {
	Name          string  `json:"name"`
	CurrentValue  float64 `json:"current_value"`
	ChangeValue   float64 `json:"change_value"`
	ChangePercent float64 `json:"change_percent"`
	IsPositive    bool    `json:"is_positive"`
}

// RecommendationResponse is one stored recommendation as served to clients.
type RecommendationResponse struct {
	ID              uint    `json:"id"`
	Ticker          string  `json:"ticker"`
	CompanyName     string  `json:"company_name"`
	Sector          string  `json:"sector"`
	CurrentPrice    float64 `json:"current_price"`
	TargetPrice     float64 `json:"target_price"`
	Recommendation  string  `json:"recommendation"`
	ConfidenceScore float64 `json:"confidence_score"`
	Timeframe       string  `json:"timeframe"`
	Reasons         string  `json:"reasons"`
	AlertTime       string  `json:"alert_time"`
}

// TechnicalIndicatorDTO is one indicator snapshot in analysis responses and
// manual ingest requests. PriceHistory is request-only: when present, missing
// indicator values are computed from it instead of being taken as zero.
type TechnicalIndicatorDTO struct {
	Ticker          string    `json:"ticker"`
	RSI14           float64   `json:"rsi_14"`
	MACD            float64   `json:"macd"`
	MovingAvg50     float64   `json:"moving_avg_50"`
	MovingAvg200    float64   `json:"moving_avg_200"`
	BollingerUpper  float64   `json:"bollinger_upper"`
	BollingerLower  float64   `json:"bollinger_lower"`
	SupportLevel    float64   `json:"support_level"`
	ResistanceLevel float64   `json:"resistance_level"`
	AnalysisDate    string    `json:"analysis_date,omitempty"`
	PriceHistory    []float64 `json:"price_history,omitempty"`
}

// SectorDTO is one sector entry in analysis responses.
type SectorDTO struct {
	Name         string  `json:"name"`
	Performance  float64 `json:"performance"`
	Trend        string  `json:"trend"`
	MarketCap    float64 `json:"market_cap"`
	AnalysisDate string  `json:"analysis_date,omitempty"`
}

// KeyLevels aggregates support/resistance across the latest indicators.
type KeyLevels struct {
	Support    *float64 `json:"support"`
	Resistance *float64 `json:"resistance"`
}

// AnalysisResponse is the combined market analysis view.
type AnalysisResponse struct {
	Date                string                  `json:"date,omitempty"`
	BullishSentiment    float64                 `json:"bullish_sentiment"`
	BearishSentiment    float64                 `json:"bearish_sentiment"`
	MarketTrend         string                  `json:"market_trend"`
	FearGreedIndex      float64                 `json:"fear_greed_index"`
	VolatilityIndex     string                  `json:"volatility_index"`
	TechnicalIndicators []TechnicalIndicatorDTO `json:"technicalIndicators"`
	Sectors             []SectorDTO             `json:"sectors"`
	KeyLevels           KeyLevels               `json:"keyLevels"`
}

// PostAnalysisRequest is a manual sentiment and indicator ingest.
type PostAnalysisRequest struct {
	Date                string                  `json:"date"`
	BullishSentiment    *float64                `json:"bullish_sentiment"`
	BearishSentiment    *float64                `json:"bearish_sentiment"`
	MarketTrend         string                  `json:"market_trend"`
	FearGreedIndex      *float64                `json:"fear_greed_index"`
	VolatilityIndex     string                  `json:"volatility_index"`
	TechnicalIndicators []TechnicalIndicatorDTO `json:"technicalIndicators"`
}

// RealTimeUpdateRequest triggers a reconciliation cycle manually.
type RealTimeUpdateRequest struct {
	Action    string `json:"action"`
	AlertTime string `json:"alertTime"`
}

// RealTimeUpdateResponse reports the outcome of a manual cycle.
type RealTimeUpdateResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	SnapshotSaved bool   `json:"snapshot_saved,omitempty"`
	Created       *int   `json:"created,omitempty"`
}

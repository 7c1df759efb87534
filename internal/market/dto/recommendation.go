package dto

// StockPick is one stock recommendation from the AI source. ConfidenceScore
// is on the source's 0-1 scale; it is normalized to 0-100 exactly once during
// reconciliation. Reasons and Timeframe may be absent and are backfilled.
type StockPick struct {
	Ticker          string  `json:"ticker"`
	CompanyName     string  `json:"company_name"`
	Sector          string  `json:"sector"`
	CurrentPrice    float64 `json:"current_price"`
	TargetPrice     float64 `json:"target_price"`
	Recommendation  string  `json:"recommendation"`
	ConfidenceScore float64 `json:"confidence_score"`
	Timeframe       string  `json:"timeframe"`
	Reasons         string  `json:"reasons"`
}

// RecommendationBatch is the recommendation-source response envelope.
type RecommendationBatch struct {
	Stocks []StockPick `json:"stocks"`
}

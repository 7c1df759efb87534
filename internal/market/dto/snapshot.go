package dto

import (
	"encoding/json"
)

// FlexString decodes a JSON string or number into a string. The snapshot
// source is not consistent about the volatility index type.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString(num.String())
		return nil
	}
	*s = FlexString(string(data))
	return nil
}

// IndexSnapshot is one market index entry from the snapshot source.
type IndexSnapshot struct {
	Name          string  `json:"name"`
	CurrentValue  float64 `json:"current_value"`
	ChangeValue   float64 `json:"change_value"`
	ChangePercent float64 `json:"change_percent"`
}

// SectorSnapshot is one sector entry from the snapshot source.
type SectorSnapshot struct {
	SectorName         string  `json:"sector_name"`
	PerformancePercent float64 `json:"performance_percent"`
	Trend              string  `json:"trend"`
	MarketCap          float64 `json:"market_cap"`
}

// SentimentSnapshot is the market-wide sentiment block of a snapshot.
type SentimentSnapshot struct {
	BullishSentiment float64    `json:"bullish_sentiment"`
	BearishSentiment float64    `json:"bearish_sentiment"`
	MarketTrend      string     `json:"market_trend"`
	FearGreedIndex   float64    `json:"fear_greed_index"`
	VolatilityIndex  FlexString `json:"volatility_index"`
}

// MarketSnapshot is the market-wide snapshot returned by the AI source.
// Any field may be absent in a degraded response; consumers must treat
// missing sections as empty, not crash.
type MarketSnapshot struct {
	Indices   []IndexSnapshot   `json:"nifty_indices"`
	Sectors   []SectorSnapshot  `json:"sectors"`
	Sentiment SentimentSnapshot `json:"sentiment"`
}

// StockPrice is one refreshed price quote.
type StockPrice struct {
	Ticker       string  `json:"ticker"`
	CurrentPrice float64 `json:"current_price"`
}

// StockPriceBatch is the price-source response envelope.
type StockPriceBatch struct {
	StockPrices []StockPrice `json:"stock_prices"`
}

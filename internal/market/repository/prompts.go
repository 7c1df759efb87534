package repository

import (
	"fmt"
	"strings"
)

// BuildMarketSnapshotPrompt asks the model for a market-wide snapshot of
// indices, sectors and sentiment in a strict JSON schema.
func BuildMarketSnapshotPrompt() string {
	return `You are a financial AI assistant.
Generate a plausible real-time snapshot of the Indian stock market for all nifty indices and all sectors.
Return ONLY valid JSON.

Schema:
{
  "nifty_indices": [
    {
      "name": "string (e.g., NIFTY 50, NIFTY BANK, NIFTY IT, NIFTY PHARMA, NIFTY FMCG, NIFTY AUTO, NIFTY METAL, NIFTY ENERGY, NIFTY REALTY, NIFTY PSU BANK)",
      "current_value": float,
      "change_value": float,
      "change_percent": float
    }
  ],
  "sentiment": {
    "bullish_sentiment": float (0-100),
    "bearish_sentiment": float (0-100),
    "market_trend": "Bullish" | "Bearish" | "Neutral",
    "fear_greed_index": float (0-100),
    "volatility_index": float
  },
  "sectors": [
    {
      "sector_name": "string",
      "performance_percent": float,
      "trend": "positive" | "negative",
      "market_cap": float
    }
  ]
}`
}

// BuildStockRecommendationsPrompt asks the model for stock picks with a
// 0-1 confidence score.
func BuildStockRecommendationsPrompt() string {
	return `You are a financial AI assistant.
Generate plausible 5 stock recommendations for Indian equities.
Return ONLY valid JSON.

Schema:
{
  "stocks": [
    {
      "ticker": "string (e.g., INFY, TCS, HDFCBANK)",
      "company_name": "string",
      "sector": "string",
      "current_price": float,
      "target_price": float,
      "recommendation": "BUY" | "SELL" | "HOLD",
      "confidence_score": float (0-1),
      "timeframe": "string (e.g., '1-3 Months', '1-2 Weeks')",
      "reasons": "short explanation why recommendation is made"
    }
  ]
}`
}

// BuildStockPricesPrompt asks the model for current prices for the given
// tickers.
func BuildStockPricesPrompt(tickers []string) string {
	return fmt.Sprintf(`You are a financial data assistant.
Fetch the latest live price for each of the following Indian stock tickers and
return the result strictly as valid JSON, no extra text, in this format:

Schema:
{
  "stock_prices": [
    {
      "ticker": "string (e.g., INFY, TCS, HDFCBANK)",
      "current_price": float
    }
  ]
}

Do not include explanations, markdown, or additional commentary.

Tickers: %s`, strings.Join(tickers, ", "))
}

// BuildReasoningPrompt synthesizes a natural-language reasoning request for a
// recommendation the source emitted without an explanation. Confidence is the
// source's 0-1 value.
func BuildReasoningPrompt(action, ticker string, confidence float64, timeframe, sector string) string {
	if sector == "" {
		sector = "Unknown"
	}
	return fmt.Sprintf("Generate reasoning for %s on %s, confidence %.0f%%, timeframe %s, sector %s.",
		action, ticker, confidence*100, timeframe, sector)
}

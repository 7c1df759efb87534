package repository

import (
	"testing"

	"golang-market-insight/internal/market/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeParseJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "plain json",
			text: `{"stocks":[{"ticker":"INFY","confidence_score":0.82}]}`,
		},
		{
			name: "fenced json",
			text: "```json\n{\"stocks\":[{\"ticker\":\"INFY\",\"confidence_score\":0.82}]}\n```",
		},
		{
			name: "fenced without language tag",
			text: "```\n{\"stocks\":[{\"ticker\":\"INFY\",\"confidence_score\":0.82}]}\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var batch dto.RecommendationBatch
			err := safeParseJSON(tt.text, &batch)
			require.NoError(t, err)
			require.Len(t, batch.Stocks, 1)
			assert.Equal(t, "INFY", batch.Stocks[0].Ticker)
			assert.Equal(t, 0.82, batch.Stocks[0].ConfidenceScore)
		})
	}
}

func TestSafeParseJSONMalformed(t *testing.T) {
	raw := "Sure! Here are your recommendations: INFY and TCS."

	var batch dto.RecommendationBatch
	err := safeParseJSON(raw, &batch)

	var merr *dto.MalformedPayloadError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, raw, merr.Raw)
}

func TestSnapshotVolatilityIndexTolerance(t *testing.T) {
	// The model returns volatility_index as a number or a string; both decode.
	var asNumber dto.MarketSnapshot
	require.NoError(t, safeParseJSON(`{"sentiment":{"volatility_index":12.5}}`, &asNumber))
	assert.Equal(t, dto.FlexString("12.5"), asNumber.Sentiment.VolatilityIndex)

	var asString dto.MarketSnapshot
	require.NoError(t, safeParseJSON(`{"sentiment":{"volatility_index":"High"}}`, &asString))
	assert.Equal(t, dto.FlexString("High"), asString.Sentiment.VolatilityIndex)
}

func TestBuildStockPricesPrompt(t *testing.T) {
	prompt := BuildStockPricesPrompt([]string{"INFY", "TCS"})
	assert.Contains(t, prompt, "Tickers: INFY, TCS")
}

func TestBuildReasoningPrompt(t *testing.T) {
	prompt := BuildReasoningPrompt("BUY", "INFY", 0.82, "1-3 Months", "")
	assert.Contains(t, prompt, "BUY on INFY")
	assert.Contains(t, prompt, "confidence 82%")
	assert.Contains(t, prompt, "sector Unknown")
}

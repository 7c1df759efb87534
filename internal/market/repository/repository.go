package repository

import (
	"context"

	"golang-market-insight/internal/market/dto"
)

// MarketDataSource is the AI-backed source of snapshots, recommendations and
// prices. Fetch methods return an UpstreamError when the provider fails;
// GenerateReasoning never fails the caller and returns error-describing text
// instead.
type MarketDataSource interface {
	FetchMarketSnapshot(ctx context.Context) (*dto.MarketSnapshot, error)
	FetchStockRecommendations(ctx context.Context) (*dto.RecommendationBatch, error)
	FetchStockPrices(ctx context.Context, tickers []string) (map[string]float64, error)
	GenerateReasoning(ctx context.Context, prompt string) string
}

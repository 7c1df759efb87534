package service

import (
	"context"
	"testing"
	"time"

	"golang-market-insight/internal/entity"
	"golang-market-insight/internal/market/config"
	"golang-market-insight/internal/market/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalysisServiceForTest(t *testing.T, repo *fakeAnalysisRepo) AnalysisService {
	t.Helper()
	return NewAnalysisService(&config.Config{}, repo, nil, testLogger(t))
}

func TestGetAnalysisEmpty(t *testing.T) {
	svc := newAnalysisServiceForTest(t, &fakeAnalysisRepo{})

	resp, err := svc.GetAnalysis(context.Background())
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestGetAnalysisCombinesSources(t *testing.T) {
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	repo := &fakeAnalysisRepo{
		sentiment: &entity.MarketSentiment{
			AnalysisDate:     date,
			BullishSentiment: 62,
			BearishSentiment: 38,
			MarketTrend:      "Bullish",
			FearGreedIndex:   70,
			VolatilityIndex:  "12.5",
		},
		indicators: []entity.TechnicalIndicator{
			{Ticker: "RELIANCE", SupportLevel: 2400, ResistanceLevel: 2600, AnalysisDate: date},
			{Ticker: "TCS", SupportLevel: 3800, ResistanceLevel: 4200, AnalysisDate: date},
			{Ticker: "UNSET", AnalysisDate: date}, // zero levels are absent, not candidates
		},
		sectors: []entity.SectorPerformance{
			{SectorName: "IT", PerformancePercent: 1.2, Trend: entity.TrendPositive, AnalysisDate: date},
		},
	}
	svc := newAnalysisServiceForTest(t, repo)

	resp, err := svc.GetAnalysis(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "2026-08-29", resp.Date)
	assert.Equal(t, 62.0, resp.BullishSentiment)
	assert.Equal(t, "Bullish", resp.MarketTrend)
	assert.Len(t, resp.TechnicalIndicators, 3)
	assert.Len(t, resp.Sectors, 1)

	require.NotNil(t, resp.KeyLevels.Support)
	require.NotNil(t, resp.KeyLevels.Resistance)
	assert.Equal(t, 2400.0, *resp.KeyLevels.Support)
	assert.Equal(t, 4200.0, *resp.KeyLevels.Resistance)
}

func TestPostAnalysisDefaults(t *testing.T) {
	repo := &fakeAnalysisRepo{}
	svc := newAnalysisServiceForTest(t, repo)

	err := svc.PostAnalysis(context.Background(), &dto.PostAnalysisRequest{})
	require.NoError(t, err)
	require.NotNil(t, repo.createdSentiment)

	assert.Equal(t, 50.0, repo.createdSentiment.BullishSentiment)
	assert.Equal(t, 50.0, repo.createdSentiment.BearishSentiment)
	assert.Equal(t, "Neutral", repo.createdSentiment.MarketTrend)
	assert.Equal(t, 50.0, repo.createdSentiment.FearGreedIndex)
	assert.Equal(t, "N/A", repo.createdSentiment.VolatilityIndex)
}

func TestPostAnalysisRejectsBadDate(t *testing.T) {
	svc := newAnalysisServiceForTest(t, &fakeAnalysisRepo{})

	err := svc.PostAnalysis(context.Background(), &dto.PostAnalysisRequest{Date: "29-08-2026"})

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestPostAnalysisComputesFromPriceHistory(t *testing.T) {
	repo := &fakeAnalysisRepo{}
	svc := newAnalysisServiceForTest(t, repo)

	prices := make([]float64, 0, 30)
	for i := 0; i < 30; i++ {
		prices = append(prices, 100+float64(i))
	}

	err := svc.PostAnalysis(context.Background(), &dto.PostAnalysisRequest{
		Date: "2026-08-29",
		TechnicalIndicators: []dto.TechnicalIndicatorDTO{
			{Ticker: "RELIANCE", PriceHistory: prices},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.createdIndicators, 1)

	row := repo.createdIndicators[0]
	assert.Equal(t, "RELIANCE", row.Ticker)
	assert.Greater(t, row.RSI14, 0.0)
	assert.LessOrEqual(t, row.RSI14, 100.0)
	assert.Greater(t, row.MovingAvg50, 0.0)
	assert.Greater(t, row.MACD, 0.0) // uptrend: fast MA above slow MA
	assert.Greater(t, row.BollingerUpper, row.BollingerLower)
	assert.Greater(t, row.ResistanceLevel, row.SupportLevel)
	assert.Equal(t, "2026-08-29", row.AnalysisDate.Format("2006-01-02"))
}

func TestPostAnalysisKeepsSuppliedValues(t *testing.T) {
	repo := &fakeAnalysisRepo{}
	svc := newAnalysisServiceForTest(t, repo)

	err := svc.PostAnalysis(context.Background(), &dto.PostAnalysisRequest{
		TechnicalIndicators: []dto.TechnicalIndicatorDTO{
			{
				Ticker:       "TCS",
				RSI14:        55,
				PriceHistory: []float64{100, 101, 102},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.createdIndicators, 1)

	// The supplied RSI wins over the computed one.
	assert.Equal(t, 55.0, repo.createdIndicators[0].RSI14)
}

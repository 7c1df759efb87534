package service

import (
	"context"
	"encoding/json"
	"time"

	"golang-market-insight/internal/entity"
	"golang-market-insight/internal/market/config"
	"golang-market-insight/internal/market/dto"
	"golang-market-insight/internal/market/repository"
	"golang-market-insight/pkg/common"
	"golang-market-insight/pkg/indicator"
	"golang-market-insight/pkg/logger"
	"golang-market-insight/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const latestIndicatorCount = 10

// AnalysisService serves the combined market analysis view and accepts
// manual sentiment/indicator ingest.
type AnalysisService interface {
	GetAnalysis(ctx context.Context) (*dto.AnalysisResponse, error)
	PostAnalysis(ctx context.Context, req *dto.PostAnalysisRequest) error
}

// NewAnalysisService creates a new analysis service. The Redis client may be
// nil, in which case response caching is skipped.
func NewAnalysisService(
	cfg *config.Config,
	analysisRepo repository.AnalysisRepository,
	redisClient *redis.Client,
	log *logger.Logger,
) AnalysisService {
	ttl := 5 * time.Minute
	if cfg.Market.AnalysisCacheTTL != "" {
		if parsed, err := time.ParseDuration(cfg.Market.AnalysisCacheTTL); err == nil {
			ttl = parsed
		}
	}
	return &analysisService{
		cfg:          cfg,
		analysisRepo: analysisRepo,
		redisClient:  redisClient,
		cacheTTL:     ttl,
		logger:       log,
	}
}

type analysisService struct {
	cfg          *config.Config
	analysisRepo repository.AnalysisRepository
	redisClient  *redis.Client
	cacheTTL     time.Duration
	logger       *logger.Logger
}

// GetAnalysis combines the latest sentiment reading, the newest technical
// indicators, sector performance and aggregate key levels. The response is
// cached in Redis until the next ingest.
func (s *analysisService) GetAnalysis(ctx context.Context) (*dto.AnalysisResponse, error) {
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, common.RedisKeyLatestAnalysis).Result(); err == nil {
			var resp dto.AnalysisResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	sentiment, err := s.analysisRepo.LatestSentiment(ctx)
	if err != nil {
		return nil, err
	}
	if sentiment == nil {
		return nil, nil
	}

	indicators, err := s.analysisRepo.LatestIndicators(ctx, latestIndicatorCount)
	if err != nil {
		return nil, err
	}
	sectors, err := s.analysisRepo.FindSectors(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnalysisResponse{
		Date:                sentiment.AnalysisDate.Format("2006-01-02"),
		BullishSentiment:    sentiment.BullishSentiment,
		BearishSentiment:    sentiment.BearishSentiment,
		MarketTrend:         sentiment.MarketTrend,
		FearGreedIndex:      sentiment.FearGreedIndex,
		VolatilityIndex:     sentiment.VolatilityIndex,
		TechnicalIndicators: make([]dto.TechnicalIndicatorDTO, 0, len(indicators)),
		Sectors:             make([]dto.SectorDTO, 0, len(sectors)),
		KeyLevels:           keyLevels(indicators),
	}

	for _, ti := range indicators {
		resp.TechnicalIndicators = append(resp.TechnicalIndicators, dto.TechnicalIndicatorDTO{
			Ticker:          ti.Ticker,
			RSI14:           ti.RSI14,
			MACD:            ti.MACD,
			MovingAvg50:     ti.MovingAvg50,
			MovingAvg200:    ti.MovingAvg200,
			BollingerUpper:  ti.BollingerUpper,
			BollingerLower:  ti.BollingerLower,
			SupportLevel:    ti.SupportLevel,
			ResistanceLevel: ti.ResistanceLevel,
			AnalysisDate:    ti.AnalysisDate.Format("2006-01-02"),
		})
	}
	for _, sec := range sectors {
		resp.Sectors = append(resp.Sectors, dto.SectorDTO{
			Name:         sec.SectorName,
			Performance:  sec.PerformancePercent,
			Trend:        string(sec.Trend),
			MarketCap:    sec.MarketCap,
			AnalysisDate: sec.AnalysisDate.Format("2006-01-02"),
		})
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.redisClient.Set(ctx, common.RedisKeyLatestAnalysis, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache analysis", logger.ErrorField(err))
			}
		}
	}
	return resp, nil
}

// PostAnalysis appends a sentiment reading and any supplied indicator rows.
// Indicator rows carrying a price history get their missing values computed
// from it; rows without one are stored as supplied.
func (s *analysisService) PostAnalysis(ctx context.Context, req *dto.PostAnalysisRequest) error {
	analysisDate := utils.DateNowIST()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return dto.NewValidationError("date", "must be YYYY-MM-DD")
		}
		analysisDate = parsed
	}

	sentiment := &entity.MarketSentiment{
		AnalysisDate:     analysisDate,
		BullishSentiment: 50.0,
		BearishSentiment: 50.0,
		MarketTrend:      "Neutral",
		FearGreedIndex:   50.0,
		VolatilityIndex:  "N/A",
		CreatedAt:        utils.DateNowIST(),
	}
	if req.BullishSentiment != nil {
		sentiment.BullishSentiment = *req.BullishSentiment
	}
	if req.BearishSentiment != nil {
		sentiment.BearishSentiment = *req.BearishSentiment
	}
	if req.MarketTrend != "" {
		sentiment.MarketTrend = req.MarketTrend
	}
	if req.FearGreedIndex != nil {
		sentiment.FearGreedIndex = *req.FearGreedIndex
	}
	if req.VolatilityIndex != "" {
		sentiment.VolatilityIndex = req.VolatilityIndex
	}

	indicators := make([]entity.TechnicalIndicator, 0, len(req.TechnicalIndicators))
	for _, t := range req.TechnicalIndicators {
		row := entity.TechnicalIndicator{
			Ticker:          t.Ticker,
			RSI14:           t.RSI14,
			MACD:            t.MACD,
			MovingAvg50:     t.MovingAvg50,
			MovingAvg200:    t.MovingAvg200,
			BollingerUpper:  t.BollingerUpper,
			BollingerLower:  t.BollingerLower,
			SupportLevel:    t.SupportLevel,
			ResistanceLevel: t.ResistanceLevel,
			AnalysisDate:    analysisDate,
			CreatedAt:       utils.DateNowIST(),
		}
		if len(t.PriceHistory) > 0 {
			fillFromPriceHistory(&row, t.PriceHistory, s.supportVolatility())
		}
		indicators = append(indicators, row)
	}

	if err := s.analysisRepo.CreateAnalysis(ctx, sentiment, indicators); err != nil {
		return err
	}

	if s.redisClient != nil {
		if err := s.redisClient.Del(ctx, common.RedisKeyLatestAnalysis).Err(); err != nil {
			s.logger.Warn("Failed to invalidate analysis cache", logger.ErrorField(err))
		}
	}
	return nil
}

func (s *analysisService) supportVolatility() float64 {
	if s.cfg.Market.SupportVolatility > 0 {
		return s.cfg.Market.SupportVolatility
	}
	return 0.01
}

// fillFromPriceHistory computes any indicator value the caller left at zero
// from the supplied price series.
func fillFromPriceHistory(row *entity.TechnicalIndicator, prices []float64, volatility float64) {
	last := len(prices) - 1

	if row.RSI14 == 0 {
		row.RSI14 = indicator.RSI(prices, 14)[last]
	}
	if row.MovingAvg50 == 0 {
		row.MovingAvg50 = indicator.MovingAverage(prices, 50)[last]
	}
	if row.MovingAvg200 == 0 {
		row.MovingAvg200 = indicator.MovingAverage(prices, 200)[last]
	}
	if row.MACD == 0 {
		fast := indicator.MovingAverage(prices, 12)[last]
		slow := indicator.MovingAverage(prices, 26)[last]
		row.MACD = fast - slow
	}
	if row.BollingerUpper == 0 || row.BollingerLower == 0 {
		upper, lower := indicator.Bollinger(prices, 20, 2)
		if row.BollingerUpper == 0 {
			row.BollingerUpper = upper[last]
		}
		if row.BollingerLower == 0 {
			row.BollingerLower = lower[last]
		}
	}
	if row.SupportLevel == 0 || row.ResistanceLevel == 0 {
		levels := indicator.SupportResistance(prices[last], volatility)
		if row.SupportLevel == 0 {
			row.SupportLevel = levels.Support1
		}
		if row.ResistanceLevel == 0 {
			row.ResistanceLevel = levels.Resistance1
		}
	}
}

// keyLevels aggregates the lowest support and highest resistance across the
// latest indicators. Zero values are treated as absent.
func keyLevels(indicators []entity.TechnicalIndicator) dto.KeyLevels {
	var levels dto.KeyLevels
	for _, ti := range indicators {
		if ti.SupportLevel != 0 {
			v := utils.Round2(ti.SupportLevel)
			if levels.Support == nil || v < *levels.Support {
				levels.Support = &v
			}
		}
		if ti.ResistanceLevel != 0 {
			v := utils.Round2(ti.ResistanceLevel)
			if levels.Resistance == nil || v > *levels.Resistance {
				levels.Resistance = &v
			}
		}
	}
	return levels
}

package service

import (
	"context"
	"strings"
	"time"

	"golang-market-insight/internal/entity"
	"golang-market-insight/internal/market/dto"
	"golang-market-insight/internal/market/repository"
	"golang-market-insight/pkg/logger"
	"golang-market-insight/pkg/utils"

	"github.com/patrickmn/go-cache"
)

const indicesCacheKey = "market_indices"

// MarketDataService serves market indices and runs the snapshot
// reconciliation cycle.
type MarketDataService interface {
	GetIndices(ctx context.Context) ([]dto.IndexResponse, error)
	UpdateMarketData(ctx context.Context) error
}

// NewMarketDataService creates a new market data service.
func NewMarketDataService(
	marketDataRepo repository.MarketDataRepository,
	holdingRepo repository.HoldingRepository,
	source repository.MarketDataSource,
	log *logger.Logger,
) MarketDataService {
	return &marketDataService{
		marketDataRepo: marketDataRepo,
		holdingRepo:    holdingRepo,
		source:         source,
		logger:         log,
		inmemoryCache:  cache.New(1*time.Minute, 5*time.Minute),
	}
}

type marketDataService struct {
	marketDataRepo repository.MarketDataRepository
	holdingRepo    repository.HoldingRepository
	source         repository.MarketDataSource
	logger         *logger.Logger
	inmemoryCache  *cache.Cache
}

// GetIndices lists all market indices with the derived direction flag.
func (s *marketDataService) GetIndices(ctx context.Context) ([]dto.IndexResponse, error) {
	if cached, found := s.inmemoryCache.Get(indicesCacheKey); found {
		return cached.([]dto.IndexResponse), nil
	}

	indices, err := s.marketDataRepo.FindIndices(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.IndexResponse, 0, len(indices))
	for _, idx := range indices {
		out = append(out, dto.IndexResponse{
			Name:          idx.Name,
			CurrentValue:  idx.CurrentValue,
			ChangeValue:   idx.ChangeValue,
			ChangePercent: idx.ChangePercent,
			IsPositive:    idx.ChangeValue >= 0,
		})
	}
	s.inmemoryCache.Set(indicesCacheKey, out, cache.DefaultExpiration)
	return out, nil
}

// UpdateMarketData runs one snapshot reconciliation cycle: fetch the
// market-wide snapshot, merge indices and sectors into persisted state by
// case-insensitive name, append the sentiment reading, refresh portfolio
// prices, and commit everything as one atomic unit.
func (s *marketDataService) UpdateMarketData(ctx context.Context) error {
	snapshot, err := s.source.FetchMarketSnapshot(ctx)
	if err != nil {
		return err
	}

	existingIndices, err := s.marketDataRepo.FindIndices(ctx)
	if err != nil {
		return err
	}
	existingSectors, err := s.marketDataRepo.FindSectors(ctx)
	if err != nil {
		return err
	}

	now := utils.DateNowIST()
	batch := reconcileSnapshot(snapshot, existingIndices, existingSectors, now)

	holdings, err := s.holdingRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	tickers := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if h.Ticker != "" {
			tickers = append(tickers, h.Ticker)
		}
	}
	if len(tickers) > 0 {
		prices, err := s.source.FetchStockPrices(ctx, tickers)
		if err != nil {
			return err
		}
		batch.Holdings = RefreshHoldingPrices(holdings, prices, now)
	}

	if err := s.marketDataRepo.ApplySnapshot(ctx, batch); err != nil {
		return err
	}

	s.inmemoryCache.Delete(indicesCacheKey)
	s.logger.Info("Market data updated",
		logger.IntField("indices", len(batch.Indices)),
		logger.IntField("sectors", len(batch.Sectors)),
		logger.IntField("holdings_refreshed", len(batch.Holdings)),
	)
	return nil
}

// reconcileSnapshot merges a fetched snapshot into the persisted state,
// matching indices and sectors by case-insensitive name. Matched rows are
// overwritten in place, unmatched ones become inserts; nothing is deleted.
// The sentiment reading is always appended.
func reconcileSnapshot(
	snapshot *dto.MarketSnapshot,
	existingIndices []entity.MarketIndex,
	existingSectors []entity.SectorPerformance,
	now time.Time,
) *repository.SnapshotBatch {
	batch := &repository.SnapshotBatch{}

	for _, idx := range snapshot.Indices {
		if strings.TrimSpace(idx.Name) == "" {
			continue
		}
		merged := entity.MarketIndex{
			Name:          idx.Name,
			CurrentValue:  idx.CurrentValue,
			ChangeValue:   idx.ChangeValue,
			ChangePercent: idx.ChangePercent,
			LastUpdated:   now,
			CreatedAt:     now,
		}
		for _, existing := range existingIndices {
			if strings.EqualFold(existing.Name, idx.Name) {
				merged.ID = existing.ID
				merged.Name = existing.Name
				merged.CreatedAt = existing.CreatedAt
				break
			}
		}
		batch.Indices = append(batch.Indices, merged)
	}

	for _, sec := range snapshot.Sectors {
		if strings.TrimSpace(sec.SectorName) == "" {
			continue
		}
		merged := entity.SectorPerformance{
			SectorName:         sec.SectorName,
			PerformancePercent: sec.PerformancePercent,
			Trend:              entity.SectorTrend(sec.Trend),
			MarketCap:          sec.MarketCap,
			AnalysisDate:       now,
			CreatedAt:          now,
		}
		for _, existing := range existingSectors {
			if strings.EqualFold(existing.SectorName, sec.SectorName) {
				merged.ID = existing.ID
				merged.SectorName = existing.SectorName
				merged.CreatedAt = existing.CreatedAt
				break
			}
		}
		batch.Sectors = append(batch.Sectors, merged)
	}

	batch.Sentiment = &entity.MarketSentiment{
		AnalysisDate:     now,
		BullishSentiment: snapshot.Sentiment.BullishSentiment,
		BearishSentiment: snapshot.Sentiment.BearishSentiment,
		MarketTrend:      snapshot.Sentiment.MarketTrend,
		FearGreedIndex:   snapshot.Sentiment.FearGreedIndex,
		VolatilityIndex:  string(snapshot.Sentiment.VolatilityIndex),
		CreatedAt:        now,
	}

	return batch
}

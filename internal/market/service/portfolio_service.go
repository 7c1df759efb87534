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
)

// HoldingMetrics are the derived valuation figures for one holding.
type HoldingMetrics struct {
	InvestedAmount float64
	ChangeValue    float64
	ChangePercent  float64
}

// ComputeHoldingMetrics derives invested amount, change value and change
// percent for a position. Any missing input degrades every output to zero;
// the percent denominator is never divided by when it is zero.
func ComputeHoldingMetrics(buyPrice, currentPrice *float64, volume *int64) HoldingMetrics {
	if buyPrice == nil || currentPrice == nil || volume == nil {
		return HoldingMetrics{}
	}
	invested := *buyPrice * float64(*volume)
	change := (*currentPrice - *buyPrice) * float64(*volume)
	var percent float64
	if invested != 0 {
		percent = utils.Round2(change / invested * 100)
	}
	return HoldingMetrics{
		InvestedAmount: invested,
		ChangeValue:    change,
		ChangePercent:  percent,
	}
}

// RefreshHoldingPrices applies a batch of refreshed prices to holdings and
// returns only the holdings that changed. Derived fields are recomputed when
// buy price and volume are both present; otherwise the stored values are kept
// as a fallback. LastUpdated is stamped for every holding that received a
// price, whether or not recomputation happened.
func RefreshHoldingPrices(holdings []entity.Holding, prices map[string]float64, now time.Time) []entity.Holding {
	var updated []entity.Holding
	for _, h := range holdings {
		price, ok := prices[h.Ticker]
		if !ok {
			continue
		}
		p := price
		h.CurrentPrice = &p
		if h.BuyPrice != nil && h.Volume != nil {
			m := ComputeHoldingMetrics(h.BuyPrice, h.CurrentPrice, h.Volume)
			h.ChangeValue = m.ChangeValue
			h.ChangePercent = m.ChangePercent
		}
		h.LastUpdated = now
		updated = append(updated, h)
	}
	return updated
}

// PortfolioService values and mutates the user's portfolio.
type PortfolioService interface {
	GetPortfolio(ctx context.Context) (*dto.PortfolioResponse, error)
	AddHolding(ctx context.Context, req *dto.AddHoldingRequest) (*entity.Holding, error)
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(holdingRepo repository.HoldingRepository, log *logger.Logger) PortfolioService {
	return &portfolioService{
		holdingRepo: holdingRepo,
		logger:      log,
	}
}

type portfolioService struct {
	holdingRepo repository.HoldingRepository
	logger      *logger.Logger
}

// GetPortfolio values every holding and aggregates totals. Per-holding
// derived fields are recomputed from stored prices rather than trusted;
// totals are accumulated unrounded and rounded at the response boundary.
func (s *portfolioService) GetPortfolio(ctx context.Context) (*dto.PortfolioResponse, error) {
	holdings, err := s.holdingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.PortfolioResponse{Data: make([]dto.HoldingResponse, 0, len(holdings))}
	var totalInvested, totalCurrent float64

	for _, h := range holdings {
		changeValue := h.ChangeValue
		changePercent := h.ChangePercent

		var invested float64
		if h.BuyPrice != nil && h.Volume != nil {
			invested = *h.BuyPrice * float64(*h.Volume)
		}
		if h.BuyPrice != nil && h.CurrentPrice != nil && h.Volume != nil {
			m := ComputeHoldingMetrics(h.BuyPrice, h.CurrentPrice, h.Volume)
			changeValue = m.ChangeValue
			changePercent = m.ChangePercent
		}
		totalInvested += invested
		if h.CurrentPrice != nil && h.Volume != nil {
			totalCurrent += *h.CurrentPrice * float64(*h.Volume)
		}

		out := dto.HoldingResponse{
			ID:             h.ID,
			Ticker:         h.Ticker,
			CompanyName:    h.CompanyName,
			Sector:         h.Sector,
			IndexGroup:     h.IndexGroup,
			InvestedAmount: utils.Round2(invested),
			ChangeValue:    utils.Round2(changeValue),
			ChangePercent:  utils.Round2(changePercent),
			IsPositive:     changeValue > 0,
			Volume:         h.Volume,
			MarketCap:      h.MarketCap,
		}
		if h.BuyPrice != nil {
			out.BuyPrice = utils.Round2(*h.BuyPrice)
		}
		if h.CurrentPrice != nil {
			out.CurrentPrice = utils.Round2(*h.CurrentPrice)
		}
		if !h.LastUpdated.IsZero() {
			out.LastUpdated = h.LastUpdated.Format("2006-01-02")
		}
		resp.Data = append(resp.Data, out)
	}

	totalChange := totalCurrent - totalInvested
	resp.TotalInvested = utils.Round2(totalInvested)
	resp.TotalCurrent = utils.Round2(totalCurrent)
	resp.TotalChange = utils.Round2(totalChange)
	if totalInvested != 0 {
		resp.TotalChangePercent = utils.Round2(totalChange / totalInvested * 100)
	}
	return resp, nil
}

// AddHolding upserts a position by ticker. On update, incoming zero values
// are treated the same as absent ones and never overwrite stored data; this
// matches the behavior existing clients rely on.
func (s *portfolioService) AddHolding(ctx context.Context, req *dto.AddHoldingRequest) (*entity.Holding, error) {
	if strings.TrimSpace(req.Ticker) == "" {
		return nil, dto.NewValidationError("ticker", "ticker is required")
	}

	metrics := ComputeHoldingMetrics(req.BuyPrice, req.CurrentPrice, req.Volume)
	changeValue := metrics.ChangeValue
	changePercent := metrics.ChangePercent
	if req.ChangeValue != nil && *req.ChangeValue != 0 {
		changeValue = *req.ChangeValue
	}
	if req.ChangePercent != nil && *req.ChangePercent != 0 {
		changePercent = *req.ChangePercent
	}

	now := utils.DateNowIST()

	existing, err := s.holdingRepo.FindByTicker(ctx, req.Ticker)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		holding := &entity.Holding{
			Ticker:        req.Ticker,
			CompanyName:   req.CompanyName,
			Sector:        req.Sector,
			IndexGroup:    req.IndexGroup,
			BuyPrice:      req.BuyPrice,
			CurrentPrice:  req.CurrentPrice,
			ChangeValue:   changeValue,
			ChangePercent: changePercent,
			Volume:        req.Volume,
			MarketCap:     floatOrZero(req.MarketCap),
			LastUpdated:   now,
			CreatedAt:     now,
		}
		if err := s.holdingRepo.Save(ctx, holding); err != nil {
			return nil, err
		}
		s.logger.Info("Holding created", logger.StringField("ticker", holding.Ticker))
		return holding, nil
	}

	if req.CompanyName != "" {
		existing.CompanyName = req.CompanyName
	}
	if req.Sector != "" {
		existing.Sector = req.Sector
	}
	if req.IndexGroup != "" {
		existing.IndexGroup = req.IndexGroup
	}
	if present(req.BuyPrice) {
		existing.BuyPrice = req.BuyPrice
	}
	if present(req.CurrentPrice) {
		existing.CurrentPrice = req.CurrentPrice
	}
	if changeValue != 0 {
		existing.ChangeValue = utils.Round2(changeValue)
	}
	if changePercent != 0 {
		existing.ChangePercent = utils.Round2(changePercent)
	}
	if req.Volume != nil && *req.Volume != 0 {
		existing.Volume = req.Volume
	}
	if present(req.MarketCap) {
		existing.MarketCap = *req.MarketCap
	}
	existing.LastUpdated = now

	if err := s.holdingRepo.Save(ctx, existing); err != nil {
		return nil, err
	}
	s.logger.Info("Holding updated", logger.StringField("ticker", existing.Ticker))
	return existing, nil
}

func present(v *float64) bool {
	return v != nil && *v != 0
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

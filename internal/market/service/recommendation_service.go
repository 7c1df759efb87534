package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"golang-market-insight/internal/entity"
	"golang-market-insight/internal/market/config"
	"golang-market-insight/internal/market/dto"
	"golang-market-insight/internal/market/repository"
	"golang-market-insight/pkg/common"
	"golang-market-insight/pkg/logger"
	"golang-market-insight/pkg/telegram"
	"golang-market-insight/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RecommendationService serves stored recommendations and runs the
// recommendation reconciliation cycle.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, filter repository.RecommendationFilter) ([]dto.RecommendationResponse, error)
	GenerateRecommendations(ctx context.Context, alertTime string) (int, error)
}

// NewRecommendationService creates a new recommendation service. The Telegram
// notifier may be nil when push delivery is disabled.
func NewRecommendationService(
	cfg *config.Config,
	recRepo repository.RecommendationRepository,
	source repository.MarketDataSource,
	redisClient *redis.Client,
	notifier telegram.Notifier,
	log *logger.Logger,
) RecommendationService {
	return &recommendationService{
		cfg:         cfg,
		recRepo:     recRepo,
		source:      source,
		redisClient: redisClient,
		notifier:    notifier,
		logger:      log,
	}
}

type recommendationService struct {
	cfg         *config.Config
	recRepo     repository.RecommendationRepository
	source      repository.MarketDataSource
	redisClient *redis.Client
	notifier    telegram.Notifier
	logger      *logger.Logger
}

// GetRecommendations lists stored recommendations, newest first.
func (s *recommendationService) GetRecommendations(ctx context.Context, filter repository.RecommendationFilter) ([]dto.RecommendationResponse, error) {
	if filter.Limit <= 0 && s.cfg.Market.RecommendationsMax > 0 {
		filter.Limit = s.cfg.Market.RecommendationsMax
	}
	recs, err := s.recRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.RecommendationResponse{
			ID:              r.ID,
			Ticker:          r.Ticker,
			CompanyName:     r.CompanyName,
			Sector:          r.Sector,
			CurrentPrice:    r.CurrentPrice,
			TargetPrice:     r.TargetPrice,
			Recommendation:  string(r.Action),
			ConfidenceScore: r.ConfidenceScore,
			Timeframe:       r.Timeframe,
			Reasons:         r.Reasons,
			AlertTime:       r.AlertTime,
		})
	}
	return out, nil
}

// GenerateRecommendations runs one reconciliation cycle for the given alert
// slot: fetch a fresh batch, merge it into today's persisted rows by
// (ticker, slot, date), backfill missing reasoning for new rows, and commit
// every upsert plus the cycle's summary notification atomically. Reapplying
// the same batch is idempotent. Returns the number of newly created rows.
func (s *recommendationService) GenerateRecommendations(ctx context.Context, alertTime string) (int, error) {
	batch, err := s.source.FetchStockRecommendations(ctx)
	if err != nil {
		return 0, err
	}

	today := utils.DateNowIST()
	existing, err := s.recRepo.FindForDate(ctx, alertTime, today)
	if err != nil {
		return 0, err
	}

	byTicker := make(map[string]*entity.StockRecommendation, len(existing))
	for i := range existing {
		byTicker[strings.ToUpper(existing[i].Ticker)] = &existing[i]
	}

	var upserts []*entity.StockRecommendation
	queued := make(map[string]bool)
	created := 0

	for _, pick := range batch.Stocks {
		if strings.TrimSpace(pick.Ticker) == "" {
			s.logger.Warn("Skipping recommendation without ticker")
			continue
		}

		key := strings.ToUpper(pick.Ticker)
		confidence := normalizeConfidence(pick.ConfidenceScore)
		action := entity.RecommendationAction(pick.Recommendation)

		if rec, ok := byTicker[key]; ok {
			if pick.CompanyName != "" {
				rec.CompanyName = pick.CompanyName
			}
			if pick.Sector != "" {
				rec.Sector = pick.Sector
			}
			rec.Action = action
			rec.ConfidenceScore = confidence
			rec.Timeframe = pick.Timeframe
			if pick.Reasons != "" {
				rec.Reasons = pick.Reasons
			}
			rec.CurrentPrice = pick.CurrentPrice
			rec.TargetPrice = pick.TargetPrice
			rec.RecommendationDate = today
			rec.AlertTime = alertTime
			if !queued[key] {
				upserts = append(upserts, rec)
				queued[key] = true
			}
			continue
		}

		created++
		timeframe := pick.Timeframe
		if timeframe == "" {
			timeframe = synthesizeTimeframe(alertTime, string(action), pick.ConfidenceScore)
		}
		reasons := pick.Reasons
		if reasons == "" {
			prompt := repository.BuildReasoningPrompt(string(action), pick.Ticker, pick.ConfidenceScore, timeframe, pick.Sector)
			reasons = s.source.GenerateReasoning(ctx, prompt)
		}
		sector := pick.Sector
		if sector == "" {
			sector = "Unknown"
		}

		rec := &entity.StockRecommendation{
			Ticker:             pick.Ticker,
			CompanyName:        pick.CompanyName,
			Sector:             sector,
			CurrentPrice:       pick.CurrentPrice,
			TargetPrice:        pick.TargetPrice,
			Action:             action,
			ConfidenceScore:    confidence,
			Timeframe:          timeframe,
			Reasons:            reasons,
			AlertTime:          alertTime,
			RecommendationDate: today,
			IsActive:           true,
			CreatedAt:          today,
		}
		upserts = append(upserts, rec)
		// A batch may repeat a ticker in any casing; register the new row so
		// later occurrences fold into it instead of inserting a second row
		// with the same natural key.
		byTicker[key] = rec
		queued[key] = true
	}

	// The summary is recorded even when nothing was created, as an audit
	// trail of the cycle having run.
	notification := &entity.Notification{
		UserID:           s.defaultUserID(),
		NotificationType: common.NotificationTypeStockRecommendation,
		Title:            fmt.Sprintf("New %s recommendations", alertTime),
		Message:          fmt.Sprintf("Alert: %d new stock recommendations available. Check them out!", created),
		SentAt:           utils.TimeNowIST(),
		CreatedAt:        today,
	}

	if err := s.recRepo.ApplyBatch(ctx, upserts, notification); err != nil {
		return 0, err
	}

	s.publishCycleEvent(ctx, alertTime, created)

	s.logger.Info("Recommendation cycle completed",
		logger.StringField("alert_time", alertTime),
		logger.IntField("created", created),
		logger.IntField("batch_size", len(batch.Stocks)),
	)
	return created, nil
}

// publishCycleEvent emits the cycle summary to the Redis stream and, when
// configured, to Telegram. Both are best-effort delivery after commit and
// never fail the cycle.
func (s *recommendationService) publishCycleEvent(ctx context.Context, alertTime string, created int) {
	if s.redisClient != nil {
		err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
			Stream: common.RedisStreamRecommendationEvents,
			MaxLen: s.cfg.Redis.StreamMaxLen,
			Approx: true,
			Values: map[string]interface{}{
				"alert_time": alertTime,
				"created":    created,
			},
		}).Err()
		if err != nil {
			s.logger.Warn("Failed to publish recommendation event", logger.ErrorField(err))
		}
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("*%s recommendations*: %d new picks available.", alertTime, created)
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Warn("Failed to send telegram notification", logger.ErrorField(err))
		}
	}
}

func (s *recommendationService) defaultUserID() string {
	if s.cfg.Market.DefaultUserID != "" {
		return s.cfg.Market.DefaultUserID
	}
	return common.DefaultUserID
}

// normalizeConfidence scales a 0-1 source confidence onto the stored 0-100
// scale. Out-of-range source values are clamped before scaling so an already
// scaled value cannot be silently double-scaled.
func normalizeConfidence(source float64) float64 {
	if source < 0 {
		source = 0
	}
	if source > 1 {
		source = 1
	}
	return source * 100
}

// synthesizeTimeframe derives a plausible holding period when the source
// omits one. Morning alerts are intraday-oriented, high-confidence buys get
// longer horizons, and sells stay short.
func synthesizeTimeframe(alertTime, action string, confidence float64) string {
	pick := func(options ...string) string {
		return options[rand.Intn(len(options))]
	}

	if alertTime == common.AlertSlotMorning {
		return pick("1-3 Days", "1 Week")
	}

	switch action {
	case string(entity.ActionBuy):
		switch {
		case confidence > 0.85:
			return pick("6-12 Months", "1 Year")
		case confidence > 0.75:
			return pick("1-3 Months", "3-6 Months")
		default:
			return pick("1-3 Weeks", "1-3 Months")
		}
	case string(entity.ActionSell):
		return pick("1-3 Days", "1 Week", "1-2 Weeks")
	default:
		return pick("2-4 Weeks", "1-3 Months")
	}
}

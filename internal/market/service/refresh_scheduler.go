package service

import (
	"context"
	"time"

	"golang-market-insight/internal/market/config"
	"golang-market-insight/pkg/logger"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler runs the reconciliation cycles on their configured cron
// schedules: one snapshot refresh plus one recommendation cycle per alert
// slot. Manual triggering stays available through the real-time-update
// endpoint.
type RefreshScheduler struct {
	cfg       *config.Config
	marketSvc MarketDataService
	recSvc    RecommendationService
	logger    *logger.Logger
	cron      *cron.Cron
}

// NewRefreshScheduler creates a scheduler for the configured cycles.
func NewRefreshScheduler(
	cfg *config.Config,
	marketSvc MarketDataService,
	recSvc RecommendationService,
	log *logger.Logger,
) *RefreshScheduler {
	return &RefreshScheduler{
		cfg:       cfg,
		marketSvc: marketSvc,
		recSvc:    recSvc,
		logger:    log,
		cron:      cron.New(),
	}
}

// Start registers the configured entries and starts the cron runner. It
// returns an error when a cron expression cannot be parsed.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	if expr := s.cfg.Market.SnapshotCron; expr != "" {
		_, err := s.cron.AddFunc(expr, func() {
			cycleCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()
			if err := s.marketSvc.UpdateMarketData(cycleCtx); err != nil {
				s.logger.Error("Scheduled market data update failed", logger.ErrorField(err))
			}
		})
		if err != nil {
			return err
		}
	}

	for _, schedule := range s.cfg.Market.AlertSchedules {
		alertTime := schedule.AlertTime
		_, err := s.cron.AddFunc(schedule.CronExpression, func() {
			cycleCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()
			created, err := s.recSvc.GenerateRecommendations(cycleCtx, alertTime)
			if err != nil {
				s.logger.Error("Scheduled recommendation cycle failed",
					logger.ErrorField(err),
					logger.StringField("alert_time", alertTime),
				)
				return
			}
			s.logger.Info("Scheduled recommendation cycle finished",
				logger.StringField("alert_time", alertTime),
				logger.IntField("created", created),
			)
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("Refresh scheduler started",
		logger.IntField("alert_schedules", len(s.cfg.Market.AlertSchedules)),
	)
	return nil
}

// Stop stops the cron runner and waits for running jobs to finish.
func (s *RefreshScheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
}

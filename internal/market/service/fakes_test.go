package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang-market-insight/internal/entity"
	"golang-market-insight/internal/market/dto"
	"golang-market-insight/internal/market/repository"
	"golang-market-insight/pkg/logger"

	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

type fakeHoldingRepo struct {
	holdings []entity.Holding
	saved    []*entity.Holding
	findErr  error
}

func (f *fakeHoldingRepo) FindAll(ctx context.Context) ([]entity.Holding, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.holdings, nil
}

func (f *fakeHoldingRepo) FindByTicker(ctx context.Context, ticker string) (*entity.Holding, error) {
	for i := range f.holdings {
		if f.holdings[i].Ticker == ticker {
			h := f.holdings[i]
			return &h, nil
		}
	}
	return nil, nil
}

func (f *fakeHoldingRepo) Save(ctx context.Context, holding *entity.Holding) error {
	f.saved = append(f.saved, holding)
	return nil
}

type fakeMarketDataRepo struct {
	indices []entity.MarketIndex
	sectors []entity.SectorPerformance
	applied *repository.SnapshotBatch
}

func (f *fakeMarketDataRepo) FindIndices(ctx context.Context) ([]entity.MarketIndex, error) {
	return f.indices, nil
}

func (f *fakeMarketDataRepo) FindSectors(ctx context.Context) ([]entity.SectorPerformance, error) {
	return f.sectors, nil
}

func (f *fakeMarketDataRepo) ApplySnapshot(ctx context.Context, batch *repository.SnapshotBatch) error {
	f.applied = batch
	return nil
}

type fakeRecommendationRepo struct {
	rows          map[string]*entity.StockRecommendation
	notifications []*entity.Notification
	nextID        uint
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{rows: make(map[string]*entity.StockRecommendation)}
}

func (f *fakeRecommendationRepo) key(ticker, alertTime string, date time.Time) string {
	return strings.ToUpper(ticker) + "|" + alertTime + "|" + date.Format("2006-01-02")
}

func (f *fakeRecommendationRepo) FindForDate(ctx context.Context, alertTime string, date time.Time) ([]entity.StockRecommendation, error) {
	var out []entity.StockRecommendation
	for _, rec := range f.rows {
		if rec.AlertTime == alertTime && rec.RecommendationDate.Equal(date) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeRecommendationRepo) Find(ctx context.Context, filter repository.RecommendationFilter) ([]entity.StockRecommendation, error) {
	var out []entity.StockRecommendation
	for _, rec := range f.rows {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeRecommendationRepo) ApplyBatch(ctx context.Context, recs []*entity.StockRecommendation, notification *entity.Notification) error {
	for _, rec := range recs {
		if rec.ID == 0 {
			f.nextID++
			rec.ID = f.nextID
		}
		stored := *rec
		f.rows[f.key(rec.Ticker, rec.AlertTime, rec.RecommendationDate)] = &stored
	}
	if notification != nil {
		f.notifications = append(f.notifications, notification)
	}
	return nil
}

type fakeMarketDataSource struct {
	snapshot       *dto.MarketSnapshot
	snapshotErr    error
	batch          *dto.RecommendationBatch
	batchErr       error
	prices         map[string]float64
	pricesErr      error
	reasoning      string
	reasoningCalls int
}

func (f *fakeMarketDataSource) FetchMarketSnapshot(ctx context.Context) (*dto.MarketSnapshot, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	return f.snapshot, nil
}

func (f *fakeMarketDataSource) FetchStockRecommendations(ctx context.Context) (*dto.RecommendationBatch, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return f.batch, nil
}

func (f *fakeMarketDataSource) FetchStockPrices(ctx context.Context, tickers []string) (map[string]float64, error) {
	if f.pricesErr != nil {
		return nil, f.pricesErr
	}
	return f.prices, nil
}

func (f *fakeMarketDataSource) GenerateReasoning(ctx context.Context, prompt string) string {
	f.reasoningCalls++
	return f.reasoning
}

type fakeNotificationRepo struct {
	notifications []entity.Notification
	prefs         map[string]*entity.UserPreferences
	created       []*entity.Notification
	updated       []*entity.Notification
	savedPrefs    []*entity.UserPreferences
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{prefs: make(map[string]*entity.UserPreferences)}
}

func (f *fakeNotificationRepo) FindByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, n := range f.notifications {
		if n.UserID == userID && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) FindByID(ctx context.Context, id uint) (*entity.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			n := f.notifications[i]
			return &n, nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	f.created = append(f.created, n)
	n.ID = uint(len(f.notifications) + 1)
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationRepo) Update(ctx context.Context, n *entity.Notification) error {
	f.updated = append(f.updated, n)
	for i := range f.notifications {
		if f.notifications[i].ID == n.ID {
			f.notifications[i] = *n
		}
	}
	return nil
}

func (f *fakeNotificationRepo) FindOrCreatePreferences(ctx context.Context, userID string) (*entity.UserPreferences, error) {
	if p, ok := f.prefs[userID]; ok {
		return p, nil
	}
	p := &entity.UserPreferences{
		UserID:                    userID,
		MorningAlertsEnabled:      true,
		AfternoonAlertsEnabled:    true,
		PushNotificationsEnabled:  true,
		EmailNotificationsEnabled: true,
	}
	f.prefs[userID] = p
	return p, nil
}

func (f *fakeNotificationRepo) SavePreferences(ctx context.Context, prefs *entity.UserPreferences) error {
	f.savedPrefs = append(f.savedPrefs, prefs)
	f.prefs[prefs.UserID] = prefs
	return nil
}

type fakeAnalysisRepo struct {
	sentiment  *entity.MarketSentiment
	indicators []entity.TechnicalIndicator
	sectors    []entity.SectorPerformance

	createdSentiment  *entity.MarketSentiment
	createdIndicators []entity.TechnicalIndicator
}

func (f *fakeAnalysisRepo) LatestSentiment(ctx context.Context) (*entity.MarketSentiment, error) {
	return f.sentiment, nil
}

func (f *fakeAnalysisRepo) LatestIndicators(ctx context.Context, limit int) ([]entity.TechnicalIndicator, error) {
	return f.indicators, nil
}

func (f *fakeAnalysisRepo) FindSectors(ctx context.Context) ([]entity.SectorPerformance, error) {
	return f.sectors, nil
}

func (f *fakeAnalysisRepo) CreateAnalysis(ctx context.Context, sentiment *entity.MarketSentiment, indicators []entity.TechnicalIndicator) error {
	f.createdSentiment = sentiment
	f.createdIndicators = indicators
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func int64Ptr(v int64) *int64 { return &v }

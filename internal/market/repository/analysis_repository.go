package repository

import (
	"context"
	"errors"

	"golang-market-insight/internal/entity"

	"gorm.io/gorm"
)

// AnalysisRepository defines data access for sentiment readings, technical
// indicators and sector performance used by the analysis view.
type AnalysisRepository interface {
	LatestSentiment(ctx context.Context) (*entity.MarketSentiment, error)
	LatestIndicators(ctx context.Context, limit int) ([]entity.TechnicalIndicator, error)
	FindSectors(ctx context.Context) ([]entity.SectorPerformance, error)
	CreateAnalysis(ctx context.Context, sentiment *entity.MarketSentiment, indicators []entity.TechnicalIndicator) error
}

// NewAnalysisRepository creates a new GORM-based analysis repository.
func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

type analysisRepository struct {
	db *gorm.DB
}

// LatestSentiment retrieves the most recent sentiment reading, or nil when
// none exists yet.
func (r *analysisRepository) LatestSentiment(ctx context.Context) (*entity.MarketSentiment, error) {
	var sentiment entity.MarketSentiment
	err := r.db.WithContext(ctx).Order("id DESC").First(&sentiment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sentiment, nil
}

// LatestIndicators retrieves the newest indicator snapshots.
func (r *analysisRepository) LatestIndicators(ctx context.Context, limit int) ([]entity.TechnicalIndicator, error) {
	var indicators []entity.TechnicalIndicator
	err := r.db.WithContext(ctx).
		Order("analysis_date DESC, id DESC").
		Limit(limit).
		Find(&indicators).Error
	if err != nil {
		return nil, err
	}
	return indicators, nil
}

// FindSectors retrieves all sector performance rows, newest analysis first.
func (r *analysisRepository) FindSectors(ctx context.Context) ([]entity.SectorPerformance, error) {
	var sectors []entity.SectorPerformance
	if err := r.db.WithContext(ctx).Order("analysis_date DESC").Find(&sectors).Error; err != nil {
		return nil, err
	}
	return sectors, nil
}

// CreateAnalysis appends a sentiment reading and its indicator rows in one
// transaction.
func (r *analysisRepository) CreateAnalysis(ctx context.Context, sentiment *entity.MarketSentiment, indicators []entity.TechnicalIndicator) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if sentiment != nil {
			if err := tx.Create(sentiment).Error; err != nil {
				return err
			}
		}
		if len(indicators) > 0 {
			if err := tx.Create(&indicators).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

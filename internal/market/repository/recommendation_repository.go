package repository

import (
	"context"
	"time"

	"golang-market-insight/internal/entity"

	"gorm.io/gorm"
)

// RecommendationFilter narrows recommendation listings.
type RecommendationFilter struct {
	AlertTime string
	Date      *time.Time
	Limit     int
}

// RecommendationRepository defines data access for stock recommendations.
type RecommendationRepository interface {
	FindForDate(ctx context.Context, alertTime string, date time.Time) ([]entity.StockRecommendation, error)
	Find(ctx context.Context, filter RecommendationFilter) ([]entity.StockRecommendation, error)
	ApplyBatch(ctx context.Context, recs []*entity.StockRecommendation, notification *entity.Notification) error
}

// NewRecommendationRepository creates a new GORM-based recommendation repository.
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

type recommendationRepository struct {
	db *gorm.DB
}

// FindForDate retrieves the recommendations already persisted for one alert
// slot and date, for natural-key matching by the reconciler.
func (r *recommendationRepository) FindForDate(ctx context.Context, alertTime string, date time.Time) ([]entity.StockRecommendation, error) {
	var recs []entity.StockRecommendation
	err := r.db.WithContext(ctx).
		Where("alert_time = ? AND recommendation_date = ?", alertTime, date).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Find retrieves recommendations matching the filter, newest first.
func (r *recommendationRepository) Find(ctx context.Context, filter RecommendationFilter) ([]entity.StockRecommendation, error) {
	q := r.db.WithContext(ctx).Model(&entity.StockRecommendation{})
	if filter.AlertTime != "" {
		q = q.Where("alert_time = ?", filter.AlertTime)
	}
	if filter.Date != nil {
		q = q.Where("recommendation_date = ?", *filter.Date)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var recs []entity.StockRecommendation
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// ApplyBatch commits one reconciliation cycle atomically: every row upsert
// plus the cycle's summary notification, or nothing.
func (r *recommendationRepository) ApplyBatch(ctx context.Context, recs []*entity.StockRecommendation, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range recs {
			if err := tx.Save(rec).Error; err != nil {
				return err
			}
		}
		if notification != nil {
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

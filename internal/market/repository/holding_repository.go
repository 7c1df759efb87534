package repository

import (
	"context"
	"errors"

	"golang-market-insight/internal/entity"

	"gorm.io/gorm"
)

// HoldingRepository defines data access for portfolio holdings.
type HoldingRepository interface {
	FindAll(ctx context.Context) ([]entity.Holding, error)
	FindByTicker(ctx context.Context, ticker string) (*entity.Holding, error)
	Save(ctx context.Context, holding *entity.Holding) error
}

// NewHoldingRepository creates a new GORM-based holding repository.
func NewHoldingRepository(db *gorm.DB) HoldingRepository {
	return &holdingRepository{db: db}
}

type holdingRepository struct {
	db *gorm.DB
}

// FindAll retrieves all portfolio holdings.
func (r *holdingRepository) FindAll(ctx context.Context) ([]entity.Holding, error) {
	var holdings []entity.Holding
	if err := r.db.WithContext(ctx).Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

// FindByTicker retrieves one holding by its ticker, or nil when absent.
func (r *holdingRepository) FindByTicker(ctx context.Context, ticker string) (*entity.Holding, error) {
	var holding entity.Holding
	err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &holding, nil
}

// Save inserts or updates a holding.
func (r *holdingRepository) Save(ctx context.Context, holding *entity.Holding) error {
	return r.db.WithContext(ctx).Save(holding).Error
}

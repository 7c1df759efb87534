package repository

import (
	"context"

	"golang-market-insight/internal/entity"

	"gorm.io/gorm"
)

// SnapshotBatch is the reconciled result of one snapshot cycle: index and
// sector upserts, an append-only sentiment reading, and any holdings whose
// prices were refreshed in the same cycle.
type SnapshotBatch struct {
	Indices   []entity.MarketIndex
	Sectors   []entity.SectorPerformance
	Sentiment *entity.MarketSentiment
	Holdings  []entity.Holding
}

// MarketDataRepository persists a full snapshot reconciliation atomically and
// serves the reads the reconciler matches against.
type MarketDataRepository interface {
	FindIndices(ctx context.Context) ([]entity.MarketIndex, error)
	FindSectors(ctx context.Context) ([]entity.SectorPerformance, error)
	ApplySnapshot(ctx context.Context, batch *SnapshotBatch) error
}

// NewMarketDataRepository creates a new GORM-based market data repository.
func NewMarketDataRepository(db *gorm.DB) MarketDataRepository {
	return &marketDataRepository{db: db}
}

type marketDataRepository struct {
	db *gorm.DB
}

// FindIndices retrieves all persisted indices for natural-key matching.
func (r *marketDataRepository) FindIndices(ctx context.Context) ([]entity.MarketIndex, error) {
	var indices []entity.MarketIndex
	if err := r.db.WithContext(ctx).Find(&indices).Error; err != nil {
		return nil, err
	}
	return indices, nil
}

// FindSectors retrieves all persisted sectors for natural-key matching.
func (r *marketDataRepository) FindSectors(ctx context.Context) ([]entity.SectorPerformance, error) {
	var sectors []entity.SectorPerformance
	if err := r.db.WithContext(ctx).Find(&sectors).Error; err != nil {
		return nil, err
	}
	return sectors, nil
}

// ApplySnapshot commits all mutations of one snapshot cycle in a single
// transaction. Entities with a non-zero ID are updated in place, the rest are
// inserted; the sentiment reading is always appended.
func (r *marketDataRepository) ApplySnapshot(ctx context.Context, batch *SnapshotBatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range batch.Indices {
			if err := tx.Save(&batch.Indices[i]).Error; err != nil {
				return err
			}
		}
		for i := range batch.Sectors {
			if err := tx.Save(&batch.Sectors[i]).Error; err != nil {
				return err
			}
		}
		if batch.Sentiment != nil {
			if err := tx.Create(batch.Sentiment).Error; err != nil {
				return err
			}
		}
		for i := range batch.Holdings {
			if err := tx.Save(&batch.Holdings[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

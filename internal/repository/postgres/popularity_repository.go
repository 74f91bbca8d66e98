package postgres

import (
	"context"
	"fmt"
	"shopReco/domain"

	"gorm.io/gorm"
)

type PopularityRepository struct {
	DB *gorm.DB
}

func NewPopularityRepository(db *gorm.DB) *PopularityRepository {
	return &PopularityRepository{DB: db}
}

func (r *PopularityRepository) AllCounts(ctx context.Context) ([]domain.ItemPopularity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var counts []domain.ItemPopularity
	if err := r.DB.WithContext(ctx).Find(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to query item_popularity: %w", err)
	}

	return counts, nil
}

func (r *PopularityRepository) ReplaceAll(ctx context.Context, counts []domain.ItemPopularity) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE TABLE item_popularity").Error; err != nil {
			return err
		}
		if len(counts) == 0 {
			return nil
		}
		return tx.CreateInBatches(counts, ingestBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace item_popularity: %w", err)
	}

	return nil
}

package postgres

import (
	"context"
	"fmt"
	"shopReco/domain"

	"gorm.io/gorm"
)

type FallbackRepository struct {
	DB *gorm.DB
}

func NewFallbackRepository(db *gorm.DB) *FallbackRepository {
	return &FallbackRepository{DB: db}
}

func (r *FallbackRepository) AllItems(ctx context.Context) ([]domain.FallbackItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.FallbackItem
	if err := r.DB.WithContext(ctx).Order("rank ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to query fallback_items: %w", err)
	}

	return items, nil
}

func (r *FallbackRepository) ReplaceAll(ctx context.Context, items []domain.FallbackItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE TABLE fallback_items").Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, ingestBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace fallback_items: %w", err)
	}

	return nil
}

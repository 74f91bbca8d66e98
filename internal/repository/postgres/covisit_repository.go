package postgres

import (
	"context"
	"fmt"
	"shopReco/domain"

	"gorm.io/gorm"
)

// ingestBatchSize bounds a single INSERT during artifact reloads.
const ingestBatchSize = 1000

type CovisitRepository struct {
	DB *gorm.DB
}

func NewCovisitRepository(db *gorm.DB) *CovisitRepository {
	return &CovisitRepository{DB: db}
}

func (r *CovisitRepository) AllPairs(ctx context.Context) ([]domain.CovisitPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var pairs []domain.CovisitPair
	if err := r.DB.WithContext(ctx).Find(&pairs).Error; err != nil {
		return nil, fmt.Errorf("failed to query covisit_pairs: %w", err)
	}

	return pairs, nil
}

// ReplaceAll swaps the whole table for a fresh artifact build.
func (r *CovisitRepository) ReplaceAll(ctx context.Context, pairs []domain.CovisitPair) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE TABLE covisit_pairs").Error; err != nil {
			return err
		}
		if len(pairs) == 0 {
			return nil
		}
		return tx.CreateInBatches(pairs, ingestBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace covisit_pairs: %w", err)
	}

	return nil
}

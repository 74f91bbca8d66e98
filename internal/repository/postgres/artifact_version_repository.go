package postgres

import (
	"context"
	"errors"
	"fmt"
	"shopReco/domain"
	"time"

	"gorm.io/gorm"
)

type ArtifactVersionRepository struct {
	DB *gorm.DB
}

func NewArtifactVersionRepository(db *gorm.DB) *ArtifactVersionRepository {
	return &ArtifactVersionRepository{DB: db}
}

func (r *ArtifactVersionRepository) Create(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := domain.ArtifactVersion{
		Name:    name,
		BuiltAt: time.Now().UTC(),
	}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record artifact version: %w", err)
	}

	return nil
}

// Latest returns the most recent version row, or nil when no ingest ran yet.
func (r *ArtifactVersionRepository) Latest(ctx context.Context) (*domain.ArtifactVersion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row domain.ArtifactVersion
	err := r.DB.WithContext(ctx).Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artifact_versions: %w", err)
	}

	return &row, nil
}

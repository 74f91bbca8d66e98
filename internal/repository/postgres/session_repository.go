package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"shopReco/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) FindByID(ctx context.Context, sessionID int64) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("context error: %w", err)
	}

	var row domain.SessionRecord
	err := r.DB.WithContext(ctx).First(&row, "session_id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Session{}, errors.New("session not found")
		}
		return domain.Session{}, fmt.Errorf("failed to find session: %w", err)
	}

	var events []domain.Event
	if len(row.Events) > 0 {
		if err := json.Unmarshal(row.Events, &events); err != nil {
			return domain.Session{}, fmt.Errorf("failed to unmarshal session events: %w", err)
		}
	}

	return domain.Session{SessionID: row.SessionID, Events: events}, nil
}

func (r *SessionRepository) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row, err := sessionRow(session)
	if err != nil {
		return err
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *SessionRepository) SaveBatch(ctx context.Context, sessions []domain.Session) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	rows := make([]domain.SessionRecord, 0, len(sessions))
	for _, session := range sessions {
		row, err := sessionRow(session)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		},
	).CreateInBatches(rows, ingestBatchSize).Error; err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}

	return nil
}

func sessionRow(session domain.Session) (domain.SessionRecord, error) {
	raw, err := json.Marshal(session.Events)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("failed to marshal session events: %w", err)
	}

	return domain.SessionRecord{
		SessionID: session.SessionID,
		Events:    raw,
	}, nil
}

package session

import (
	"context"
	"errors"
	"fmt"
	"shopReco/domain"
	"shopReco/pkg/logger"
)

// SessionRepository contract interface
type SessionRepository interface {
	FindByID(ctx context.Context, sessionID int64) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	SaveBatch(ctx context.Context, sessions []domain.Session) error
}

type sessionService struct {
	sessionRepo SessionRepository
}

func NewSessionService(sessionRepo SessionRepository) *sessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
	}
}

func (s *sessionService) GetSessionByID(ctx context.Context, sessionID int64) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get session by id")
		return domain.Session{}, fmt.Errorf("context error: %w", err)
	}

	if sessionID < 0 {
		logger.Error("Invalid session id")
		return domain.Session{}, errors.New("invalid session id")
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to find session", err)
		return domain.Session{}, err
	}

	return session, nil
}

func (s *sessionService) SaveSession(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when save session")
		return fmt.Errorf("context error: %w", err)
	}

	if session.SessionID < 0 {
		logger.Error("Invalid session id")
		return errors.New("invalid session id")
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		logger.Error("failed to save session", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *sessionService) SaveSessions(ctx context.Context, sessions []domain.Session) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when save sessions")
		return fmt.Errorf("context error: %w", err)
	}

	if len(sessions) == 0 {
		return nil
	}

	if err := s.sessionRepo.SaveBatch(ctx, sessions); err != nil {
		logger.Error("failed to save sessions", err)
		return fmt.Errorf("failed to save sessions: %w", err)
	}

	logger.Info("sessions saved", "count", len(sessions))

	return nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"shopReco/domain"
	"shopReco/pkg/logger"
	"shopReco/pkg/utils"
	"time"
)

// operatorTokenTTL mirrors the expiry baked into utils.GenerateJWT.
const operatorTokenTTL = time.Hour

const (
	operatorName = "operator"
	operatorRole = "admin"
)

// TokenStore contract interface
type TokenStore interface {
	StoreToken(ctx context.Context, operator, token string, data domain.OperatorToken, ttl time.Duration) error
	GetTokenData(ctx context.Context, operator string) (*domain.OperatorToken, error)
	ValidateToken(ctx context.Context, token string) (string, error)
	RevokeToken(ctx context.Context, operator, token string) error
}

type authService struct {
	operatorKeyHash string
	tokenStore      TokenStore
}

// NewAuthService builds the operator-token service. tokenStore may be nil
// when redis is disabled; tokens are then pure JWTs with no revocation.
func NewAuthService(operatorKeyHash string, tokenStore TokenStore) *authService {
	return &authService{
		operatorKeyHash: operatorKeyHash,
		tokenStore:      tokenStore,
	}
}

func (s *authService) IssueToken(ctx context.Context, apiKey, ipAddress, userAgent string) (string, domain.OperatorToken, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.OperatorToken{}, fmt.Errorf("context error: %w", err)
	}

	if apiKey == "" {
		return "", domain.OperatorToken{}, errors.New("api key is required")
	}

	if !utils.CheckPassword(apiKey, s.operatorKeyHash) {
		logger.Warn("operator token request with bad api key", "ip", ipAddress)
		return "", domain.OperatorToken{}, errors.New("invalid api key")
	}

	token, err := utils.GenerateJWT(operatorName, operatorRole)
	if err != nil {
		logger.Error("Failed to generated token", err)
		return "", domain.OperatorToken{}, errors.New("failed to generate token")
	}

	now := time.Now()
	data := domain.OperatorToken{
		Operator:  operatorName,
		Role:      operatorRole,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(operatorTokenTTL),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if s.tokenStore != nil {
		if err := s.tokenStore.StoreToken(ctx, operatorName, token, data, operatorTokenTTL); err != nil {
			logger.Error("failed to store operator token", err)
			return "", domain.OperatorToken{}, fmt.Errorf("failed to store token: %w", err)
		}
	}

	logger.Info("operator token issued", "ip", ipAddress)

	return token, data, nil
}

// ValidateTokenFromRedis satisfies middleware.TokenValidator.
func (s *authService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	if s.tokenStore == nil {
		return "", errors.New("token store disabled")
	}
	return s.tokenStore.ValidateToken(ctx, token)
}

// TokenInfo returns the stored record of the operator's active token, so
// ops can check which client the token was issued to and when it expires.
func (s *authService) TokenInfo(ctx context.Context, operator string) (domain.OperatorToken, error) {
	if err := ctx.Err(); err != nil {
		return domain.OperatorToken{}, fmt.Errorf("context error: %w", err)
	}

	if s.tokenStore == nil {
		return domain.OperatorToken{}, errors.New("token store disabled")
	}

	data, err := s.tokenStore.GetTokenData(ctx, operator)
	if err != nil {
		return domain.OperatorToken{}, err
	}

	return *data, nil
}

func (s *authService) RevokeToken(ctx context.Context, operator, token string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if s.tokenStore == nil {
		return errors.New("token store disabled")
	}

	if err := s.tokenStore.RevokeToken(ctx, operator, token); err != nil {
		logger.Error("failed to revoke operator token", err)
		return err
	}

	logger.Info("operator token revoked", "operator", operator)

	return nil
}

package rest

import (
	"context"
	"net/http"
	"shopReco/domain"
	"shopReco/pkg/logger"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthService interface {
	IssueToken(ctx context.Context, apiKey, ipAddress, userAgent string) (string, domain.OperatorToken, error)
	TokenInfo(ctx context.Context, operator string) (domain.OperatorToken, error)
	RevokeToken(ctx context.Context, operator, token string) error
}

type AuthHandler struct {
	authService AuthService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type TokenRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req TokenRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate token request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	// get ip address and user agent
	ipAddress := c.RealIP()
	userAgent := c.Request().UserAgent()

	token, data, err := h.authService.IssueToken(ctx, req.APIKey, ipAddress, userAgent)
	if err != nil {
		logger.Error("Failed to issue operator token", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Token issued successfully",
		"token":      token,
		"expires_at": data.ExpiresAt,
	})
}

// TokenInfo reports the stored metadata of the caller's active token. The
// raw token is never echoed back.
func (h *AuthHandler) TokenInfo(c echo.Context) error {
	operator, ok := c.Get("operator").(string)
	if !ok {
		logger.Error("Failed to get operator from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	data, err := h.authService.TokenInfo(ctx, operator)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to load token info", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"operator":   data.Operator,
		"role":       data.Role,
		"issued_at":  data.IssuedAt,
		"expires_at": data.ExpiresAt,
		"ip_address": data.IPAddress,
		"user_agent": data.UserAgent,
	})
}

// RevokeToken invalidates the caller's own token
func (h *AuthHandler) RevokeToken(c echo.Context) error {
	operator, ok := c.Get("operator").(string)
	if !ok {
		logger.Error("Failed to get operator from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	token, ok := c.Get("token").(string)
	if !ok {
		logger.Error("Failed to get token from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authService.RevokeToken(ctx, operator, token); err != nil {
		logger.Error("Failed to revoke operator token", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Token revoked successfully",
	})
}

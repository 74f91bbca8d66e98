package rest

import (
	"context"
	"net/http"
	"shopReco/domain"
	"shopReco/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID int64) (domain.Session, error)
	SaveSession(ctx context.Context, session domain.Session) error
}

type SessionHandler struct {
	sessionService SessionService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewSessionHandler(sessionService SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c echo.Context) error {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid session id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.sessionService.GetSessionByID(ctx, sessionID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to load session", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(session))
}

// SaveSession handles POST /api/v1/sessions
func (h *SessionHandler) SaveSession(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.sessionService.SaveSession(ctx, sessionFromRequest(req)); err != nil {
		logger.Error("Failed to save session", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("session stored"))
}

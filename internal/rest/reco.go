package rest

import (
	"context"
	"fmt"
	"net/http"
	"shopReco/domain"
	"shopReco/pkg/logger"
	"shopReco/pkg/metrics"
	"strconv"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecoHandler struct {
		validate       *validator.Validate
		recoService    RecoService
		sessionService SessionService
		timeout        time.Duration
	}

	RecoService interface {
		Recommend(ctx context.Context, session domain.Session) (domain.Recommendations, error)
		DebugRecommend(ctx context.Context, session domain.Session) ([]domain.DebugCandidate, error)
	}

	EventRequest struct {
		Aid  int64  `json:"aid" validate:"min=0"`
		Ts   int64  `json:"ts"`
		Type string `json:"type" validate:"omitempty,oneof=clicks carts orders"`
	}

	RecommendRequest struct {
		SessionID int64          `json:"session_id" validate:"min=0"`
		Events    []EventRequest `json:"events" validate:"dive"`
	}

	DebugQuery struct {
		SessionID int64 `query:"session_id" validate:"min=0"`
	}

	// RecommendResponse carries the three ranked lists plus the
	// "{session}_{type}" -> space-joined labels rendering used by the
	// offline submission format.
	RecommendResponse struct {
		SessionID int64             `json:"session_id"`
		Clicks    []int64           `json:"clicks"`
		Carts     []int64           `json:"carts"`
		Orders    []int64           `json:"orders"`
		Labels    map[string]string `json:"labels"`
		Degraded  []string          `json:"degraded,omitempty"`
	}
)

func NewRecoHandler(recoService RecoService, sessionService SessionService) *RecoHandler {
	return &RecoHandler{
		validate:       validator.New(),
		recoService:    recoService,
		sessionService: sessionService,
		timeout:        10 * time.Second,
	}
}

// Recommend handles POST /api/v1/recommendations with an inline session.
func (h *RecoHandler) Recommend(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	resp, err := h.recommend(ctx, sessionFromRequest(req))
	if err != nil {
		logger.Error("Failed to build recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resp))
}

// RecommendForSession handles GET /api/v1/sessions/:id/recommendations for
// a stored session.
func (h *RecoHandler) RecommendForSession(c echo.Context) error {
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

	resp, err := h.recommend(ctx, session)
	if err != nil {
		logger.Error("Failed to build recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resp))
}

// GET /api/v1/recommendations/debug?session_id=12899779
func (h *RecoHandler) DebugRecommend(c echo.Context) error {
	var q DebugQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.sessionService.GetSessionByID(ctx, q.SessionID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to load session", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	candidates, err := h.recoService.DebugRecommend(ctx, session)
	if err != nil {
		logger.Error("Failed to build debug table", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(candidates))
}

func (h *RecoHandler) recommend(ctx context.Context, session domain.Session) (RecommendResponse, error) {
	metrics.RecommendRequests.Inc()

	start := time.Now()
	recs, err := h.recoService.Recommend(ctx, session)
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return RecommendResponse{}, err
	}

	return recommendResponse(recs), nil
}

func sessionFromRequest(req RecommendRequest) domain.Session {
	events := make([]domain.Event, 0, len(req.Events))
	for _, ev := range req.Events {
		events = append(events, domain.Event{Aid: ev.Aid, Ts: ev.Ts, Type: ev.Type})
	}
	return domain.Session{SessionID: req.SessionID, Events: events}
}

func recommendResponse(recs domain.Recommendations) RecommendResponse {
	labels := make(map[string]string, 3)
	for _, eventType := range domain.EventTypes() {
		key := fmt.Sprintf("%d_%s", recs.SessionID, eventType)
		labels[key] = domain.JoinAids(recs.ByType(eventType))
	}

	return RecommendResponse{
		SessionID: recs.SessionID,
		Clicks:    recs.Clicks,
		Carts:     recs.Carts,
		Orders:    recs.Orders,
		Labels:    labels,
		Degraded:  recs.Degraded,
	}
}

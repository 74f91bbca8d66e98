package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopReco/pkg/logger"

	"github.com/pobyzaarif/goshortcute"
	"golang.org/x/time/rate"
)

const defaultAlertsPerMinute = 6

type WebhookConfig struct {
	WebhookURL               string
	WebhookBasicAuthUsername string
	WebhookBasicAuthPassword string
	AlertsPerMinute          int
}

// WebhookRepository posts ops alerts to a generic JSON webhook. Delivery is
// fire-and-forget and rate-limited so a flapping model cannot flood the
// receiving channel.
type WebhookRepository struct {
	webhookConfig WebhookConfig
	limiter       *rate.Limiter
	client        *http.Client
}

func NewWebhookRepository(cfg WebhookConfig) *WebhookRepository {
	perMinute := cfg.AlertsPerMinute
	if perMinute <= 0 {
		perMinute = defaultAlertsPerMinute
	}

	return &WebhookRepository{
		webhookConfig: cfg,
		limiter:       rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		client:        &http.Client{Timeout: 5 * time.Second},
	}
}

type payloadScoringFailure struct {
	Alert     string    `json:"alert"`
	EventType string    `json:"event_type"`
	SessionID int64     `json:"session_id"`
	Cause     string    `json:"cause"`
	At        time.Time `json:"at"`
}

// ScoringFailure never blocks the request path: the POST runs in its own
// goroutine and drops silently once the rate budget is spent.
func (r *WebhookRepository) ScoringFailure(ctx context.Context, eventType string, sessionID int64, cause error) {
	if r.webhookConfig.WebhookURL == "" {
		return
	}
	if ctx.Err() != nil {
		return
	}
	if !r.limiter.Allow() {
		logger.Debug("scoring alert suppressed by rate limit", "event_type", eventType)
		return
	}

	payload := payloadScoringFailure{
		Alert:     "scoring_failure",
		EventType: eventType,
		SessionID: sessionID,
		Cause:     cause.Error(),
		At:        time.Now().UTC(),
	}

	go func() {
		if err := r.post(payload); err != nil {
			logger.Warn("failed to deliver scoring alert", "event_type", eventType, err)
		}
	}()
}

func (r *WebhookRepository) post(payload payloadScoringFailure) error {
	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, r.webhookConfig.WebhookURL, bytes.NewReader(payloadByte))
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/json")
	if r.webhookConfig.WebhookBasicAuthUsername != "" {
		buildBasicAuth := goshortcute.StringtoBase64Encode(r.webhookConfig.WebhookBasicAuthUsername + ":" + r.webhookConfig.WebhookBasicAuthPassword)
		req.Header.Add("Authorization", "Basic "+buildBasicAuth)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}
	bodyBytes, _ := io.ReadAll(res.Body)

	return fmt.Errorf("alert webhook return negative response %v: %s", res.StatusCode, string(bodyBytes))
}

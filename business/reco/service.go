package reco

import (
	"context"
	"fmt"
	"sync"

	"shopReco/domain"
	"shopReco/pkg/logger"
)

// ---- collaborator interfaces ----

// ResultCache is an optional read-through cache for clean pipeline results.
// Implementations own their error handling; a failed read is a miss.
type ResultCache interface {
	Get(ctx context.Context, session domain.Session) (domain.Recommendations, bool)
	Set(ctx context.Context, session domain.Session, recs domain.Recommendations)
}

// Alerter pushes operator notifications about degraded scoring.
// Implementations must not block the request path.
type Alerter interface {
	ScoringFailure(ctx context.Context, eventType string, sessionID int64, cause error)
}

// ---- Usecase / Service ----

// RecoService runs the two stage pipeline: co-visitation candidates, one
// shared feature table, three independent ranking models. All collaborators
// are read-only after construction, so one service serves concurrent
// sessions without locking.
type RecoService struct {
	artifacts *Artifacts
	scorers   map[string]Scorer
	cache     ResultCache
	alerter   Alerter
	cfg       Config
}

// NewRecoService wires the pipeline once at startup. Missing collaborators
// and feature contract mismatches are fatal here, never per request.
func NewRecoService(
	artifacts *Artifacts,
	scorers map[string]Scorer,
	cache ResultCache,
	alerter Alerter,
	cfg Config,
) (*RecoService, error) {
	if artifacts == nil {
		return nil, fmt.Errorf("artifacts are required")
	}
	if err := artifacts.validate(); err != nil {
		return nil, err
	}

	for _, eventType := range domain.EventTypes() {
		scorer, ok := scorers[eventType]
		if !ok || scorer == nil {
			return nil, fmt.Errorf("missing scoring model for %q", eventType)
		}
		if err := ValidateContract(scorer, FeatureColumns()); err != nil {
			return nil, fmt.Errorf("%s model: %w", eventType, err)
		}
	}

	return &RecoService{
		artifacts: artifacts,
		scorers:   scorers,
		cache:     cache,
		alerter:   alerter,
		cfg:       cfg.Normalize(),
	}, nil
}

// Config returns the normalized pipeline knobs.
func (s *RecoService) Config() Config {
	return s.cfg
}

// Recommend produces one ranked list per funnel type for the session.
func (s *RecoService) Recommend(ctx context.Context, session domain.Session) (domain.Recommendations, error) {
	if err := ctx.Err(); err != nil {
		return domain.Recommendations{}, fmt.Errorf("context error: %w", err)
	}

	if s.cache != nil {
		if recs, ok := s.cache.Get(ctx, session); ok {
			CacheHitsTotal.Inc()
			return recs, nil
		}
		CacheMissesTotal.Inc()
	}

	// 1) stage one: candidate pool
	pool := s.buildCandidates(session)
	CandidatePoolSize.Observe(float64(len(pool)))

	tid := TraceID(ctx)
	logger.Debug("reco_recommend",
		"trace_id", tid,
		"session_id", session.SessionID,
		"event_count", len(session.Events),
		"candidate_count", len(pool),
	)

	recs := domain.Recommendations{SessionID: session.SessionID}

	// 2) nothing to score: answer from the fallback list alone
	if len(pool) == 0 {
		FallbackOnlyTotal.Inc()
		recs.Clicks = s.artifacts.Fallback.Top(s.cfg.TopK)
		recs.Carts = s.artifacts.Fallback.Top(s.cfg.TopK)
		recs.Orders = s.artifacts.Fallback.Top(s.cfg.TopK)

		if s.cache != nil {
			s.cache.Set(ctx, session, recs)
		}

		return recs, nil
	}

	// 3) one shared feature table for all three models
	features := buildFeatures(session, pool, s.artifacts.CoVisit, s.artifacts.Popularity)

	// 4) score every funnel type; a failed model empties only its own list
	results := s.scoreAll(ctx, session.SessionID, features)

	for _, eventType := range domain.EventTypes() {
		res := results[eventType]
		if res.err != nil {
			recs.Degraded = append(recs.Degraded, eventType)
			continue
		}

		ranked := rankTop(pool, res.scores, s.cfg.TopK, s.artifacts.Fallback)

		switch eventType {
		case domain.EventClicks:
			recs.Clicks = ranked
		case domain.EventCarts:
			recs.Carts = ranked
		case domain.EventOrders:
			recs.Orders = ranked
		}
	}

	// only clean results are worth caching
	if s.cache != nil && len(recs.Degraded) == 0 {
		s.cache.Set(ctx, session, recs)
	}

	return recs, nil
}

// ---- scoring fan-out ----

type scoreResult struct {
	scores []float64
	err    error
}

// scoreAll runs the three models concurrently over the shared feature
// table. Panics and errors in one model count as that model's failure and
// leave the other two untouched.
func (s *RecoService) scoreAll(ctx context.Context, sessionID int64, features *FeatureTable) map[string]scoreResult {
	eventTypes := domain.EventTypes()
	results := make([]scoreResult, len(eventTypes))

	var wg sync.WaitGroup
	for i, eventType := range eventTypes {
		wg.Add(1)
		go func(i int, eventType string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = scoreResult{err: fmt.Errorf("scoring panic: %v", r)}
				}
			}()

			scores, err := s.scorers[eventType].Score(ctx, features)
			if err == nil && len(scores) != features.NumRows() {
				err = fmt.Errorf("model returned %d scores for %d candidates", len(scores), features.NumRows())
			}

			results[i] = scoreResult{scores: scores, err: err}
		}(i, eventType)
	}
	wg.Wait()

	out := make(map[string]scoreResult, len(eventTypes))
	for i, eventType := range eventTypes {
		res := results[i]
		if res.err != nil {
			logger.Warn("model scoring failed",
				"event_type", eventType,
				"session_id", sessionID,
				"error", res.err,
			)
			ScoringFailuresTotal.WithLabelValues(eventType).Inc()

			if s.alerter != nil {
				s.alerter.ScoringFailure(ctx, eventType, sessionID, res.err)
			}
		}
		out[eventType] = res
	}

	return out
}

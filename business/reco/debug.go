package reco

import (
	"context"
	"fmt"
	"sort"

	"shopReco/domain"
	"shopReco/pkg/logger"
)

// DebugRecommend runs the pipeline for one session and returns the full
// per-candidate feature and score table, sorted by the orders score
// descending. Failed models leave zero scores in their column.
func (s *RecoService) DebugRecommend(ctx context.Context, session domain.Session) ([]domain.DebugCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	pool := s.buildCandidates(session)

	tid := TraceID(ctx)
	logger.Debug("reco_debug_recommend",
		"trace_id", tid,
		"session_id", session.SessionID,
		"event_count", len(session.Events),
		"candidate_count", len(pool),
	)

	if len(pool) == 0 {
		return []domain.DebugCandidate{}, nil
	}

	features := buildFeatures(session, pool, s.artifacts.CoVisit, s.artifacts.Popularity)
	results := s.scoreAll(ctx, session.SessionID, features)

	covisitIdx, _ := features.ColumnIndex(FeatCovisitScore)
	popIdx, _ := features.ColumnIndex(FeatGlobalPopularity)
	lenIdx, _ := features.ColumnIndex(FeatSessionLength)
	freqIdx, _ := features.ColumnIndex(FeatAidFrequency)

	rows := make([]domain.DebugCandidate, 0, features.NumRows())
	for i, aid := range features.Aids {
		row := domain.DebugCandidate{
			Aid:              aid,
			CovisitScore:     features.Rows[i][covisitIdx],
			GlobalPopularity: features.Rows[i][popIdx],
			SessionLength:    features.Rows[i][lenIdx],
			AidFrequency:     features.Rows[i][freqIdx],
		}

		if res := results[domain.EventClicks]; res.err == nil {
			row.ClicksScore = res.scores[i]
		}
		if res := results[domain.EventCarts]; res.err == nil {
			row.CartsScore = res.scores[i]
		}
		if res := results[domain.EventOrders]; res.err == nil {
			row.OrdersScore = res.scores[i]
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].OrdersScore > rows[j].OrdersScore
	})

	return rows, nil
}

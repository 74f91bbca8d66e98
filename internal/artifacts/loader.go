package artifacts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"shopReco/business/reco"
	"shopReco/domain"
	"shopReco/pkg/logger"
)

// ---- source interfaces ----

type CovisitSource interface {
	AllPairs(ctx context.Context) ([]domain.CovisitPair, error)
}

type PopularitySource interface {
	AllCounts(ctx context.Context) ([]domain.ItemPopularity, error)
}

type FallbackSource interface {
	AllItems(ctx context.Context) ([]domain.FallbackItem, error)
}

// Loader assembles the in-memory serving artifacts from their stores once
// at startup.
type Loader struct {
	covisit    CovisitSource
	popularity PopularitySource
	fallback   FallbackSource
}

func NewLoader(covisit CovisitSource, popularity PopularitySource, fallback FallbackSource) *Loader {
	return &Loader{
		covisit:    covisit,
		popularity: popularity,
		fallback:   fallback,
	}
}

// Load pulls all three artifact tables into memory. Empty co-visitation or
// popularity tables are tolerated, lookups against them return zero. An
// empty fallback list is refused: every degraded serving path depends on it.
func (l *Loader) Load(ctx context.Context) (*reco.Artifacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	started := time.Now()

	pairs, err := l.covisit.AllPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load covisit pairs: %w", err)
	}

	grouped := make(map[int64][]reco.WeightedAid)
	for _, p := range pairs {
		grouped[p.Aid] = append(grouped[p.Aid], reco.WeightedAid{Aid: p.Neighbor, Weight: p.Weight})
	}

	counts, err := l.popularity.AllCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load popularity counts: %w", err)
	}

	countMap := make(map[int64]int64, len(counts))
	for _, c := range counts {
		countMap[c.Aid] = c.Count
	}

	items, err := l.fallback.AllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fallback items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("fallback list is empty")
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Rank < items[j].Rank
	})

	aids := make([]int64, 0, len(items))
	for _, it := range items {
		aids = append(aids, it.Aid)
	}

	arts := &reco.Artifacts{
		CoVisit:    reco.NewCoVisitIndex(grouped),
		Popularity: reco.NewPopularityTable(countMap),
		Fallback:   reco.NewFallbackList(aids),
	}

	logger.Info("serving artifacts loaded",
		"covisit_keys", arts.CoVisit.Len(),
		"popularity_aids", arts.Popularity.Len(),
		"fallback_len", arts.Fallback.Len(),
		"elapsed", time.Since(started).String(),
	)

	return arts, nil
}

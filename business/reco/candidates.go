package reco

import (
	"sort"

	"shopReco/domain"
)

// buildCandidates runs stage one: co-visitation neighbors of the most
// recent history items, scored by accumulated weight, topped up with the
// fallback list, bounded to CandidatesPerSession.
//
// An empty return means "no candidates at all"; the caller short-circuits
// to fallback-only output.
func (s *RecoService) buildCandidates(session domain.Session) []int64 {
	if len(session.Events) == 0 {
		return nil
	}

	history := session.Aids()

	historySet := make(map[int64]struct{}, len(history))
	for _, aid := range history {
		historySet[aid] = struct{}{}
	}

	seeds := recentDistinct(history, s.cfg.ItemsFromHistory)

	type candidate struct {
		aid   int64
		score float64
		pos   int // insertion order, breaks equal-score ties
	}

	byAid := make(map[int64]*candidate)
	accumulated := make([]*candidate, 0, len(seeds)*s.cfg.CovisitsPerItem)

	// 1) accumulate neighbor weights, never re-proposing history items
	for _, seed := range seeds {
		for _, n := range s.artifacts.CoVisit.Top(seed, s.cfg.CovisitsPerItem) {
			if _, seen := historySet[n.Aid]; seen {
				continue
			}

			c, ok := byAid[n.Aid]
			if !ok {
				c = &candidate{aid: n.Aid, pos: len(accumulated)}
				byAid[n.Aid] = c
				accumulated = append(accumulated, c)
			}
			c.score += n.Weight
		}
	}

	// 2) strongest first; equal scores keep first-seen order
	sort.SliceStable(accumulated, func(i, j int) bool {
		if accumulated[i].score != accumulated[j].score {
			return accumulated[i].score > accumulated[j].score
		}
		return accumulated[i].pos < accumulated[j].pos
	})

	limit := s.cfg.CandidatesPerSession
	pool := make([]int64, 0, limit)
	inPool := make(map[int64]struct{}, limit)

	for _, c := range accumulated {
		if len(pool) >= limit {
			break
		}
		pool = append(pool, c.aid)
		inPool[c.aid] = struct{}{}
	}

	// 3) top up with globally popular items; these may re-include history
	// aids, the history filter only applies to co-visitation candidates
	for _, aid := range s.artifacts.Fallback.Aids() {
		if len(pool) >= limit {
			break
		}
		if _, ok := inPool[aid]; ok {
			continue
		}
		pool = append(pool, aid)
		inPool[aid] = struct{}{}
	}

	return pool
}

// recentDistinct returns up to n distinct aids from the last n history
// entries, most recent first.
func recentDistinct(history []int64, n int) []int64 {
	if n > len(history) {
		n = len(history)
	}

	seen := make(map[int64]struct{}, n)
	out := make([]int64, 0, n)

	for i := len(history) - 1; i >= len(history)-n; i-- {
		aid := history[i]
		if _, ok := seen[aid]; ok {
			continue
		}
		seen[aid] = struct{}{}
		out = append(out, aid)
	}

	return out
}

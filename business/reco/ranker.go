package reco

import "sort"

// rankTop orders the pool best score first and pads with fallback items
// until topK entries are reached or the fallback is exhausted. Equal
// scores keep candidate pool order.
func rankTop(pool []int64, scores []float64, topK int, fallback *FallbackList) []int64 {
	n := len(pool)
	if len(scores) < n {
		n = len(scores)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	out := make([]int64, 0, topK)
	chosen := make(map[int64]struct{}, topK)

	for _, i := range idx {
		if len(out) >= topK {
			break
		}
		aid := pool[i]
		if _, ok := chosen[aid]; ok {
			continue
		}
		chosen[aid] = struct{}{}
		out = append(out, aid)
	}

	for _, aid := range fallback.Aids() {
		if len(out) >= topK {
			break
		}
		if _, ok := chosen[aid]; ok {
			continue
		}
		chosen[aid] = struct{}{}
		out = append(out, aid)
	}

	return out
}

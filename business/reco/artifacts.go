package reco

import (
	"errors"
	"sort"
)

// WeightedAid is one co-visitation neighbor with its accumulated pair weight.
type WeightedAid struct {
	Aid    int64
	Weight float64
}

// CoVisitIndex is the in-memory co-visitation matrix. It is built once at
// startup, read-only afterwards, and safe for concurrent use. Neighbor lists
// are kept sorted by weight descending, aid ascending on equal weights, so
// lookups stay deterministic.
type CoVisitIndex struct {
	neighbors map[int64][]WeightedAid
	weights   map[int64]map[int64]float64
}

func NewCoVisitIndex(pairs map[int64][]WeightedAid) *CoVisitIndex {
	ix := &CoVisitIndex{
		neighbors: make(map[int64][]WeightedAid, len(pairs)),
		weights:   make(map[int64]map[int64]float64, len(pairs)),
	}

	for aid, list := range pairs {
		sorted := make([]WeightedAid, len(list))
		copy(sorted, list)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Weight != sorted[j].Weight {
				return sorted[i].Weight > sorted[j].Weight
			}
			return sorted[i].Aid < sorted[j].Aid
		})

		ix.neighbors[aid] = sorted

		w := make(map[int64]float64, len(sorted))
		for _, n := range sorted {
			w[n.Aid] = n.Weight
		}
		ix.weights[aid] = w
	}

	return ix
}

// Top returns up to n strongest neighbors of aid, strongest first. The
// returned slice is shared and must not be mutated.
func (ix *CoVisitIndex) Top(aid int64, n int) []WeightedAid {
	list := ix.neighbors[aid]
	if n >= 0 && n < len(list) {
		list = list[:n]
	}
	return list
}

// Weight returns the pair weight from aid to neighbor, zero when the pair
// was never co-visited.
func (ix *CoVisitIndex) Weight(aid, neighbor int64) float64 {
	return ix.weights[aid][neighbor]
}

func (ix *CoVisitIndex) Len() int {
	return len(ix.neighbors)
}

// PopularityTable maps an aid to its interaction count across all sessions.
// Missing aids count as zero.
type PopularityTable struct {
	counts map[int64]int64
}

func NewPopularityTable(counts map[int64]int64) *PopularityTable {
	if counts == nil {
		counts = make(map[int64]int64)
	}
	return &PopularityTable{counts: counts}
}

func (p *PopularityTable) Count(aid int64) int64 {
	return p.counts[aid]
}

func (p *PopularityTable) Len() int {
	return len(p.counts)
}

// FallbackList is the global top-seller list used to pad thin sessions,
// strongest first. Duplicates are dropped on construction, first
// occurrence wins.
type FallbackList struct {
	aids []int64
}

func NewFallbackList(aids []int64) *FallbackList {
	seen := make(map[int64]struct{}, len(aids))
	out := make([]int64, 0, len(aids))

	for _, aid := range aids {
		if _, ok := seen[aid]; ok {
			continue
		}
		seen[aid] = struct{}{}
		out = append(out, aid)
	}

	return &FallbackList{aids: out}
}

// Aids returns the full list, strongest first. The returned slice is shared
// and must not be mutated.
func (f *FallbackList) Aids() []int64 {
	return f.aids
}

// Top returns a copy of the first n entries.
func (f *FallbackList) Top(n int) []int64 {
	if n > len(f.aids) {
		n = len(f.aids)
	}
	out := make([]int64, n)
	copy(out, f.aids[:n])
	return out
}

func (f *FallbackList) Len() int {
	return len(f.aids)
}

// Artifacts groups the read-only serving tables produced by one offline
// pipeline run.
type Artifacts struct {
	CoVisit    *CoVisitIndex
	Popularity *PopularityTable
	Fallback   *FallbackList
}

func (a *Artifacts) validate() error {
	if a.CoVisit == nil {
		return errors.New("co-visitation index is required")
	}
	if a.Popularity == nil {
		return errors.New("popularity table is required")
	}
	if a.Fallback == nil {
		return errors.New("fallback list is required")
	}
	return nil
}

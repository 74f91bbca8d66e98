package reco

import "shopReco/domain"

// Feature column names, in build order. Scoring models are validated
// against this exact set at startup.
const (
	FeatCovisitScore     = "covisit_score"
	FeatGlobalPopularity = "global_popularity"
	FeatSessionLength    = "session_length"
	FeatAidFrequency     = "aid_frequency"
)

func FeatureColumns() []string {
	return []string{
		FeatCovisitScore,
		FeatGlobalPopularity,
		FeatSessionLength,
		FeatAidFrequency,
	}
}

// FeatureTable is the model input: one row per candidate, columns in
// FeatureColumns() order. Raw counts and weights, no scaling.
type FeatureTable struct {
	Columns []string
	Aids    []int64
	Rows    [][]float64
}

func (t *FeatureTable) NumRows() int {
	return len(t.Aids)
}

// ColumnIndex returns the position of a named column.
func (t *FeatureTable) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Flatten lays the rows out row-major for dense matrix prediction.
func (t *FeatureTable) Flatten() []float64 {
	out := make([]float64, 0, len(t.Rows)*len(t.Columns))
	for _, row := range t.Rows {
		out = append(out, row...)
	}
	return out
}

// buildFeatures computes the model input for every candidate in pool order.
//
// The covisit score deliberately rescans the full distinct history rather
// than reusing stage-one accumulations: stage one is seed-limited and
// filtered, this score is not.
func buildFeatures(session domain.Session, pool []int64, covisit *CoVisitIndex, popularity *PopularityTable) *FeatureTable {
	history := session.Aids()
	sessionLen := float64(len(history))

	historySet := make([]int64, 0, len(history))
	seen := make(map[int64]struct{}, len(history))
	freq := make(map[int64]float64, len(history))

	for _, aid := range history {
		freq[aid]++
		if _, ok := seen[aid]; ok {
			continue
		}
		seen[aid] = struct{}{}
		historySet = append(historySet, aid)
	}

	table := &FeatureTable{
		Columns: FeatureColumns(),
		Aids:    make([]int64, 0, len(pool)),
		Rows:    make([][]float64, 0, len(pool)),
	}

	for _, cand := range pool {
		covisitScore := 0.0
		for _, h := range historySet {
			covisitScore += covisit.Weight(h, cand)
		}

		row := []float64{
			covisitScore,
			float64(popularity.Count(cand)),
			sessionLen,
			freq[cand],
		}

		table.Aids = append(table.Aids, cand)
		table.Rows = append(table.Rows, row)
	}

	return table
}

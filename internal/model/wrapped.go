package model

import (
	"context"
	"fmt"

	"shopReco/business/reco"

	"github.com/dmitryikh/leaves"
)

// wrappedScorer consumes the feature table directly, matching its declared
// feature names against the table's columns on every call.
type wrappedScorer struct {
	ensemble   *leaves.Ensemble
	names      []string
	iterations int
}

func (m *wrappedScorer) FeatureNames() []string {
	return m.names
}

func (m *wrappedScorer) NumFeatures() int {
	return len(m.names)
}

func (m *wrappedScorer) Score(ctx context.Context, features *reco.FeatureTable) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	nrows := features.NumRows()
	if nrows == 0 {
		return []float64{}, nil
	}

	vals, err := permuteColumns(features, m.names)
	if err != nil {
		return nil, err
	}

	preds := make([]float64, nrows)
	if err := m.ensemble.PredictDense(vals, nrows, len(m.names), preds, m.iterations, 1); err != nil {
		return nil, fmt.Errorf("failed to predict: %w", err)
	}

	return preds, nil
}

// permuteColumns flattens the table row-major with columns reordered into
// the model's declared order.
func permuteColumns(features *reco.FeatureTable, names []string) ([]float64, error) {
	perm := make([]int, len(names))
	for i, name := range names {
		idx, ok := features.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("feature table has no column %q", name)
		}
		perm[i] = idx
	}

	vals := make([]float64, 0, features.NumRows()*len(names))
	for _, row := range features.Rows {
		if len(row) != len(features.Columns) {
			return nil, fmt.Errorf("feature row has %d values for %d columns", len(row), len(features.Columns))
		}
		for _, idx := range perm {
			vals = append(vals, row[idx])
		}
	}

	return vals, nil
}

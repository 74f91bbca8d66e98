package model

import (
	"context"
	"fmt"

	"shopReco/business/reco"

	"github.com/dmitryikh/leaves"
)

// nativeScorer feeds the table to the booster as a plain matrix in builder
// column order. Native dumps expose no usable feature names, so only the
// column count can be checked.
type nativeScorer struct {
	ensemble   *leaves.Ensemble
	iterations int
}

func (m *nativeScorer) FeatureNames() []string {
	return nil
}

func (m *nativeScorer) NumFeatures() int {
	return m.ensemble.NFeatures()
}

func (m *nativeScorer) Score(ctx context.Context, features *reco.FeatureTable) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	nrows := features.NumRows()
	if nrows == 0 {
		return []float64{}, nil
	}

	ncols := len(features.Columns)
	if ncols != m.ensemble.NFeatures() {
		return nil, fmt.Errorf("feature table has %d columns, model expects %d", ncols, m.ensemble.NFeatures())
	}

	preds := make([]float64, nrows)
	if err := m.ensemble.PredictDense(features.Flatten(), nrows, ncols, preds, m.iterations, 1); err != nil {
		return nil, fmt.Errorf("failed to predict: %w", err)
	}

	return preds, nil
}

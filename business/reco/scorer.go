package reco

import (
	"context"
	"fmt"
)

// Scorer is one trained ranking model. Implementations are read-only after
// load and safe for concurrent use across sessions.
type Scorer interface {
	// Score returns one real-valued score per feature row, in row order.
	Score(ctx context.Context, features *FeatureTable) ([]float64, error)

	// FeatureNames reports the model-declared input columns, nil when the
	// model file does not declare any.
	FeatureNames() []string

	// NumFeatures reports how many input columns the model expects.
	NumFeatures() int
}

// ValidateContract checks a loaded model against the feature builder's
// declared columns. A mismatch is a configuration error and aborts
// startup instead of surfacing per request.
func ValidateContract(s Scorer, columns []string) error {
	if s == nil {
		return fmt.Errorf("scorer is nil")
	}

	if n := s.NumFeatures(); n != len(columns) {
		return fmt.Errorf("model expects %d features, builder produces %d", n, len(columns))
	}

	names := s.FeatureNames()
	if names == nil {
		// native models declare no names, the count check is all we have
		return nil
	}

	declared := make(map[string]struct{}, len(names))
	for _, name := range names {
		declared[name] = struct{}{}
	}

	for _, col := range columns {
		if _, ok := declared[col]; !ok {
			return fmt.Errorf("model does not accept feature %q (declares %v)", col, names)
		}
	}

	return nil
}

package model

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"shopReco/business/reco"

	"github.com/dmitryikh/leaves"
)

// envelope is the exported form of a wrapper-trained model: the native
// booster text plus the metadata the training wrapper carried.
type envelope struct {
	FeatureNames  []string `json:"feature_names"`
	BestIteration int      `json:"best_iteration"`
	Model         string   `json:"model"`
}

// Load reads one model file and returns the matching scorer. A file that
// starts with a JSON object is a wrapped export carrying feature names and
// a best-iteration hint; anything else is a native LightGBM text dump fed
// the nativeIterations hint (0 means all trees). The shape is detected
// here once, never per prediction.
func Load(path string, nativeIterations int) (reco.Scorer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	trimmed := bytes.TrimLeftFunc(raw, unicode.IsSpace)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("model file %s is empty", path)
	}

	if trimmed[0] == '{' {
		return loadWrapped(path, trimmed)
	}

	return loadNative(path, raw, nativeIterations)
}

func loadWrapped(path string, raw []byte) (reco.Scorer, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode model envelope %s: %w", path, err)
	}

	if len(env.FeatureNames) == 0 {
		return nil, fmt.Errorf("model envelope %s declares no feature names", path)
	}
	if env.Model == "" {
		return nil, fmt.Errorf("model envelope %s carries no booster text", path)
	}

	ensemble, err := leaves.LGEnsembleFromReader(bufio.NewReader(strings.NewReader(env.Model)), false)
	if err != nil {
		return nil, fmt.Errorf("failed to load booster from %s: %w", path, err)
	}
	if err := checkEnsemble(path, ensemble); err != nil {
		return nil, err
	}

	if ensemble.NFeatures() != len(env.FeatureNames) {
		return nil, fmt.Errorf("model %s declares %d feature names but consumes %d features",
			path, len(env.FeatureNames), ensemble.NFeatures())
	}

	return &wrappedScorer{
		ensemble:   ensemble,
		names:      env.FeatureNames,
		iterations: clampIterations(env.BestIteration, ensemble.NEstimators()),
	}, nil
}

func loadNative(path string, raw []byte, hint int) (reco.Scorer, error) {
	ensemble, err := leaves.LGEnsembleFromReader(bufio.NewReader(bytes.NewReader(raw)), false)
	if err != nil {
		return nil, fmt.Errorf("failed to load native model %s: %w", path, err)
	}
	if err := checkEnsemble(path, ensemble); err != nil {
		return nil, err
	}

	return &nativeScorer{
		ensemble:   ensemble,
		iterations: clampIterations(hint, ensemble.NEstimators()),
	}, nil
}

func checkEnsemble(path string, ensemble *leaves.Ensemble) error {
	if n := ensemble.NOutputGroups(); n != 1 {
		return fmt.Errorf("model %s has %d output groups, rankers must have 1", path, n)
	}
	return nil
}

// clampIterations keeps the tree-count hint inside the ensemble; out of
// range means "use every tree", which leaves spells as 0.
func clampIterations(n, total int) int {
	if n <= 0 || n > total {
		return 0
	}
	return n
}

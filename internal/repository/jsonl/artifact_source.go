package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"shopReco/domain"
)

// ArtifactSource reads the precomputed artifact tables from JSONL files,
// one object per line. It satisfies the same source contracts as the
// postgres repositories, so the loader and the ingest command can run off
// either backend.
type ArtifactSource struct {
	covisitPath    string
	popularityPath string
	fallbackPath   string
}

func NewArtifactSource(covisitPath, popularityPath, fallbackPath string) *ArtifactSource {
	return &ArtifactSource{
		covisitPath:    covisitPath,
		popularityPath: popularityPath,
		fallbackPath:   fallbackPath,
	}
}

func (s *ArtifactSource) AllPairs(ctx context.Context) ([]domain.CovisitPair, error) {
	var pairs []domain.CovisitPair
	err := scanLines(ctx, s.covisitPath, func(raw []byte, line int) error {
		var pair domain.CovisitPair
		if err := json.Unmarshal(raw, &pair); err != nil {
			return fmt.Errorf("failed to parse covisit pair at line %d: %w", line, err)
		}
		pairs = append(pairs, pair)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

func (s *ArtifactSource) AllCounts(ctx context.Context) ([]domain.ItemPopularity, error) {
	var counts []domain.ItemPopularity
	err := scanLines(ctx, s.popularityPath, func(raw []byte, line int) error {
		var count domain.ItemPopularity
		if err := json.Unmarshal(raw, &count); err != nil {
			return fmt.Errorf("failed to parse popularity count at line %d: %w", line, err)
		}
		counts = append(counts, count)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// AllItems accepts {"rank":R,"aid":A} records and rank-less {"aid":A}
// records, numbering the latter by line order.
func (s *ArtifactSource) AllItems(ctx context.Context) ([]domain.FallbackItem, error) {
	var items []domain.FallbackItem
	err := scanLines(ctx, s.fallbackPath, func(raw []byte, line int) error {
		var row struct {
			Rank *int  `json:"rank"`
			Aid  int64 `json:"aid"`
		}
		if err := json.Unmarshal(raw, &row); err != nil {
			return fmt.Errorf("failed to parse fallback item at line %d: %w", line, err)
		}

		rank := len(items)
		if row.Rank != nil {
			rank = *row.Rank
		}
		items = append(items, domain.FallbackItem{Rank: rank, Aid: row.Aid})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func scanLines(ctx context.Context, path string, fn func(raw []byte, line int) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open artifact file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context error: %w", err)
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		if err := fn(raw, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read artifact file: %w", err)
	}

	return nil
}

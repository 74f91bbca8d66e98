package cli

import (
	"context"
	"fmt"
	"time"

	"shopReco/internal/repository/jsonl"
	"shopReco/internal/repository/postgres"

	"github.com/spf13/cobra"
)

// NewIngestArtifactsCmd creates the 'ingest-artifacts' command.
func NewIngestArtifactsCmd() *cobra.Command {
	var covisitFile, popularityFile, fallbackFile, versionName string

	cmd := &cobra.Command{
		Use:   "ingest-artifacts",
		Short: "Replace the serving artifact tables from JSONL files",
		Long: `Swap the covisit_pairs, item_popularity and fallback_items tables for a
fresh offline build and record the version.`,
		Example: `  reco-cli ingest-artifacts --covisit covisit.jsonl --popularity popularity.jsonl --fallback fallback.jsonl
  reco-cli ingest-artifacts --covisit covisit.jsonl --popularity popularity.jsonl --fallback fallback.jsonl --version 2026-08-22`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestArtifacts(cmd.Context(), covisitFile, popularityFile, fallbackFile, versionName)
		},
	}

	cmd.Flags().StringVar(&covisitFile, "covisit", "", "JSONL file of {aid, neighbor, weight} pairs")
	cmd.Flags().StringVar(&popularityFile, "popularity", "", "JSONL file of {aid, count} rows")
	cmd.Flags().StringVar(&fallbackFile, "fallback", "", "JSONL file of {rank, aid} rows")
	cmd.Flags().StringVar(&versionName, "version", "", "Version label for this build (default: timestamp)")
	_ = cmd.MarkFlagRequired("covisit")
	_ = cmd.MarkFlagRequired("popularity")
	_ = cmd.MarkFlagRequired("fallback")

	return cmd
}

func runIngestArtifacts(ctx context.Context, covisitFile, popularityFile, fallbackFile, versionName string) error {
	_, db, err := openDatabase()
	if err != nil {
		return err
	}

	src := jsonl.NewArtifactSource(covisitFile, popularityFile, fallbackFile)

	pairs, err := src.AllPairs(ctx)
	if err != nil {
		return err
	}
	counts, err := src.AllCounts(ctx)
	if err != nil {
		return err
	}
	items, err := src.AllItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("fallback file %s has no items; the server refuses to start without a fallback list", fallbackFile)
	}

	start := time.Now()

	if err := postgres.NewCovisitRepository(db).ReplaceAll(ctx, pairs); err != nil {
		return err
	}
	if err := postgres.NewPopularityRepository(db).ReplaceAll(ctx, counts); err != nil {
		return err
	}
	if err := postgres.NewFallbackRepository(db).ReplaceAll(ctx, items); err != nil {
		return err
	}

	if versionName == "" {
		versionName = "build-" + time.Now().UTC().Format("20060102-150405")
	}
	if err := postgres.NewArtifactVersionRepository(db).Create(ctx, versionName); err != nil {
		return err
	}

	fmt.Printf("Artifacts %s ingested in %s\n", versionName, time.Since(start).Round(time.Millisecond))
	fmt.Printf("  covisit pairs:     %d\n", len(pairs))
	fmt.Printf("  popularity counts: %d\n", len(counts))
	fmt.Printf("  fallback items:    %d\n", len(items))

	return nil
}

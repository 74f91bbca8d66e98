package cli

import (
	"context"
	"fmt"
	"time"

	"shopReco/business/session"
	"shopReco/domain"
	"shopReco/internal/repository/jsonl"
	"shopReco/internal/repository/postgres"

	"github.com/spf13/cobra"
)

// NewIngestSessionsCmd creates the 'ingest-sessions' command.
func NewIngestSessionsCmd() *cobra.Command {
	var file string
	var batchSize int

	cmd := &cobra.Command{
		Use:   "ingest-sessions",
		Short: "Load JSONL session records into postgres",
		Long:  `Stream a {"session":N,"events":[...]} JSONL file into the sessions table.`,
		Example: `  reco-cli ingest-sessions --file test_trimmed.jsonl
  reco-cli ingest-sessions --file test_trimmed.jsonl --batch 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestSessions(cmd.Context(), file, batchSize)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSONL session file")
	cmd.Flags().IntVar(&batchSize, "batch", 500, "Sessions per upsert batch")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runIngestSessions(ctx context.Context, file string, batchSize int) error {
	_, db, err := openDatabase()
	if err != nil {
		return err
	}

	svc := session.NewSessionService(postgres.NewSessionRepository(db))
	src := jsonl.NewSessionSource(file)

	if batchSize <= 0 {
		batchSize = 500
	}

	start := time.Now()
	total := 0
	batch := make([]domain.Session, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := svc.SaveSessions(ctx, batch); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	err = src.Each(ctx, func(s domain.Session) error {
		batch = append(batch, s)
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	fmt.Printf("Ingested %d sessions in %s\n", total, time.Since(start).Round(time.Millisecond))

	return nil
}

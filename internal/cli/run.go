package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shopReco/business/reco"
	"shopReco/domain"
	"shopReco/internal/artifacts"
	"shopReco/internal/model"
	"shopReco/internal/repository/jsonl"

	"github.com/spf13/cobra"
)

// NewRunCmd creates the 'run' command: one offline pass of the full
// pipeline, no server or database required.
func NewRunCmd() *cobra.Command {
	var (
		covisitFile, popularityFile, fallbackFile string
		clicksModel, cartsModel, ordersModel      string
		sessionFile, aids                         string
		sessionID                                 int64
		nativeIterations                          int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the recommendation pipeline for one session",
		Long: `Load the artifact files and the three scoring models, build the
candidate pool and feature table for one session and print the ranked
lists per event type.`,
		Example: `  reco-cli run --covisit covisit.jsonl --popularity popularity.jsonl --fallback fallback.jsonl \
      --file test_trimmed.jsonl --session 12899779
  reco-cli run --covisit covisit.jsonl --popularity popularity.jsonl --fallback fallback.jsonl \
      --aids "59625 1253524 737445"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd.Context(), sessionFile, sessionID, aids)
			if err != nil {
				return err
			}
			return runPipeline(cmd.Context(), session, pipelineFiles{
				covisit:    covisitFile,
				popularity: popularityFile,
				fallback:   fallbackFile,
				clicks:     clicksModel,
				carts:      cartsModel,
				orders:     ordersModel,
			}, nativeIterations)
		},
	}

	cmd.Flags().StringVar(&covisitFile, "covisit", "", "JSONL file of {aid, neighbor, weight} pairs")
	cmd.Flags().StringVar(&popularityFile, "popularity", "", "JSONL file of {aid, count} rows")
	cmd.Flags().StringVar(&fallbackFile, "fallback", "", "JSONL file of {rank, aid} rows")
	cmd.Flags().StringVar(&clicksModel, "clicks-model", "models/clicks.txt", "Clicks model file")
	cmd.Flags().StringVar(&cartsModel, "carts-model", "models/carts.txt", "Carts model file")
	cmd.Flags().StringVar(&ordersModel, "orders-model", "models/orders.txt", "Orders model file")
	cmd.Flags().StringVarP(&sessionFile, "file", "f", "", "JSONL session file to read --session from")
	cmd.Flags().Int64Var(&sessionID, "session", -1, "Session id to look up in --file")
	cmd.Flags().StringVar(&aids, "aids", "", "Inline space-separated aid history instead of --file")
	cmd.Flags().IntVar(&nativeIterations, "native-iterations", 0, "Iteration cap hint for native boosters (0 = all)")
	_ = cmd.MarkFlagRequired("covisit")
	_ = cmd.MarkFlagRequired("popularity")
	_ = cmd.MarkFlagRequired("fallback")

	return cmd
}

type pipelineFiles struct {
	covisit    string
	popularity string
	fallback   string
	clicks     string
	carts      string
	orders     string
}

func resolveSession(ctx context.Context, sessionFile string, sessionID int64, aids string) (domain.Session, error) {
	if aids != "" {
		fields := strings.Fields(strings.ReplaceAll(aids, ",", " "))
		events := make([]domain.Event, 0, len(fields))
		for _, field := range fields {
			aid, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return domain.Session{}, fmt.Errorf("bad aid %q in --aids", field)
			}
			events = append(events, domain.Event{Aid: aid, Type: domain.EventClicks})
		}
		return domain.Session{SessionID: 0, Events: events}, nil
	}

	if sessionFile == "" || sessionID < 0 {
		return domain.Session{}, fmt.Errorf("either --aids or both --file and --session are required")
	}

	return jsonl.NewSessionSource(sessionFile).FindByID(ctx, sessionID)
}

func runPipeline(ctx context.Context, session domain.Session, files pipelineFiles, nativeIterations int) error {
	src := jsonl.NewArtifactSource(files.covisit, files.popularity, files.fallback)
	arts, err := artifacts.NewLoader(src, src, src).Load(ctx)
	if err != nil {
		return err
	}

	modelPaths := map[string]string{
		domain.EventClicks: files.clicks,
		domain.EventCarts:  files.carts,
		domain.EventOrders: files.orders,
	}
	scorers := make(map[string]reco.Scorer, len(modelPaths))
	for _, eventType := range domain.EventTypes() {
		scorer, err := model.Load(modelPaths[eventType], nativeIterations)
		if err != nil {
			return fmt.Errorf("%s model: %w", eventType, err)
		}
		scorers[eventType] = scorer
	}

	svc, err := reco.NewRecoService(arts, scorers, nil, nil, reco.Config{NativeIterations: nativeIterations})
	if err != nil {
		return err
	}

	recs, err := svc.Recommend(ctx, session)
	if err != nil {
		return err
	}

	fmt.Printf("session %d (%d events)\n", session.SessionID, len(session.Events))
	for _, eventType := range domain.EventTypes() {
		fmt.Printf("%d_%s: %s\n", recs.SessionID, eventType, domain.JoinAids(recs.ByType(eventType)))
	}
	if len(recs.Degraded) > 0 {
		fmt.Printf("degraded event types: %s\n", strings.Join(recs.Degraded, ", "))
	}

	return nil
}

package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"theorie-engine/internal/app"
	"theorie-engine/internal/config"
	"theorie-engine/internal/domain"
	"theorie-engine/internal/infra/memory"
	pgloader "theorie-engine/internal/infra/postgres"
	redisinfra "theorie-engine/internal/infra/redis"
	"theorie-engine/internal/theory"
	transport "theorie-engine/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz engine server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.SectionLoader = memory.NewStaticSectionLoader(sampleSections())
	if pool != nil {
		loader = pgloader.NewSectionLoader(pool)
	}

	sectionTTL := config.TTLDuration(cfg.Quiz.SectionTTL, 10*time.Minute)
	if redisClient != nil {
		loader = redisinfra.NewSectionCache(redisClient, loader, sectionTTL)
	}
	questionPool := memory.NewQuestionPool(loader)

	var store app.ProgressStore
	if redisClient != nil {
		progressTTL := config.TTLDuration(cfg.Quiz.ProgressTTL, 24*time.Hour)
		store = redisinfra.NewProgressStore(redisClient, progressTTL)
	} else {
		store = memory.NewProgressStore()
	}

	seed := cfg.Quiz.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	generator := app.NewGenerator(questionPool, seed)
	service := app.NewQuizService(generator, store)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz engine on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleSections derives a demo question set from the theory registries;
// swap the static loader for the Postgres-backed one in production.
func sampleSections() map[string][]domain.Question {
	stripCfg := theory.StripConfig{StripRoot: "C", OctaveCount: 1, KeyContext: "C"}
	majorStrip, err := theory.GenerateScaleAnswer("major", "C", stripCfg)
	if err != nil {
		log.Fatalf("sample content: %v", err)
	}
	dom7Strip, err := theory.GenerateChordAnswer("dominant7", "G", theory.StripConfig{StripRoot: "G", OctaveCount: 1, KeyContext: "C"})
	if err != nil {
		log.Fatalf("sample content: %v", err)
	}
	majorScale, err := theory.LookupScale("major")
	if err != nil {
		log.Fatalf("sample content: %v", err)
	}
	root, err := theory.ParsePitch("D4")
	if err != nil {
		log.Fatalf("sample content: %v", err)
	}
	dMajorNotes := make([]string, 0, len(majorScale.Intervals))
	for _, p := range majorScale.NotesForRoot(root) {
		dMajorNotes = append(dMajorNotes, p.Name())
	}

	return map[string][]domain.Question{
		"fundamentals": {
			{
				ID: "fund-q1", Kind: domain.MultipleChoice, SectionID: "fundamentals",
				Text: "How many semitones are in a perfect fifth?", TopicID: "intervals",
				Difficulty: 1, PointValue: 1, ConceptIDs: []string{"interval-basics"},
				MultipleChoice: &domain.MultipleChoicePayload{Options: []domain.Option{
					{ID: "o1", Text: "5"},
					{ID: "o2", Text: "7", Correct: true},
					{ID: "o3", Text: "8"},
				}},
			},
			{
				ID: "fund-q2", Kind: domain.ScaleStrip, SectionID: "fundamentals",
				Text: "Select every note of the C major scale.", TopicID: "scales",
				Difficulty: 1, PointValue: 2, ConceptIDs: []string{"major-scale"},
				ScaleStrip: &domain.ScaleStripPayload{
					StripRoot: "C", OctaveCount: 1, KeyContext: "C",
					Positions: majorStrip.Positions, Notes: majorStrip.Notes,
				},
			},
			{
				ID: "fund-q3", Kind: domain.ScaleInteractive, SectionID: "fundamentals",
				Text: "Name the notes of the D major scale.", TopicID: "scales",
				Difficulty: 2, PointValue: 3, ConceptIDs: []string{"major-scale", "key-signatures"},
				ScaleInteractive: &domain.ScaleInteractivePayload{
					ScaleKey: "major", Root: "D4", ExpectedNotes: dMajorNotes,
				},
			},
			{
				ID: "fund-q4", Kind: domain.ChordInteractive, SectionID: "fundamentals",
				Text: fmt.Sprintf("Build a G dominant 7th chord (%d positions).", len(dom7Strip.Positions)),
				TopicID: "chords", Difficulty: 2, PointValue: 3, ConceptIDs: []string{"seventh-chords"},
				ChordInteractive: &domain.ChordInteractivePayload{
					ChordType: "dominant7", Root: "G3", ExpectedPositions: dom7Strip.Positions,
				},
			},
		},
	}
}

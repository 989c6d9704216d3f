package container

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"sheetboard/adapters/llm"
	"sheetboard/adapters/llm/heuristic"
	"sheetboard/adapters/memory"
	"sheetboard/adapters/postgres"
	"sheetboard/ai"
	"sheetboard/app"
	"sheetboard/internal"
	"sheetboard/internal/config"
	"sheetboard/internal/errors"
	"sheetboard/internal/materialize"
	"sheetboard/internal/migration"
	"sheetboard/internal/usage"
	"sheetboard/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure; DB stays nil with the in-memory store
	DB *sqlx.DB

	BoardRepo ports.BoardRepository

	// Briefing producers; Classifier is always wired and fails at call time without a key
	Heuristic  ports.BriefingProducer
	Classifier ports.BriefingProducer
	Usage      *usage.Tracker

	Materializer  *materialize.Materializer
	ImportService *app.ImportService
}

// New creates a container and wires every component from the configuration.
// With a DATABASE_URL the board store is Postgres (migrated on start), otherwise in-memory.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel)),
	}

	if err := c.initRepositories(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	c.initProducers()

	c.Materializer = materialize.NewMaterializer(c.BoardRepo, c.Logger)
	c.ImportService = app.NewImportService(c.Heuristic, c.Classifier, c.BoardRepo, c.Materializer)

	log.Printf("Container initialized successfully (store=%s, model=%s)", c.storeName(), cfg.AI.Model)
	return c, nil
}

// initRepositories selects the board store
func (c *Container) initRepositories(ctx context.Context) error {
	if c.Config.Database.UsesMemoryStore() {
		log.Printf("[Container] DATABASE_URL not set, boards are kept in memory")
		c.BoardRepo = memory.NewBoardRepository()
		return nil
	}

	db, err := OpenDatabase(ctx, c.Config.Database.URL)
	if err != nil {
		return err
	}
	c.DB = db
	c.BoardRepo = postgres.NewBoardRepository(db)
	return nil
}

// initProducers wires the heuristic and classifier briefing producers
func (c *Container) initProducers() {
	c.Heuristic = heuristic.NewGenerator()

	if ai.IsPlaceholderKey(c.Config.AI.OpenAIKey) {
		log.Printf("[Container] OPENAI_API_KEY not configured, classifier analysis will report unavailable")
	}
	c.Usage = usage.NewTracker()
	client := usage.NewTrackingClient(ai.NewOpenAIClient(c.Config.AI), c.Usage)
	prompts := ai.NewPromptManager(c.Config.AI.PromptsDir)
	c.Classifier = llm.NewBriefingAdapter(client, prompts)
}

// OpenDatabase connects to Postgres and runs the board migrations
func OpenDatabase(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func (c *Container) storeName() string {
	if c.DB != nil {
		return "postgres"
	}
	return "memory"
}

// Shutdown releases the database connection, if any
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

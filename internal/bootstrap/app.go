package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"gradmatch-backend/internal/catalog"
	"gradmatch-backend/internal/documents"
	"gradmatch-backend/internal/llm"
	"gradmatch-backend/internal/llm/gemini"
	"gradmatch-backend/internal/llm/openai"
	"gradmatch-backend/internal/matchruns"
	"gradmatch-backend/internal/orchestrator"
	"gradmatch-backend/internal/profile"
	"gradmatch-backend/internal/queue"
	"gradmatch-backend/internal/shared/config"
	"gradmatch-backend/internal/shared/server"
	"gradmatch-backend/internal/shared/storage/db"
	"gradmatch-backend/internal/shared/storage/object"
	localstore "gradmatch-backend/internal/shared/storage/object/local"
	s3store "gradmatch-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies for the API server and the queue worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	DocumentsRepo documents.DocumentsRepo
	ProfileRepo   profile.ProfileRepo
	CatalogRepo   catalog.Repo
	MatchRunsRepo matchruns.Repo

	DocumentsService *documents.Service
	ProfileService   *profile.Service
	MatchRunsService *matchruns.Service

	DocumentsHandler *documents.Handler
	ProfileHandler   *profile.Handler
	MatchRunsHandler *matchruns.Handler
	CatalogHandler   *catalog.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		DocumentsHandler: app.DocumentsHandler,
		ProfileHandler:   app.ProfileHandler,
		MatchRunsHandler: app.MatchRunsHandler,
		CatalogHandler:   app.CatalogHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(ctx context.Context, app *App) error {
	var docRepo documents.DocumentsRepo
	var profileRepo profile.ProfileRepo
	var catalogRepo catalog.Repo
	var runsRepo matchruns.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		profileRepo = &profile.PGRepo{DB: app.DB}
		catalogRepo = &catalog.PGRepo{DB: app.DB}
		runsRepo = &matchruns.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		profileRepo = profile.NewMemoryRepo()
		catalogRepo = catalog.NewSeededMemoryRepo()
		runsRepo = matchruns.NewMemoryRepo()
	}

	docSvc := &documents.Service{
		Store: app.Store,
		Repo:  docRepo,
	}
	profileSvc := &profile.Service{Repo: profileRepo}

	llmClient, err := buildLLM(ctx, app.Config)
	if err != nil {
		return err
	}

	runsSvc := &matchruns.Service{
		Repo:     runsRepo,
		Docs:     docSvc,
		Profiles: profileSvc,
		Catalog:  catalogRepo,
		Orch:     orchestrator.New(llmClient, app.Config.AITimeout),
		Queue:    app.Queue,
		Provider: app.Config.LLMProvider,
		Model:    app.Config.LLMModel,
	}

	app.DocumentsRepo = docRepo
	app.ProfileRepo = profileRepo
	app.CatalogRepo = catalogRepo
	app.MatchRunsRepo = runsRepo
	app.DocumentsService = docSvc
	app.ProfileService = profileSvc
	app.MatchRunsService = runsSvc
	app.DocumentsHandler = documents.NewHandler(docSvc, int64(app.Config.MaxUploadMB)<<20)
	app.ProfileHandler = &profile.Handler{Svc: profileSvc}
	app.MatchRunsHandler = matchruns.NewHandler(runsSvc)
	app.CatalogHandler = &catalog.Handler{Repo: catalogRepo}

	return nil
}

// buildLLM selects the recommendation backend. A nil client disables the AI
// leg; the orchestrator then always takes the deterministic path.
func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		if apiKey == "" {
			log.Printf("bootstrap: OPENAI_API_KEY empty; AI recommendations disabled")
			return nil, nil
		}
		return openai.NewClient(apiKey, cfg.LLMModel)
	case "gemini":
		apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if apiKey == "" {
			log.Printf("bootstrap: GEMINI_API_KEY empty; AI recommendations disabled")
			return nil, nil
		}
		return gemini.NewClient(ctx, apiKey, cfg.LLMModel)
	default:
		return nil, nil
	}
}

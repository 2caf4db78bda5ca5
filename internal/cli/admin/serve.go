package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/crestline-labs/supportdesk/internal/api/handlers"
	"github.com/crestline-labs/supportdesk/internal/chat"
	"github.com/crestline-labs/supportdesk/internal/config"
	"github.com/crestline-labs/supportdesk/internal/database"
	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/inference"
	"github.com/crestline-labs/supportdesk/internal/jobs"
	"github.com/crestline-labs/supportdesk/internal/repository"
	"github.com/crestline-labs/supportdesk/internal/server"
	"github.com/crestline-labs/supportdesk/internal/service"
	"github.com/crestline-labs/supportdesk/internal/storage"
	"github.com/crestline-labs/supportdesk/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the supportdesk API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	companyRepo := repository.NewCompanyRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	faqRepo := repository.NewFAQRepository(pool)
	policyRepo := repository.NewPolicyRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	embeddingJobRepo := repository.NewEmbeddingJobRepository(pool)
	searchRepo := repository.NewSearchRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	authSvc := service.NewAuthService(companyRepo, userRepo, cfg.JWTSecret, cfg.TokenTTL)

	if cfg.InitCompanyName != "" {
		if err := bootstrapInitialCompany(ctx, cfg, authSvc, companyRepo); err != nil {
			return fmt.Errorf("failed to bootstrap initial company: %w", err)
		}
	}

	// Embeddings and semantic search need the OpenAI embeddings API.
	var embeddingClient service.EmbeddingClient
	var embeddingWorker *jobs.Worker
	var jobRepo service.EmbeddingJobRepositoryInterface
	if cfg.HasEmbeddings() {
		embedder := inference.NewEmbedder(cfg.OpenAIAPIKey)
		embeddingClient = embedder
		jobRepo = embeddingJobRepo

		embeddingSvc := service.NewEmbeddingService(embedder, productRepo, serviceRepo, faqRepo, policyRepo)
		embeddingProcessor := jobs.NewEmbeddingWorker(embeddingJobRepo, embeddingSvc)
		embeddingWorker = jobs.NewWorker("embedding", embeddingProcessor, 10*time.Second)
		go embeddingWorker.Start(ctx)
		log.Println("embedding worker started")
	}

	catalogSvc := service.NewCatalogService(productRepo, serviceRepo, faqRepo, policyRepo, jobRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo, serviceRepo, txRunner)

	var completer chat.Completer
	if cfg.HasInference() {
		switch cfg.InferenceProvider {
		case "openai":
			completer = inference.NewOpenAICompatible(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		default:
			completer = inference.NewHuggingFace(cfg.HFAPIKey, cfg.HFModel)
		}
	} else {
		completer = inference.NewDisabled()
		log.Println("no inference credential configured, chat completions disabled")
	}

	history := chat.NewHistory()
	orchestrator := chat.NewOrchestrator(chat.NewMatcher(chat.NewStore()), history, completer)

	var historySweeper *jobs.Worker
	if cfg.HistoryTTL > 0 {
		sweeper := jobs.NewHistorySweeper(history, cfg.HistoryTTL)
		historySweeper = jobs.NewWorker("history-sweeper", sweeper, time.Minute)
		go historySweeper.Start(ctx)
		log.Println("history sweeper started")
	}

	var logoHandler *handlers.LogoHandler
	if cfg.HasS3() {
		s3Config := storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		}
		s3Client, err := storage.NewS3Client(ctx, s3Config)
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)
		logoSvc := service.NewLogoService(companyRepo, &S3StorageAdapter{client: s3Client})
		logoHandler = handlers.NewLogoHandler(logoSvc)
	} else {
		logoHandler = handlers.NewLogoHandler(&NoOpLogoService{})
	}

	var searchHandler *handlers.SearchHandler
	if embeddingClient != nil {
		searchHandler = handlers.NewSearchHandler(service.NewSearchService(embeddingClient, searchRepo))
	} else {
		searchHandler = handlers.NewSearchHandler(&NoOpSearchService{})
	}

	routerCfg := server.RouterConfig{
		TokenVerifier:  authSvc,
		AuthHandler:    handlers.NewAuthHandler(authSvc),
		CatalogHandler: handlers.NewCatalogHandler(catalogSvc),
		CartHandler:    handlers.NewCartHandler(cartSvc),
		ChatHandler:    handlers.NewChatHandler(orchestrator),
		AssistHandler:  handlers.NewAssistHandler(orchestrator),
		SearchHandler:  searchHandler,
		LogoHandler:    logoHandler,
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if embeddingWorker != nil {
		embeddingWorker.Stop()
	}
	if historySweeper != nil {
		historySweeper.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

type S3StorageAdapter struct {
	client *storage.S3Client
}

func (a *S3StorageAdapter) GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error) {
	return a.client.GenerateUploadURL(ctx, key, contentType)
}

func (a *S3StorageAdapter) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	return a.client.GenerateDownloadURL(ctx, key)
}

func (a *S3StorageAdapter) DeleteObject(ctx context.Context, key string) error {
	return a.client.DeleteObject(ctx, key)
}

func (a *S3StorageAdapter) HeadObject(ctx context.Context, key string) (*service.ObjectMetadata, error) {
	meta, err := a.client.HeadObject(ctx, key)
	if err != nil {
		return nil, err
	}
	return &service.ObjectMetadata{
		ContentLength: meta.ContentLength,
		ContentType:   meta.ContentType,
		ETag:          meta.ETag,
	}, nil
}

type NoOpLogoService struct{}

func (s *NoOpLogoService) InitUpload(ctx context.Context, companyID, contentType string) (*service.InitLogoUploadResult, error) {
	return nil, fmt.Errorf("logo storage not configured: S3_ENDPOINT required")
}

func (s *NoOpLogoService) CompleteUpload(ctx context.Context, companyID, storageKey string) error {
	return fmt.Errorf("logo storage not configured: S3_ENDPOINT required")
}

func (s *NoOpLogoService) DownloadURL(ctx context.Context, companyID string) (string, error) {
	return "", fmt.Errorf("logo storage not configured: S3_ENDPOINT required")
}

func (s *NoOpLogoService) DeleteLogo(ctx context.Context, companyID string) error {
	return fmt.Errorf("logo storage not configured: S3_ENDPOINT required")
}

type NoOpSearchService struct{}

func (s *NoOpSearchService) Search(ctx context.Context, companyID, query string, limit int) ([]*service.SearchHit, error) {
	return nil, fmt.Errorf("semantic search not configured: OPENAI_API_KEY required")
}

func bootstrapInitialCompany(ctx context.Context, cfg *config.Config, authSvc *service.AuthService, companyRepo *repository.CompanyRepository) error {
	company, err := companyRepo.GetByName(ctx, domain.NormalizeCompanyName(cfg.InitCompanyName))
	if err != nil && err != domain.ErrCompanyNotFound {
		return fmt.Errorf("failed to check existing company: %w", err)
	}

	if company == nil {
		company, err = authSvc.RegisterCompany(ctx, service.RegisterCompanyInput{
			Name:     cfg.InitCompanyName,
			Email:    cfg.InitCompanyEmail,
			Password: cfg.InitAdminPassword,
		})
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}
		log.Printf("bootstrap: created company '%s' (id: %s)", company.Name, company.ID)
	} else {
		log.Printf("bootstrap: company '%s' already exists (id: %s)", company.Name, company.ID)
	}

	if cfg.InitAdminEmail != "" {
		_, err := authSvc.RegisterUser(ctx, service.RegisterUserInput{
			Handle:      "admin",
			Email:       cfg.InitAdminEmail,
			Password:    cfg.InitAdminPassword,
			CompanyName: cfg.InitCompanyName,
			Role:        string(domain.RoleAdmin),
		})
		if err == domain.ErrUserAlreadyExists || err == domain.ErrUserEmailAlreadyExists {
			log.Println("bootstrap: admin user already exists")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		log.Printf("bootstrap: created admin user '%s'", cfg.InitAdminEmail)
	}

	return nil
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("migrations applied")
	return nil
}

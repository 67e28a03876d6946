package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/api"
	metaapi "github.com/casemind/legal-team-backend/internal/api/meta"
	sessionapi "github.com/casemind/legal-team-backend/internal/api/session"
	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/integration/embedding"
	"github.com/casemind/legal-team-backend/internal/integration/llm"
	"github.com/casemind/legal-team-backend/internal/integration/websearch"
	"github.com/casemind/legal-team-backend/internal/pkg/validator"
	"github.com/casemind/legal-team-backend/internal/repository"
	"github.com/casemind/legal-team-backend/internal/usecase/analysis"
	"github.com/casemind/legal-team-backend/internal/usecase/session"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	if !cfg.CredentialPresent() {
		logger.Warn("GEMINI_API_KEY is not set; document ingestion and analysis will be rejected until it is configured")
	}

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	sessionRepo := repository.NewSessionPostgres(db)
	chunkStore := repository.NewChunkPostgres(db)
	reportRepo := repository.NewReportPostgres(db)
	logger.Info("Repositories initialized")

	var llmConnector analysis.LLMConnector
	var queryEmbedder analysis.EmbeddingConnector
	var batchEmbedder session.EmbeddingConnector
	var searchConnector analysis.SearchConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		llmConnector = llm.NewMockConnector(logger)
		embedMock := embedding.NewMockConnector(logger)
		queryEmbedder = embedMock
		batchEmbedder = embedMock
		searchConnector = websearch.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, cfg.ModelAPIKey, logger)
		embedConn := embedding.NewConnector(cfg.EmbedConnectorCfg, cfg.ModelAPIKey, logger)
		queryEmbedder = embedConn
		batchEmbedder = embedConn
		searchConnector = websearch.NewConnector(cfg.SearchConnectorCfg, logger)
	}

	uploadValidator := validator.NewValidator(cfg.FileUploadCfg, cfg.ChunkingCfg)
	logger.Info("Validators initialized")

	sessionUC := session.NewUsecase(
		sessionRepo,
		chunkStore,
		uploadValidator,
		batchEmbedder,
		cfg.KnowledgeBaseCfg,
		cfg.CredentialPresent(),
		logger,
	)

	analysisUC := analysis.NewUsecase(
		sessionRepo,
		chunkStore,
		reportRepo,
		uploadValidator,
		llmConnector,
		queryEmbedder,
		searchConnector,
		cfg.Agents,
		cfg.KnowledgeBaseCfg.TopK,
		cfg.CredentialPresent(),
		logger,
	)
	logger.Info("Use cases initialized")

	sessionHandler := sessionapi.NewHandler(sessionUC, analysisUC, cfg.ChunkingCfg, cfg.FileUploadCfg)
	metaHandler := metaapi.NewHandler(analysisUC.AnalysisTypes, cfg)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(sessionHandler, metaHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
		// Analyze keeps the connection open for the whole pipeline run.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

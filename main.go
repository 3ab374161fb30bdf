package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/config"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/database"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/handlers"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/logging"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/mcp"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/mcp/tools"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("transport", cfg.Transport),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
	)

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.MigrationsPath != "" {
		sqlDB := stdlib.OpenDBFromPool(db.Pool)
		if err := runMigrations(sqlDB, cfg.MigrationsPath, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	caps := database.DetectCapabilities(ctx, db, logger)

	documentRepo := repositories.NewDocumentRepository(db)
	provisionRepo := repositories.NewProvisionRepository(db)
	euRepo := repositories.NewEURepository(db)
	searchRepo := repositories.NewSearchRepository(db)
	metadataRepo := repositories.NewMetadataRepository(db)

	resolver := services.NewResolverService(documentRepo, logger)
	registry := &tools.Registry{
		Logger:       logger,
		Version:      cfg.Version,
		Capabilities: caps,
		Metadata:     services.NewMetadataService(ctx, metadataRepo, logger),
		Resolver:     resolver,
		Validator:    services.NewValidatorService(resolver, provisionRepo, logger),
		Currency:     services.NewCurrencyService(resolver, provisionRepo, logger),
		Search:       services.NewSearchService(searchRepo, resolver, logger),
		CrossRef:     services.NewCrossRefService(resolver, euRepo, logger),
		Documents:    documentRepo,
		Provisions:   provisionRepo,
	}

	mcpServer := mcp.NewServer("switzerland-law-mcp", cfg.Version, logger)
	registry.RegisterAll(mcpServer.MCP())

	switch cfg.Transport {
	case "stdio":
		logger.Info("Serving MCP on stdio", zap.String("version", cfg.Version))
		if err := mcpServer.ServeStdio(); err != nil {
			logger.Fatal("Stdio server failed", zap.Error(err))
		}
	case "http":
		mux := http.NewServeMux()
		handlers.NewHealthHandler(cfg, caps, logger).RegisterRoutes(mux)
		handlers.NewMCPHandler(mcpServer, logger).RegisterRoutes(mux)

		addr := cfg.BindAddr + ":" + cfg.Port
		logger.Info("Serving MCP over HTTP", zap.String("addr", addr), zap.String("version", cfg.Version))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}
}

// newLogger builds the process logger. Local runs get the development
// console encoder; everything else gets production JSON. On stdio
// transport logs must go to stderr so they cannot corrupt the JSON-RPC
// stream on stdout.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == "local" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	return zapCfg.Build()
}

// runMigrations is split out so the pgx stdlib handle is closed once
// migration finishes; the pool stays open for serving.
func runMigrations(sqlDB *sql.DB, path string, logger *zap.Logger) error {
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close migration connection", zap.Error(err))
		}
	}()
	return database.RunMigrations(sqlDB, path, logger)
}

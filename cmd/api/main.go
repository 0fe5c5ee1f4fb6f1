package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkhaus/backoffice-api/docs"
	"github.com/inkhaus/backoffice-api/internal/auth"
	"github.com/inkhaus/backoffice-api/internal/config"
	"github.com/inkhaus/backoffice-api/internal/database"
	"github.com/inkhaus/backoffice-api/internal/http/handler"
	"github.com/inkhaus/backoffice-api/internal/http/middleware"
	"github.com/inkhaus/backoffice-api/internal/http/router"
	"github.com/inkhaus/backoffice-api/internal/jobs"
	"github.com/inkhaus/backoffice-api/internal/legacy"
	"github.com/inkhaus/backoffice-api/internal/logger"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/service"
	"github.com/inkhaus/backoffice-api/internal/storage"
	"go.uber.org/zap"
)

// @title InkHaus Backoffice API
// @version 1.0
// @description Back-office API for the InkHaus print shop: clients, orders, materials, expenses, accounts and profit allocation

// @contact.name API Support
// @contact.email support@inkhaus.gh

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "backoffice-staging.inkhaus.gh"
	case "production":
		docs.SwaggerInfo.Host = "api.inkhaus.gh"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize artwork storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Legacy POS connection (optional, read-only). The app continues without
	// it when not configured or unreachable.
	var legacyClient *legacy.Client
	if cfg.Legacy.Enabled {
		legacyClient, err = legacy.NewClient(&cfg.Legacy, log)
		if err != nil {
			log.Warn("Legacy POS connection failed, continuing without it",
				zap.Error(err),
			)
		} else if legacyClient != nil {
			log.Info("Legacy POS connected",
				zap.Int("max_open_conns", cfg.Legacy.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.Legacy.QueryTimeout),
			)
		}
	} else {
		log.Info("Legacy POS not configured, skipping",
			zap.Bool("enabled", cfg.Legacy.Enabled),
		)
	}

	// Token manager and credential hasher
	tokens, err := auth.NewTokenManager(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	artworkRepo := repository.NewArtworkFileRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	ruleRepo := repository.NewAllocationRuleRepository(db)
	settingsRepo := repository.NewProfitSettingsRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, userRepo, log)
	authService := service.NewAuthService(userRepo, tokens, hasher, log)
	clientService := service.NewClientService(clientRepo, log)
	orderService := service.NewOrderService(orderRepo, clientRepo, settingsRepo, notificationService, log)
	artworkService := service.NewArtworkService(artworkRepo, orderRepo, fileStorage, log)
	materialService := service.NewMaterialService(materialRepo, log)
	expenseService := service.NewExpenseService(expenseRepo, log)
	recurringService := service.NewRecurringExpenseService(expenseRepo, notificationService, log)
	accountService := service.NewAccountService(accountRepo, log)
	allocationService := service.NewAllocationService(ruleRepo, accountRepo, log)
	settingsService := service.NewSettingsService(settingsRepo, log)
	importService := service.NewLegacyImportService(legacyClient, clientRepo, orderRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, log)
	clientHandler := handler.NewClientHandler(clientService, log)
	orderHandler := handler.NewOrderHandler(orderService, log)
	artworkHandler := handler.NewArtworkHandler(artworkService, cfg.Storage.MaxUploadSizeMB, log)
	materialHandler := handler.NewMaterialHandler(materialService, log)
	expenseHandler := handler.NewExpenseHandler(expenseService, log)
	accountHandler := handler.NewAccountHandler(accountService, log)
	allocationHandler := handler.NewAllocationHandler(allocationService, log)
	settingsHandler := handler.NewSettingsHandler(settingsService, log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)
	adminHandler := handler.NewAdminHandler(recurringService, importService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		clientHandler,
		orderHandler,
		artworkHandler,
		materialHandler,
		expenseHandler,
		accountHandler,
		allocationHandler,
		settingsHandler,
		notificationHandler,
		adminHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.RecurringExpenseEnabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterRecurringExpenseJob(
			scheduler,
			recurringService,
			log,
			cfg.Jobs.RecurringExpenseCron,
			jobs.DefaultJobTimeout,
		); err != nil {
			log.Error("Failed to register recurring expense job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with recurring expense job",
				zap.String("cron_expr", cfg.Jobs.RecurringExpenseCron),
			)
		}
	} else {
		log.Info("Recurring expense job disabled",
			zap.Bool("enabled", cfg.Jobs.RecurringExpenseEnabled),
		)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close legacy POS connection if initialized
		if legacyClient != nil {
			if err := legacyClient.Close(); err != nil {
				log.Warn("Error closing legacy POS connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

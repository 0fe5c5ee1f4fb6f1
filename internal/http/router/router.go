package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkhaus/backoffice-api/internal/auth"
	"github.com/inkhaus/backoffice-api/internal/config"
	"github.com/inkhaus/backoffice-api/internal/database"
	"github.com/inkhaus/backoffice-api/internal/http/handler"
	"github.com/inkhaus/backoffice-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/inkhaus/backoffice-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	authHandler         *handler.AuthHandler
	clientHandler       *handler.ClientHandler
	orderHandler        *handler.OrderHandler
	artworkHandler      *handler.ArtworkHandler
	materialHandler     *handler.MaterialHandler
	expenseHandler      *handler.ExpenseHandler
	accountHandler      *handler.AccountHandler
	allocationHandler   *handler.AllocationHandler
	settingsHandler     *handler.SettingsHandler
	notificationHandler *handler.NotificationHandler
	adminHandler        *handler.AdminHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	orderHandler *handler.OrderHandler,
	artworkHandler *handler.ArtworkHandler,
	materialHandler *handler.MaterialHandler,
	expenseHandler *handler.ExpenseHandler,
	accountHandler *handler.AccountHandler,
	allocationHandler *handler.AllocationHandler,
	settingsHandler *handler.SettingsHandler,
	notificationHandler *handler.NotificationHandler,
	adminHandler *handler.AdminHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		authHandler:         authHandler,
		clientHandler:       clientHandler,
		orderHandler:        orderHandler,
		artworkHandler:      artworkHandler,
		materialHandler:     materialHandler,
		expenseHandler:      expenseHandler,
		accountHandler:      accountHandler,
		allocationHandler:   allocationHandler,
		settingsHandler:     settingsHandler,
		notificationHandler: notificationHandler,
		adminHandler:        adminHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := "healthy"
		if !allHealthy {
			status = "unhealthy"
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Authenticated routes. Tokens from the password step are accepted
		// here so the PIN verification endpoint is reachable.
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			r.Post("/auth/verify-pin", rt.authHandler.VerifyPIN)
			r.Get("/auth/me", rt.authHandler.Me)

			// Fully verified sessions only
			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequirePIN)

				r.Post("/auth/change-pin", rt.authHandler.ChangePIN)

				// Users (admin only)
				r.Route("/users", func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Get("/", rt.authHandler.ListUsers)
					r.Post("/", rt.authHandler.CreateUser)
					r.Put("/{id}", rt.authHandler.UpdateUser)
				})

				// Clients
				r.Route("/clients", func(r chi.Router) {
					r.Get("/", rt.clientHandler.List)
					r.Post("/", rt.clientHandler.Create)
					r.Get("/{id}", rt.clientHandler.GetByID)
					r.Put("/{id}", rt.clientHandler.Update)
					r.Delete("/{id}", rt.clientHandler.Delete)
				})

				// Orders
				r.Route("/orders", func(r chi.Router) {
					r.Get("/", rt.orderHandler.List)
					r.Post("/", rt.orderHandler.Create)
					r.Get("/{id}", rt.orderHandler.GetByID)
					r.Put("/{id}", rt.orderHandler.Update)
					r.Delete("/{id}", rt.orderHandler.Delete)
					r.Post("/{id}/recalculate", rt.orderHandler.Recalculate)

					// Items and payments
					r.Post("/{id}/items", rt.orderHandler.AddItem)
					r.Put("/{id}/items/{itemId}", rt.orderHandler.UpdateItem)
					r.Delete("/{id}/items/{itemId}", rt.orderHandler.DeleteItem)
					r.Post("/{id}/payments", rt.orderHandler.AddPayment)
					r.Delete("/{id}/payments/{paymentId}", rt.orderHandler.DeletePayment)

					// Artwork files
					r.Post("/{id}/artwork", rt.artworkHandler.Upload)
					r.Get("/{id}/artwork", rt.artworkHandler.List)
					r.Get("/{id}/artwork/{fileId}", rt.artworkHandler.Download)
					r.Delete("/{id}/artwork/{fileId}", rt.artworkHandler.Delete)
				})

				// Material purchases
				r.Route("/materials", func(r chi.Router) {
					r.Get("/", rt.materialHandler.List)
					r.Post("/", rt.materialHandler.Create)
					r.Get("/{id}", rt.materialHandler.GetByID)
					r.Put("/{id}", rt.materialHandler.Update)
					r.Delete("/{id}", rt.materialHandler.Delete)

					r.Post("/{id}/payments", rt.materialHandler.AddPayment)
					r.Delete("/{id}/payments/{paymentId}", rt.materialHandler.DeletePayment)
					r.Post("/{id}/installments", rt.materialHandler.GenerateInstallments)
					r.Put("/{id}/installments/{installmentId}", rt.materialHandler.UpdateInstallmentStatus)
					r.Post("/{id}/notes", rt.materialHandler.AddNote)
					r.Delete("/{id}/notes/{noteId}", rt.materialHandler.DeleteNote)
				})

				// Expenses
				r.Route("/expenses", func(r chi.Router) {
					r.Get("/", rt.expenseHandler.List)
					r.Post("/", rt.expenseHandler.Create)
					r.Get("/occurrences", rt.expenseHandler.ListOccurrences)
					r.Post("/occurrences/{id}/complete", rt.expenseHandler.CompleteOccurrence)
					r.Post("/occurrences/{id}/skip", rt.expenseHandler.SkipOccurrence)
					r.Get("/{id}", rt.expenseHandler.GetByID)
					r.Put("/{id}", rt.expenseHandler.Update)
					r.Delete("/{id}", rt.expenseHandler.Delete)
				})

				// Accounts
				r.Route("/accounts", func(r chi.Router) {
					r.Get("/", rt.accountHandler.List)
					r.Post("/", rt.accountHandler.Create)
					r.Get("/{id}", rt.accountHandler.GetByID)
					r.Put("/{id}", rt.accountHandler.Update)
					r.Delete("/{id}", rt.accountHandler.Delete)
					r.Get("/{id}/transactions", rt.accountHandler.ListTransactions)
				})

				// Allocation rules and allocations
				r.Route("/allocation-rules", func(r chi.Router) {
					r.Get("/", rt.allocationHandler.ListRules)
					r.Post("/", rt.allocationHandler.CreateRule)
					r.Get("/{id}", rt.allocationHandler.GetRule)
					r.Put("/{id}", rt.allocationHandler.UpdateRule)
					r.Delete("/{id}", rt.allocationHandler.DeleteRule)
				})
				r.Post("/allocations", rt.allocationHandler.Allocate)
				r.Post("/allocations/preview", rt.allocationHandler.Preview)

				// Profit settings
				r.Route("/settings/profit", func(r chi.Router) {
					r.Get("/", rt.settingsHandler.Get)
					r.Put("/", rt.settingsHandler.Update)
					r.Post("/overrides", rt.settingsHandler.AddOverride)
					r.Put("/overrides/{id}", rt.settingsHandler.UpdateOverride)
					r.Delete("/overrides/{id}", rt.settingsHandler.DeleteOverride)
				})

				// Notifications
				r.Route("/notifications", func(r chi.Router) {
					r.Get("/", rt.notificationHandler.List)
					r.Get("/unread-count", rt.notificationHandler.CountUnread)
					r.Post("/read-all", rt.notificationHandler.MarkAllAsRead)
					r.Post("/{id}/read", rt.notificationHandler.MarkAsRead)
				})

				// Admin: manual job triggers and legacy imports
				r.Route("/admin", func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Post("/jobs/recurring-expenses/run", rt.adminHandler.RunRecurringExpenses)
					r.Post("/legacy/import/clients", rt.adminHandler.ImportLegacyClients)
					r.Post("/legacy/import/orders", rt.adminHandler.ImportLegacyOrders)
				})
			})
		})
	})

	return r
}

package routes

import (
	"caelo-backend/internal/adapters/http/handlers"
	"caelo-backend/internal/adapters/http/middleware"
	"caelo-backend/internal/adapters/persistence/repositories"
	"caelo-backend/internal/config"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/jwt"
	"caelo-backend/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	msgRepo := repositories.NewMessageRepository(db)
	metricsRepo := repositories.NewMetricsRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize auth primitives
	hasher := password.NewHasher(cfg.Bcrypt.Cost)
	codec := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.AccessTokenTTL())

	// Initialize services
	authService := services.NewAuthService(userRepo, hasher, codec)
	userService := services.NewUserService(userRepo)
	appService := services.NewApplicationService(appRepo)
	txnService := services.NewTransactionService(txnRepo, appService)
	noteService := services.NewNoteService(noteRepo, appService)
	msgService := services.NewMessageService(msgRepo, appService)
	dashboardService := services.NewDashboardService(appRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, db)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	appHandler := handlers.NewApplicationHandler(appService)
	txnHandler := handlers.NewTransactionHandler(txnService)
	noteHandler := handlers.NewNoteHandler(noteService)
	msgHandler := handlers.NewMessageHandler(msgService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminHandler := handlers.NewAdminHandler(settingsRepo, metricsRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	auth := middleware.AuthMiddleware(authService)

	// Auth routes (public, with stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", auth, authHandler.Me)

	// Application routes (authenticated; visibility enforced per record)
	appRoutes := apiV1.Group("/applications")
	appRoutes.Use(auth)
	appRoutes.Post("/", appHandler.Create)
	appRoutes.Get("/", appHandler.List)
	appRoutes.Get("/:id", appHandler.Get)
	appRoutes.Put("/:id", appHandler.Update)
	appRoutes.Delete("/:id", middleware.AdminOnly(), appHandler.Delete)

	// Transaction routes (recording is staff-only; listing follows the
	// application access check)
	appRoutes.Get("/:id/transactions", txnHandler.List)
	appRoutes.Post("/:id/transactions", middleware.StaffOnly(), txnHandler.Create)

	// Team note routes. Writing is staff-only; reading follows the
	// application access check, with private notes filtered out for
	// borrowers in the service layer.
	appRoutes.Get("/:id/notes", noteHandler.List)
	appRoutes.Post("/:id/notes", middleware.StaffOnly(), noteHandler.Create)

	// Message routes
	appRoutes.Get("/:id/messages", msgHandler.List)
	appRoutes.Post("/:id/messages", msgHandler.Create)

	msgRoutes := apiV1.Group("/messages")
	msgRoutes.Use(auth)
	msgRoutes.Put("/:id/read", msgHandler.MarkRead)

	// User management routes (staff read, admin write)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth)
	userRoutes.Get("/", middleware.StaffOnly(), userHandler.List)
	userRoutes.Get("/:id", middleware.StaffOnly(), userHandler.Get)
	userRoutes.Put("/:id", middleware.AdminOnly(), userHandler.Update)
	userRoutes.Delete("/:id", middleware.AdminOnly(), userHandler.Deactivate)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(auth)
	dashboardRoutes.Get("/stats", dashboardHandler.Stats)

	// Admin routes (settings + metrics snapshots)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(auth)
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Get("/settings", adminHandler.ListSettings)
	adminRoutes.Get("/settings/:key", adminHandler.GetSetting)
	adminRoutes.Put("/settings/:key", adminHandler.UpsertSetting)
	adminRoutes.Get("/metrics/latest", adminHandler.LatestMetrics)
}

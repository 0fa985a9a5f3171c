package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lendstack/agency-system/internal/api/handler"
	"github.com/lendstack/agency-system/internal/api/middleware"
	"github.com/lendstack/agency-system/internal/core/domain"
	"github.com/lendstack/agency-system/internal/core/service"
	"github.com/lendstack/agency-system/internal/infrastructure/config"
	mongodb "github.com/lendstack/agency-system/internal/infrastructure/db/mongo"
	redisdb "github.com/lendstack/agency-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is created by the caller so its workers share the process
// lifecycle context.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit service.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("agency"))

	// --- Dependencies ---
	tenantRepo := mongodb.NewTenantRepository(db)
	userRepo := mongodb.NewUserRepository(db, tenantRepo)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Auth.LoginMaxFailures)

	tokenService := service.NewTokenService(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTTL,
		cfg.Auth.RefreshTTL,
	)
	authService := service.NewAuthService(userRepo, tokenService, throttle, audit, log)
	provisioningService := service.NewProvisioningService(userRepo, tenantRepo, tokenService, audit, log)

	authHandler := handler.NewAuthHandler(provisioningService, authService)
	authMiddleware := middleware.Auth(cfg.Auth.AccessSecret)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Auth routes ---
	// Bootstrap, login and refresh are unauthenticated: no acting role exists yet.
	e.POST("/auth/create-admin", authHandler.CreateAdmin)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh-token", authHandler.RefreshToken)

	e.POST("/auth/create-manager", authHandler.CreateManager, authMiddleware, adminOnly)
	e.POST("/auth/create-loan-officer", authHandler.CreateLoanOfficer, authMiddleware, adminOnly)
	e.GET("/auth/me", authHandler.Me, authMiddleware)
	e.DELETE("/auth/me", authHandler.Delete, authMiddleware)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}

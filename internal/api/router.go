package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tecnorev/commerce-api/internal/api/handler"
	"github.com/tecnorev/commerce-api/internal/api/middleware"
	"github.com/tecnorev/commerce-api/internal/core/domain"
	"github.com/tecnorev/commerce-api/internal/core/service"
	mongostore "github.com/tecnorev/commerce-api/internal/infrastructure/db/mongo"
	redisstore "github.com/tecnorev/commerce-api/internal/infrastructure/db/redis"
	"github.com/tecnorev/commerce-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit dispatcher is constructed in main (it owns the worker lifecycle)
// and injected here.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	audit handler.AuditDispatcher,
	log zerolog.Logger,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("commerce"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)

	codec, err := service.NewTokenCodec(service.TokenConfig{
		Secret:    cfg.JWT.Secret,
		Algorithm: cfg.JWT.Algorithm,
		TTL:       cfg.JWT.TTL(),
	})
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(userRepo, codec, log)
	userService := service.NewUserService(userRepo, log)
	limiter := redisstore.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window(), log)

	authHandler := handler.NewAuthHandler(authService, userService, limiter, audit)
	adminHandler := handler.NewAdminHandler(authService, userService, audit)
	authMiddleware := middleware.Auth(codec, userRepo)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/token", authHandler.Token)
	auth.GET("/profile", authHandler.GetProfile, authMiddleware)
	auth.PATCH("/profile", authHandler.UpdateProfile, authMiddleware)

	// --- Admin routes (SUPER_ADMIN only) ---
	admin := e.Group("/api/admin", authMiddleware, middleware.RBAC(domain.RoleSuperAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/roles", adminHandler.ListRoles)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}

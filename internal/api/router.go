package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PankajGoutam/User-Api/internal/api/handler"
	"github.com/PankajGoutam/User-Api/internal/api/middleware"
	"github.com/PankajGoutam/User-Api/internal/core/service"
	"github.com/PankajGoutam/User-Api/internal/infrastructure/config"
	mongodb "github.com/PankajGoutam/User-Api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("userapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := service.NewPasswordHasher()
	tokens := service.NewTokenManager(cfg.JWTSecret, service.DefaultTokenTTL)
	userService := service.NewUserService(userRepo, hasher, tokens, log)
	userHandler := handler.NewUserHandler(userService)
	authenticate := middleware.Authenticate(tokens)

	// --- User routes ---
	users := e.Group("/api/v1/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/profile", userHandler.Profile, authenticate)
	users.GET("", userHandler.List, authenticate)
	users.POST("/update", userHandler.Update, authenticate)
	users.DELETE("/delete", userHandler.Delete, authenticate)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

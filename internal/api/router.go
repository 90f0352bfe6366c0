package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jeugdwerk/games-api/internal/api/handler"
	"github.com/jeugdwerk/games-api/internal/api/middleware"
	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/service"
	"github.com/jeugdwerk/games-api/internal/infrastructure/config"
	mongodb "github.com/jeugdwerk/games-api/internal/infrastructure/db/mongo"
	redisdb "github.com/jeugdwerk/games-api/internal/infrastructure/db/redis"
	"github.com/jeugdwerk/games-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("jeugdwerk"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	gameRepo := mongodb.NewGameRepository(db)
	tagRepo := mongodb.NewTagRepository(db)
	intensityRepo := mongodb.NewIntensityRepository(db)
	cache := redisdb.NewReferenceCache(rdb)

	tokenTTL := time.Duration(cfg.JWTExpiresHours) * time.Hour
	userService := service.NewUserService(userRepo, cfg.JWTSecret, cfg.JWTIssuer, tokenTTL, log)
	gameService := service.NewGameService(gameRepo, userRepo, intensityRepo, tagRepo, cache, log)
	tagService := service.NewTagService(tagRepo, cache, log)
	intensityService := service.NewIntensityService(intensityRepo, cache, log)

	userHandler := handler.NewUserHandler(userService)
	gameHandler := handler.NewGameHandler(gameService)
	referenceHandler := handler.NewReferenceHandler(tagService, intensityService)

	auth := middleware.Auth(cfg.JWTSecret)
	privileged := middleware.RequireRole(domain.RoleAdmin, domain.RoleSuperadmin)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/signup", userHandler.Signup)
	users.POST("/login", userHandler.Login)
	users.GET("/me", userHandler.Me, auth)
	users.GET("/username/:username", userHandler.GetByUsername, auth)
	users.GET("", userHandler.List, auth, privileged)

	// --- Game routes ---
	games := e.Group("/games")
	games.GET("", gameHandler.List)
	games.GET("/random", gameHandler.Random)
	games.GET("/username/:username", gameHandler.ListByUsername, auth)
	games.POST("/filter", gameHandler.Filter, auth)
	games.POST("", gameHandler.Create, auth)
	games.GET("/:id", gameHandler.Get)
	games.PUT("/:id", gameHandler.Update, auth)
	games.DELETE("/:id", gameHandler.Delete, auth)

	// --- Reference data ---
	e.GET("/tags", referenceHandler.ListTags)
	e.GET("/tags/:id", referenceHandler.GetTag)
	e.GET("/intensities", referenceHandler.ListIntensities)
	e.GET("/intensities/:id", referenceHandler.GetIntensity)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/pleasybank_client/cmd/docs"
	"github.com/SscSPs/pleasybank_client/internal/adapters/backend"
	"github.com/SscSPs/pleasybank_client/internal/adapters/lock"
	portsrepo "github.com/SscSPs/pleasybank_client/internal/core/ports/repositories"
	"github.com/SscSPs/pleasybank_client/internal/core/services"
	"github.com/SscSPs/pleasybank_client/internal/handlers"
	"github.com/SscSPs/pleasybank_client/internal/middleware"
	"github.com/SscSPs/pleasybank_client/internal/platform/config"
	"github.com/SscSPs/pleasybank_client/internal/utils"
	"github.com/SscSPs/pleasybank_client/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

// @title PleasyBank Client API
// @version 1.0
// @description Account views, classified history and account closing on top of the PleasyBank backend.

// @host localhost:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it locks and rate limits hold per replica only.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.CloseRedisClient(redisClient)
	} else {
		logger.Warn("REDIS_URL not set, settlement locks and rate limits are local to this process")
	}

	repos, settlementLimiter, err := newLocksAndLimiter(cfg, redisClient)
	if err != nil {
		logger.Error("Failed to set up rate limiting", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	backendClient := backend.NewClient(cfg.BackendBaseURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.BackendTimeout}))
	serviceContainer := services.NewServiceContainer(cfg, backendClient, repos, posthogClient)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, settlementLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("backend", cfg.BackendBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", slog.String("error", err.Error()))
	}
}

// newLocksAndLimiter picks Redis-backed settlement locks and rate limit counters when a
// client is available, in-memory ones otherwise.
func newLocksAndLimiter(cfg *config.Config, redisClient *redis.Client) (portsrepo.RepositoryProvider, *limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.SettlementRateLimit)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	if redisClient == nil {
		return lock.NewRepositoryProvider(nil), limiter.New(memorystore.NewStore(), rate), nil
	}

	store, err := redisstore.NewStoreWithOptions(redisClient, limiter.StoreOptions{
		Prefix:   "pleasybank:ratelimit",
		MaxRetry: 3,
	})
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	return lock.NewRepositoryProvider(redisClient), limiter.New(store, rate), nil
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

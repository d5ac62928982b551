package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/middleware"
	"github.com/SscSPs/pleasybank_client/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"golang.org/x/text/language"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// settlementLimiter may be nil to disable rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	settlementLimiter *limiter.Limiter,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, settlementLimiter)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	settlementLimiter *limiter.Limiter,
) {
	defaultLanguage := language.Make(cfg.DefaultLocale)

	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	accounts := v1.Group("/accounts")
	registerAccountRoutes(accounts, services.Portfolio, defaultLanguage)
	registerTransactionRoutes(accounts, services.History, cfg.HistoryPageSize, defaultLanguage)
	registerSettlementRoutes(accounts, services.Settlement, settlementLimiter, defaultLanguage)
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/dto"
	"github.com/SscSPs/pleasybank_client/internal/middleware"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	portfolioService portssvc.PortfolioSvc
	defaultLanguage  language.Tag
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ps portssvc.PortfolioSvc, defaultLanguage language.Tag) *accountHandler {
	return &accountHandler{
		portfolioService: ps,
		defaultLanguage:  defaultLanguage,
	}
}

// registerAccountRoutes registers the read-only account routes.
func registerAccountRoutes(accounts *gin.RouterGroup, portfolioService portssvc.PortfolioSvc, defaultLanguage language.Tag) {
	h := newAccountHandler(portfolioService, defaultLanguage)

	accounts.GET("", h.listAccounts)
	accounts.GET("/:accountID", h.getAccount)
}

// listAccounts godoc
// @Summary List the caller's accounts
// @Description Lists every account with its display balance, plus the net worth
// @Tags accounts
// @Produce  json
// @Param   Accept-Language header string false "Label language (ko, en)"
// @Success 200 {object} dto.PortfolioResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Banking backend unavailable"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.portfolioService.GetPortfolio(c.Request.Context())
	if err != nil {
		writeBackendError(c, logger, err, "Failed to list accounts")
		return
	}

	logger.Debug("Portfolio served", slog.Int("accounts", len(report.Accounts)))
	c.JSON(http.StatusOK, dto.ToPortfolioResponse(report, requestLanguage(c, h.defaultLanguage)))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves one account with its display balance
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 502 {object} map[string]string "Banking backend unavailable"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", accountID))

	summary, err := h.portfolioService.GetAccountSummary(c.Request.Context(), accountID)
	if err != nil {
		writeBackendError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(*summary, requestLanguage(c, h.defaultLanguage)))
}

// writeBackendError answers a failed read. Anything the backend did not explain is a 502.
func writeBackendError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Backend refused the caller", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
	}
}

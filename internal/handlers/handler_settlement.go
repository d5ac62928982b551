package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/dto"
	"github.com/SscSPs/pleasybank_client/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"golang.org/x/text/language"
)

// settlementHandler drives the clear-then-close workflow of an account.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
	defaultLanguage   language.Tag
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade, defaultLanguage language.Tag) *settlementHandler {
	return &settlementHandler{
		settlementService: ss,
		defaultLanguage:   defaultLanguage,
	}
}

// registerSettlementRoutes registers the settlement routes. The POST routes move money and
// are rate limited when rateLimiter is set.
func registerSettlementRoutes(accounts *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade, rateLimiter *limiter.Limiter, defaultLanguage language.Tag) {
	h := newSettlementHandler(settlementService, defaultLanguage)

	limited := []gin.HandlerFunc{}
	if rateLimiter != nil {
		limited = append(limited, middleware.RateLimit(rateLimiter))
	}

	settlement := accounts.Group("/:accountID/settlement")
	{
		settlement.POST("", append(limited, h.beginSettlement)...)
		settlement.GET("", h.getSettlement)
		settlement.POST("/counterpart", append(limited, h.selectCounterpart)...)
		settlement.DELETE("", h.cancelSettlement)
	}
}

// beginSettlement godoc
// @Summary Start closing an account
// @Description Starts the clear-then-close workflow. An empty account is closed at once; otherwise the response lists the accounts that can take the residual balance.
// @Tags settlement
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.SettlementResponse "Workflow started, or account closed"
// @Failure 400 {object} map[string]string "Account cannot be closed"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "A settlement is already running for this account"
// @Failure 422 {object} map[string]interface{} "No counterpart, or unsupported residual"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 502 {object} map[string]interface{} "Close failed"
// @Security BearerAuth
// @Router /accounts/{accountID}/settlement [post]
func (h *settlementHandler) beginSettlement(c *gin.Context) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", accountID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to begin settlement")
	state, err := h.settlementService.BeginSettlement(c.Request.Context(), userID, accountID)
	if err != nil {
		h.writeError(c, logger, state, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(state, requestLanguage(c, h.defaultLanguage)))
}

// getSettlement godoc
// @Summary Get the settlement of an account
// @Description Returns the running workflow, or the last finished one, when the caller started it
// @Tags settlement
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} map[string]string "No settlement for this account"
// @Security BearerAuth
// @Router /accounts/{accountID}/settlement [get]
func (h *settlementHandler) getSettlement(c *gin.Context) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", accountID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	state, err := h.settlementService.GetSettlement(c.Request.Context(), userID, accountID)
	if err != nil {
		h.writeError(c, logger, nil, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(state, requestLanguage(c, h.defaultLanguage)))
}

// selectCounterpart godoc
// @Summary Choose the counterpart and settle
// @Description Transfers the residual balance (or pays the loan off) and closes the account
// @Tags settlement
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   request body dto.SelectCounterpartRequest true "Counterpart account"
// @Success 200 {object} dto.SettlementResponse "Account closed"
// @Failure 400 {object} map[string]string "Invalid counterpart"
// @Failure 404 {object} map[string]string "No settlement for this account"
// @Failure 409 {object} map[string]string "Settlement already finished or running"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 502 {object} map[string]interface{} "Clearing or close failed; body carries the workflow state"
// @Security BearerAuth
// @Router /accounts/{accountID}/settlement/counterpart [post]
func (h *settlementHandler) selectCounterpart(c *gin.Context) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", accountID))

	var req dto.SelectCounterpartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SelectCounterpart", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received counterpart selection", slog.String("counterpart_account_id", req.CounterpartAccountID))
	state, err := h.settlementService.SelectCounterpart(c.Request.Context(), userID, accountID, req.CounterpartAccountID)
	if err != nil {
		h.writeError(c, logger, state, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(state, requestLanguage(c, h.defaultLanguage)))
}

// cancelSettlement godoc
// @Summary Cancel a settlement
// @Description Abandons a workflow that is still waiting for its counterpart
// @Tags settlement
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} map[string]string "No settlement for this account"
// @Failure 409 {object} map[string]string "Money already moved, or workflow finished"
// @Security BearerAuth
// @Router /accounts/{accountID}/settlement [delete]
func (h *settlementHandler) cancelSettlement(c *gin.Context) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", accountID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	state, err := h.settlementService.CancelSettlement(c.Request.Context(), userID, accountID)
	if err != nil {
		h.writeError(c, logger, state, err)
		return
	}
	logger.Info("Settlement cancelled")
	c.JSON(http.StatusOK, dto.ToSettlementResponse(state, requestLanguage(c, h.defaultLanguage)))
}

// settlementStatus maps a settlement error to its HTTP status.
func settlementStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrSettlementInProgress),
		errors.Is(err, apperrors.ErrSettlementTerminal),
		errors.Is(err, apperrors.ErrCancelNotAllowed),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNoCounterpartAvailable),
		errors.Is(err, apperrors.ErrUnsupportedResidual):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrClearingFailed),
		errors.Is(err, apperrors.ErrCloseFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers a failed settlement call. When the workflow got far enough to have a
// state, the body carries it so the UI can tell whether money moved.
func (h *settlementHandler) writeError(c *gin.Context, logger *slog.Logger, state *domain.SettlementState, err error) {
	status := settlementStatus(err)
	body := gin.H{"error": err.Error()}
	if status == http.StatusInternalServerError {
		logger.Error("Settlement request failed", slog.String("error", err.Error()))
		body["error"] = "Settlement request failed"
	} else {
		logger.Warn("Settlement request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	if state != nil {
		body["settlement"] = dto.ToSettlementResponse(state, requestLanguage(c, h.defaultLanguage))
	}
	c.JSON(status, body)
}

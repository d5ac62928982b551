package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/dto"
	"github.com/SscSPs/pleasybank_client/internal/middleware"
	"github.com/SscSPs/pleasybank_client/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// transactionHandler serves classified account history.
type transactionHandler struct {
	historyService  portssvc.HistorySvc
	defaultPageSize int
	defaultLanguage language.Tag
}

func newTransactionHandler(hs portssvc.HistorySvc, defaultPageSize int, defaultLanguage language.Tag) *transactionHandler {
	return &transactionHandler{
		historyService:  hs,
		defaultPageSize: defaultPageSize,
		defaultLanguage: defaultLanguage,
	}
}

func registerTransactionRoutes(accounts *gin.RouterGroup, historyService portssvc.HistorySvc, defaultPageSize int, defaultLanguage language.Tag) {
	h := newTransactionHandler(historyService, defaultPageSize, defaultLanguage)

	accounts.GET("/:accountID/transactions", h.listTransactions)
}

// listTransactions godoc
// @Summary List an account's transactions
// @Description Lists one page of history, each row signed and labelled from this account's point of view
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   size query int false "Page size (max 100)"
// @Param   nextToken query string false "Token from the previous page"
// @Param   startDate query string false "First day, YYYY-MM-DD"
// @Param   endDate query string false "Last day, YYYY-MM-DD"
// @Param   type query string false "Backend transaction type filter"
// @Param   Accept-Language header string false "Label language (ko, en)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 502 {object} map[string]string "Banking backend unavailable"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	accountID := c.Param("accountID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", accountID))

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := pagination.DecodeHistoryToken(params.NextToken, accountID)
	if err != nil {
		logger.Warn("Invalid history token", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nextToken"})
		return
	}

	filter := domain.TransactionFilter{
		Page: page,
		Size: params.Size,
		Type: strings.ToUpper(strings.TrimSpace(params.Type)),
	}
	if filter.Size == 0 {
		filter.Size = h.defaultPageSize
	}
	// Already validated by the binding.
	if params.StartDate != "" {
		start, _ := time.Parse(time.DateOnly, params.StartDate)
		filter.StartDate = &start
	}
	if params.EndDate != "" {
		end, _ := time.Parse(time.DateOnly, params.EndDate)
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate is before startDate"})
		return
	}

	history, err := h.historyService.ListClassifiedTransactions(c.Request.Context(), accountID, filter)
	if err != nil {
		writeBackendError(c, logger, err, "Failed to list transactions")
		return
	}

	var nextToken *string
	if history.HasMore {
		token := pagination.EncodeHistoryToken(accountID, history.Page+1)
		nextToken = &token
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(history, nextToken, requestLanguage(c, h.defaultLanguage)))
}

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
)

type transferBody struct {
	Amount          json.Number `json:"amount"`
	Description     string      `json:"description,omitempty"`
	TransactionType string      `json:"transactionType,omitempty"`
}

// Transfer moves money between two accounts. Loan payoffs and payouts carry an explicit
// transaction type so the backend records them as such.
func (c *Client) Transfer(ctx context.Context, req domain.TransferRequest) (any, error) {
	body := transferBody{
		Amount:      json.Number(req.Amount.String()),
		Description: req.Description,
	}
	switch req.Category {
	case domain.CategoryLoanRepayment:
		body.TransactionType = domain.CodeLoanPayment
	case domain.CategoryLoanDisbursement:
		body.TransactionType = domain.CodeLoanDisbursement
	}

	path := accountPath(req.FromAccountID) + "/transfer/" + url.PathEscape(req.ToAccountID)
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// ListTransactions fetches one page of an account's history.
func (c *Client) ListTransactions(ctx context.Context, accountID string, filter domain.TransactionFilter) ([]any, error) {
	path := "/api/transactions/account/" + url.PathEscape(accountID)

	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	if filter.Size > 0 {
		query.Set("size", strconv.Itoa(filter.Size))
	}
	if filter.StartDate != nil {
		query.Set("startDate", filter.StartDate.Format(time.DateOnly))
	}
	if filter.EndDate != nil {
		query.Set("endDate", filter.EndDate.Format(time.DateOnly))
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}

	decoded, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return pageContent(http.MethodGet, path, decoded)
}

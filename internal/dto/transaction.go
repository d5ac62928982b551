package dto

import (
	"time"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	"github.com/SscSPs/pleasybank_client/internal/utils"
	"github.com/SscSPs/pleasybank_client/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// ListTransactionsParams defines the query parameters for one page of account history.
type ListTransactionsParams struct {
	Size      int    `form:"size" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Type      string `form:"type" binding:"omitempty,max=40"`
}

// TransactionResponse is one history row as seen from the requested account.
// Amount is signed for display; Glyph is "+", "-", "↔" or empty for a zero amount.
type TransactionResponse struct {
	TransactionID   string           `json:"transactionID"`
	OccurredAt      *time.Time       `json:"occurredAt,omitempty"`
	RawType         string           `json:"rawType"`
	Description     string           `json:"description"`
	FromAccountID   string           `json:"fromAccountID,omitempty"`
	ToAccountID     string           `json:"toAccountID,omitempty"`
	Status          string           `json:"status,omitempty"`
	Direction       domain.Direction `json:"direction"`
	Category        domain.Category  `json:"category"`
	CategoryLabel   string           `json:"categoryLabel"`
	Amount          decimal.Decimal  `json:"amount"`
	FormattedAmount string           `json:"formattedAmount"`
	Glyph           string           `json:"glyph"`
	Ambiguous       bool             `json:"ambiguous,omitempty"`
	BalanceAfter    *decimal.Decimal `json:"balanceAfter,omitempty"`
}

// ListTransactionsResponse wraps one classified history page.
type ListTransactionsResponse struct {
	Account      AccountResponse       `json:"account"`
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
	Malformed    int                   `json:"malformed,omitempty"`
}

// ToTransactionResponse converts a classified transaction to TransactionResponse DTO
func ToTransactionResponse(entry domain.ClassifiedTransaction, viewed domain.Account, tag language.Tag) TransactionResponse {
	tx := entry.Transaction
	resp := TransactionResponse{
		TransactionID:   tx.ID,
		RawType:         tx.RawType,
		Description:     tx.Description,
		FromAccountID:   tx.FromAccountID,
		ToAccountID:     tx.ToAccountID,
		Status:          tx.Status,
		Direction:       entry.Decision.Direction,
		Category:        entry.Decision.Category,
		CategoryLabel:   accounting.CategoryLabel(viewed.AccountType.IsLoan(), entry.Decision.Category, tag),
		Amount:          entry.Decision.DisplayAmount,
		FormattedAmount: utils.FormatAmount(entry.Decision.DisplayAmount, viewed.Currency, tag),
		Glyph:           entry.Decision.Glyph,
		Ambiguous:       entry.Decision.Ambiguous,
		BalanceAfter:    tx.BalanceAfter,
	}
	if !tx.OccurredAt.IsZero() {
		occurredAt := tx.OccurredAt
		resp.OccurredAt = &occurredAt
	}
	return resp
}

// ToListTransactionsResponse converts a history page; nextToken is nil on the last page.
func ToListTransactionsResponse(page *domain.HistoryPage, nextToken *string, tag language.Tag) ListTransactionsResponse {
	transactions := make([]TransactionResponse, len(page.Entries))
	for i, entry := range page.Entries {
		transactions[i] = ToTransactionResponse(entry, page.Account, tag)
	}
	return ListTransactionsResponse{
		Account: ToAccountResponse(domain.AccountSummary{
			Account:        page.Account,
			DisplayBalance: accounting.DisplayBalance(page.Account),
			Contribution:   accounting.PortfolioContribution(page.Account),
		}, tag),
		Transactions: transactions,
		NextToken:    nextToken,
		Malformed:    page.Malformed,
	}
}

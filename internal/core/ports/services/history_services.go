package services

import (
	"context"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
)

// HistorySvc serves classified account history.
type HistorySvc interface {
	// ListClassifiedTransactions fetches one page of the account's history and classifies
	// every record from that account's point of view.
	ListClassifiedTransactions(ctx context.Context, accountID string, filter domain.TransactionFilter) (*domain.HistoryPage, error)
}

package services

import (
	"context"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
)

// The backend collaborators return raw decoded JSON. Interpreting it is the job of the
// mapping package, never of the client.

// TransferClient moves money between two accounts.
type TransferClient interface {
	// Transfer issues one transfer. Callers decide whether a retry is safe.
	Transfer(ctx context.Context, req domain.TransferRequest) (any, error)
}

// AccountClient reads and closes accounts.
type AccountClient interface {
	GetAccount(ctx context.Context, accountID string) (any, error)

	// CloseAccount closes an account using the requested verb.
	CloseAccount(ctx context.Context, accountID string, verb domain.CloseVerb) (any, error)

	// ListAccounts lists the caller's accounts.
	ListAccounts(ctx context.Context) ([]any, error)
}

// HistoryClient reads account history one page at a time.
type HistoryClient interface {
	ListTransactions(ctx context.Context, accountID string, filter domain.TransactionFilter) ([]any, error)
}

// BackendClient is the whole remote banking backend.
type BackendClient interface {
	TransferClient
	AccountClient
	HistoryClient
}

// AnalyticsClient records product events.
type AnalyticsClient interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

package services

import (
	"context"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
)

// PortfolioSvc serves the dashboard view of the caller's accounts.
type PortfolioSvc interface {
	GetPortfolio(ctx context.Context) (*domain.PortfolioReport, error)
	GetAccountSummary(ctx context.Context, accountID string) (*domain.AccountSummary, error)
}

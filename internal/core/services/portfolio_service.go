package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/utils/accounting"
	"github.com/SscSPs/pleasybank_client/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type portfolioService struct {
	BaseService
	accounts portssvc.AccountClient
}

// NewPortfolioService creates the service behind the dashboard.
func NewPortfolioService(accounts portssvc.AccountClient, backendTimeout time.Duration) portssvc.PortfolioSvc {
	return &portfolioService{
		BaseService: BaseService{BackendTimeout: backendTimeout},
		accounts:    accounts,
	}
}

var _ portssvc.PortfolioSvc = (*portfolioService)(nil)

func (s *portfolioService) GetPortfolio(ctx context.Context) (*domain.PortfolioReport, error) {
	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	raws, err := s.accounts.ListAccounts(callCtx)
	if err != nil {
		err = backendError(err, "list accounts")
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}

	accounts := mapping.NormalizeAccounts(raws)
	report := &domain.PortfolioReport{
		Accounts:    make([]domain.AccountSummary, 0, len(accounts)),
		NetWorth:    accounting.PortfolioTotal(accounts),
		TotalAssets: decimal.Zero,
		TotalDebt:   decimal.Zero,
		Currency:    domain.DefaultCurrency,
	}
	for _, acc := range accounts {
		report.Accounts = append(report.Accounts, summarize(acc))
		if !acc.IsActive() {
			continue
		}
		if acc.AccountType.IsLoan() {
			report.TotalDebt = report.TotalDebt.Add(accounting.DisplayBalance(acc))
		} else {
			report.TotalAssets = report.TotalAssets.Add(acc.StoredBalance)
		}
	}
	if len(accounts) > 0 {
		report.Currency = accounts[0].Currency
	}

	s.LogDebug(ctx, "Portfolio built", slog.Int("accounts", len(accounts)), slog.String("net_worth", report.NetWorth.String()))
	return report, nil
}

func (s *portfolioService) GetAccountSummary(ctx context.Context, accountID string) (*domain.AccountSummary, error) {
	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	raw, err := s.accounts.GetAccount(callCtx, accountID)
	if err != nil {
		err = backendError(err, "get account "+accountID)
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	acc := mapping.NormalizeAccount(raw)
	if acc.ID == "" {
		acc.ID = accountID
	}
	summary := summarize(acc)
	return &summary, nil
}

func summarize(acc domain.Account) domain.AccountSummary {
	return domain.AccountSummary{
		Account:        acc,
		DisplayBalance: accounting.DisplayBalance(acc),
		Contribution:   accounting.PortfolioContribution(acc),
	}
}
